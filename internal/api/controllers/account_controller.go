package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyago/internal/models/request_models"
	"voyago/internal/services"
	"voyago/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

func (a *AccountController) SignUp(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Display name, email and password are required")
		return
	}

	if err := a.accountService.SignUp(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Account created successfully")
}

func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"token": token}, "Login successful")
}

func (a *AccountController) GetCurrentUser(c *gin.Context) {
	userId := c.GetString("user_id")
	if userId == "" {
		utils.RespondError(c, http.StatusUnauthorized, "No user logged in")
		return
	}

	user, err := a.accountService.GetUserById(c.Request.Context(), userId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "User fetched successfully")
}
