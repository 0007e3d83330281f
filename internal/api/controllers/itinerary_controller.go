package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voyago/internal/models/request_models"
	"voyago/internal/services"
	"voyago/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

func identityFromContext(c *gin.Context) services.Identity {
	return services.Identity{
		UserID: c.GetString("user_id"),
		Email:  c.GetString("user_email"),
		Name:   c.GetString("user_name"),
	}
}

// GenerateItinerary godoc
// @Summary Generate a travel itinerary
// @Description Build a prompt from the posted preferences, call the completion API and persist the parsed recommendations
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.GenerateItineraryRequest true "Traveler preferences"
// @Success 200 {object} response_models.GenerateItineraryResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /generate_itinerary [post]
func (i *ItineraryController) GenerateItinerary(c *gin.Context) {
	var req request_models.GenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Travel type, budget and trip duration are required")
		return
	}

	result, err := i.itineraryService.GenerateItinerary(c.Request.Context(), identityFromContext(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Itinerary generated successfully")
}

// GetItinerariesByUser godoc
// @Summary List itineraries of the authenticated user
// @Tags Itinerary
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {array} response_models.GenerateItineraryResponse
// @Security BearerAuth
// @Router /itineraries [get]
func (i *ItineraryController) GetItinerariesByUser(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	userId := c.GetString("user_id")

	itineraries, err := i.itineraryService.GetItinerariesByUserId(c.Request.Context(), userId, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itineraries, "Itineraries fetched successfully")
}

func (i *ItineraryController) GetItineraryById(c *gin.Context) {
	itineraryId := c.Param("itineraryId")
	if itineraryId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary ID is required")
		return
	}

	itinerary, err := i.itineraryService.GetItineraryById(c.Request.Context(), itineraryId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary fetched successfully")
}

func (i *ItineraryController) UpdateItinerary(c *gin.Context) {
	itineraryId := c.Param("itineraryId")

	var req request_models.UpdateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Details field is required")
		return
	}

	itinerary, err := i.itineraryService.UpdateItineraryDetails(c.Request.Context(), itineraryId, req.Details)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary updated successfully")
}

func (i *ItineraryController) DeleteItinerary(c *gin.Context) {
	itineraryId := c.Param("itineraryId")

	if err := i.itineraryService.DeleteItinerary(c.Request.Context(), itineraryId); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Itinerary deleted successfully")
}

// GetSimilarItineraries godoc
// @Summary Find itineraries with similar preferences
// @Tags Itinerary
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Param limit query int false "Max results" default(5)
// @Success 200 {array} response_models.SimilarItineraryResponse
// @Router /itineraries/{itineraryId}/similar [get]
func (i *ItineraryController) GetSimilarItineraries(c *gin.Context) {
	itineraryId := c.Param("itineraryId")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 || limit > 50 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit (must be 1-50)")
		return
	}

	similar, err := i.itineraryService.GetSimilarItineraries(c.Request.Context(), itineraryId, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, similar, "Similar itineraries fetched successfully")
}
