package services

import (
	"context"

	"voyago/internal/models/db_models"
	"voyago/internal/models/request_models"
	"voyago/internal/models/response_models"
	"voyago/internal/repositories"
	"voyago/pkg/utils"
)

// Identity is what token verification yields. An empty Identity means the
// caller is anonymous and a guest user gets synthesized for them.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

func (i Identity) IsAnonymous() bool {
	return i.UserID == "" && i.Email == ""
}

type AccountServiceInterface interface {
	SignUp(ctx context.Context, request request_models.SignUpRequest) error
	Login(ctx context.Context, request request_models.LoginRequest) (string, error)
	// ResolveUser maps an identity onto a persisted user, creating one lazily
	// on first contact.
	ResolveUser(ctx context.Context, identity Identity) (*db_models.User, error)
	GetUserById(ctx context.Context, userId string) (*response_models.UserResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

func (a *AccountService) SignUp(ctx context.Context, request request_models.SignUpRequest) error {
	existing, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	email := request.Email
	user := &db_models.User{
		Name:         request.DisplayName,
		Email:        &email,
		PasswordHash: hashedPassword,
	}

	if err := a.accountRepo.Insert(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (string, error) {
	user, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if user == nil {
		return "", utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, request.Email, user.Name)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return token, nil
}

func (a *AccountService) ResolveUser(ctx context.Context, identity Identity) (*db_models.User, error) {
	switch {
	case identity.Email != "":
		name := identity.Name
		if name == "" {
			name = "Guest"
		}
		user, err := a.accountRepo.UpsertByEmail(ctx, name, identity.Email)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		return user, nil

	case identity.UserID != "":
		user, err := a.accountRepo.FindById(ctx, identity.UserID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if user == nil {
			return nil, utils.ErrAccountNotFound
		}
		return user, nil

	default:
		user, err := a.accountRepo.CreateGuest(ctx)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		return user, nil
	}
}

func (a *AccountService) GetUserById(ctx context.Context, userId string) (*response_models.UserResponse, error) {
	user, err := a.accountRepo.FindById(ctx, userId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	out := response_models.BuildUserResponse(user)
	return &out, nil
}
