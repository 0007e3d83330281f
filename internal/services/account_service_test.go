package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyago/internal/models/db_models"
	"voyago/internal/models/request_models"
	"voyago/internal/repositories"
	"voyago/internal/services"
	"voyago/pkg/utils"
)

type mockAccountRepo struct {
	FindByEmailFn   func(ctx context.Context, email string) (*db_models.User, error)
	FindByIdFn      func(ctx context.Context, userId string) (*db_models.User, error)
	InsertFn        func(ctx context.Context, user *db_models.User) error
	UpsertByEmailFn func(ctx context.Context, name, email string) (*db_models.User, error)
	CreateGuestFn   func(ctx context.Context) (*db_models.User, error)
}

var _ repositories.AccountRepository = (*mockAccountRepo)(nil)

func (m *mockAccountRepo) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	return m.FindByEmailFn(ctx, email)
}

func (m *mockAccountRepo) FindById(ctx context.Context, userId string) (*db_models.User, error) {
	return m.FindByIdFn(ctx, userId)
}

func (m *mockAccountRepo) Insert(ctx context.Context, user *db_models.User) error {
	return m.InsertFn(ctx, user)
}

func (m *mockAccountRepo) UpsertByEmail(ctx context.Context, name, email string) (*db_models.User, error) {
	return m.UpsertByEmailFn(ctx, name, email)
}

func (m *mockAccountRepo) CreateGuest(ctx context.Context) (*db_models.User, error) {
	return m.CreateGuestFn(ctx)
}

func TestSignUp_HashesPasswordBeforeInsert(t *testing.T) {
	var inserted *db_models.User

	repo := &mockAccountRepo{
		FindByEmailFn: func(ctx context.Context, email string) (*db_models.User, error) {
			return nil, nil
		},
		InsertFn: func(ctx context.Context, user *db_models.User) error {
			inserted = user
			return nil
		},
	}
	svc := services.NewAccountService(repo)

	err := svc.SignUp(context.Background(), request_models.SignUpRequest{
		Email:       "ana@example.com",
		Password:    "s3cret-pass",
		DisplayName: "Ana",
	})

	require.NoError(t, err)
	require.NotNil(t, inserted)
	require.NotNil(t, inserted.Email)
	assert.Equal(t, "ana@example.com", *inserted.Email)
	assert.NotEqual(t, "s3cret-pass", inserted.PasswordHash)
	assert.NoError(t, utils.ComparePasswords(inserted.PasswordHash, "s3cret-pass"))
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	email := "ana@example.com"
	insertCalled := false

	repo := &mockAccountRepo{
		FindByEmailFn: func(ctx context.Context, e string) (*db_models.User, error) {
			return &db_models.User{Email: &email}, nil
		},
		InsertFn: func(ctx context.Context, user *db_models.User) error {
			insertCalled = true
			return nil
		},
	}
	svc := services.NewAccountService(repo)

	err := svc.SignUp(context.Background(), request_models.SignUpRequest{
		Email:       email,
		Password:    "s3cret-pass",
		DisplayName: "Ana",
	})

	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
	assert.False(t, insertCalled)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := &mockAccountRepo{
		FindByEmailFn: func(ctx context.Context, email string) (*db_models.User, error) {
			return nil, nil
		},
	}
	svc := services.NewAccountService(repo)

	token, err := svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.Empty(t, token)
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	email := "ana@example.com"
	hash, err := utils.HashPassword("right-password")
	require.NoError(t, err)

	repo := &mockAccountRepo{
		FindByEmailFn: func(ctx context.Context, e string) (*db_models.User, error) {
			return &db_models.User{
				BaseModel:    db_models.BaseModel{ID: uuid.New()},
				Name:         "Ana",
				Email:        &email,
				PasswordHash: hash,
			}, nil
		},
	}
	svc := services.NewAccountService(repo)

	token, loginErr := svc.Login(context.Background(), request_models.LoginRequest{
		Email:    email,
		Password: "wrong-password",
	})

	assert.Empty(t, token)
	assert.ErrorIs(t, loginErr, utils.ErrInvalidCredentials)
}

func TestLogin_IssuesValidToken(t *testing.T) {
	email := "ana@example.com"
	userId := uuid.New()
	hash, err := utils.HashPassword("right-password")
	require.NoError(t, err)

	repo := &mockAccountRepo{
		FindByEmailFn: func(ctx context.Context, e string) (*db_models.User, error) {
			return &db_models.User{
				BaseModel:    db_models.BaseModel{ID: userId},
				Name:         "Ana",
				Email:        &email,
				PasswordHash: hash,
			}, nil
		},
	}
	svc := services.NewAccountService(repo)

	token, err := svc.Login(context.Background(), request_models.LoginRequest{
		Email:    email,
		Password: "right-password",
	})

	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userId.String(), claims.UserID)
	assert.Equal(t, email, claims.Email)
}

func TestResolveUser_EmailIdentityUpserts(t *testing.T) {
	repo := &mockAccountRepo{
		UpsertByEmailFn: func(ctx context.Context, name, email string) (*db_models.User, error) {
			assert.Equal(t, "Ana", name)
			assert.Equal(t, "ana@example.com", email)
			e := email
			return &db_models.User{Name: name, Email: &e}, nil
		},
	}
	svc := services.NewAccountService(repo)

	user, err := svc.ResolveUser(context.Background(), services.Identity{
		Email: "ana@example.com",
		Name:  "Ana",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
}

func TestResolveUser_EmailWithoutNameDefaultsToGuest(t *testing.T) {
	repo := &mockAccountRepo{
		UpsertByEmailFn: func(ctx context.Context, name, email string) (*db_models.User, error) {
			assert.Equal(t, "Guest", name)
			e := email
			return &db_models.User{Name: name, Email: &e}, nil
		},
	}
	svc := services.NewAccountService(repo)

	_, err := svc.ResolveUser(context.Background(), services.Identity{Email: "ana@example.com"})

	require.NoError(t, err)
}

func TestResolveUser_UserIdNotFound(t *testing.T) {
	repo := &mockAccountRepo{
		FindByIdFn: func(ctx context.Context, userId string) (*db_models.User, error) {
			return nil, nil
		},
	}
	svc := services.NewAccountService(repo)

	user, err := svc.ResolveUser(context.Background(), services.Identity{UserID: uuid.NewString()})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
}

func TestResolveUser_AnonymousCreatesGuest(t *testing.T) {
	repo := &mockAccountRepo{
		CreateGuestFn: func(ctx context.Context) (*db_models.User, error) {
			return &db_models.User{Name: "Guest 7"}, nil
		},
	}
	svc := services.NewAccountService(repo)

	user, err := svc.ResolveUser(context.Background(), services.Identity{})

	require.NoError(t, err)
	assert.Equal(t, "Guest 7", user.Name)
	assert.Nil(t, user.Email)
}
