package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	dbm "voyago/internal/models/db_models"
)

type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*dbm.User, error)
	FindById(ctx context.Context, userId string) (*dbm.User, error)
	Insert(ctx context.Context, user *dbm.User) error
	// UpsertByEmail returns the user for a verified identity, creating it on
	// first contact.
	UpsertByEmail(ctx context.Context, name, email string) (*dbm.User, error)
	// CreateGuest synthesizes the next numbered guest. The count and the
	// insert run in one transaction so the sequence is owned by the store,
	// not by an in-process counter.
	CreateGuest(ctx context.Context) (*dbm.User, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*dbm.User, error) {
	var user dbm.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *accountRepository) FindById(ctx context.Context, userId string) (*dbm.User, error) {
	var user dbm.User
	err := r.db.WithContext(ctx).Where("id = ?", userId).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *accountRepository) Insert(ctx context.Context, user *dbm.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *accountRepository) UpsertByEmail(ctx context.Context, name, email string) (*dbm.User, error) {
	var user dbm.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Attrs(dbm.User{Name: name, Email: &email}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *accountRepository) CreateGuest(ctx context.Context) (*dbm.User, error) {
	var user *dbm.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var guestCount int64
		// Unscoped so soft-deleted guests keep the numbering monotonic.
		if err := tx.Model(&dbm.User{}).Unscoped().
			Where("email IS NULL").
			Count(&guestCount).Error; err != nil {
			return err
		}

		user = &dbm.User{Name: fmt.Sprintf("Guest %d", guestCount+1)}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
