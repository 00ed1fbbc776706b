package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"contacts-api/internal/domain/user"
	contacts_errors "contacts-api/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Create(u)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return contacts_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, contacts_errors.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, contacts_errors.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *PostgresUserRepository) UpdateToken(ctx context.Context, id uuid.UUID, token sql.NullString) error {
	res := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"token": token, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contacts_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	res := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"avatar_url": avatarURL, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contacts_errors.ErrNotFound
	}
	return nil
}
