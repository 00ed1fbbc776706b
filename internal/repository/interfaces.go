package repository

import (
	"context"
	"database/sql"

	"contacts-api/internal/domain/user"

	"github.com/google/uuid"
)

// UserRepository is the persistence boundary consumed by the services.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	UpdateToken(ctx context.Context, id uuid.UUID, token sql.NullString) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
}
