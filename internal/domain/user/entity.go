package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User represents the users table. Token holds the currently issued
// session token; logout clears it, so a row with a NULL token has no
// active session.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email        string         `gorm:"uniqueIndex;not null"`
	PasswordHash string         `gorm:"not null"`
	Subscription string         `gorm:"default:'starter'"`
	Token        sql.NullString `gorm:"index"`
	AvatarURL    string
	CreatedAt    time.Time `gorm:"default:now()"`
	UpdatedAt    time.Time `gorm:"default:now()"`
}

func (User) TableName() string {
	return "users"
}

// Subscription plans.
const (
	SubscriptionStarter  = "starter"
	SubscriptionPro      = "pro"
	SubscriptionBusiness = "business"
)
