package services

import (
	"context"
	"crypto/md5"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"contacts-api/config"
	"contacts-api/internal/domain/user"
	"contacts-api/internal/repository"
	contacts_errors "contacts-api/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  time.Duration(cfg.JWTExpiryHours) * time.Hour,
	}
}

type RegisterInput struct {
	Email        string
	Password     string
	Subscription string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult carries the issued token and the user it belongs to.
type AuthResult struct {
	Token string
	User  user.User
}

type AccessClaims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	if err := validateRegister(in); err != nil {
		return AuthResult{}, err
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, in.Email); err == nil {
		return AuthResult{}, contacts_errors.ErrAlreadyExists
	} else if !errors.Is(err, contacts_errors.ErrNotFound) {
		return AuthResult{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	subscription := in.Subscription
	if subscription == "" {
		subscription = user.SubscriptionStarter
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: hash,
		Subscription: subscription,
		AvatarURL:    gravatarURL(in.Email),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, contacts_errors.ErrAlreadyExists) {
			return AuthResult{}, contacts_errors.ErrAlreadyExists
		}
		return AuthResult{}, err
	}

	token, err := s.newAccessToken(newUser.ID)
	if err != nil {
		return AuthResult{}, err
	}

	if err := s.userRepo.UpdateToken(ctx, newUser.ID, sql.NullString{String: token, Valid: true}); err != nil {
		return AuthResult{}, err
	}
	newUser.Token = sql.NullString{String: token, Valid: true}

	return AuthResult{Token: token, User: *newUser}, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	if in.Email == "" || in.Password == "" {
		return AuthResult{}, contacts_errors.ErrInvalidInput
	}

	u, err := s.userRepo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, contacts_errors.ErrNotFound) {
			return AuthResult{}, contacts_errors.ErrUnauthorized
		}
		return AuthResult{}, err
	}

	if err := comparePassword(u.PasswordHash, in.Password); err != nil {
		return AuthResult{}, contacts_errors.ErrUnauthorized
	}

	token, err := s.newAccessToken(u.ID)
	if err != nil {
		return AuthResult{}, err
	}

	if err := s.userRepo.UpdateToken(ctx, u.ID, sql.NullString{String: token, Valid: true}); err != nil {
		return AuthResult{}, err
	}
	u.Token = sql.NullString{String: token, Valid: true}

	return AuthResult{Token: token, User: u}, nil
}

// Current returns the user together with the token stored on the record.
func (s *AuthService) Current(ctx context.Context, userID uuid.UUID) (AuthResult, error) {
	if userID == uuid.Nil {
		return AuthResult{}, contacts_errors.ErrUnauthorized
	}

	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, contacts_errors.ErrNotFound) {
			return AuthResult{}, contacts_errors.ErrUnauthorized
		}
		return AuthResult{}, err
	}

	return AuthResult{Token: u.Token.String, User: u}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return contacts_errors.ErrUnauthorized
	}

	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, contacts_errors.ErrNotFound) {
			return contacts_errors.ErrUnauthorized
		}
		return err
	}

	return s.userRepo.UpdateToken(ctx, u.ID, sql.NullString{})
}

// Authenticate resolves a bearer token to its user. The token must parse,
// the user must exist, and the token must equal the one stored on the
// record, so a logged-out token is rejected even before it expires.
func (s *AuthService) Authenticate(ctx context.Context, token string) (user.User, error) {
	claims, err := s.ParseAccessToken(token)
	if err != nil {
		return user.User{}, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return user.User{}, contacts_errors.ErrUnauthorized
	}

	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return user.User{}, contacts_errors.ErrUnauthorized
	}

	if !u.Token.Valid || subtle.ConstantTimeCompare([]byte(u.Token.String), []byte(token)) != 1 {
		return user.User{}, contacts_errors.ErrUnauthorized
	}

	return u, nil
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, contacts_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, contacts_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, contacts_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, contacts_errors.ErrUnauthorized
	}

	return *claims, nil
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, contacts_errors.ErrInvalidInput):
		return 400
	case errors.Is(err, contacts_errors.ErrUnauthorized):
		return 401
	case errors.Is(err, contacts_errors.ErrForbidden):
		return 403
	case errors.Is(err, contacts_errors.ErrNotFound):
		return 404
	case errors.Is(err, contacts_errors.ErrAlreadyExists), errors.Is(err, contacts_errors.ErrConflict):
		return 409
	case errors.Is(err, contacts_errors.ErrRateLimited):
		return 429
	default:
		return 500
	}
}

type ctxKey string

var userIDKey ctxKey = "user_id"

// WithUserContext attaches the authenticated user id to the request
// context. Handlers receive identity only through this value, never from
// the request body.
func WithUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func (s *AuthService) newAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now()

	claims := AccessClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func validateRegister(in RegisterInput) error {
	if in.Email == "" || in.Password == "" {
		return contacts_errors.ErrInvalidInput
	}
	if !strings.Contains(in.Email, "@") {
		return contacts_errors.ErrInvalidInput
	}
	if len(in.Password) < 6 {
		return contacts_errors.ErrInvalidInput
	}
	switch in.Subscription {
	case "", user.SubscriptionStarter, user.SubscriptionPro, user.SubscriptionBusiness:
		return nil
	default:
		return contacts_errors.ErrInvalidInput
	}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// gravatarURL builds the default avatar for a fresh account.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:])
}
