package handler

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"contacts-api/config"
	"contacts-api/internal/domain/user"
	"contacts-api/internal/middleware"
	"contacts-api/internal/services"
	"contacts-api/internal/storage"
	"contacts-api/internal/upload"
	contacts_errors "contacts-api/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// mockUserRepo is an in-memory UserRepository for handler tests.
type mockUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]user.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]user.User)}
}

func (m *mockUserRepo) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return contacts_errors.ErrAlreadyExists
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return user.User{}, contacts_errors.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, contacts_errors.ErrNotFound
}

func (m *mockUserRepo) UpdateToken(_ context.Context, id uuid.UUID, token sql.NullString) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return contacts_errors.ErrNotFound
	}
	u.Token = token
	u.UpdatedAt = time.Now()
	m.users[id] = u
	return nil
}

func (m *mockUserRepo) UpdateAvatar(_ context.Context, id uuid.UUID, avatarURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return contacts_errors.ErrNotFound
	}
	u.AvatarURL = avatarURL
	u.UpdatedAt = time.Now()
	m.users[id] = u
	return nil
}

// testEnv wires the real services over the mock repository with the
// same route layout the server uses.
type testEnv struct {
	engine    *gin.Engine
	repo      *mockUserRepo
	auth      *services.AuthService
	tempDir   string
	avatarDir string
}

func newTestEnv(tempDir, avatarDir string) (*testEnv, error) {
	gin.SetMode(gin.TestMode)

	repo := newMockUserRepo()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryHours: 1}
	authService := services.NewAuthService(repo, cfg)

	store, err := storage.NewLocalStore(avatarDir)
	if err != nil {
		return nil, err
	}
	avatarService := services.NewAvatarService(repo, store)
	intake := upload.NewIntake(tempDir)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(avatarService, nil)

	engine := gin.New()
	users := engine.Group("/api/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)

	authed := users.Group("", middleware.AuthMiddleware(authService))
	authed.GET("/current", authHandler.Current)
	authed.POST("/logout", authHandler.Logout)
	authed.PATCH("/avatars", upload.Middleware(intake, nil), userHandler.UpdateAvatar)

	return &testEnv{
		engine:    engine,
		repo:      repo,
		auth:      authService,
		tempDir:   tempDir,
		avatarDir: avatarDir,
	}, nil
}
