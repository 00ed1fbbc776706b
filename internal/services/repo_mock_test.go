package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"contacts-api/internal/domain/user"
	contacts_errors "contacts-api/pkg/errors"

	"github.com/google/uuid"
)

// mockUserRepo is an in-memory UserRepository for service tests.
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
