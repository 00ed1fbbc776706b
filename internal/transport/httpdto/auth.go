package httpdto

import "contacts-api/internal/domain/user"

// RegisterRequest is used for POST /api/users/register
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Subscription string `json:"subscription,omitempty"`
}

// LoginRequest is used for POST /api/users/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is returned after successful registration. It is the
// only auth payload that carries the avatar URL; the password never
// appears in any response.
type RegisterResponse struct {
	Token string            `json:"token"`
	User  RegisteredUserDTO `json:"user"`
}

type RegisteredUserDTO struct {
	Subscription string `json:"subscription"`
	Email        string `json:"email"`
	AvatarURL    string `json:"avatarURL"`
}

// SessionResponse is returned by login and the current-session query.
type SessionResponse struct {
	Token string         `json:"token"`
	User  SessionUserDTO `json:"user"`
}

type SessionUserDTO struct {
	Subscription string `json:"subscription"`
	Email        string `json:"email"`
}

// FromRegisteredUser converts a domain user to RegisteredUserDTO
func FromRegisteredUser(u user.User) RegisteredUserDTO {
	return RegisteredUserDTO{
		Subscription: u.Subscription,
		Email:        u.Email,
		AvatarURL:    u.AvatarURL,
	}
}

// FromSessionUser converts a domain user to SessionUserDTO
func FromSessionUser(u user.User) SessionUserDTO {
	return SessionUserDTO{
		Subscription: u.Subscription,
		Email:        u.Email,
	}
}
