// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"errors"
	"net/http"

	"contacts-api/internal/middleware"
	"contacts-api/internal/services"
	"contacts-api/internal/transport/httpdto"
	contacts_errors "contacts-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication HTTP endpoints.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req httpdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request body"))
		return
	}

	res, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		Subscription: req.Subscription,
	})
	if err != nil {
		if errors.Is(err, contacts_errors.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, httpdto.NewErrorResponse("Email in use"))
			return
		}
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.RegisterResponse{
		Token: res.Token,
		User:  httpdto.FromRegisteredUser(res.User),
	})
}

// Login handles user authentication.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request body"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, contacts_errors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("Email or password is wrong"))
			return
		}
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.SessionResponse{
		Token: res.Token,
		User:  httpdto.FromSessionUser(res.User),
	})
}

// Current returns the authenticated user's session.
func (h *AuthHandler) Current(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse(middleware.NotAuthorizedMessage))
		return
	}

	res, err := h.service.Current(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, contacts_errors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse(middleware.NotAuthorizedMessage))
			return
		}
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.SessionResponse{
		Token: res.Token,
		User:  httpdto.FromSessionUser(res.User),
	})
}

// Logout clears the stored session token.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse(middleware.NotAuthorizedMessage))
		return
	}

	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		if errors.Is(err, contacts_errors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse(middleware.NotAuthorizedMessage))
			return
		}
		writeAuthError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func writeAuthError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error()))
}
