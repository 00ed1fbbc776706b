package handler

import (
	"errors"
	"net/http"

	"contacts-api/internal/middleware"
	"contacts-api/internal/services"
	"contacts-api/internal/transport/httpdto"
	"contacts-api/internal/upload"
	contacts_errors "contacts-api/pkg/errors"
	"contacts-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles user profile endpoints.
type UserHandler struct {
	avatars *services.AvatarService
	logger  *logger.Logger
}

func NewUserHandler(avatars *services.AvatarService, l *logger.Logger) *UserHandler {
	return &UserHandler{avatars: avatars, logger: l}
}

// UpdateAvatar commits the staged upload as the user's avatar. The
// commit path surfaces its typed failures so each gets a proper status
// instead of one generic error.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	userID, _ := services.UserIDFromContext(c.Request.Context())
	staged := upload.FromContext(c)

	res, err := h.avatars.Commit(c.Request.Context(), userID, staged)
	if err != nil {
		h.writeCommitError(c, err)
		return
	}

	if h.logger != nil {
		h.logger.InfoCtx(c.Request.Context(), "avatar updated", zap.String("path", res.PublicPath))
	}

	c.JSON(http.StatusOK, httpdto.AvatarResponse{
		User:    httpdto.AvatarUserDTO{AvatarURL: res.PublicPath},
		Message: "Avatar renewed",
	})
}

func (h *UserHandler) writeCommitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, contacts_errors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse(middleware.NotAuthorizedMessage))
	case errors.Is(err, contacts_errors.ErrMissingFile):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("avatar file is required"))
	case errors.Is(err, contacts_errors.ErrInvalidFilename):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("file name has no extension"))
	default:
		_ = c.Error(err)
		if h.logger != nil {
			h.logger.ErrorCtx(c.Request.Context(), "avatar commit failed", zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("avatar update failed"))
	}
}
