package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/andsetyobudi/ban-bengkel/shared/cqrs"
	"github.com/andsetyobudi/ban-bengkel/shared/middleware"
	"github.com/andsetyobudi/ban-bengkel/shared/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AuthQuerier defines the read-side operations used by AuthHandler.
type AuthQuerier interface {
	Login(context.Context, cqrs.LoginCommand) (string, error)
}

// AuthHandler handles admin login. No command service needed.
type AuthHandler struct {
	queries AuthQuerier
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

func NewAuthHandler(queries AuthQuerier) *AuthHandler {
	return &AuthHandler{queries: queries}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	token, err := h.queries.Login(c.Request.Context(), cqrs.LoginCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			middleware.RespondWithError(c, http.StatusUnauthorized, "Username atau password salah.")
			return
		}
		log.Error().Err(err).Str("username", req.Username).Msg("admin login failed")
		middleware.RespondWithError(c, http.StatusInternalServerError, "Gagal memproses login.")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token})
}
