package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marinai/marinai-backend/internal/middleware"
	"github.com/marinai/marinai-backend/internal/model"
	"github.com/marinai/marinai-backend/internal/response"
	"github.com/marinai/marinai-backend/internal/service"
	"github.com/marinai/marinai-backend/internal/validator"
	"github.com/rs/zerolog"
)

// AuthHandler handles sign-up and password sign-in.
type AuthHandler struct {
	auth authenticator
	log  zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth authenticator, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log.With().Str("component", "auth_handler").Logger()}
}

// SignUp godoc
// POST /api/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req model.SignUpRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	user, err := h.auth.SignUp(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		h.log.Error().Err(err).Msg("Sign-up failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, model.SignUpResponse{
		Email:   user.Username,
		Name:    user.IndivName,
		Message: "회원가입이 완료되었습니다.",
	})
}

// Token godoc
// POST /api/auth/token
// Accepts a form post or JSON body with username (email) and password.
func (h *AuthHandler) Token(c *gin.Context) {
	var req model.TokenRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		case errors.Is(err, service.ErrAccountDisabled):
			response.Fail(c, http.StatusForbidden, response.ErrAccountDisabled)
		default:
			h.log.Error().Err(err).Msg("Sign-in failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, model.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Me godoc
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	response.Success(c, http.StatusOK, model.MeResponse{
		Username:      user.Username,
		IndivName:     user.IndivName,
		ProfileImgURL: user.ProfileImgURL,
	})
}
