package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talkandgrow/referral-portal/internal/auth"
	"github.com/talkandgrow/referral-portal/internal/dtos"
	"github.com/talkandgrow/referral-portal/internal/services"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Authenticator *auth.Authenticator
	Logger        *zap.Logger
}

func NewAuthHandler(authenticator *auth.Authenticator, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		Authenticator: authenticator,
		Logger:        logger,
	}
}

// SignUp is POST /auth/signup: creates the credential, bootstraps the
// profile and returns a fresh session token.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dtos.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	token, profile, err := h.Authenticator.SignUp(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": profile})
}

// SignIn is POST /auth/signin.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dtos.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	token, profile, err := h.Authenticator.SignIn(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": profile})
}

// SignOut is POST /auth/signout. Idempotent; signing out an unknown
// token still succeeds.
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.Authenticator.SignOut(c.Request.Context(), bearerToken(c)); err != nil {
		internalError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me is GET /auth/me: the profile behind the presented session token.
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.Authenticator.CurrentUser(c.Request.Context(), bearerToken(c))
	if err != nil {
		if errors.Is(err, auth.ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
