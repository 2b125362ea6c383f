package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talkandgrow/referral-portal/internal/services"
	"go.uber.org/zap"
)

// AchievementHandler serves the read-only gamification endpoints.
// Achievements are never awarded server-side; the catalog and unlock
// rows are display data.
type AchievementHandler struct {
	AchievementService *services.AchievementService
	Logger             *zap.Logger
}

func NewAchievementHandler(achievements *services.AchievementService, logger *zap.Logger) *AchievementHandler {
	return &AchievementHandler{
		AchievementService: achievements,
		Logger:             logger,
	}
}

// List is GET /achievements: the full catalog, highest reward first.
func (h *AchievementHandler) List(c *gin.Context) {
	achievements, err := h.AchievementService.GetAll(c.Request.Context())
	if err != nil {
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, achievements)
}

// ListForUser is GET /achievements/user, resolving ?userId= or the
// caller's own identity.
func (h *AchievementHandler) ListForUser(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = CallerID(c)
	}

	unlocks, err := h.AchievementService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, unlocks)
}
