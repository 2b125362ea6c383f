package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talkandgrow/referral-portal/internal/dtos"
	"github.com/talkandgrow/referral-portal/internal/models"
	"github.com/talkandgrow/referral-portal/internal/services"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	ProfileService *services.ProfileService
	Logger         *zap.Logger
}

func NewProfileHandler(profiles *services.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		ProfileService: profiles,
		Logger:         logger,
	}
}

// Get is GET /profiles/:id. A missing profile is a 404 with an error
// body, never a 200 with null.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.ProfileService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetByUser is GET /profiles, resolving ?userId= or falling back to
// the caller's own identity.
func (h *ProfileHandler) GetByUser(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID = CallerID(c)
	}

	profile, err := h.ProfileService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Create is POST /profiles. Upserts by the caller's userId so a user
// can never end up with two profiles.
func (h *ProfileHandler) Create(c *gin.Context) {
	var req dtos.ProfileCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	level := models.ExperienceLevel(req.ExperienceLevel)
	if level == "" {
		level = models.ExperienceFresher
	}
	profile := &models.Profile{
		UserID:          CallerID(c),
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		University:      req.University,
		GraduationYear:  req.GraduationYear,
		Skills:          req.Skills,
		ExperienceLevel: level,
		ResumeURL:       req.ResumeURL,
		Level:           1,
		Role:            models.RoleUser,
	}

	created, err := h.ProfileService.CreateOrUpdate(c.Request.Context(), profile)
	if err != nil {
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update is PUT /profiles/:id, allowed for the owner or an admin.
// The original service updated profiles unconditionally; requiring
// ownership here is a deliberate tightening.
func (h *ProfileHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	profile, err := h.ProfileService.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		internalError(c, h.Logger, err)
		return
	}
	caller := CallerID(c)
	if profile.UserID != caller && !h.ProfileService.IsAdmin(ctx, caller) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var patch dtos.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	updated, err := h.ProfileService.Update(ctx, profile.ID, &patch)
	if err != nil {
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
