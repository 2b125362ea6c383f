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

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
	ProfileService     *services.ProfileService
	Logger             *zap.Logger
}

func NewApplicationHandler(applications *services.ApplicationService, profiles *services.ProfileService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		ApplicationService: applications,
		ProfileService:     profiles,
		Logger:             logger,
	}
}

// List is GET /applications with ?userId= / ?jobId= filters, or the
// full admin-style listing with no filter. Every read path goes
// through the detail-join.
func (h *ApplicationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var applications []models.Application
	var err error
	switch {
	case c.Query("userId") != "":
		applications, err = h.ApplicationService.GetByUserID(ctx, c.Query("userId"))
	case c.Query("jobId") != "":
		applications, err = h.ApplicationService.GetByJobID(ctx, c.Query("jobId"))
	default:
		applications, err = h.ApplicationService.GetAll(ctx)
	}
	if err != nil {
		internalError(c, h.Logger, err)
		return
	}

	details, err := h.ApplicationService.WithDetails(ctx, applications)
	if err != nil {
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// Get is GET /applications/:id, enriched like the list.
func (h *ApplicationHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	application, err := h.ApplicationService.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		internalError(c, h.Logger, err)
		return
	}

	details, err := h.ApplicationService.WithDetails(ctx, []models.Application{*application})
	if err != nil {
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, details[0])
}

// Create is POST /applications. A second application for the same
// (user, job) pair is a 400, whether the pre-check or the store
// catches it.
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req dtos.ApplicationCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	application, err := h.ApplicationService.Create(c.Request.Context(), CallerID(c), &req)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyApplied) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have already applied for this job"})
			return
		}
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

// Update is PUT /applications/:id, allowed for the owner or an admin.
func (h *ApplicationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	application, err := h.ApplicationService.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		internalError(c, h.Logger, err)
		return
	}
	if !h.ownerOrAdmin(c, application.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var patch dtos.ApplicationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	updated, err := h.ApplicationService.Update(ctx, application.ID, &patch)
	if err != nil {
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete is DELETE /applications/:id, allowed for the owner or an
// admin.
func (h *ApplicationHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	application, err := h.ApplicationService.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		internalError(c, h.Logger, err)
		return
	}
	if !h.ownerOrAdmin(c, application.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	if err := h.ApplicationService.Delete(ctx, application.ID); err != nil {
		internalError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ApplicationHandler) ownerOrAdmin(c *gin.Context, ownerID string) bool {
	caller := CallerID(c)
	if caller == ownerID {
		return true
	}
	return h.ProfileService.IsAdmin(c.Request.Context(), caller)
}
