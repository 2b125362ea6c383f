package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talkandgrow/referral-portal/internal/dtos"
	"github.com/talkandgrow/referral-portal/internal/services"
	"go.uber.org/zap"
)

type JobHandler struct {
	JobService *services.JobService
	Logger     *zap.Logger
}

func NewJobHandler(jobs *services.JobService, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		JobService: jobs,
		Logger:     logger,
	}
}

// List is GET /jobs, optionally filtered by ?postedBy=.
func (h *JobHandler) List(c *gin.Context) {
	if postedBy := c.Query("postedBy"); postedBy != "" {
		jobs, err := h.JobService.GetByPostedBy(c.Request.Context(), postedBy)
		if err != nil {
			internalError(c, h.Logger, err)
			return
		}
		c.JSON(http.StatusOK, jobs)
		return
	}

	jobs, err := h.JobService.GetAll(c.Request.Context())
	if err != nil {
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Get is GET /jobs/:id.
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.JobService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Create is POST /jobs. The caller becomes the poster; isActive
// defaults to true.
func (h *JobHandler) Create(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.JobService.Create(c.Request.Context(), &req, CallerID(c))
	if err != nil {
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// Update is PUT /jobs/:id. Only the exact poster may update; admin
// does not override here, matching the jobs resource's rules.
func (h *JobHandler) Update(c *gin.Context) {
	job, err := h.JobService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		internalError(c, h.Logger, err)
		return
	}
	if job.PostedBy != CallerID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var patch dtos.JobPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	updated, err := h.JobService.Update(c.Request.Context(), job.ID, &patch)
	if err != nil {
		internalError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete is DELETE /jobs/:id, a hard delete gated on the poster.
func (h *JobHandler) Delete(c *gin.Context) {
	job, err := h.JobService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		internalError(c, h.Logger, err)
		return
	}
	if job.PostedBy != CallerID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	if err := h.JobService.Delete(c.Request.Context(), job.ID); err != nil {
		internalError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
