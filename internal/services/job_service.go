package services

import (
	"context"
	"errors"
	"time"

	"github.com/talkandgrow/referral-portal/internal/dtos"
	"github.com/talkandgrow/referral-portal/internal/models"
	"gorm.io/gorm"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{
		DB: db,
	}
}

func (s *JobService) Create(ctx context.Context, req *dtos.JobCreationRequest, postedBy string) (*models.Job, error) {
	now := time.Now().UTC()

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	job := &models.Job{
		ID:             NewID("job"),
		Title:          req.Title,
		Company:        req.Company,
		Description:    req.Description,
		Requirements:   req.Requirements,
		SkillsRequired: req.SkillsRequired,
		Location:       req.Location,
		JobType:        models.JobType(req.JobType),
		SalaryRange:    req.SalaryRange,
		PostedBy:       postedBy,
		IsActive:       isActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// GetAll lists every job. Unfiltered, like the original's full-table
// scan; fine at portal scale, a known gap beyond it.
func (s *JobService) GetAll(ctx context.Context) ([]models.Job, error) {
	jobs := []models.Job{}
	if err := s.DB.WithContext(ctx).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobService) GetByPostedBy(ctx context.Context, postedBy string) ([]models.Job, error) {
	jobs := []models.Job{}
	if err := s.DB.WithContext(ctx).Where("posted_by = ?", postedBy).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Update applies the non-nil patch fields and bumps updatedAt. The
// postedBy ownership check lives in the handler, not here.
func (s *JobService) Update(ctx context.Context, id string, patch *dtos.JobPatch) (*models.Job, error) {
	job, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		job.Title = *patch.Title
	}
	if patch.Company != nil {
		job.Company = *patch.Company
	}
	if patch.Description != nil {
		job.Description = *patch.Description
	}
	if patch.Requirements != nil {
		job.Requirements = *patch.Requirements
	}
	if patch.SkillsRequired != nil {
		job.SkillsRequired = *patch.SkillsRequired
	}
	if patch.Location != nil {
		job.Location = *patch.Location
	}
	if patch.JobType != nil {
		job.JobType = models.JobType(*patch.JobType)
	}
	if patch.SalaryRange != nil {
		job.SalaryRange = *patch.SalaryRange
	}
	if patch.IsActive != nil {
		job.IsActive = *patch.IsActive
	}
	job.UpdatedAt = time.Now().UTC()

	if err := s.DB.WithContext(ctx).Save(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// Delete hard-deletes the job. Applications referencing it keep their
// jobId and simply lose the joined record.
func (s *JobService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&models.Job{}, "id = ?", id).Error
}
