package services

import (
	"context"
	"errors"
	"time"

	"github.com/talkandgrow/referral-portal/internal/dtos"
	"github.com/talkandgrow/referral-portal/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{
		DB: db,
	}
}

// Create inserts an application for the user. The pre-check on
// (userId, jobId) is advisory; two racing requests can both pass it,
// in which case the composite unique index rejects the loser and we
// report the same conflict.
func (s *ApplicationService) Create(ctx context.Context, userID string, req *dtos.ApplicationCreationRequest) (*models.Application, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Application{}).
		Where("user_id = ? AND job_id = ?", userID, req.JobID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyApplied
	}

	now := time.Now().UTC()
	application := &models.Application{
		ID:          NewID("app"),
		JobID:       req.JobID,
		UserID:      userID,
		Status:      models.StatusApplied,
		MatchScore:  req.MatchScore,
		CoverLetter: req.CoverLetter,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.DB.WithContext(ctx).Create(application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}
	return application, nil
}

func (s *ApplicationService) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var application models.Application
	err := s.DB.WithContext(ctx).First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (s *ApplicationService) GetAll(ctx context.Context) ([]models.Application, error) {
	applications := []models.Application{}
	if err := s.DB.WithContext(ctx).Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (s *ApplicationService) GetByUserID(ctx context.Context, userID string) ([]models.Application, error) {
	applications := []models.Application{}
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (s *ApplicationService) GetByJobID(ctx context.Context, jobID string) ([]models.Application, error) {
	applications := []models.Application{}
	if err := s.DB.WithContext(ctx).Where("job_id = ?", jobID).Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (s *ApplicationService) Update(ctx context.Context, id string, patch *dtos.ApplicationPatch) (*models.Application, error) {
	application, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		application.Status = models.ApplicationStatus(*patch.Status)
	}
	if patch.MatchScore != nil {
		application.MatchScore = patch.MatchScore
	}
	if patch.CoverLetter != nil {
		application.CoverLetter = *patch.CoverLetter
	}
	application.UpdatedAt = time.Now().UTC()

	if err := s.DB.WithContext(ctx).Save(application).Error; err != nil {
		return nil, err
	}
	return application, nil
}

func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&models.Application{}, "id = ?", id).Error
}

// WithDetails enriches applications with their referenced profile and
// job. The two batch reads are independent, so they run concurrently.
// A nil user/job on an entry means the referenced record is gone.
func (s *ApplicationService) WithDetails(ctx context.Context, applications []models.Application) ([]models.ApplicationDetails, error) {
	userIDs := make([]string, 0, len(applications))
	jobIDs := make([]string, 0, len(applications))
	seenUsers := map[string]bool{}
	seenJobs := map[string]bool{}
	for _, app := range applications {
		if !seenUsers[app.UserID] {
			seenUsers[app.UserID] = true
			userIDs = append(userIDs, app.UserID)
		}
		if !seenJobs[app.JobID] {
			seenJobs[app.JobID] = true
			jobIDs = append(jobIDs, app.JobID)
		}
	}

	var profiles []models.Profile
	var jobs []models.Job

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.DB.WithContext(gctx).Where("user_id IN ?", userIDs).Find(&profiles).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(gctx).Where("id IN ?", jobIDs).Find(&jobs).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profilesByUser := make(map[string]*models.Profile, len(profiles))
	for i := range profiles {
		profilesByUser[profiles[i].UserID] = &profiles[i]
	}
	jobsByID := make(map[string]*models.Job, len(jobs))
	for i := range jobs {
		jobsByID[jobs[i].ID] = &jobs[i]
	}

	details := make([]models.ApplicationDetails, len(applications))
	for i, app := range applications {
		details[i] = models.ApplicationDetails{
			Application: app,
			User:        profilesByUser[app.UserID],
			Job:         jobsByID[app.JobID],
		}
	}
	return details, nil
}
