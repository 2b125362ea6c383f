package services

import (
	"context"
	"errors"
	"time"

	"github.com/talkandgrow/referral-portal/internal/dtos"
	"github.com/talkandgrow/referral-portal/internal/models"
	"gorm.io/gorm"
)

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		DB: db,
	}
}

// CreateOrUpdate upserts the profile keyed by userId so the
// one-profile-per-user invariant holds. An existing row keeps its id
// and createdAt; everything else is overwritten (last write wins).
func (s *ProfileService) CreateOrUpdate(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	now := time.Now().UTC()

	existing, err := s.GetByUserID(ctx, profile.UserID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.ID = NewID("profile")
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	if err := s.DB.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// GetByUserID looks up the unique profile for a user.
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Update merges the non-nil patch fields into the stored record and
// bumps updatedAt. id, userId and createdAt are not reachable through
// the patch.
func (s *ProfileService) Update(ctx context.Context, id string, patch *dtos.ProfilePatch) (*models.Profile, error) {
	profile, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.FullName != nil {
		profile.FullName = *patch.FullName
	}
	if patch.Email != nil {
		profile.Email = *patch.Email
	}
	if patch.Phone != nil {
		profile.Phone = *patch.Phone
	}
	if patch.University != nil {
		profile.University = *patch.University
	}
	if patch.GraduationYear != nil {
		profile.GraduationYear = *patch.GraduationYear
	}
	if patch.Skills != nil {
		profile.Skills = *patch.Skills
	}
	if patch.ExperienceLevel != nil {
		profile.ExperienceLevel = models.ExperienceLevel(*patch.ExperienceLevel)
	}
	if patch.ResumeURL != nil {
		profile.ResumeURL = patch.ResumeURL
	}
	if patch.Points != nil {
		profile.Points = *patch.Points
	}
	if patch.Level != nil {
		profile.Level = *patch.Level
	}
	if patch.Role != nil {
		profile.Role = models.Role(*patch.Role)
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.DB.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// IsAdmin reports whether the user's profile carries the admin role.
// Lookup failures count as not-admin.
func (s *ProfileService) IsAdmin(ctx context.Context, userID string) bool {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return false
	}
	return profile.Role == models.RoleAdmin
}
