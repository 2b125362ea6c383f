package services

import (
	"context"
	"time"

	"github.com/talkandgrow/referral-portal/internal/models"
	"gorm.io/gorm"
)

type AchievementService struct {
	DB *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{
		DB: db,
	}
}

// GetAll returns the catalog, highest reward first (the order the
// dashboard displays it in).
func (s *AchievementService) GetAll(ctx context.Context) ([]models.Achievement, error) {
	achievements := []models.Achievement{}
	err := s.DB.WithContext(ctx).Order("points_reward DESC").Find(&achievements).Error
	if err != nil {
		return nil, err
	}
	return achievements, nil
}

// GetByUserID returns the user's unlocks with their catalog entries
// attached. An unlock whose catalog entry was removed keeps a nil
// Achievement.
func (s *AchievementService) GetByUserID(ctx context.Context, userID string) ([]models.UserAchievement, error) {
	unlocks := []models.UserAchievement{}
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&unlocks).Error
	if err != nil {
		return nil, err
	}
	if len(unlocks) == 0 {
		return unlocks, nil
	}

	ids := make([]string, 0, len(unlocks))
	for _, u := range unlocks {
		ids = append(ids, u.AchievementID)
	}
	var achievements []models.Achievement
	if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&achievements).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Achievement, len(achievements))
	for i := range achievements {
		byID[achievements[i].ID] = &achievements[i]
	}
	for i := range unlocks {
		unlocks[i].Achievement = byID[unlocks[i].AchievementID]
	}
	return unlocks, nil
}

// Seed installs the static catalog. There is deliberately no awarding
// write path; earning an achievement is display-only until the
// gamification backend grows one.
func (s *AchievementService) Seed(ctx context.Context) error {
	catalog := []models.Achievement{
		{ID: "ach-profile-complete", Name: "Profile Pioneer", Description: "Complete your profile", Icon: "🧭", PointsReward: 50, RequirementType: "profile_complete", RequirementValue: 1},
		{ID: "ach-first-application", Name: "First Step", Description: "Submit your first application", Icon: "🚀", PointsReward: 100, RequirementType: "first_application", RequirementValue: 1},
		{ID: "ach-skill-milestone", Name: "Skill Collector", Description: "Add five skills to your profile", Icon: "🛠️", PointsReward: 150, RequirementType: "skill_milestone", RequirementValue: 5},
		{ID: "ach-referral-accepted", Name: "Well Connected", Description: "Get a referral accepted", Icon: "🤝", PointsReward: 250, RequirementType: "referral_accepted", RequirementValue: 1},
		{ID: "ach-job-secured", Name: "Hired!", Description: "Land a job through the portal", Icon: "🏆", PointsReward: 500, RequirementType: "job_secured", RequirementValue: 1},
	}
	now := time.Now().UTC()
	for i := range catalog {
		catalog[i].CreatedAt = now
		err := s.DB.WithContext(ctx).
			Where(models.Achievement{ID: catalog[i].ID}).
			Attrs(catalog[i]).
			FirstOrCreate(&models.Achievement{}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
