package database

import (
	"github.com/talkandgrow/referral-portal/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens Postgres, runs migrations and returns the handle.
// TranslateError is on so unique-index violations surface as
// gorm.ErrDuplicatedKey and the services can map them to conflicts.
func Connect(dsn string, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	logger.Info("database connection established")

	logger.Info("running migrations")
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs AutoMigrate for every portal table. Split out so tests
// can run the same migrations against SQLite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Profile{},
		&models.Job{},
		&models.Application{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Credential{},
	)
}
