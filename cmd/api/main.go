package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/talkandgrow/referral-portal/internal/auth"
	"github.com/talkandgrow/referral-portal/internal/config"
	"github.com/talkandgrow/referral-portal/internal/database"
	"github.com/talkandgrow/referral-portal/internal/handlers"
	"github.com/talkandgrow/referral-portal/internal/services"
	"github.com/talkandgrow/referral-portal/internal/session"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Environment Variables (.env is optional in production)
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	// 2. Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// 3. Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// 4. Database Connection + Migrations
	db, err := database.Connect(cfg.DatabaseDSN, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// 5. Session Store (Redis when configured, in-memory otherwise)
	var sessions session.Store
	if cfg.RedisAddr != "" {
		sessions = session.NewRedisStore(session.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		logger.Info("using redis session store", zap.String("addr", cfg.RedisAddr))
	} else {
		sessions = session.NewMemoryStore()
		logger.Info("using in-memory session store")
	}
	defer func() {
		_ = sessions.Close()
	}()

	// 6. Core Services
	profileService := services.NewProfileService(db)
	jobService := services.NewJobService(db)
	applicationService := services.NewApplicationService(db)
	achievementService := services.NewAchievementService(db)
	if err := achievementService.Seed(context.Background()); err != nil {
		logger.Fatal("failed to seed achievement catalog", zap.Error(err))
	}

	// 7. Identity
	var provider auth.IdentityProvider
	if cfg.AuthMode == "session" {
		provider = auth.NewSessionProvider(sessions)
	} else {
		// Known-incomplete placeholder identity carried over from the
		// portal's early wiring; every request acts as StubUserID.
		provider = auth.NewStubProvider(cfg.StubUserID)
		logger.Warn("auth mode is stub; all requests share one identity",
			zap.String("user_id", cfg.StubUserID))
	}
	authenticator := auth.NewAuthenticator(db, sessions, profileService, cfg.SessionTTL)

	// 8. Router & Routes
	router := handlers.Router{
		Logger:        logger,
		Identity:      provider,
		Profiles:      profileService,
		Jobs:          jobService,
		Applications:  applicationService,
		Achievements:  achievementService,
		Authenticator: authenticator,
	}
	r := router.Engine()

	logger.Info("server starting", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("server failed to start", zap.Error(err))
	}
}
