package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/talkandgrow/referral-portal/internal/dtos"
	"github.com/talkandgrow/referral-portal/internal/models"
	"github.com/talkandgrow/referral-portal/internal/services"
	"github.com/talkandgrow/referral-portal/internal/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Authenticator is the local sign-up/sign-in backend: bcrypt-hashed
// credentials in the store, opaque session tokens in the session
// store. Signing up bootstraps the user's Profile, which is how
// "created on first sign-in or explicit registration" is satisfied.
type Authenticator struct {
	DB         *gorm.DB
	Sessions   session.Store
	Profiles   *services.ProfileService
	SessionTTL time.Duration
}

func NewAuthenticator(db *gorm.DB, sessions session.Store, profiles *services.ProfileService, ttl time.Duration) *Authenticator {
	return &Authenticator{
		DB:         db,
		Sessions:   sessions,
		Profiles:   profiles,
		SessionTTL: ttl,
	}
}

func (a *Authenticator) SignUp(ctx context.Context, req *dtos.SignUpRequest) (string, *models.Profile, error) {
	var count int64
	err := a.DB.WithContext(ctx).Model(&models.Credential{}).
		Where("email = ?", req.Email).
		Count(&count).Error
	if err != nil {
		return "", nil, err
	}
	if count > 0 {
		return "", nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	credential := &models.Credential{
		UserID:       services.NewID("user"),
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.DB.WithContext(ctx).Create(credential).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}

	profile, err := a.Profiles.CreateOrUpdate(ctx, &models.Profile{
		UserID:   credential.UserID,
		FullName: req.FullName,
		Email:    req.Email,
		Role:     models.RoleUser,
		Level:    1,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := a.mintSession(ctx, credential.UserID)
	if err != nil {
		return "", nil, err
	}
	return token, profile, nil
}

func (a *Authenticator) SignIn(ctx context.Context, req *dtos.SignInRequest) (string, *models.Profile, error) {
	var credential models.Credential
	err := a.DB.WithContext(ctx).Where("email = ?", req.Email).First(&credential).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(req.Password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	profile, err := a.Profiles.GetByUserID(ctx, credential.UserID)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		return "", nil, err
	}

	token, err := a.mintSession(ctx, credential.UserID)
	if err != nil {
		return "", nil, err
	}
	return token, profile, nil
}

func (a *Authenticator) SignOut(ctx context.Context, token string) error {
	return a.Sessions.Delete(ctx, token)
}

// CurrentUser resolves the session token to the owning profile.
func (a *Authenticator) CurrentUser(ctx context.Context, token string) (*models.Profile, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	userID, err := a.Sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return a.Profiles.GetByUserID(ctx, userID)
}

func (a *Authenticator) mintSession(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := a.Sessions.Set(ctx, token, userID, a.SessionTTL); err != nil {
		return "", err
	}
	return token, nil
}
