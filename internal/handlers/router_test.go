package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkandgrow/referral-portal/internal/auth"
	"github.com/talkandgrow/referral-portal/internal/database"
	"github.com/talkandgrow/referral-portal/internal/dtos"
	"github.com/talkandgrow/referral-portal/internal/models"
	"github.com/talkandgrow/referral-portal/internal/services"
	"github.com/talkandgrow/referral-portal/internal/session"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testUserID = "test-user-id"

type testEnv struct {
	engine       *gin.Engine
	db           *gorm.DB
	profiles     *services.ProfileService
	jobs         *services.JobService
	applications *services.ApplicationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	profiles := services.NewProfileService(db)
	jobs := services.NewJobService(db)
	applications := services.NewApplicationService(db)
	achievements := services.NewAchievementService(db)
	require.NoError(t, achievements.Seed(context.Background()))

	sessions := session.NewMemoryStore()
	router := Router{
		Logger:        zap.NewNop(),
		Identity:      auth.NewStubProvider(testUserID),
		Profiles:      profiles,
		Jobs:          jobs,
		Applications:  applications,
		Achievements:  achievements,
		Authenticator: auth.NewAuthenticator(db, sessions, profiles, time.Hour),
	}
	return &testEnv{
		engine:       router.Engine(),
		db:           db,
		profiles:     profiles,
		jobs:         jobs,
		applications: applications,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestPostJobReturnsCreatedWithDefaults(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/jobs", gin.H{
		"title":   "A",
		"company": "B",
		"jobType": "full-time",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var job models.Job
	decode(t, w, &job)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, testUserID, job.PostedBy)
	assert.True(t, job.IsActive)
	assert.True(t, job.CreatedAt.Equal(job.UpdatedAt))
}

func TestPostJobRejectsBadJobType(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/jobs", gin.H{
		"title":   "A",
		"company": "B",
		"jobType": "gig",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetApplicationsByUserReturnsEnrichedRecords(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.profiles.CreateOrUpdate(ctx, &models.Profile{UserID: testUserID, FullName: "Asha"})
	require.NoError(t, err)
	_, err = env.profiles.CreateOrUpdate(ctx, &models.Profile{UserID: "other-user", FullName: "Ben"})
	require.NoError(t, err)

	job1, err := env.jobs.Create(ctx, &dtos.JobCreationRequest{Title: "J1", Company: "C1", JobType: "full-time"}, "poster-1")
	require.NoError(t, err)
	job2, err := env.jobs.Create(ctx, &dtos.JobCreationRequest{Title: "J2", Company: "C2", JobType: "internship"}, "poster-1")
	require.NoError(t, err)

	for _, jobID := range []string{job1.ID, job2.ID} {
		w := env.do(t, http.MethodPost, "/api/v1/applications", gin.H{"jobId": jobID})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	// An application belonging to someone else must not appear.
	_, err = env.applications.Create(ctx, "other-user", &dtos.ApplicationCreationRequest{JobID: job1.ID})
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/v1/applications?userId="+testUserID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var details []models.ApplicationDetails
	decode(t, w, &details)
	require.Len(t, details, 2)
	for _, d := range details {
		assert.Equal(t, testUserID, d.UserID)
		require.NotNil(t, d.User)
		assert.Equal(t, "Asha", d.User.FullName)
		require.NotNil(t, d.Job)
	}
}

func TestDuplicateApplicationIsBadRequest(t *testing.T) {
	env := newTestEnv(t)

	job, err := env.jobs.Create(context.Background(), &dtos.JobCreationRequest{Title: "J", Company: "C", JobType: "contract"}, "poster-1")
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/api/v1/applications", gin.H{"jobId": job.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/applications", gin.H{"jobId": job.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already applied")
}

func TestPutJobByNonPosterIsForbiddenAndUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	job, err := env.jobs.Create(ctx, &dtos.JobCreationRequest{Title: "Original", Company: "C", JobType: "full-time"}, "someone-else")
	require.NoError(t, err)

	w := env.do(t, http.MethodPut, "/api/v1/jobs/"+job.ID, gin.H{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	stored, err := env.jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", stored.Title)
	assert.WithinDuration(t, job.UpdatedAt, stored.UpdatedAt, time.Second)
}

func TestDeleteJobByPosterReturnsNoContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	job, err := env.jobs.Create(ctx, &dtos.JobCreationRequest{Title: "Mine", Company: "C", JobType: "full-time"}, testUserID)
	require.NoError(t, err)

	w := env.do(t, http.MethodDelete, "/api/v1/jobs/"+job.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/jobs/"+job.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMissingProfileIsNotFoundWithErrorBody(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/profiles/profile-missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "Profile not found", body["error"])
}

func TestAdminCanUpdateAnotherUsersApplication(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// The stub caller is an admin here.
	_, err := env.profiles.CreateOrUpdate(ctx, &models.Profile{UserID: testUserID, Role: models.RoleAdmin})
	require.NoError(t, err)

	job, err := env.jobs.Create(ctx, &dtos.JobCreationRequest{Title: "J", Company: "C", JobType: "full-time"}, "poster-1")
	require.NoError(t, err)
	app, err := env.applications.Create(ctx, "someone-else", &dtos.ApplicationCreationRequest{JobID: job.ID})
	require.NoError(t, err)

	w := env.do(t, http.MethodPut, "/api/v1/applications/"+app.ID, gin.H{"status": "referred"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Application
	decode(t, w, &updated)
	assert.Equal(t, models.StatusReferred, updated.Status)
}

func TestNonOwnerNonAdminCannotDeleteApplication(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	job, err := env.jobs.Create(ctx, &dtos.JobCreationRequest{Title: "J", Company: "C", JobType: "full-time"}, "poster-1")
	require.NoError(t, err)
	app, err := env.applications.Create(ctx, "someone-else", &dtos.ApplicationCreationRequest{JobID: job.ID})
	require.NoError(t, err)

	w := env.do(t, http.MethodDelete, "/api/v1/applications/"+app.ID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOptionsPreflightAnswers200WithCORSHeaders(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/jobs", nil)
	req.Header.Set("Origin", "https://portal.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownMethodIsMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPatch, "/api/v1/jobs/some-id", gin.H{})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestGetAchievementsCatalog(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/achievements", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var catalog []models.Achievement
	decode(t, w, &catalog)
	assert.Len(t, catalog, 5)
}

func TestAuthSignUpSignInMeSignOut(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"email":    "asha@example.com",
		"password": "supersecret",
		"fullName": "Asha",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var signup struct {
		Token string         `json:"token"`
		User  models.Profile `json:"user"`
	}
	decode(t, w, &signup)
	require.NotEmpty(t, signup.Token)
	assert.Equal(t, "Asha", signup.User.FullName)

	// Me with the minted token.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+signup.Token)
	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Wrong password.
	w = env.do(t, http.MethodPost, "/api/v1/auth/signin", gin.H{
		"email":    "asha@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Sign out kills the session.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/signout", nil)
	req.Header.Set("Authorization", "Bearer "+signup.Token)
	rec = httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+signup.Token)
	rec = httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
