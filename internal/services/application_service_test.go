package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkandgrow/referral-portal/internal/dtos"
	"github.com/talkandgrow/referral-portal/internal/models"
	"gorm.io/gorm"
)

func seedJob(t *testing.T, db *gorm.DB, postedBy string) *models.Job {
	t.Helper()
	job, err := NewJobService(db).Create(context.Background(), &dtos.JobCreationRequest{
		Title:   "Backend Engineer",
		Company: "TalkAndGrow",
		JobType: "full-time",
	}, postedBy)
	require.NoError(t, err)
	return job
}

func seedProfile(t *testing.T, db *gorm.DB, userID, name string) *models.Profile {
	t.Helper()
	profile, err := NewProfileService(db).CreateOrUpdate(context.Background(), &models.Profile{
		UserID:   userID,
		FullName: name,
		Email:    userID + "@example.com",
		Level:    1,
		Role:     models.RoleUser,
	})
	require.NoError(t, err)
	return profile
}

func TestApplicationCreateDefaultsStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	job := seedJob(t, db, "poster-1")

	app, err := svc.Create(context.Background(), "u1", &dtos.ApplicationCreationRequest{JobID: job.ID})
	require.NoError(t, err)

	assert.Equal(t, models.StatusApplied, app.Status)
	assert.Equal(t, "u1", app.UserID)
	assert.True(t, app.CreatedAt.Equal(app.UpdatedAt))
}

func TestApplicationDuplicateIsRejectedAndNotPersisted(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	job := seedJob(t, db, "poster-1")
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", &dtos.ApplicationCreationRequest{JobID: job.ID})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "u1", &dtos.ApplicationCreationRequest{JobID: job.ID})
	assert.ErrorIs(t, err, ErrAlreadyApplied)

	apps, err := svc.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, apps, 1, "second create must not persist a record")

	// A different job is fine.
	other := seedJob(t, db, "poster-1")
	_, err = svc.Create(ctx, "u1", &dtos.ApplicationCreationRequest{JobID: other.ID})
	assert.NoError(t, err)
}

func TestApplicationDuplicateLosesAtTheStoreToo(t *testing.T) {
	// Simulates the pre-check racing: insert the second row directly,
	// bypassing the advisory check. The composite unique index must
	// reject it.
	db := newTestDB(t)
	svc := NewApplicationService(db)
	job := seedJob(t, db, "poster-1")
	ctx := context.Background()

	first, err := svc.Create(ctx, "u1", &dtos.ApplicationCreationRequest{JobID: job.ID})
	require.NoError(t, err)

	dup := *first
	dup.ID = NewID("app")
	err = db.Create(&dup).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestApplicationUpdatePatchIsolation(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	job := seedJob(t, db, "poster-1")
	ctx := context.Background()

	app, err := svc.Create(ctx, "u1", &dtos.ApplicationCreationRequest{
		JobID:       job.ID,
		CoverLetter: "hello",
	})
	require.NoError(t, err)

	status := "reviewed"
	updated, err := svc.Update(ctx, app.ID, &dtos.ApplicationPatch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, models.StatusReviewed, updated.Status)
	assert.Equal(t, "hello", updated.CoverLetter)
	assert.Equal(t, app.UserID, updated.UserID)
	assert.Equal(t, app.JobID, updated.JobID)
}

func TestApplicationDeleteThenGetIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	job := seedJob(t, db, "poster-1")
	ctx := context.Background()

	app, err := svc.Create(ctx, "u1", &dtos.ApplicationCreationRequest{JobID: job.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, app.ID))
	_, err = svc.GetByID(ctx, app.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWithDetailsJoinsUserAndJob(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	ctx := context.Background()

	job := seedJob(t, db, "poster-1")
	profile := seedProfile(t, db, "u1", "Asha")

	app, err := svc.Create(ctx, "u1", &dtos.ApplicationCreationRequest{JobID: job.ID})
	require.NoError(t, err)

	details, err := svc.WithDetails(ctx, []models.Application{*app})
	require.NoError(t, err)
	require.Len(t, details, 1)

	require.NotNil(t, details[0].User)
	assert.Equal(t, profile.ID, details[0].User.ID)
	require.NotNil(t, details[0].Job)
	assert.Equal(t, job.ID, details[0].Job.ID)
}

func TestWithDetailsToleratesDanglingReferences(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db)
	jobs := NewJobService(db)
	ctx := context.Background()

	job := seedJob(t, db, "poster-1")
	app, err := svc.Create(ctx, "ghost-user", &dtos.ApplicationCreationRequest{JobID: job.ID})
	require.NoError(t, err)

	// Delete the job after the application referenced it; no profile
	// was ever created for ghost-user.
	require.NoError(t, jobs.Delete(ctx, job.ID))

	details, err := svc.WithDetails(ctx, []models.Application{*app})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Nil(t, details[0].User)
	assert.Nil(t, details[0].Job)
}

func TestWithDetailsEmptyInput(t *testing.T) {
	svc := NewApplicationService(newTestDB(t))

	details, err := svc.WithDetails(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, details)
}
