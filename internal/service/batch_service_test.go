package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/marinedeck/maritime-api/internal/blobstore"
	"github.com/marinedeck/maritime-api/internal/dto"
	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

func batchFixture() repository.Repositories {
	store := blobstore.New(blobstore.NewMemoryStorage(), blobstore.WithSeed(func() blobstore.State {
		return blobstore.State{
			Users: []models.User{
				{UserID: "user-i1", Email: "owner@sea.test", Role: models.RoleInstitute},
				{UserID: "user-i2", Email: "other@sea.test", Role: models.RoleInstitute},
			},
			Institutes: []models.Institute{
				{InstID: "inst-1", UserID: "user-i1", Name: "Mumbai Nautical School",
					VerifiedStatus: models.VerifiedStatusVerified,
					ValidFrom:      time.Now().AddDate(-1, 0, 0), ValidTo: time.Now().AddDate(1, 0, 0)},
				{InstID: "inst-2", UserID: "user-i2", Name: "Goa Maritime Institute",
					VerifiedStatus: models.VerifiedStatusVerified,
					ValidFrom:      time.Now().AddDate(-1, 0, 0), ValidTo: time.Now().AddDate(1, 0, 0)},
			},
			Courses: []models.Course{
				{CourseID: "course-1", InstID: "inst-1", Title: "Basic Safety Training",
					Type: models.CourseTypeSTCW, Mode: models.CourseModeOffline, Status: models.CourseStatusActive},
			},
			Batches: []models.Batch{
				{BatchID: "batch-1", CourseID: "course-1", BatchName: "January Intake",
					SeatsTotal: 20, SeatsBooked: 5, BatchStatus: models.BatchStatusUpcoming,
					StartDate: time.Now().AddDate(0, 1, 0), EndDate: time.Now().AddDate(0, 2, 0)},
			},
		}
	}))
	return blobstore.NewRepositories(store)
}

func newBatchService(repos repository.Repositories) BatchService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewBatchService(repos, validate, zerolog.New(io.Discard))
}

func TestBatchServiceCreate(t *testing.T) {
	svc := newBatchService(batchFixture())
	ctx := context.Background()

	batch, err := svc.Create(ctx, "user-i1", "course-1", dto.BatchCreateRequest{
		BatchName:  "March Intake",
		SeatsTotal: 24,
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-13",
		Location:   "Mumbai",
	})
	require.NoError(t, err)
	require.Equal(t, models.BatchStatusUpcoming, batch.BatchStatus)
	require.Equal(t, 24, batch.SeatsAvailable)

	// dates must be ordered
	_, err = svc.Create(ctx, "user-i1", "course-1", dto.BatchCreateRequest{
		BatchName:  "Backwards Intake",
		SeatsTotal: 24,
		StartDate:  "2026-03-13",
		EndDate:    "2026-03-02",
	})
	require.Error(t, err)

	// only the owning institute schedules batches
	_, err = svc.Create(ctx, "user-i2", "course-1", dto.BatchCreateRequest{
		BatchName:  "Poached Intake",
		SeatsTotal: 24,
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-13",
	})
	require.ErrorIs(t, err, ErrNotCourseOwner)
}

func TestBatchServiceUpdate(t *testing.T) {
	svc := newBatchService(batchFixture())
	ctx := context.Background()

	status := models.BatchStatusOngoing
	trainer := "Capt. R. Menon"
	updated, err := svc.Update(ctx, "user-i1", "batch-1", dto.BatchUpdateRequest{
		BatchStatus: &status,
		Trainer:     &trainer,
	})
	require.NoError(t, err)
	require.Equal(t, models.BatchStatusOngoing, updated.BatchStatus)
	require.Equal(t, "Capt. R. Menon", updated.Trainer)
	require.Equal(t, 15, updated.SeatsAvailable)

	_, err = svc.Update(ctx, "user-i2", "batch-1", dto.BatchUpdateRequest{Trainer: &trainer})
	require.ErrorIs(t, err, ErrNotCourseOwner)

	badEnd := "2020-01-01"
	_, err = svc.Update(ctx, "user-i1", "batch-1", dto.BatchUpdateRequest{EndDate: &badEnd})
	require.Error(t, err)
}

func TestBatchServiceGetAndList(t *testing.T) {
	svc := newBatchService(batchFixture())
	ctx := context.Background()

	batch, err := svc.Get(ctx, "batch-1")
	require.NoError(t, err)
	require.Equal(t, 15, batch.SeatsAvailable)

	_, err = svc.Get(ctx, "batch-missing")
	require.ErrorIs(t, err, ErrBatchNotFound)

	batches, err := svc.List(ctx, "course-1")
	require.NoError(t, err)
	require.Len(t, batches, 1)
}
