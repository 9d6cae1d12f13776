package service

import (
	"context"
	"io"
	"strings"
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

func bookingFixture(seatsTotal int, batchStatus string) repository.Repositories {
	store := blobstore.New(blobstore.NewMemoryStorage(), blobstore.WithSeed(func() blobstore.State {
		return blobstore.State{
			Users: []models.User{
				{UserID: "user-s1", Name: "First Sailor", Email: "s1@sea.test", Role: models.RoleStudent},
				{UserID: "user-s2", Name: "Second Sailor", Email: "s2@sea.test", Role: models.RoleStudent},
				{UserID: "user-s3", Name: "Third Sailor", Email: "s3@sea.test", Role: models.RoleStudent},
				{UserID: "user-i1", Name: "Academy", Email: "i1@sea.test", Role: models.RoleInstitute},
			},
			Students: []models.Student{
				{StudID: "stud-1", UserID: "user-s1"},
				{StudID: "stud-2", UserID: "user-s2"},
				{StudID: "stud-3", UserID: "user-s3"},
			},
			Institutes: []models.Institute{
				{InstID: "inst-1", UserID: "user-i1", Name: "Academy", VerifiedStatus: models.VerifiedStatusVerified,
					ValidFrom: time.Now().AddDate(-1, 0, 0), ValidTo: time.Now().AddDate(1, 0, 0)},
			},
			Courses: []models.Course{
				{CourseID: "course-1", InstID: "inst-1", Title: "Basic Safety Training", Type: models.CourseTypeSTCW,
					Mode: models.CourseModeOffline, Fees: 12000, Status: models.CourseStatusActive},
			},
			Batches: []models.Batch{
				{BatchID: "batch-1", CourseID: "course-1", BatchName: "March Intake",
					SeatsTotal: seatsTotal, SeatsBooked: 0, BatchStatus: batchStatus,
					StartDate: time.Now().AddDate(0, 1, 0), EndDate: time.Now().AddDate(0, 2, 0)},
			},
		}
	}))
	return blobstore.NewRepositories(store)
}

func newBookingService(repos repository.Repositories) BookingService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewBookingService(repos, validate, zerolog.New(io.Discard))
}

func TestBookingServiceFillsSeatsUntilFull(t *testing.T) {
	repos := bookingFixture(2, models.BatchStatusUpcoming)
	svc := newBookingService(repos)
	ctx := context.Background()

	first, err := svc.Create(ctx, "user-s1", dto.BookingCreateRequest{BatchID: "batch-1", Amount: 12000})
	require.NoError(t, err)
	require.Equal(t, "stud-1", first.StudID)
	require.Equal(t, models.PaymentStatusPending, first.PaymentStatus)

	_, err = svc.Create(ctx, "user-s2", dto.BookingCreateRequest{BatchID: "batch-1", Amount: 12000})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "user-s3", dto.BookingCreateRequest{BatchID: "batch-1", Amount: 12000})
	require.ErrorIs(t, err, ErrBatchFull)

	batch, err := repos.Batches.GetByID(ctx, "batch-1")
	require.NoError(t, err)
	require.Equal(t, 2, batch.SeatsBooked)

	bookings, err := repos.Bookings.List(ctx, repository.BookingFilter{BatchID: "batch-1"})
	require.NoError(t, err)
	require.Len(t, bookings, 2)
}

func TestBookingServiceRejectsDuplicate(t *testing.T) {
	repos := bookingFixture(5, models.BatchStatusUpcoming)
	svc := newBookingService(repos)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-s1", dto.BookingCreateRequest{BatchID: "batch-1", Amount: 12000})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "user-s1", dto.BookingCreateRequest{BatchID: "batch-1", Amount: 12000})
	require.ErrorIs(t, err, ErrAlreadyBooked)

	batch, err := repos.Batches.GetByID(ctx, "batch-1")
	require.NoError(t, err)
	require.Equal(t, 1, batch.SeatsBooked)
}

func TestBookingServiceRejectsClosedBatch(t *testing.T) {
	repos := bookingFixture(5, models.BatchStatusCancelled)
	svc := newBookingService(repos)

	_, err := svc.Create(context.Background(), "user-s1", dto.BookingCreateRequest{BatchID: "batch-1", Amount: 12000})
	require.ErrorIs(t, err, ErrBatchNotOpen)
}

func TestBookingServiceUnknownBatch(t *testing.T) {
	repos := bookingFixture(5, models.BatchStatusUpcoming)
	svc := newBookingService(repos)

	_, err := svc.Create(context.Background(), "user-s1", dto.BookingCreateRequest{BatchID: "batch-missing", Amount: 100})
	require.ErrorIs(t, err, ErrBatchNotFound)
}

func TestBookingServiceConfirmationNumber(t *testing.T) {
	repos := bookingFixture(5, models.BatchStatusUpcoming)
	svc := newBookingService(repos)

	booking, err := svc.Create(context.Background(), "user-s1", dto.BookingCreateRequest{BatchID: "batch-1", Amount: 12000})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(booking.ConfirmationNumber, "BK"))
	require.Len(t, booking.ConfirmationNumber, len("BK20060102-")+8)
}

func TestBookingServiceOwnerScopedGet(t *testing.T) {
	repos := bookingFixture(5, models.BatchStatusUpcoming)
	svc := newBookingService(repos)
	ctx := context.Background()

	booking, err := svc.Create(ctx, "user-s1", dto.BookingCreateRequest{BatchID: "batch-1", Amount: 12000})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "user-s2", models.RoleStudent, booking.BookID)
	require.ErrorIs(t, err, ErrNotBookingOwner)

	got, err := svc.Get(ctx, "user-s1", models.RoleStudent, booking.BookID)
	require.NoError(t, err)
	require.Equal(t, booking.BookID, got.BookID)

	got, err = svc.Get(ctx, "user-admin", models.RoleAdmin, booking.BookID)
	require.NoError(t, err)
	require.Equal(t, booking.BookID, got.BookID)
}
