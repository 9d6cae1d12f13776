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

func paymentFixture() repository.Repositories {
	store := blobstore.New(blobstore.NewMemoryStorage(), blobstore.WithSeed(func() blobstore.State {
		return blobstore.State{
			Users: []models.User{
				{UserID: "user-s1", Email: "s1@sea.test", Role: models.RoleStudent},
				{UserID: "user-s2", Email: "s2@sea.test", Role: models.RoleStudent},
			},
			Students: []models.Student{
				{StudID: "stud-1", UserID: "user-s1"},
				{StudID: "stud-2", UserID: "user-s2"},
			},
			Batches: []models.Batch{
				{BatchID: "batch-1", CourseID: "course-1", SeatsTotal: 10, SeatsBooked: 1,
					BatchStatus: models.BatchStatusUpcoming},
			},
			Bookings: []models.Booking{
				{BookID: "book-1", StudID: "stud-1", BatchID: "batch-1", Amount: 12000,
					PaymentStatus: models.PaymentStatusPending, BookingDate: time.Now()},
			},
		}
	}))
	return blobstore.NewRepositories(store)
}

func newPaymentService(repos repository.Repositories) PaymentService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewPaymentService(repos, validate, zerolog.New(io.Discard))
}

func TestPaymentServiceRecordCompletesBooking(t *testing.T) {
	repos := paymentFixture()
	svc := newPaymentService(repos)
	ctx := context.Background()

	payment, err := svc.Record(ctx, "user-s1", dto.PaymentCreateRequest{
		BookID: "book-1",
		Amount: 12000,
		Method: "upi",
		TxnRef: "UPI-778899",
	})
	require.NoError(t, err)
	require.Equal(t, models.PaymentRecordSuccess, payment.Status)

	booking, err := repos.Bookings.GetByID(ctx, "book-1")
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusCompleted, booking.PaymentStatus)
}

func TestPaymentServiceFailedPaymentLeavesBookingPending(t *testing.T) {
	repos := paymentFixture()
	svc := newPaymentService(repos)
	ctx := context.Background()

	payment, err := svc.Record(ctx, "user-s1", dto.PaymentCreateRequest{
		BookID: "book-1",
		Amount: 12000,
		Method: "card",
		Status: models.PaymentRecordFailed,
	})
	require.NoError(t, err)
	require.Equal(t, models.PaymentRecordFailed, payment.Status)

	booking, err := repos.Bookings.GetByID(ctx, "book-1")
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)
}

func TestPaymentServiceRejectsForeignBooking(t *testing.T) {
	svc := newPaymentService(paymentFixture())

	_, err := svc.Record(context.Background(), "user-s2", dto.PaymentCreateRequest{
		BookID: "book-1",
		Amount: 12000,
		Method: "cash",
	})
	require.ErrorIs(t, err, ErrNotBookingOwner)
}

func TestPaymentServiceListScopedToOwner(t *testing.T) {
	repos := paymentFixture()
	svc := newPaymentService(repos)
	ctx := context.Background()

	_, err := svc.Record(ctx, "user-s1", dto.PaymentCreateRequest{
		BookID: "book-1", Amount: 12000, Method: "upi",
	})
	require.NoError(t, err)

	payments, err := svc.ListByBooking(ctx, "user-s1", models.RoleStudent, "book-1")
	require.NoError(t, err)
	require.Len(t, payments, 1)

	_, err = svc.ListByBooking(ctx, "user-s2", models.RoleStudent, "book-1")
	require.ErrorIs(t, err, ErrNotBookingOwner)

	payments, err = svc.ListByBooking(ctx, "user-admin", models.RoleAdmin, "book-1")
	require.NoError(t, err)
	require.Len(t, payments, 1)
}
