package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/marinedeck/maritime-api/internal/dto"
	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/observability"
	"github.com/marinedeck/maritime-api/internal/repository"
)

// Booking service errors.
var (
	ErrStudentNotFound = errors.New("student profile not found")
	ErrBookingNotFound = errors.New("booking not found")
	// ErrBatchFull indicates every seat on the batch is already booked.
	ErrBatchFull = errors.New("batch is fully booked")
	// ErrAlreadyBooked indicates the student already holds a booking for
	// this batch.
	ErrAlreadyBooked = errors.New("batch already booked")
	// ErrBatchNotOpen indicates the batch is not accepting reservations.
	ErrBatchNotOpen = errors.New("batch is not open for booking")
	// ErrNotBookingOwner indicates the booking belongs to another student.
	ErrNotBookingOwner = errors.New("booking belongs to another student")
)

// BookingService exposes seat reservation use cases.
type BookingService interface {
	Create(ctx context.Context, userID string, payload dto.BookingCreateRequest) (dto.BookingResponse, error)
	ListMine(ctx context.Context, userID string) ([]dto.BookingResponse, error)
	Get(ctx context.Context, userID, role, bookID string) (dto.BookingResponse, error)
	ListByBatch(ctx context.Context, userID, batchID string) ([]dto.BookingResponse, error)
	ListAll(ctx context.Context, paymentStatus string) ([]dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, userID, bookID string, payload dto.BookingStatusUpdateRequest) (dto.BookingResponse, error)
}

type bookingService struct {
	bookings   repository.BookingRepository
	batches    repository.BatchRepository
	courses    repository.CourseRepository
	students   repository.StudentRepository
	institutes repository.InstituteRepository
	validator  *validator.Validate
	tracer     trace.Tracer
	logger     zerolog.Logger
	now        func() time.Time
}

// NewBookingService builds a new booking service.
func NewBookingService(repos repository.Repositories, validate *validator.Validate, logger zerolog.Logger) BookingService {
	return &bookingService{
		bookings:   repos.Bookings,
		batches:    repos.Batches,
		courses:    repos.Courses,
		students:   repos.Students,
		institutes: repos.Institutes,
		validator:  validate,
		tracer:     otel.Tracer("booking-service"),
		logger:     logger.With().Str("component", "booking_service").Logger(),
		now:        time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, userID string, payload dto.BookingCreateRequest) (dto.BookingResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BookingResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "booking.reserve", trace.WithAttributes(
		attribute.String("batchid", payload.BatchID),
	))
	defer span.End()

	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.BookingResponse{}, ErrStudentNotFound
		}
		return dto.BookingResponse{}, err
	}

	batch, err := s.batches.GetByID(ctx, payload.BatchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.BookingResponse{}, ErrBatchNotFound
		}
		return dto.BookingResponse{}, err
	}
	if batch.BatchStatus != models.BatchStatusUpcoming && batch.BatchStatus != models.BatchStatusOngoing {
		return dto.BookingResponse{}, ErrBatchNotOpen
	}

	bookedAt := s.now()
	booking := models.Booking{
		BookID:             models.NewID("book"),
		StudID:             student.StudID,
		BatchID:            batch.BatchID,
		ConfirmationNumber: s.confirmationNumber(bookedAt),
		Amount:             payload.Amount,
		PaymentStatus:      models.PaymentStatusPending,
		AttendanceStatus:   models.AttendanceNotStarted,
		CompletionStatus:   models.CompletionIncomplete,
		BookingDate:        bookedAt,
	}

	if err := s.bookings.Reserve(ctx, &booking); err != nil {
		switch {
		case errors.Is(err, repository.ErrBatchFull):
			observability.BookingRejections().WithLabelValues(observability.RejectionFull).Inc()
			s.logger.Warn().Str("batchid", batch.BatchID).Str("studid", student.StudID).Msg("booking rejected, batch full")
			return dto.BookingResponse{}, ErrBatchFull
		case errors.Is(err, repository.ErrDuplicateBooking):
			observability.BookingRejections().WithLabelValues(observability.RejectionDuplicate).Inc()
			s.logger.Warn().Str("batchid", batch.BatchID).Str("studid", student.StudID).Msg("booking rejected, already booked")
			return dto.BookingResponse{}, ErrAlreadyBooked
		case errors.Is(err, repository.ErrNotFound):
			return dto.BookingResponse{}, ErrBatchNotFound
		}
		return dto.BookingResponse{}, err
	}

	span.SetAttributes(attribute.String("bookid", booking.BookID))
	s.logger.Info().
		Str("bookid", booking.BookID).
		Str("batchid", batch.BatchID).
		Str("studid", student.StudID).
		Str("confirmation", booking.ConfirmationNumber).
		Msg("seat reserved")

	return dto.NewBookingResponse(booking), nil
}

func (s *bookingService) ListMine(ctx context.Context, userID string) ([]dto.BookingResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	bookings, err := s.bookings.List(ctx, repository.BookingFilter{StudID: student.StudID})
	if err != nil {
		return nil, err
	}

	return dto.NewBookingResponseSlice(bookings), nil
}

func (s *bookingService) Get(ctx context.Context, userID, role, bookID string) (dto.BookingResponse, error) {
	booking, err := s.bookings.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.BookingResponse{}, ErrBookingNotFound
		}
		return dto.BookingResponse{}, err
	}

	if role == models.RoleStudent {
		student, err := s.students.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return dto.BookingResponse{}, ErrStudentNotFound
			}
			return dto.BookingResponse{}, err
		}
		if booking.StudID != student.StudID {
			return dto.BookingResponse{}, ErrNotBookingOwner
		}
	}

	return dto.NewBookingResponse(booking), nil
}

func (s *bookingService) ListByBatch(ctx context.Context, userID, batchID string) ([]dto.BookingResponse, error) {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}

	if _, err := s.ownedCourse(ctx, userID, batch.CourseID); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.List(ctx, repository.BookingFilter{BatchID: batch.BatchID})
	if err != nil {
		return nil, err
	}

	return dto.NewBookingResponseSlice(bookings), nil
}

func (s *bookingService) ListAll(ctx context.Context, paymentStatus string) ([]dto.BookingResponse, error) {
	bookings, err := s.bookings.List(ctx, repository.BookingFilter{PaymentStatus: paymentStatus})
	if err != nil {
		return nil, err
	}

	return dto.NewBookingResponseSlice(bookings), nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, userID, bookID string, payload dto.BookingStatusUpdateRequest) (dto.BookingResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BookingResponse{}, err
	}
	if payload.AttendanceStatus == nil && payload.CompletionStatus == nil {
		return dto.BookingResponse{}, fmt.Errorf("at least one status field must be set")
	}

	booking, err := s.bookings.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.BookingResponse{}, ErrBookingNotFound
		}
		return dto.BookingResponse{}, err
	}

	batch, err := s.batches.GetByID(ctx, booking.BatchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.BookingResponse{}, ErrBatchNotFound
		}
		return dto.BookingResponse{}, err
	}
	if _, err := s.ownedCourse(ctx, userID, batch.CourseID); err != nil {
		return dto.BookingResponse{}, err
	}

	if payload.AttendanceStatus != nil {
		booking.AttendanceStatus = *payload.AttendanceStatus
	}
	if payload.CompletionStatus != nil {
		booking.CompletionStatus = *payload.CompletionStatus
	}

	if err := s.bookings.Update(ctx, &booking); err != nil {
		return dto.BookingResponse{}, err
	}

	s.logger.Info().Str("bookid", booking.BookID).Msg("booking status updated")

	return dto.NewBookingResponse(booking), nil
}

// confirmationNumber mints a short human-quotable reference for support
// conversations, e.g. "BK20260115-9f8a3b2c".
func (s *bookingService) confirmationNumber(at time.Time) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("BK%s-%s", at.Format("20060102"), token)
}

func (s *bookingService) ownedCourse(ctx context.Context, userID, courseID string) (models.Course, error) {
	institute, err := s.institutes.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Course{}, ErrInstituteNotFound
		}
		return models.Course{}, err
	}

	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Course{}, ErrCourseNotFound
		}
		return models.Course{}, err
	}

	if course.InstID != institute.InstID {
		return models.Course{}, ErrNotCourseOwner
	}

	return course, nil
}
