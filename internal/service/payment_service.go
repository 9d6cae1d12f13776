package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/marinedeck/maritime-api/internal/dto"
	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

// PaymentService exposes payment recording use cases.
type PaymentService interface {
	Record(ctx context.Context, userID string, payload dto.PaymentCreateRequest) (dto.PaymentResponse, error)
	ListByBooking(ctx context.Context, userID, role, bookID string) ([]dto.PaymentResponse, error)
}

type paymentService struct {
	payments  repository.PaymentRepository
	bookings  repository.BookingRepository
	students  repository.StudentRepository
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewPaymentService builds a new payment service.
func NewPaymentService(repos repository.Repositories, validate *validator.Validate, logger zerolog.Logger) PaymentService {
	return &paymentService{
		payments:  repos.Payments,
		bookings:  repos.Bookings,
		students:  repos.Students,
		validator: validate,
		logger:    logger.With().Str("component", "payment_service").Logger(),
		now:       time.Now,
	}
}

func (s *paymentService) Record(ctx context.Context, userID string, payload dto.PaymentCreateRequest) (dto.PaymentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PaymentResponse{}, err
	}

	booking, err := s.ownedBooking(ctx, userID, payload.BookID)
	if err != nil {
		return dto.PaymentResponse{}, err
	}

	status := payload.Status
	if status == "" {
		status = models.PaymentRecordSuccess
	}

	payment := models.Payment{
		PayID:       models.NewID("pay"),
		BookID:      booking.BookID,
		Amount:      payload.Amount,
		Method:      payload.Method,
		TxnRef:      payload.TxnRef,
		Status:      status,
		PaymentDate: s.now(),
	}

	if err := s.payments.Record(ctx, &payment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.PaymentResponse{}, ErrBookingNotFound
		}
		return dto.PaymentResponse{}, err
	}

	s.logger.Info().
		Str("payid", payment.PayID).
		Str("bookid", booking.BookID).
		Str("status", payment.Status).
		Float64("amount", payment.Amount).
		Msg("payment recorded")

	return dto.NewPaymentResponse(payment), nil
}

func (s *paymentService) ListByBooking(ctx context.Context, userID, role, bookID string) ([]dto.PaymentResponse, error) {
	if role == models.RoleStudent {
		if _, err := s.ownedBooking(ctx, userID, bookID); err != nil {
			return nil, err
		}
	}

	payments, err := s.payments.List(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return dto.NewPaymentResponseSlice(payments), nil
}

func (s *paymentService) ownedBooking(ctx context.Context, userID, bookID string) (models.Booking, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Booking{}, ErrStudentNotFound
		}
		return models.Booking{}, err
	}

	booking, err := s.bookings.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, err
	}

	if booking.StudID != student.StudID {
		return models.Booking{}, ErrNotBookingOwner
	}

	return booking, nil
}
