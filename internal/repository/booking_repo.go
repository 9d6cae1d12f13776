package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/marinedeck/maritime-api/internal/models"
)

// BookingFilter narrows booking listings.
type BookingFilter struct {
	StudID        string
	BatchID       string
	PaymentStatus string
}

// BookingRepository defines persistence operations for seat reservations.
type BookingRepository interface {
	List(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	GetByID(ctx context.Context, bookID string) (models.Booking, error)
	// Reserve atomically checks the duplicate-booking rule, claims a seat on
	// the batch and inserts the booking. It returns ErrNotFound when the
	// batch does not exist, ErrDuplicateBooking when the student already
	// booked it and ErrBatchFull when no seat remains; in every failure case
	// the store is left untouched.
	Reserve(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, booking *models.Booking) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository instantiates a GORM-backed booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) List(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	query := r.db.WithContext(ctx).Model(&models.Booking{})

	if filter.StudID != "" {
		query = query.Where("studid = ?", filter.StudID)
	}
	if filter.BatchID != "" {
		query = query.Where("batchid = ?", filter.BatchID)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}

	var bookings []models.Booking
	if err := query.Order("booking_date DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, bookID string) (models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Where("bookid = ?", bookID).First(&booking).Error
	if err != nil {
		return models.Booking{}, translateNotFound(err)
	}
	return booking, nil
}

func (r *bookingRepository) Reserve(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var batch models.Batch
		if err := tx.Where("batchid = ?", booking.BatchID).First(&batch).Error; err != nil {
			return translateNotFound(err)
		}

		var existing int64
		err := tx.Model(&models.Booking{}).
			Where("studid = ? AND batchid = ?", booking.StudID, booking.BatchID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateBooking
		}

		// The conditional increment is the capacity guard: zero rows means
		// another transaction claimed the last seat first.
		result := tx.Model(&models.Batch{}).
			Where("batchid = ? AND seats_booked < seats_total", booking.BatchID).
			UpdateColumn("seats_booked", gorm.Expr("seats_booked + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBatchFull
		}

		return tx.Create(booking).Error
	})
}

func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	result := r.db.WithContext(ctx).Save(booking)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
