package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/marinedeck/maritime-api/internal/models"
)

// PaymentRepository defines persistence operations for payment records.
type PaymentRepository interface {
	List(ctx context.Context, bookID string) ([]models.Payment, error)
	// Record inserts the payment and, when its status is success, marks the
	// owning booking's payment_status completed in the same write. Returns
	// ErrNotFound when the booking does not exist.
	Record(ctx context.Context, payment *models.Payment) error
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository instantiates a GORM-backed payment repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) List(ctx context.Context, bookID string) ([]models.Payment, error) {
	query := r.db.WithContext(ctx).Model(&models.Payment{})
	if bookID != "" {
		query = query.Where("bookid = ?", bookID)
	}

	var payments []models.Payment
	if err := query.Order("payment_date DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Record(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Where("bookid = ?", payment.BookID).First(&booking).Error; err != nil {
			return translateNotFound(err)
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		if payment.Status == models.PaymentRecordSuccess {
			booking.PaymentStatus = models.PaymentStatusCompleted
			if err := tx.Save(&booking).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
