package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/marinedeck/maritime-api/internal/models"
)

// BatchRepository defines persistence operations for scheduled batches.
// Seat increments happen only through BookingRepository.Reserve.
type BatchRepository interface {
	List(ctx context.Context, courseID string) ([]models.Batch, error)
	GetByID(ctx context.Context, batchID string) (models.Batch, error)
	Create(ctx context.Context, batch *models.Batch) error
	Update(ctx context.Context, batch *models.Batch) error
}

type batchRepository struct {
	db *gorm.DB
}

// NewBatchRepository instantiates a GORM-backed batch repository.
func NewBatchRepository(db *gorm.DB) BatchRepository {
	return &batchRepository{db: db}
}

func (r *batchRepository) List(ctx context.Context, courseID string) ([]models.Batch, error) {
	query := r.db.WithContext(ctx).Model(&models.Batch{})
	if courseID != "" {
		query = query.Where("courseid = ?", courseID)
	}

	var batches []models.Batch
	if err := query.Order("start_date ASC").Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *batchRepository) GetByID(ctx context.Context, batchID string) (models.Batch, error) {
	var batch models.Batch
	err := r.db.WithContext(ctx).Where("batchid = ?", batchID).First(&batch).Error
	if err != nil {
		return models.Batch{}, translateNotFound(err)
	}
	return batch, nil
}

func (r *batchRepository) Create(ctx context.Context, batch *models.Batch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *batchRepository) Update(ctx context.Context, batch *models.Batch) error {
	result := r.db.WithContext(ctx).Save(batch)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
