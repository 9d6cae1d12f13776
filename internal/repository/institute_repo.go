package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/marinedeck/maritime-api/internal/models"
)

// InstituteFilter narrows institute listings.
type InstituteFilter struct {
	VerifiedStatus string
	City           string
}

// InstituteRepository defines persistence operations for training providers.
type InstituteRepository interface {
	List(ctx context.Context, filter InstituteFilter) ([]models.Institute, error)
	GetByID(ctx context.Context, instID string) (models.Institute, error)
	GetByUserID(ctx context.Context, userID string) (models.Institute, error)
	Create(ctx context.Context, institute *models.Institute) error
	Update(ctx context.Context, institute *models.Institute) error
}

type instituteRepository struct {
	db *gorm.DB
}

// NewInstituteRepository instantiates a GORM-backed institute repository.
func NewInstituteRepository(db *gorm.DB) InstituteRepository {
	return &instituteRepository{db: db}
}

func (r *instituteRepository) List(ctx context.Context, filter InstituteFilter) ([]models.Institute, error) {
	query := r.db.WithContext(ctx).Model(&models.Institute{})

	if filter.VerifiedStatus != "" {
		query = query.Where("verified_status = ?", filter.VerifiedStatus)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}

	var institutes []models.Institute
	if err := query.Order("created_at DESC").Find(&institutes).Error; err != nil {
		return nil, err
	}
	return institutes, nil
}

func (r *instituteRepository) GetByID(ctx context.Context, instID string) (models.Institute, error) {
	var institute models.Institute
	err := r.db.WithContext(ctx).Where("instid = ?", instID).First(&institute).Error
	if err != nil {
		return models.Institute{}, translateNotFound(err)
	}
	return institute, nil
}

func (r *instituteRepository) GetByUserID(ctx context.Context, userID string) (models.Institute, error) {
	var institute models.Institute
	err := r.db.WithContext(ctx).Where("userid = ?", userID).First(&institute).Error
	if err != nil {
		return models.Institute{}, translateNotFound(err)
	}
	return institute, nil
}

func (r *instituteRepository) Create(ctx context.Context, institute *models.Institute) error {
	return r.db.WithContext(ctx).Create(institute).Error
}

func (r *instituteRepository) Update(ctx context.Context, institute *models.Institute) error {
	result := r.db.WithContext(ctx).Save(institute)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
