package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/marinedeck/maritime-api/internal/models"
)

// ReactivationFilter narrows reactivation request listings.
type ReactivationFilter struct {
	InstID string
	Status string
}

// ReactivationRepository defines persistence operations for institute
// reactivation requests.
type ReactivationRepository interface {
	List(ctx context.Context, filter ReactivationFilter) ([]models.ReactivationRequest, error)
	GetByID(ctx context.Context, requestID string) (models.ReactivationRequest, error)
	// GetPendingByInstitute returns the most recently submitted pending
	// request for the institute, or ErrNotFound.
	GetPendingByInstitute(ctx context.Context, instID string) (models.ReactivationRequest, error)
	Create(ctx context.Context, request *models.ReactivationRequest) error
	Update(ctx context.Context, request *models.ReactivationRequest) error
}

type reactivationRepository struct {
	db *gorm.DB
}

// NewReactivationRepository instantiates a GORM-backed reactivation
// request repository.
func NewReactivationRepository(db *gorm.DB) ReactivationRepository {
	return &reactivationRepository{db: db}
}

func (r *reactivationRepository) List(ctx context.Context, filter ReactivationFilter) ([]models.ReactivationRequest, error) {
	query := r.db.WithContext(ctx).Model(&models.ReactivationRequest{})

	if filter.InstID != "" {
		query = query.Where("instid = ?", filter.InstID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var requests []models.ReactivationRequest
	if err := query.Order("submitted_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *reactivationRepository) GetByID(ctx context.Context, requestID string) (models.ReactivationRequest, error) {
	var request models.ReactivationRequest
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&request).Error
	if err != nil {
		return models.ReactivationRequest{}, translateNotFound(err)
	}
	return request, nil
}

func (r *reactivationRepository) GetPendingByInstitute(ctx context.Context, instID string) (models.ReactivationRequest, error) {
	var request models.ReactivationRequest
	err := r.db.WithContext(ctx).
		Where("instid = ? AND status = ?", instID, models.RequestStatusPending).
		Order("submitted_at DESC").
		First(&request).Error
	if err != nil {
		return models.ReactivationRequest{}, translateNotFound(err)
	}
	return request, nil
}

func (r *reactivationRepository) Create(ctx context.Context, request *models.ReactivationRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *reactivationRepository) Update(ctx context.Context, request *models.ReactivationRequest) error {
	result := r.db.WithContext(ctx).Save(request)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
