package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/marinedeck/maritime-api/internal/models"
)

// CertificateRepository defines persistence operations for course
// completion certificates.
type CertificateRepository interface {
	List(ctx context.Context, studID string) ([]models.Certificate, error)
	GetByID(ctx context.Context, certID string) (models.Certificate, error)
	Create(ctx context.Context, cert *models.Certificate) error
	Update(ctx context.Context, cert *models.Certificate) error
}

type certificateRepository struct {
	db *gorm.DB
}

// NewCertificateRepository instantiates a GORM-backed certificate repository.
func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &certificateRepository{db: db}
}

func (r *certificateRepository) List(ctx context.Context, studID string) ([]models.Certificate, error) {
	query := r.db.WithContext(ctx).Model(&models.Certificate{})
	if studID != "" {
		query = query.Where("studid = ?", studID)
	}

	var certs []models.Certificate
	if err := query.Order("issue_date DESC").Find(&certs).Error; err != nil {
		return nil, err
	}
	return certs, nil
}

func (r *certificateRepository) GetByID(ctx context.Context, certID string) (models.Certificate, error) {
	var cert models.Certificate
	err := r.db.WithContext(ctx).Where("certid = ?", certID).First(&cert).Error
	if err != nil {
		return models.Certificate{}, translateNotFound(err)
	}
	return cert, nil
}

func (r *certificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	return r.db.WithContext(ctx).Create(cert).Error
}

func (r *certificateRepository) Update(ctx context.Context, cert *models.Certificate) error {
	result := r.db.WithContext(ctx).Save(cert)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
