package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/marinedeck/maritime-api/internal/models"
)

// EnrollmentFilter narrows enrollment listings.
type EnrollmentFilter struct {
	StudID   string
	CourseID string
}

// EnrollmentRepository defines persistence operations for learning progress.
type EnrollmentRepository interface {
	List(ctx context.Context, filter EnrollmentFilter) ([]models.Enrollment, error)
	GetByID(ctx context.Context, enrollID string) (models.Enrollment, error)
	GetByStudentCourse(ctx context.Context, studID, courseID string) (models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Update(ctx context.Context, enrollment *models.Enrollment) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository instantiates a GORM-backed enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) List(ctx context.Context, filter EnrollmentFilter) ([]models.Enrollment, error) {
	query := r.db.WithContext(ctx).Model(&models.Enrollment{})

	if filter.StudID != "" {
		query = query.Where("studid = ?", filter.StudID)
	}
	if filter.CourseID != "" {
		query = query.Where("courseid = ?", filter.CourseID)
	}

	var enrollments []models.Enrollment
	if err := query.Order("created_at DESC").Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) GetByID(ctx context.Context, enrollID string) (models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).Where("enrollid = ?", enrollID).First(&enrollment).Error
	if err != nil {
		return models.Enrollment{}, translateNotFound(err)
	}
	return enrollment, nil
}

func (r *enrollmentRepository) GetByStudentCourse(ctx context.Context, studID, courseID string) (models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).
		Where("studid = ? AND courseid = ?", studID, courseID).
		First(&enrollment).Error
	if err != nil {
		return models.Enrollment{}, translateNotFound(err)
	}
	return enrollment, nil
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	result := r.db.WithContext(ctx).Save(enrollment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
