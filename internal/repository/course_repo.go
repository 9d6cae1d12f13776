package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/marinedeck/maritime-api/internal/models"
)

// CourseFilter narrows course listings. City filters through the owning
// institute's city.
type CourseFilter struct {
	InstID string
	Type   string
	Mode   string
	City   string
	Status string
}

// CourseRepository defines persistence operations for the course catalogue.
type CourseRepository interface {
	List(ctx context.Context, filter CourseFilter) ([]models.Course, error)
	GetByID(ctx context.Context, courseID string) (models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	// Delete removes the course together with its lessons and enrollments.
	Delete(ctx context.Context, courseID string) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository instantiates a GORM-backed course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) List(ctx context.Context, filter CourseFilter) ([]models.Course, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{})

	if filter.Status != "" {
		query = query.Where("courses.status = ?", filter.Status)
	}
	if filter.InstID != "" {
		query = query.Where("courses.instid = ?", filter.InstID)
	}
	if filter.Type != "" {
		query = query.Where("courses.type = ?", filter.Type)
	}
	if filter.Mode != "" {
		query = query.Where("courses.mode = ?", filter.Mode)
	}
	if filter.City != "" {
		query = query.Joins("JOIN institutes ON institutes.instid = courses.instid").
			Where("institutes.city = ?", filter.City)
	}

	var courses []models.Course
	if err := query.Order("courses.created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, courseID string) (models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).Where("courseid = ?", courseID).First(&course).Error
	if err != nil {
		return models.Course{}, translateNotFound(err)
	}
	return course, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	result := r.db.WithContext(ctx).Save(course)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *courseRepository) Delete(ctx context.Context, courseID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("courseid = ?", courseID).Delete(&models.Course{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("courseid = ?", courseID).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Where("courseid = ?", courseID).Delete(&models.Enrollment{}).Error
	})
}
