package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/marinedeck/maritime-api/internal/dto"
	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

// Course service errors.
var (
	ErrCourseNotFound = errors.New("course not found")
	// ErrNotCourseOwner indicates the institute does not own the course.
	ErrNotCourseOwner = errors.New("course belongs to another institute")
	// ErrInstituteNotVerified indicates an unverified institute attempted to
	// publish catalogue content.
	ErrInstituteNotVerified = errors.New("institute is not verified")
	// ErrInstituteExpired indicates the institute's accreditation window has
	// lapsed; it must be reactivated before publishing.
	ErrInstituteExpired = errors.New("institute accreditation has expired")
)

// CourseFilters narrows the public catalogue listing.
type CourseFilters struct {
	InstID string
	Type   string
	Mode   string
	City   string
	Status string
}

// CourseService exposes course catalogue use cases.
type CourseService interface {
	List(ctx context.Context, filters CourseFilters) ([]dto.CourseResponse, error)
	Get(ctx context.Context, courseID string) (dto.CourseResponse, error)
	Create(ctx context.Context, userID string, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	Update(ctx context.Context, userID, courseID string, payload dto.CourseUpdateRequest) (dto.CourseResponse, error)
	Delete(ctx context.Context, userID, courseID string) error
}

type courseService struct {
	courses    repository.CourseRepository
	institutes repository.InstituteRepository
	validator  *validator.Validate
	sanitizer  *bluemonday.Policy
	logger     zerolog.Logger
	now        func() time.Time
}

// NewCourseService builds a new course service. Descriptions are sanitised
// before storage since they are rendered as HTML by clients.
func NewCourseService(repos repository.Repositories, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		courses:    repos.Courses,
		institutes: repos.Institutes,
		validator:  validate,
		sanitizer:  bluemonday.UGCPolicy(),
		logger:     logger.With().Str("component", "course_service").Logger(),
		now:        time.Now,
	}
}

func (s *courseService) List(ctx context.Context, filters CourseFilters) ([]dto.CourseResponse, error) {
	status := filters.Status
	if status == "" {
		status = models.CourseStatusActive
	}

	courses, err := s.courses.List(ctx, repository.CourseFilter{
		InstID: filters.InstID,
		Type:   filters.Type,
		Mode:   filters.Mode,
		City:   filters.City,
		Status: status,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewCourseResponseSlice(courses), nil
}

func (s *courseService) Get(ctx context.Context, courseID string) (dto.CourseResponse, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}
		return dto.CourseResponse{}, err
	}

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Create(ctx context.Context, userID string, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	institute, err := s.publishingInstitute(ctx, userID)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	course := models.Course{
		CourseID:         models.NewID("course"),
		InstID:           institute.InstID,
		Title:            payload.Title,
		Type:             payload.Type,
		Duration:         payload.Duration,
		Mode:             payload.Mode,
		Fees:             payload.Fees,
		Description:      s.sanitizer.Sanitize(payload.Description),
		ValidityMonths:   payload.ValidityMonths,
		AccreditationRef: payload.AccreditationRef,
		Status:           models.CourseStatusActive,
	}
	if err := s.courses.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Str("courseid", course.CourseID).Str("instid", institute.InstID).Msg("course published")

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Update(ctx context.Context, userID, courseID string, payload dto.CourseUpdateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course, err := s.ownedCourse(ctx, userID, courseID)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	if payload.Title != nil {
		course.Title = *payload.Title
	}
	if payload.Type != nil {
		course.Type = *payload.Type
	}
	if payload.Duration != nil {
		course.Duration = *payload.Duration
	}
	if payload.Mode != nil {
		course.Mode = *payload.Mode
	}
	if payload.Fees != nil {
		course.Fees = *payload.Fees
	}
	if payload.Description != nil {
		course.Description = s.sanitizer.Sanitize(*payload.Description)
	}
	if payload.ValidityMonths != nil {
		course.ValidityMonths = *payload.ValidityMonths
	}
	if payload.AccreditationRef != nil {
		course.AccreditationRef = *payload.AccreditationRef
	}
	if payload.Status != nil {
		course.Status = *payload.Status
	}

	if err := s.courses.Update(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Str("courseid", course.CourseID).Msg("course updated")

	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Delete(ctx context.Context, userID, courseID string) error {
	course, err := s.ownedCourse(ctx, userID, courseID)
	if err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, course.CourseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	s.logger.Info().Str("courseid", course.CourseID).Msg("course deleted")
	return nil
}

// publishingInstitute resolves the caller's institute and enforces that only
// verified institutes with a live accreditation window publish content.
func (s *courseService) publishingInstitute(ctx context.Context, userID string) (models.Institute, error) {
	institute, err := s.institutes.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Institute{}, ErrInstituteNotFound
		}
		return models.Institute{}, err
	}

	if institute.VerifiedStatus != models.VerifiedStatusVerified {
		return models.Institute{}, ErrInstituteNotVerified
	}
	if institute.IsExpired(s.now()) {
		return models.Institute{}, ErrInstituteExpired
	}

	return institute, nil
}

func (s *courseService) ownedCourse(ctx context.Context, userID, courseID string) (models.Course, error) {
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
