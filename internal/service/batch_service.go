package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/marinedeck/maritime-api/internal/dto"
	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

// ErrBatchNotFound indicates the requested batch does not exist.
var ErrBatchNotFound = errors.New("batch not found")

// BatchService exposes batch scheduling use cases.
type BatchService interface {
	List(ctx context.Context, courseID string) ([]dto.BatchResponse, error)
	Get(ctx context.Context, batchID string) (dto.BatchResponse, error)
	Create(ctx context.Context, userID, courseID string, payload dto.BatchCreateRequest) (dto.BatchResponse, error)
	Update(ctx context.Context, userID, batchID string, payload dto.BatchUpdateRequest) (dto.BatchResponse, error)
}

type batchService struct {
	batches    repository.BatchRepository
	courses    repository.CourseRepository
	institutes repository.InstituteRepository
	validator  *validator.Validate
	logger     zerolog.Logger
	now        func() time.Time
}

// NewBatchService builds a new batch service.
func NewBatchService(repos repository.Repositories, validate *validator.Validate, logger zerolog.Logger) BatchService {
	return &batchService{
		batches:    repos.Batches,
		courses:    repos.Courses,
		institutes: repos.Institutes,
		validator:  validate,
		logger:     logger.With().Str("component", "batch_service").Logger(),
		now:        time.Now,
	}
}

func (s *batchService) List(ctx context.Context, courseID string) ([]dto.BatchResponse, error) {
	batches, err := s.batches.List(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return dto.NewBatchResponseSlice(batches), nil
}

func (s *batchService) Get(ctx context.Context, batchID string) (dto.BatchResponse, error) {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.BatchResponse{}, ErrBatchNotFound
		}
		return dto.BatchResponse{}, err
	}

	return dto.NewBatchResponse(batch), nil
}

func (s *batchService) Create(ctx context.Context, userID, courseID string, payload dto.BatchCreateRequest) (dto.BatchResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BatchResponse{}, err
	}

	startDate, err := time.Parse(dateLayout, payload.StartDate)
	if err != nil {
		return dto.BatchResponse{}, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := time.Parse(dateLayout, payload.EndDate)
	if err != nil {
		return dto.BatchResponse{}, fmt.Errorf("invalid end date: %w", err)
	}
	if endDate.Before(startDate) {
		return dto.BatchResponse{}, fmt.Errorf("end date must not precede start date")
	}

	course, err := s.ownedCourse(ctx, userID, courseID)
	if err != nil {
		return dto.BatchResponse{}, err
	}

	batch := models.Batch{
		BatchID:     models.NewID("batch"),
		CourseID:    course.CourseID,
		BatchName:   payload.BatchName,
		SeatsTotal:  payload.SeatsTotal,
		Trainer:     payload.Trainer,
		StartDate:   startDate,
		EndDate:     endDate,
		Location:    payload.Location,
		BatchStatus: models.BatchStatusUpcoming,
	}
	if err := s.batches.Create(ctx, &batch); err != nil {
		return dto.BatchResponse{}, err
	}

	s.logger.Info().Str("batchid", batch.BatchID).Str("courseid", course.CourseID).Int("seats_total", batch.SeatsTotal).Msg("batch scheduled")

	return dto.NewBatchResponse(batch), nil
}

func (s *batchService) Update(ctx context.Context, userID, batchID string, payload dto.BatchUpdateRequest) (dto.BatchResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BatchResponse{}, err
	}

	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.BatchResponse{}, ErrBatchNotFound
		}
		return dto.BatchResponse{}, err
	}

	if _, err := s.ownedCourse(ctx, userID, batch.CourseID); err != nil {
		return dto.BatchResponse{}, err
	}

	if payload.BatchName != nil {
		batch.BatchName = *payload.BatchName
	}
	if payload.Trainer != nil {
		batch.Trainer = *payload.Trainer
	}
	if payload.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *payload.StartDate)
		if err != nil {
			return dto.BatchResponse{}, fmt.Errorf("invalid start date: %w", err)
		}
		batch.StartDate = startDate
	}
	if payload.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *payload.EndDate)
		if err != nil {
			return dto.BatchResponse{}, fmt.Errorf("invalid end date: %w", err)
		}
		batch.EndDate = endDate
	}
	if batch.EndDate.Before(batch.StartDate) {
		return dto.BatchResponse{}, fmt.Errorf("end date must not precede start date")
	}
	if payload.Location != nil {
		batch.Location = *payload.Location
	}
	if payload.BatchStatus != nil {
		batch.BatchStatus = *payload.BatchStatus
	}

	if err := s.batches.Update(ctx, &batch); err != nil {
		return dto.BatchResponse{}, err
	}

	s.logger.Info().Str("batchid", batch.BatchID).Msg("batch updated")

	return dto.NewBatchResponse(batch), nil
}

func (s *batchService) ownedCourse(ctx context.Context, userID, courseID string) (models.Course, error) {
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
