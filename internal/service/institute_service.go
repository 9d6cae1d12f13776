package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/marinedeck/maritime-api/internal/dto"
	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

// Institute service errors.
var (
	ErrInstituteNotFound = errors.New("institute not found")
	// ErrInstituteNotPending indicates a verification decision was attempted
	// on an institute that already left the pending state.
	ErrInstituteNotPending = errors.New("institute is not pending verification")
	// ErrInstituteNotExpired indicates a reactivation was submitted while
	// the accreditation window is still open.
	ErrInstituteNotExpired = errors.New("institute accreditation has not expired")
	// ErrReactivationPending indicates the institute already has an
	// undecided reactivation request.
	ErrReactivationPending = errors.New("a reactivation request is already pending")
	ErrRequestNotFound     = errors.New("reactivation request not found")
	// ErrRequestClosed indicates a review decision was attempted on a
	// request that was already decided.
	ErrRequestClosed = errors.New("reactivation request already reviewed")
)

// InstituteService exposes institute directory, verification and
// reactivation use cases.
type InstituteService interface {
	List(ctx context.Context, verifiedStatus, city string) ([]dto.InstituteResponse, error)
	Get(ctx context.Context, instID string) (dto.InstituteResponse, error)
	GetByUser(ctx context.Context, userID string) (dto.InstituteResponse, error)
	Verify(ctx context.Context, instID string, payload dto.InstituteVerifyRequest) (dto.InstituteResponse, error)
	SubmitReactivation(ctx context.Context, userID string, payload dto.ReactivationCreateRequest) (dto.ReactivationResponse, error)
	ListReactivations(ctx context.Context, status string) ([]dto.ReactivationResponse, error)
	ReviewReactivation(ctx context.Context, requestID string, payload dto.ReactivationReviewRequest) (dto.ReactivationResponse, error)
}

type instituteService struct {
	institutes    repository.InstituteRepository
	reactivations repository.ReactivationRepository
	validator     *validator.Validate
	logger        zerolog.Logger
	now           func() time.Time
}

// NewInstituteService builds a new institute service.
func NewInstituteService(repos repository.Repositories, validate *validator.Validate, logger zerolog.Logger) InstituteService {
	return &instituteService{
		institutes:    repos.Institutes,
		reactivations: repos.Reactivations,
		validator:     validate,
		logger:        logger.With().Str("component", "institute_service").Logger(),
		now:           time.Now,
	}
}

func (s *instituteService) List(ctx context.Context, verifiedStatus, city string) ([]dto.InstituteResponse, error) {
	institutes, err := s.institutes.List(ctx, repository.InstituteFilter{
		VerifiedStatus: verifiedStatus,
		City:           city,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewInstituteResponseSlice(institutes, s.now()), nil
}

func (s *instituteService) Get(ctx context.Context, instID string) (dto.InstituteResponse, error) {
	institute, err := s.institutes.GetByID(ctx, instID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.InstituteResponse{}, ErrInstituteNotFound
		}
		return dto.InstituteResponse{}, err
	}

	return dto.NewInstituteResponse(institute, s.now()), nil
}

func (s *instituteService) GetByUser(ctx context.Context, userID string) (dto.InstituteResponse, error) {
	institute, err := s.institutes.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.InstituteResponse{}, ErrInstituteNotFound
		}
		return dto.InstituteResponse{}, err
	}

	return dto.NewInstituteResponse(institute, s.now()), nil
}

func (s *instituteService) Verify(ctx context.Context, instID string, payload dto.InstituteVerifyRequest) (dto.InstituteResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InstituteResponse{}, err
	}

	institute, err := s.institutes.GetByID(ctx, instID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.InstituteResponse{}, ErrInstituteNotFound
		}
		return dto.InstituteResponse{}, err
	}

	if institute.VerifiedStatus != models.VerifiedStatusPending {
		return dto.InstituteResponse{}, ErrInstituteNotPending
	}

	institute.VerifiedStatus = payload.VerifiedStatus
	if err := s.institutes.Update(ctx, &institute); err != nil {
		return dto.InstituteResponse{}, err
	}

	s.logger.Info().Str("instid", institute.InstID).Str("decision", payload.VerifiedStatus).Msg("institute verification decided")

	return dto.NewInstituteResponse(institute, s.now()), nil
}

func (s *instituteService) SubmitReactivation(ctx context.Context, userID string, payload dto.ReactivationCreateRequest) (dto.ReactivationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ReactivationResponse{}, err
	}

	newFrom, err := time.Parse(dateLayout, payload.NewValidFrom)
	if err != nil {
		return dto.ReactivationResponse{}, fmt.Errorf("invalid new_valid_from date: %w", err)
	}
	newTo, err := time.Parse(dateLayout, payload.NewValidTo)
	if err != nil {
		return dto.ReactivationResponse{}, fmt.Errorf("invalid new_valid_to date: %w", err)
	}
	if !newTo.After(newFrom) {
		return dto.ReactivationResponse{}, fmt.Errorf("new_valid_to must be after new_valid_from")
	}
	if !newTo.After(s.now()) {
		return dto.ReactivationResponse{}, fmt.Errorf("new_valid_to must be in the future")
	}

	institute, err := s.institutes.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ReactivationResponse{}, ErrInstituteNotFound
		}
		return dto.ReactivationResponse{}, err
	}

	if !institute.IsExpired(s.now()) {
		return dto.ReactivationResponse{}, ErrInstituteNotExpired
	}

	if _, err := s.reactivations.GetPendingByInstitute(ctx, institute.InstID); err == nil {
		return dto.ReactivationResponse{}, ErrReactivationPending
	} else if !errors.Is(err, repository.ErrNotFound) {
		return dto.ReactivationResponse{}, err
	}

	request := models.ReactivationRequest{
		RequestID:          models.NewID("react"),
		InstID:             institute.InstID,
		NewAccreditationNo: payload.NewAccreditationNo,
		NewValidFrom:       newFrom,
		NewValidTo:         newTo,
		Documents:          datatypes.JSON(payload.Documents),
		Status:             models.RequestStatusPending,
		SubmittedAt:        s.now(),
	}
	if err := s.reactivations.Create(ctx, &request); err != nil {
		return dto.ReactivationResponse{}, err
	}

	s.logger.Info().Str("instid", institute.InstID).Str("request_id", request.RequestID).Msg("reactivation request submitted")

	return dto.NewReactivationResponse(request), nil
}

func (s *instituteService) ListReactivations(ctx context.Context, status string) ([]dto.ReactivationResponse, error) {
	requests, err := s.reactivations.List(ctx, repository.ReactivationFilter{Status: status})
	if err != nil {
		return nil, err
	}

	return dto.NewReactivationResponseSlice(requests), nil
}

func (s *instituteService) ReviewReactivation(ctx context.Context, requestID string, payload dto.ReactivationReviewRequest) (dto.ReactivationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ReactivationResponse{}, err
	}

	request, err := s.reactivations.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ReactivationResponse{}, ErrRequestNotFound
		}
		return dto.ReactivationResponse{}, err
	}

	if request.Status != models.RequestStatusPending {
		return dto.ReactivationResponse{}, ErrRequestClosed
	}

	reviewedAt := s.now()
	request.Status = payload.Status
	request.ReviewedAt = &reviewedAt
	request.ReviewerNotes = payload.ReviewerNotes

	if payload.Status == models.RequestStatusApproved {
		institute, err := s.institutes.GetByID(ctx, request.InstID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return dto.ReactivationResponse{}, ErrInstituteNotFound
			}
			return dto.ReactivationResponse{}, err
		}

		institute.AccreditationNo = request.NewAccreditationNo
		institute.ValidFrom = request.NewValidFrom
		institute.ValidTo = request.NewValidTo
		institute.VerifiedStatus = models.VerifiedStatusVerified
		if len(request.Documents) > 0 {
			institute.Documents = request.Documents
		}
		if err := s.institutes.Update(ctx, &institute); err != nil {
			return dto.ReactivationResponse{}, err
		}
	}

	if err := s.reactivations.Update(ctx, &request); err != nil {
		return dto.ReactivationResponse{}, err
	}

	s.logger.Info().Str("request_id", request.RequestID).Str("decision", request.Status).Msg("reactivation request reviewed")

	return dto.NewReactivationResponse(request), nil
}
