package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/marinedeck/maritime-api/internal/dto"
	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

// Certificate service errors.
var (
	ErrCertificateNotFound = errors.New("certificate not found")
	// ErrBookingIncomplete indicates a certificate was requested before the
	// student completed the batch.
	ErrBookingIncomplete = errors.New("booking is not completed")
	// ErrUnsupportedFileType indicates the uploaded scan is not a PDF or
	// image.
	ErrUnsupportedFileType = errors.New("unsupported certificate file type")
)

var allowedCertificateMIMEs = []string{"application/pdf", "image/png", "image/jpeg"}

// FileUploader abstracts uploading binary data and returning a URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// CertificateService exposes certificate issuance and reporting use cases.
type CertificateService interface {
	Issue(ctx context.Context, userID string, payload dto.CertificateIssueRequest, file *multipart.FileHeader) (dto.CertificateResponse, error)
	ListMine(ctx context.Context, userID string) ([]dto.CertificateResponse, error)
	ListByStudent(ctx context.Context, studID string) ([]dto.CertificateResponse, error)
	Get(ctx context.Context, certID string) (dto.CertificateResponse, error)
	MarkDGShippingUploaded(ctx context.Context, certID string) (dto.CertificateResponse, error)
}

type certificateService struct {
	certificates repository.CertificateRepository
	bookings     repository.BookingRepository
	batches      repository.BatchRepository
	courses      repository.CourseRepository
	students     repository.StudentRepository
	institutes   repository.InstituteRepository
	validator    *validator.Validate
	uploader     FileUploader
	tracer       trace.Tracer
	logger       zerolog.Logger
	now          func() time.Time
}

// NewCertificateService builds a new certificate service. The uploader may
// be nil; issuance then skips the scan upload.
func NewCertificateService(repos repository.Repositories, validate *validator.Validate, uploader FileUploader, logger zerolog.Logger) CertificateService {
	return &certificateService{
		certificates: repos.Certificates,
		bookings:     repos.Bookings,
		batches:      repos.Batches,
		courses:      repos.Courses,
		students:     repos.Students,
		institutes:   repos.Institutes,
		validator:    validate,
		uploader:     uploader,
		tracer:       otel.Tracer("certificate-service"),
		logger:       logger.With().Str("component", "certificate_service").Logger(),
		now:          time.Now,
	}
}

func (s *certificateService) Issue(ctx context.Context, userID string, payload dto.CertificateIssueRequest, file *multipart.FileHeader) (dto.CertificateResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CertificateResponse{}, err
	}

	ctx, span := s.tracer.Start(ctx, "certificate.issue", trace.WithAttributes(
		attribute.String("studid", payload.StudID),
		attribute.String("batchid", payload.BatchID),
	))
	defer span.End()

	batch, err := s.batches.GetByID(ctx, payload.BatchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.CertificateResponse{}, ErrBatchNotFound
		}
		return dto.CertificateResponse{}, err
	}

	course, err := s.ownedCourse(ctx, userID, batch.CourseID)
	if err != nil {
		return dto.CertificateResponse{}, err
	}

	bookings, err := s.bookings.List(ctx, repository.BookingFilter{StudID: payload.StudID, BatchID: batch.BatchID})
	if err != nil {
		return dto.CertificateResponse{}, err
	}
	if len(bookings) == 0 {
		return dto.CertificateResponse{}, ErrBookingNotFound
	}
	if bookings[0].CompletionStatus != models.CompletionCompleted {
		return dto.CertificateResponse{}, ErrBookingIncomplete
	}

	issuedAt := s.now()
	cert := models.Certificate{
		CertID:     models.NewID("cert"),
		StudID:     payload.StudID,
		CourseID:   course.CourseID,
		BatchID:    batch.BatchID,
		CertNumber: s.certificateNumber(issuedAt),
		IssueDate:  issuedAt,
		Status:     models.CertStatusValid,
	}
	if course.ValidityMonths > 0 {
		cert.ExpiryDate = issuedAt.AddDate(0, course.ValidityMonths, 0)
	}

	if file != nil {
		url, err := s.uploadScan(ctx, file)
		if err != nil {
			return dto.CertificateResponse{}, err
		}
		cert.CertificateURL = url
	}

	if err := s.certificates.Create(ctx, &cert); err != nil {
		return dto.CertificateResponse{}, err
	}
	span.SetAttributes(attribute.String("certid", cert.CertID))

	s.logger.Info().
		Str("certid", cert.CertID).
		Str("studid", cert.StudID).
		Str("cert_number", cert.CertNumber).
		Msg("certificate issued")

	return dto.NewCertificateResponse(cert, s.now()), nil
}

func (s *certificateService) ListMine(ctx context.Context, userID string) ([]dto.CertificateResponse, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	return s.ListByStudent(ctx, student.StudID)
}

func (s *certificateService) ListByStudent(ctx context.Context, studID string) ([]dto.CertificateResponse, error) {
	certs, err := s.certificates.List(ctx, studID)
	if err != nil {
		return nil, err
	}

	return dto.NewCertificateResponseSlice(certs, s.now()), nil
}

func (s *certificateService) Get(ctx context.Context, certID string) (dto.CertificateResponse, error) {
	cert, err := s.certificates.GetByID(ctx, certID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.CertificateResponse{}, ErrCertificateNotFound
		}
		return dto.CertificateResponse{}, err
	}

	return dto.NewCertificateResponse(cert, s.now()), nil
}

func (s *certificateService) MarkDGShippingUploaded(ctx context.Context, certID string) (dto.CertificateResponse, error) {
	cert, err := s.certificates.GetByID(ctx, certID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.CertificateResponse{}, ErrCertificateNotFound
		}
		return dto.CertificateResponse{}, err
	}

	if !cert.DGShippingUploaded {
		uploadedAt := s.now()
		cert.DGShippingUploaded = true
		cert.DGShippingUploadDate = &uploadedAt
		if err := s.certificates.Update(ctx, &cert); err != nil {
			return dto.CertificateResponse{}, err
		}
		s.logger.Info().Str("certid", cert.CertID).Msg("certificate marked uploaded to dg shipping")
	}

	return dto.NewCertificateResponse(cert, s.now()), nil
}

func (s *certificateService) uploadScan(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if s.uploader == nil {
		return "", fmt.Errorf("file uploads are not configured")
	}

	probe, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	detected, err := mimetype.DetectReader(probe)
	probe.Close()
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}

	supported := false
	for _, mime := range allowedCertificateMIMEs {
		if detected.Is(mime) {
			supported = true
			break
		}
	}
	if !supported {
		return "", ErrUnsupportedFileType
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	url, err := s.uploader.Upload(ctx, file.Filename, src)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return url, nil
}

func (s *certificateService) certificateNumber(at time.Time) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("CERT%d-%s", at.Year(), strings.ToUpper(token))
}

func (s *certificateService) ownedCourse(ctx context.Context, userID, courseID string) (models.Course, error) {
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
