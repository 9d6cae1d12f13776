package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/marinedeck/maritime-api/internal/dto"
	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

// AnalyticsService aggregates marketplace totals for the admin dashboard.
type AnalyticsService interface {
	GetSummary(ctx context.Context) (dto.AnalyticsResponse, error)
}

type analyticsService struct {
	repos    repository.Repositories
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewAnalyticsService constructs the analytics service. The cache client may
// be nil; summaries are then recomputed per request.
func NewAnalyticsService(repos repository.Repositories, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		repos:    repos,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "analytics_service").Logger(),
	}
}

func (s *analyticsService) GetSummary(ctx context.Context) (dto.AnalyticsResponse, error) {
	const cacheKey = "analytics:summary"
	tracer := otel.Tracer("github.com/marinedeck/maritime-api/internal/service/analytics")
	ctx, span := tracer.Start(ctx, "analytics.aggregate")
	span.SetAttributes(attribute.String("analytics.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.AnalyticsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read analytics cache")
			span.RecordError(err)
		}
	}

	summary, err := s.aggregate(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "analytics_aggregation_failed")
		return dto.AnalyticsResponse{}, err
	}
	span.SetAttributes(
		attribute.Int64("analytics.total_bookings", summary.TotalBookings),
		attribute.Int64("analytics.total_institutes", summary.TotalInstitutes),
	)

	if s.cache != nil {
		payload, err := json.Marshal(summary)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store analytics cache")
				span.RecordError(err)
			}
		}
	}

	return summary, nil
}

func (s *analyticsService) aggregate(ctx context.Context) (dto.AnalyticsResponse, error) {
	institutes, err := s.repos.Institutes.List(ctx, repository.InstituteFilter{})
	if err != nil {
		return dto.AnalyticsResponse{}, err
	}

	courses, err := s.repos.Courses.List(ctx, repository.CourseFilter{})
	if err != nil {
		return dto.AnalyticsResponse{}, err
	}

	students, err := s.repos.Students.List(ctx)
	if err != nil {
		return dto.AnalyticsResponse{}, err
	}

	bookings, err := s.repos.Bookings.List(ctx, repository.BookingFilter{})
	if err != nil {
		return dto.AnalyticsResponse{}, err
	}

	certs, err := s.repos.Certificates.List(ctx, "")
	if err != nil {
		return dto.AnalyticsResponse{}, err
	}

	summary := dto.AnalyticsResponse{
		TotalInstitutes:    int64(len(institutes)),
		TotalCourses:       int64(len(courses)),
		TotalStudents:      int64(len(students)),
		TotalBookings:      int64(len(bookings)),
		CertificatesIssued: int64(len(certs)),
	}

	for _, institute := range institutes {
		switch institute.VerifiedStatus {
		case models.VerifiedStatusVerified:
			summary.VerifiedInstitutes++
		case models.VerifiedStatusPending:
			summary.PendingInstitutes++
		}
	}

	for _, booking := range bookings {
		if booking.PaymentStatus == models.PaymentStatusCompleted {
			summary.CompletedBookings++
			summary.TotalRevenue += booking.Amount
		}
	}

	for _, cert := range certs {
		if cert.DGShippingUploaded {
			summary.CertificatesUploaded++
		}
	}

	return summary, nil
}
