package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/marinedeck/maritime-api/internal/blobstore"
	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

func analyticsFixture() repository.Repositories {
	store := blobstore.New(blobstore.NewMemoryStorage(), blobstore.WithSeed(func() blobstore.State {
		return blobstore.State{
			Users: []models.User{
				{UserID: "user-s1", Email: "s1@sea.test", Role: models.RoleStudent},
				{UserID: "user-s2", Email: "s2@sea.test", Role: models.RoleStudent},
				{UserID: "user-i1", Email: "i1@sea.test", Role: models.RoleInstitute},
			},
			Students: []models.Student{
				{StudID: "stud-1", UserID: "user-s1"},
				{StudID: "stud-2", UserID: "user-s2"},
			},
			Institutes: []models.Institute{
				{InstID: "inst-1", UserID: "user-i1", VerifiedStatus: models.VerifiedStatusVerified,
					ValidTo: time.Now().AddDate(1, 0, 0)},
				{InstID: "inst-2", UserID: "user-i1", VerifiedStatus: models.VerifiedStatusPending,
					ValidTo: time.Now().AddDate(1, 0, 0)},
			},
			Courses: []models.Course{
				{CourseID: "course-1", InstID: "inst-1", Title: "Basic Safety Training", Status: models.CourseStatusActive},
			},
			Batches: []models.Batch{
				{BatchID: "batch-1", CourseID: "course-1", SeatsTotal: 10, SeatsBooked: 2},
				{BatchID: "batch-2", CourseID: "course-1", SeatsTotal: 10},
			},
			Bookings: []models.Booking{
				{BookID: "book-1", StudID: "stud-1", BatchID: "batch-1", Amount: 12000,
					PaymentStatus: models.PaymentStatusCompleted},
				{BookID: "book-2", StudID: "stud-2", BatchID: "batch-1", Amount: 12000,
					PaymentStatus: models.PaymentStatusPending},
			},
			Certificates: []models.Certificate{
				{CertID: "cert-1", StudID: "stud-1", CourseID: "course-1", BatchID: "batch-1",
					DGShippingUploaded: true},
			},
		}
	}))
	return blobstore.NewRepositories(store)
}

func TestAnalyticsServiceTotals(t *testing.T) {
	svc := NewAnalyticsService(analyticsFixture(), nil, time.Minute, zerolog.New(io.Discard))

	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), summary.TotalInstitutes)
	require.Equal(t, int64(1), summary.VerifiedInstitutes)
	require.Equal(t, int64(1), summary.PendingInstitutes)
	require.Equal(t, int64(1), summary.TotalCourses)
	require.Equal(t, int64(2), summary.TotalStudents)
	require.Equal(t, int64(2), summary.TotalBookings)
	require.Equal(t, int64(1), summary.CompletedBookings)
	require.Equal(t, 12000.0, summary.TotalRevenue)
	require.Equal(t, int64(1), summary.CertificatesIssued)
	require.Equal(t, int64(1), summary.CertificatesUploaded)
}

func TestAnalyticsServiceCachesSummary(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	repos := analyticsFixture()
	svc := NewAnalyticsService(repos, cache, time.Minute, zerolog.New(io.Discard))
	ctx := context.Background()

	summary, err := svc.GetSummary(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), summary.TotalBookings)
	require.True(t, mr.Exists("analytics:summary"))

	// the cached summary is served even after the data changes
	booking := models.Booking{BookID: "book-3", StudID: "stud-2", BatchID: "batch-2", Amount: 500,
		PaymentStatus: models.PaymentStatusCompleted}
	require.NoError(t, repos.Bookings.Reserve(ctx, &booking))

	cached, err := svc.GetSummary(ctx)
	require.NoError(t, err)
	require.Equal(t, summary.TotalBookings, cached.TotalBookings)

	mr.FastForward(2 * time.Minute)

	fresh, err := svc.GetSummary(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), fresh.TotalBookings)
}
