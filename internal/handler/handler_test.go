package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/marinedeck/maritime-api/internal/config"
	"github.com/marinedeck/maritime-api/internal/database"
	"github.com/marinedeck/maritime-api/internal/handler"
	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
	"github.com/marinedeck/maritime-api/internal/router"
	"github.com/marinedeck/maritime-api/internal/service"
)

// envelope mirrors the response wrapper every endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// testAuth replaces the JWT middleware: the acting user arrives in plain
// request headers so each request can impersonate a different account.
func testAuth(c *fiber.Ctx) error {
	if user := c.Get("X-Test-User"); user != "" {
		c.Locals("user_id", user)
	}
	if role := c.Get("X-Test-Role"); role != "" {
		c.Locals("user_role", role)
	}
	return c.Next()
}

func newTestApp(t *testing.T) (*fiber.App, repository.Repositories) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "handler.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	repos := repository.NewGorm(db)

	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())

	auth := service.NewAuthService(repos, validate, "test-secret", time.Hour, logger)
	institutes := service.NewInstituteService(repos, validate, logger)
	courses := service.NewCourseService(repos, validate, logger)
	batches := service.NewBatchService(repos, validate, logger)
	bookings := service.NewBookingService(repos, validate, logger)
	payments := service.NewPaymentService(repos, validate, logger)
	certificates := service.NewCertificateService(repos, validate, nil, logger)
	enrollments := service.NewEnrollmentService(repos, validate, logger)
	analytics := service.NewAnalyticsService(repos, nil, time.Minute, logger)

	cfg := config.Config{AppName: "maritime-api-test", AppEnv: "test", StorageDriver: config.StorageDriverPostgres}

	app := fiber.New()
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(auth, logger),
		InstituteHandler:   handler.NewInstituteHandler(institutes, logger),
		AdminHandler:       handler.NewAdminHandler(institutes, bookings, certificates, analytics, logger),
		CourseHandler:      handler.NewCourseHandler(courses, batches, enrollments, logger),
		BatchHandler:       handler.NewBatchHandler(batches, bookings, logger),
		BookingHandler:     handler.NewBookingHandler(bookings, logger),
		PaymentHandler:     handler.NewPaymentHandler(payments, logger),
		CertificateHandler: handler.NewCertificateHandler(certificates, logger),
		EnrollmentHandler:  handler.NewEnrollmentHandler(enrollments, logger),
		JWTMiddleware:      testAuth,
	})

	return app, repos
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, userID, role string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Test-User", userID)
	}
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	return resp, env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// seedMarketplace populates a verified institute with one batch plus two
// students, returning nothing; the fixed IDs below are used by the tests.
func seedMarketplace(t *testing.T, repos repository.Repositories, seats int) {
	t.Helper()
	ctx := context.Background()

	users := []models.User{
		{UserID: "user-admin", Name: "Admin", Email: "admin@sea.test", Role: models.RoleAdmin},
		{UserID: "user-inst", Name: "Owner", Email: "owner@sea.test", Role: models.RoleInstitute},
		{UserID: "user-s1", Name: "First Sailor", Email: "s1@sea.test", Role: models.RoleStudent},
		{UserID: "user-s2", Name: "Second Sailor", Email: "s2@sea.test", Role: models.RoleStudent},
	}
	for i := range users {
		require.NoError(t, repos.Users.Create(ctx, &users[i]))
	}

	institute := models.Institute{InstID: "inst-1", UserID: "user-inst", Name: "Mumbai Nautical School",
		AccreditationNo: "DGS/2025/001", City: "Mumbai",
		VerifiedStatus: models.VerifiedStatusVerified,
		ValidFrom:      time.Now().AddDate(-1, 0, 0), ValidTo: time.Now().AddDate(1, 0, 0)}
	require.NoError(t, repos.Institutes.Create(ctx, &institute))

	students := []models.Student{
		{StudID: "stud-1", UserID: "user-s1"},
		{StudID: "stud-2", UserID: "user-s2"},
	}
	for i := range students {
		require.NoError(t, repos.Students.Create(ctx, &students[i]))
	}

	course := models.Course{CourseID: "course-1", InstID: "inst-1", Title: "Basic Safety Training",
		Type: models.CourseTypeSTCW, Mode: models.CourseModeHybrid, Fees: 12000,
		ValidityMonths: 60, Status: models.CourseStatusActive}
	require.NoError(t, repos.Courses.Create(ctx, &course))

	batch := models.Batch{BatchID: "batch-1", CourseID: "course-1", BatchName: "March Intake",
		SeatsTotal: seats, BatchStatus: models.BatchStatusUpcoming,
		StartDate: time.Now().AddDate(0, 1, 0), EndDate: time.Now().AddDate(0, 2, 0)}
	require.NoError(t, repos.Batches.Create(ctx, &batch))
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/health", nil, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)
	require.Equal(t, "maritime-api-test", resp.Header.Get("X-Application"))
}
