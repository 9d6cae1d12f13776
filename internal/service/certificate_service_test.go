package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/marinedeck/maritime-api/internal/blobstore"
	"github.com/marinedeck/maritime-api/internal/dto"
	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

func certificateFixture() repository.Repositories {
	store := blobstore.New(blobstore.NewMemoryStorage(), blobstore.WithSeed(func() blobstore.State {
		return blobstore.State{
			Users: []models.User{
				{UserID: "user-s1", Email: "s1@sea.test", Role: models.RoleStudent},
				{UserID: "user-s2", Email: "s2@sea.test", Role: models.RoleStudent},
				{UserID: "user-i1", Email: "owner@sea.test", Role: models.RoleInstitute},
			},
			Students: []models.Student{
				{StudID: "stud-1", UserID: "user-s1"},
				{StudID: "stud-2", UserID: "user-s2"},
			},
			Institutes: []models.Institute{
				{InstID: "inst-1", UserID: "user-i1", Name: "Mumbai Nautical School",
					VerifiedStatus: models.VerifiedStatusVerified,
					ValidFrom:      time.Now().AddDate(-1, 0, 0), ValidTo: time.Now().AddDate(1, 0, 0)},
			},
			Courses: []models.Course{
				{CourseID: "course-1", InstID: "inst-1", Title: "Basic Safety Training",
					Type: models.CourseTypeSTCW, Mode: models.CourseModeOffline,
					ValidityMonths: 60, Status: models.CourseStatusActive},
			},
			Batches: []models.Batch{
				{BatchID: "batch-1", CourseID: "course-1", BatchName: "Completed Intake",
					SeatsTotal: 20, SeatsBooked: 2, BatchStatus: models.BatchStatusCompleted,
					StartDate: time.Now().AddDate(0, -2, 0), EndDate: time.Now().AddDate(0, -1, 0)},
			},
			Bookings: []models.Booking{
				{BookID: "book-1", StudID: "stud-1", BatchID: "batch-1",
					PaymentStatus: models.PaymentStatusCompleted,
					CompletionStatus: models.CompletionCompleted, BookingDate: time.Now().AddDate(0, -3, 0)},
				{BookID: "book-2", StudID: "stud-2", BatchID: "batch-1",
					PaymentStatus: models.PaymentStatusCompleted,
					CompletionStatus: models.CompletionIncomplete, BookingDate: time.Now().AddDate(0, -3, 0)},
			},
		}
	}))
	return blobstore.NewRepositories(store)
}

type recordingUploader struct {
	names []string
}

func (u *recordingUploader) Upload(_ context.Context, name string, _ io.Reader) (string, error) {
	u.names = append(u.names, name)
	return "https://cdn.example.test/" + name, nil
}

func newCertificateService(repos repository.Repositories, uploader FileUploader) CertificateService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewCertificateService(repos, validate, uploader, zerolog.New(io.Discard))
}

// multipartFile builds a real multipart file header carrying the given bytes.
func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestCertificateServiceIssue(t *testing.T) {
	svc := newCertificateService(certificateFixture(), nil)
	ctx := context.Background()

	cert, err := svc.Issue(ctx, "user-i1", dto.CertificateIssueRequest{
		StudID: "stud-1", CourseID: "course-1", BatchID: "batch-1",
	}, nil)
	require.NoError(t, err)
	require.Equal(t, models.CertStatusValid, cert.Status)
	require.Contains(t, cert.CertNumber, "CERT")
	require.WithinDuration(t, time.Now().AddDate(0, 60, 0), cert.ExpiryDate, time.Minute)
}

func TestCertificateServiceRequiresCompletedBooking(t *testing.T) {
	svc := newCertificateService(certificateFixture(), nil)
	ctx := context.Background()

	_, err := svc.Issue(ctx, "user-i1", dto.CertificateIssueRequest{
		StudID: "stud-2", CourseID: "course-1", BatchID: "batch-1",
	}, nil)
	require.ErrorIs(t, err, ErrBookingIncomplete)

	_, err = svc.Issue(ctx, "user-i1", dto.CertificateIssueRequest{
		StudID: "stud-missing", CourseID: "course-1", BatchID: "batch-1",
	}, nil)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCertificateServiceUploadsScan(t *testing.T) {
	uploader := &recordingUploader{}
	svc := newCertificateService(certificateFixture(), uploader)

	pdf := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), 64)...)
	cert, err := svc.Issue(context.Background(), "user-i1", dto.CertificateIssueRequest{
		StudID: "stud-1", CourseID: "course-1", BatchID: "batch-1",
	}, multipartFile(t, "bst-cert.pdf", pdf))
	require.NoError(t, err)
	require.NotEmpty(t, cert.CertificateURL)
	require.Len(t, uploader.names, 1)
}

func TestCertificateServiceRejectsUnsupportedFileType(t *testing.T) {
	svc := newCertificateService(certificateFixture(), &recordingUploader{})

	_, err := svc.Issue(context.Background(), "user-i1", dto.CertificateIssueRequest{
		StudID: "stud-1", CourseID: "course-1", BatchID: "batch-1",
	}, multipartFile(t, "cert.zip", []byte("PK\x03\x04 not really a scan")))
	require.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestCertificateServiceDGShippingUploadIsIdempotent(t *testing.T) {
	svc := newCertificateService(certificateFixture(), nil)
	ctx := context.Background()

	cert, err := svc.Issue(ctx, "user-i1", dto.CertificateIssueRequest{
		StudID: "stud-1", CourseID: "course-1", BatchID: "batch-1",
	}, nil)
	require.NoError(t, err)
	require.False(t, cert.DGShippingUploaded)

	marked, err := svc.MarkDGShippingUploaded(ctx, cert.CertID)
	require.NoError(t, err)
	require.True(t, marked.DGShippingUploaded)
	require.NotNil(t, marked.DGShippingUploadDate)

	again, err := svc.MarkDGShippingUploaded(ctx, cert.CertID)
	require.NoError(t, err)
	require.Equal(t, marked.DGShippingUploadDate.Unix(), again.DGShippingUploadDate.Unix())
}

func TestCertificateServiceListMine(t *testing.T) {
	svc := newCertificateService(certificateFixture(), nil)
	ctx := context.Background()

	_, err := svc.Issue(ctx, "user-i1", dto.CertificateIssueRequest{
		StudID: "stud-1", CourseID: "course-1", BatchID: "batch-1",
	}, nil)
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, "user-s1")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	none, err := svc.ListMine(ctx, "user-s2")
	require.NoError(t, err)
	require.Empty(t, none)
}
