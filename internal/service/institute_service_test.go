package service

import (
	"context"
	"io"
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

func instituteFixture() repository.Repositories {
	store := blobstore.New(blobstore.NewMemoryStorage(), blobstore.WithSeed(func() blobstore.State {
		return blobstore.State{
			Users: []models.User{
				{UserID: "user-i1", Name: "Pending Academy Owner", Email: "pending@sea.test", Role: models.RoleInstitute},
				{UserID: "user-i2", Name: "Expired Academy Owner", Email: "expired@sea.test", Role: models.RoleInstitute},
			},
			Institutes: []models.Institute{
				{InstID: "inst-pending", UserID: "user-i1", Name: "Mumbai Nautical School",
					AccreditationNo: "DGS/2025/021", City: "Mumbai",
					VerifiedStatus: models.VerifiedStatusPending,
					ValidFrom:      time.Now().AddDate(-1, 0, 0), ValidTo: time.Now().AddDate(1, 0, 0)},
				{InstID: "inst-expired", UserID: "user-i2", Name: "Kochi Marine College",
					AccreditationNo: "DGS/2020/007", City: "Kochi",
					VerifiedStatus: models.VerifiedStatusVerified,
					ValidFrom:      time.Now().AddDate(-3, 0, 0), ValidTo: time.Now().AddDate(-1, 0, 0)},
			},
		}
	}))
	return blobstore.NewRepositories(store)
}

func newInstituteService(repos repository.Repositories) InstituteService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewInstituteService(repos, validate, zerolog.New(io.Discard))
}

func TestInstituteServiceVerify(t *testing.T) {
	svc := newInstituteService(instituteFixture())
	ctx := context.Background()

	resp, err := svc.Verify(ctx, "inst-pending", dto.InstituteVerifyRequest{VerifiedStatus: models.VerifiedStatusVerified})
	require.NoError(t, err)
	require.Equal(t, models.VerifiedStatusVerified, resp.VerifiedStatus)

	// a decided institute cannot be decided again
	_, err = svc.Verify(ctx, "inst-pending", dto.InstituteVerifyRequest{VerifiedStatus: models.VerifiedStatusRejected})
	require.ErrorIs(t, err, ErrInstituteNotPending)

	_, err = svc.Verify(ctx, "inst-missing", dto.InstituteVerifyRequest{VerifiedStatus: models.VerifiedStatusVerified})
	require.ErrorIs(t, err, ErrInstituteNotFound)
}

func TestInstituteServiceListFilters(t *testing.T) {
	svc := newInstituteService(instituteFixture())
	ctx := context.Background()

	all, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	pending, err := svc.List(ctx, models.VerifiedStatusPending, "")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "inst-pending", pending[0].InstID)

	kochi, err := svc.List(ctx, "", "Kochi")
	require.NoError(t, err)
	require.Len(t, kochi, 1)
	require.True(t, kochi[0].Expired)
}

func TestInstituteServiceReactivationFlow(t *testing.T) {
	repos := instituteFixture()
	svc := newInstituteService(repos)
	ctx := context.Background()

	payload := dto.ReactivationCreateRequest{
		NewAccreditationNo: "DGS/2026/099",
		NewValidFrom:       time.Now().Format("2006-01-02"),
		NewValidTo:         time.Now().AddDate(2, 0, 0).Format("2006-01-02"),
	}

	// only an expired institute may apply
	_, err := svc.SubmitReactivation(ctx, "user-i1", payload)
	require.ErrorIs(t, err, ErrInstituteNotExpired)

	request, err := svc.SubmitReactivation(ctx, "user-i2", payload)
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusPending, request.Status)
	require.Equal(t, "inst-expired", request.InstID)

	// one pending request at a time
	_, err = svc.SubmitReactivation(ctx, "user-i2", payload)
	require.ErrorIs(t, err, ErrReactivationPending)

	reviewed, err := svc.ReviewReactivation(ctx, request.RequestID, dto.ReactivationReviewRequest{
		Status:        models.RequestStatusApproved,
		ReviewerNotes: "documents in order",
	})
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedAt)

	institute, err := repos.Institutes.GetByID(ctx, "inst-expired")
	require.NoError(t, err)
	require.Equal(t, "DGS/2026/099", institute.AccreditationNo)
	require.Equal(t, models.VerifiedStatusVerified, institute.VerifiedStatus)
	require.False(t, institute.IsExpired(time.Now()))

	// a decided request stays decided
	_, err = svc.ReviewReactivation(ctx, request.RequestID, dto.ReactivationReviewRequest{Status: models.RequestStatusRejected})
	require.ErrorIs(t, err, ErrRequestClosed)
}

func TestInstituteServiceReactivationRejectsBadWindow(t *testing.T) {
	svc := newInstituteService(instituteFixture())

	_, err := svc.SubmitReactivation(context.Background(), "user-i2", dto.ReactivationCreateRequest{
		NewAccreditationNo: "DGS/2026/099",
		NewValidFrom:       "2026-01-01",
		NewValidTo:         "2025-01-01",
	})
	require.Error(t, err)
}
