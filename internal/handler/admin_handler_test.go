package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/marinedeck/maritime-api/internal/dto"
	"github.com/marinedeck/maritime-api/internal/models"
)

func TestAdminVerifyInstitute(t *testing.T) {
	app, repos := newTestApp(t)
	ctx := context.Background()

	user := models.User{UserID: "user-i1", Name: "Owner", Email: "owner@sea.test", Role: models.RoleInstitute}
	require.NoError(t, repos.Users.Create(ctx, &user))
	institute := models.Institute{InstID: "inst-1", UserID: "user-i1", Name: "Goa Maritime Institute",
		VerifiedStatus: models.VerifiedStatusPending,
		ValidFrom:      time.Now().AddDate(-1, 0, 0), ValidTo: time.Now().AddDate(1, 0, 0)}
	require.NoError(t, repos.Institutes.Create(ctx, &institute))

	// students cannot reach admin routes
	resp, _ := doJSON(t, app, http.MethodPatch, "/api/v1/admin/institutes/inst-1/verify",
		dto.InstituteVerifyRequest{VerifiedStatus: models.VerifiedStatusVerified}, "user-i1", models.RoleInstitute)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env := doJSON(t, app, http.MethodPatch, "/api/v1/admin/institutes/inst-1/verify",
		dto.InstituteVerifyRequest{VerifiedStatus: models.VerifiedStatusVerified}, "user-admin", models.RoleAdmin)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var verified dto.InstituteResponse
	decodeData(t, env, &verified)
	require.Equal(t, models.VerifiedStatusVerified, verified.VerifiedStatus)

	// repeating the decision conflicts
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/v1/admin/institutes/inst-1/verify",
		dto.InstituteVerifyRequest{VerifiedStatus: models.VerifiedStatusRejected}, "user-admin", models.RoleAdmin)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAdminReactivationReview(t *testing.T) {
	app, repos := newTestApp(t)
	ctx := context.Background()

	user := models.User{UserID: "user-i1", Name: "Owner", Email: "owner@sea.test", Role: models.RoleInstitute}
	require.NoError(t, repos.Users.Create(ctx, &user))
	institute := models.Institute{InstID: "inst-1", UserID: "user-i1", Name: "Kochi Marine College",
		AccreditationNo: "DGS/2020/007",
		VerifiedStatus:  models.VerifiedStatusVerified,
		ValidFrom:       time.Now().AddDate(-3, 0, 0), ValidTo: time.Now().AddDate(-1, 0, 0)}
	require.NoError(t, repos.Institutes.Create(ctx, &institute))

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/institute/reactivation",
		dto.ReactivationCreateRequest{
			NewAccreditationNo: "DGS/2026/120",
			NewValidFrom:       time.Now().Format("2006-01-02"),
			NewValidTo:         time.Now().AddDate(2, 0, 0).Format("2006-01-02"),
		}, "user-i1", models.RoleInstitute)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var request dto.ReactivationResponse
	decodeData(t, env, &request)

	resp, env = doJSON(t, app, http.MethodGet, "/api/v1/admin/reactivations?status=pending", nil, "user-admin", models.RoleAdmin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pending []dto.ReactivationResponse
	decodeData(t, env, &pending)
	require.Len(t, pending, 1)

	resp, env = doJSON(t, app, http.MethodPatch, "/api/v1/admin/reactivations/"+request.RequestID,
		dto.ReactivationReviewRequest{Status: models.RequestStatusApproved, ReviewerNotes: "renewed"},
		"user-admin", models.RoleAdmin)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reviewed dto.ReactivationResponse
	decodeData(t, env, &reviewed)
	require.Equal(t, models.RequestStatusApproved, reviewed.Status)

	refreshed, err := repos.Institutes.GetByID(ctx, "inst-1")
	require.NoError(t, err)
	require.Equal(t, "DGS/2026/120", refreshed.AccreditationNo)
	require.False(t, refreshed.IsExpired(time.Now()))
}

func TestAdminAnalytics(t *testing.T) {
	app, repos := newTestApp(t)
	seedMarketplace(t, repos, 10)

	_, _ = doJSON(t, app, http.MethodPost, "/api/v1/student/bookings",
		dto.BookingCreateRequest{BatchID: "batch-1", Amount: 12000}, "user-s1", models.RoleStudent)

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/admin/analytics", nil, "user-admin", models.RoleAdmin)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary dto.AnalyticsResponse
	decodeData(t, env, &summary)
	require.Equal(t, int64(1), summary.TotalInstitutes)
	require.Equal(t, int64(1), summary.VerifiedInstitutes)
	require.Equal(t, int64(2), summary.TotalStudents)
	require.Equal(t, int64(1), summary.TotalBookings)
}
