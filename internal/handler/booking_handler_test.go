package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marinedeck/maritime-api/internal/dto"
	"github.com/marinedeck/maritime-api/internal/models"
)

func TestBookingEndpointCapacity(t *testing.T) {
	app, repos := newTestApp(t)
	seedMarketplace(t, repos, 1)

	payload := dto.BookingCreateRequest{BatchID: "batch-1", Amount: 12000}

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/student/bookings", payload, "user-s1", models.RoleStudent)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, env.Success)

	var booking dto.BookingResponse
	decodeData(t, env, &booking)
	require.Equal(t, "stud-1", booking.StudID)
	require.NotEmpty(t, booking.ConfirmationNumber)

	// the single seat is gone, the second student bounces off
	resp, env = doJSON(t, app, http.MethodPost, "/api/v1/student/bookings", payload, "user-s2", models.RoleStudent)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.False(t, env.Success)

	batch, err := repos.Batches.GetByID(context.Background(), "batch-1")
	require.NoError(t, err)
	require.Equal(t, 1, batch.SeatsBooked)
}

func TestBookingEndpointDuplicate(t *testing.T) {
	app, repos := newTestApp(t)
	seedMarketplace(t, repos, 10)

	payload := dto.BookingCreateRequest{BatchID: "batch-1", Amount: 12000}

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/student/bookings", payload, "user-s1", models.RoleStudent)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/student/bookings", payload, "user-s1", models.RoleStudent)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "batch already booked", env.Message)
}

func TestBookingEndpointRequiresStudentRole(t *testing.T) {
	app, repos := newTestApp(t)
	seedMarketplace(t, repos, 10)

	payload := dto.BookingCreateRequest{BatchID: "batch-1", Amount: 12000}

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/student/bookings", payload, "user-inst", models.RoleInstitute)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/student/bookings", payload, "", "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBookingEndpointOwnerScope(t *testing.T) {
	app, repos := newTestApp(t)
	seedMarketplace(t, repos, 10)

	_, env := doJSON(t, app, http.MethodPost, "/api/v1/student/bookings",
		dto.BookingCreateRequest{BatchID: "batch-1", Amount: 12000}, "user-s1", models.RoleStudent)
	var booking dto.BookingResponse
	decodeData(t, env, &booking)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/student/bookings/"+booking.BookID, nil, "user-s1", models.RoleStudent)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/student/bookings/"+booking.BookID, nil, "user-s2", models.RoleStudent)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	mine, envList := doJSON(t, app, http.MethodGet, "/api/v1/student/bookings", nil, "user-s2", models.RoleStudent)
	require.Equal(t, http.StatusOK, mine.StatusCode)
	var bookings []dto.BookingResponse
	decodeData(t, envList, &bookings)
	require.Empty(t, bookings)
}

func TestBookingStatusUpdateByInstitute(t *testing.T) {
	app, repos := newTestApp(t)
	seedMarketplace(t, repos, 10)

	_, env := doJSON(t, app, http.MethodPost, "/api/v1/student/bookings",
		dto.BookingCreateRequest{BatchID: "batch-1", Amount: 12000}, "user-s1", models.RoleStudent)
	var booking dto.BookingResponse
	decodeData(t, env, &booking)

	attendance := models.AttendanceCompleted
	completion := models.CompletionCompleted
	resp, updated := doJSON(t, app, http.MethodPatch, "/api/v1/institute/bookings/"+booking.BookID+"/status",
		dto.BookingStatusUpdateRequest{AttendanceStatus: &attendance, CompletionStatus: &completion},
		"user-inst", models.RoleInstitute)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result dto.BookingResponse
	decodeData(t, updated, &result)
	require.Equal(t, models.CompletionCompleted, result.CompletionStatus)

	// an empty patch is rejected
	resp, _ = doJSON(t, app, http.MethodPatch, "/api/v1/institute/bookings/"+booking.BookID+"/status",
		dto.BookingStatusUpdateRequest{}, "user-inst", models.RoleInstitute)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
