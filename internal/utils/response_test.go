package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func perform(t *testing.T, handler fiber.Handler) (*http.Response, APIResponse) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	var body APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	return resp, body
}

func TestSendSuccess(t *testing.T) {
	resp, body := perform(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "retrieved", fiber.Map{"id": "course-1"})
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, body.Success)
	require.Equal(t, "retrieved", body.Message)
	require.NotNil(t, body.Data)
}

func TestSendSuccessWithStatusDefaults(t *testing.T) {
	resp, body := perform(t, func(c *fiber.Ctx) error {
		return SendSuccessWithStatus(c, 0, "", nil)
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "success", body.Message)
}

func TestSendError(t *testing.T) {
	resp, body := perform(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusConflict, "batch is fully booked")
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.False(t, body.Success)
	require.Equal(t, "batch is fully booked", body.Message)
	require.Nil(t, body.Data)
}
