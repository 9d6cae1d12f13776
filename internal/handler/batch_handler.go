package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/marinedeck/maritime-api/internal/dto"
	"github.com/marinedeck/maritime-api/internal/service"
	"github.com/marinedeck/maritime-api/internal/utils"
)

// BatchHandler wires batch HTTP routes.
type BatchHandler struct {
	batches  service.BatchService
	bookings service.BookingService
	logger   zerolog.Logger
}

// NewBatchHandler constructs the handler.
func NewBatchHandler(batches service.BatchService, bookings service.BookingService, logger zerolog.Logger) *BatchHandler {
	return &BatchHandler{
		batches:  batches,
		bookings: bookings,
		logger:   logger.With().Str("component", "batch_handler").Logger(),
	}
}

// RegisterPublic attaches the unauthenticated batch endpoints.
func (h *BatchHandler) RegisterPublic(router fiber.Router) {
	router.Get("/:id", h.get)
}

// RegisterOwner attaches the institute batch management endpoints.
func (h *BatchHandler) RegisterOwner(router fiber.Router) {
	router.Patch("/:id", h.update)
	router.Get("/:id/bookings", h.listBookings)
}

func (h *BatchHandler) get(c *fiber.Ctx) error {
	batch, err := h.batches.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "batch retrieved", batch)
}

func (h *BatchHandler) update(c *fiber.Ctx) error {
	var payload dto.BatchUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	batch, err := h.batches.Update(c.Context(), userIDFromContext(c), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "batch updated", batch)
}

func (h *BatchHandler) listBookings(c *fiber.Ctx) error {
	bookings, err := h.bookings.ListByBatch(c.Context(), userIDFromContext(c), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "bookings retrieved", bookings)
}

func (h *BatchHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrBatchNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "batch not found")
	case errors.Is(err, service.ErrCourseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "course not found")
	case errors.Is(err, service.ErrInstituteNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "institute not found")
	case errors.Is(err, service.ErrNotCourseOwner):
		return utils.SendError(c, fiber.StatusForbidden, "course belongs to another institute")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case isBadRequest(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
