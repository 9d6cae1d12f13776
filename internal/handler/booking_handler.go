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

// BookingHandler wires seat reservation HTTP routes.
type BookingHandler struct {
	service service.BookingService
	logger  zerolog.Logger
}

// NewBookingHandler constructs the handler.
func NewBookingHandler(service service.BookingService, logger zerolog.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		logger:  logger.With().Str("component", "booking_handler").Logger(),
	}
}

// RegisterStudent attaches the student booking endpoints.
func (h *BookingHandler) RegisterStudent(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.listMine)
	router.Get("/:id", h.get)
}

// RegisterOwner attaches the institute booking endpoints.
func (h *BookingHandler) RegisterOwner(router fiber.Router) {
	router.Patch("/:id/status", h.updateStatus)
}

func (h *BookingHandler) create(c *fiber.Ctx) error {
	var payload dto.BookingCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	booking, err := h.service.Create(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "seat reserved", booking)
}

func (h *BookingHandler) listMine(c *fiber.Ctx) error {
	bookings, err := h.service.ListMine(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "bookings retrieved", bookings)
}

func (h *BookingHandler) get(c *fiber.Ctx) error {
	booking, err := h.service.Get(c.Context(), userIDFromContext(c), userRoleFromContext(c), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "booking retrieved", booking)
}

func (h *BookingHandler) updateStatus(c *fiber.Ctx) error {
	var payload dto.BookingStatusUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	booking, err := h.service.UpdateStatus(c.Context(), userIDFromContext(c), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "booking status updated", booking)
}

func (h *BookingHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrBatchNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "batch not found")
	case errors.Is(err, service.ErrBookingNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "booking not found")
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student profile not found")
	case errors.Is(err, service.ErrBatchFull):
		return utils.SendError(c, fiber.StatusConflict, "batch is fully booked")
	case errors.Is(err, service.ErrAlreadyBooked):
		return utils.SendError(c, fiber.StatusConflict, "batch already booked")
	case errors.Is(err, service.ErrBatchNotOpen):
		return utils.SendError(c, fiber.StatusConflict, "batch is not open for booking")
	case errors.Is(err, service.ErrNotBookingOwner):
		return utils.SendError(c, fiber.StatusForbidden, "booking belongs to another student")
	case errors.Is(err, service.ErrNotCourseOwner):
		return utils.SendError(c, fiber.StatusForbidden, "course belongs to another institute")
	case errors.Is(err, service.ErrInstituteNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "institute not found")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case isBadRequest(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
