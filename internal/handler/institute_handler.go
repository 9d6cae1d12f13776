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

// InstituteHandler wires institute directory and reactivation HTTP routes.
type InstituteHandler struct {
	service service.InstituteService
	logger  zerolog.Logger
}

// NewInstituteHandler constructs the handler.
func NewInstituteHandler(service service.InstituteService, logger zerolog.Logger) *InstituteHandler {
	return &InstituteHandler{
		service: service,
		logger:  logger.With().Str("component", "institute_handler").Logger(),
	}
}

// RegisterPublic attaches the unauthenticated directory endpoints.
func (h *InstituteHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

// RegisterOwner attaches the institute self-service endpoints.
func (h *InstituteHandler) RegisterOwner(router fiber.Router) {
	router.Get("/profile", h.profile)
	router.Post("/reactivation", h.submitReactivation)
}

func (h *InstituteHandler) list(c *fiber.Ctx) error {
	institutes, err := h.service.List(c.Context(), c.Query("verified_status"), c.Query("city"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "institutes retrieved", institutes)
}

func (h *InstituteHandler) get(c *fiber.Ctx) error {
	institute, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "institute retrieved", institute)
}

func (h *InstituteHandler) profile(c *fiber.Ctx) error {
	institute, err := h.service.GetByUser(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "institute profile retrieved", institute)
}

func (h *InstituteHandler) submitReactivation(c *fiber.Ctx) error {
	var payload dto.ReactivationCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	request, err := h.service.SubmitReactivation(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "reactivation request submitted", request)
}

func (h *InstituteHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrInstituteNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "institute not found")
	case errors.Is(err, service.ErrInstituteNotExpired):
		return utils.SendError(c, fiber.StatusConflict, "institute accreditation has not expired")
	case errors.Is(err, service.ErrReactivationPending):
		return utils.SendError(c, fiber.StatusConflict, "a reactivation request is already pending")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case isBadRequest(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
