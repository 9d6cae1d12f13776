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

// CertificateHandler wires certificate HTTP routes.
type CertificateHandler struct {
	service service.CertificateService
	logger  zerolog.Logger
}

// NewCertificateHandler constructs the handler.
func NewCertificateHandler(service service.CertificateService, logger zerolog.Logger) *CertificateHandler {
	return &CertificateHandler{
		service: service,
		logger:  logger.With().Str("component", "certificate_handler").Logger(),
	}
}

// RegisterOwner attaches the institute issuance endpoints.
func (h *CertificateHandler) RegisterOwner(router fiber.Router) {
	router.Post("", h.issue)
}

// RegisterStudent attaches the student certificate endpoints.
func (h *CertificateHandler) RegisterStudent(router fiber.Router) {
	router.Get("", h.listMine)
	router.Get("/:id", h.get)
}

func (h *CertificateHandler) issue(c *fiber.Ctx) error {
	payload := dto.CertificateIssueRequest{
		StudID:   c.FormValue("studid"),
		CourseID: c.FormValue("courseid"),
		BatchID:  c.FormValue("batchid"),
	}

	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	cert, err := h.service.Issue(c.Context(), userIDFromContext(c), payload, file)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "certificate issued", cert)
}

func (h *CertificateHandler) listMine(c *fiber.Ctx) error {
	certs, err := h.service.ListMine(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "certificates retrieved", certs)
}

func (h *CertificateHandler) get(c *fiber.Ctx) error {
	cert, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "certificate retrieved", cert)
}

func (h *CertificateHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrCertificateNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "certificate not found")
	case errors.Is(err, service.ErrBatchNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "batch not found")
	case errors.Is(err, service.ErrBookingNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "booking not found")
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student profile not found")
	case errors.Is(err, service.ErrInstituteNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "institute not found")
	case errors.Is(err, service.ErrCourseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "course not found")
	case errors.Is(err, service.ErrNotCourseOwner):
		return utils.SendError(c, fiber.StatusForbidden, "course belongs to another institute")
	case errors.Is(err, service.ErrBookingIncomplete):
		return utils.SendError(c, fiber.StatusConflict, "booking is not completed")
	case errors.Is(err, service.ErrUnsupportedFileType):
		return utils.SendError(c, fiber.StatusBadRequest, "unsupported certificate file type")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
