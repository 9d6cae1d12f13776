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

// AdminHandler wires the admin verification, reporting and analytics routes.
type AdminHandler struct {
	institutes   service.InstituteService
	bookings     service.BookingService
	certificates service.CertificateService
	analytics    service.AnalyticsService
	logger       zerolog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(institutes service.InstituteService, bookings service.BookingService, certificates service.CertificateService, analytics service.AnalyticsService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		institutes:   institutes,
		bookings:     bookings,
		certificates: certificates,
		analytics:    analytics,
		logger:       logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register attaches admin endpoints to the router group.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Patch("/institutes/:id/verify", h.verifyInstitute)
	router.Get("/reactivations", h.listReactivations)
	router.Patch("/reactivations/:id", h.reviewReactivation)
	router.Get("/bookings", h.listBookings)
	router.Get("/students/:id/certificates", h.listStudentCertificates)
	router.Patch("/certificates/:id/dgshipping", h.markCertificateUploaded)
	router.Get("/analytics", h.getAnalytics)
}

func (h *AdminHandler) verifyInstitute(c *fiber.Ctx) error {
	var payload dto.InstituteVerifyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	institute, err := h.institutes.Verify(c.Context(), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "institute verification decided", institute)
}

func (h *AdminHandler) listReactivations(c *fiber.Ctx) error {
	requests, err := h.institutes.ListReactivations(c.Context(), c.Query("status"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "reactivation requests retrieved", requests)
}

func (h *AdminHandler) reviewReactivation(c *fiber.Ctx) error {
	var payload dto.ReactivationReviewRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	request, err := h.institutes.ReviewReactivation(c.Context(), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "reactivation request reviewed", request)
}

func (h *AdminHandler) listBookings(c *fiber.Ctx) error {
	bookings, err := h.bookings.ListAll(c.Context(), c.Query("payment_status"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "bookings retrieved", bookings)
}

func (h *AdminHandler) listStudentCertificates(c *fiber.Ctx) error {
	certs, err := h.certificates.ListByStudent(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "certificates retrieved", certs)
}

func (h *AdminHandler) markCertificateUploaded(c *fiber.Ctx) error {
	cert, err := h.certificates.MarkDGShippingUploaded(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "certificate marked uploaded", cert)
}

func (h *AdminHandler) getAnalytics(c *fiber.Ctx) error {
	summary, err := h.analytics.GetSummary(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "analytics retrieved", summary)
}

func (h *AdminHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrInstituteNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "institute not found")
	case errors.Is(err, service.ErrRequestNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "reactivation request not found")
	case errors.Is(err, service.ErrCertificateNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "certificate not found")
	case errors.Is(err, service.ErrInstituteNotPending):
		return utils.SendError(c, fiber.StatusConflict, "institute is not pending verification")
	case errors.Is(err, service.ErrRequestClosed):
		return utils.SendError(c, fiber.StatusConflict, "reactivation request already reviewed")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
