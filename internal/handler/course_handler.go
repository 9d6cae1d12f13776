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

// CourseHandler wires course catalogue HTTP routes.
type CourseHandler struct {
	courses     service.CourseService
	batches     service.BatchService
	enrollments service.EnrollmentService
	logger      zerolog.Logger
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(courses service.CourseService, batches service.BatchService, enrollments service.EnrollmentService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courses:     courses,
		batches:     batches,
		enrollments: enrollments,
		logger:      logger.With().Str("component", "course_handler").Logger(),
	}
}

// RegisterPublic attaches the unauthenticated catalogue endpoints.
func (h *CourseHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Get("/:id/batches", h.listBatches)
	router.Get("/:id/lessons", h.listLessons)
}

// RegisterOwner attaches the institute catalogue management endpoints.
func (h *CourseHandler) RegisterOwner(router fiber.Router) {
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/batches", h.createBatch)
	router.Post("/:id/lessons", h.createLesson)
	router.Delete("/lessons/:lessonid", h.deleteLesson)
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	filters := service.CourseFilters{
		InstID: c.Query("instid"),
		Type:   c.Query("type"),
		Mode:   c.Query("mode"),
		City:   c.Query("city"),
		Status: c.Query("status"),
	}

	courses, err := h.courses.List(c.Context(), filters)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "courses retrieved", courses)
}

func (h *CourseHandler) get(c *fiber.Ctx) error {
	course, err := h.courses.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "course retrieved", course)
}

func (h *CourseHandler) create(c *fiber.Ctx) error {
	var payload dto.CourseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	course, err := h.courses.Create(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "course published", course)
}

func (h *CourseHandler) update(c *fiber.Ctx) error {
	var payload dto.CourseUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	course, err := h.courses.Update(c.Context(), userIDFromContext(c), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "course updated", course)
}

func (h *CourseHandler) delete(c *fiber.Ctx) error {
	if err := h.courses.Delete(c.Context(), userIDFromContext(c), c.Params("id")); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "course deleted", fiber.Map{"courseid": c.Params("id")})
}

func (h *CourseHandler) listBatches(c *fiber.Ctx) error {
	batches, err := h.batches.List(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "batches retrieved", batches)
}

func (h *CourseHandler) createBatch(c *fiber.Ctx) error {
	var payload dto.BatchCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	batch, err := h.batches.Create(c.Context(), userIDFromContext(c), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "batch scheduled", batch)
}

func (h *CourseHandler) listLessons(c *fiber.Ctx) error {
	lessons, err := h.enrollments.ListLessons(c.Context(), c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "lessons retrieved", lessons)
}

func (h *CourseHandler) createLesson(c *fiber.Ctx) error {
	var payload dto.LessonCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	lesson, err := h.enrollments.CreateLesson(c.Context(), userIDFromContext(c), c.Params("id"), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "lesson created", lesson)
}

func (h *CourseHandler) deleteLesson(c *fiber.Ctx) error {
	if err := h.enrollments.DeleteLesson(c.Context(), userIDFromContext(c), c.Params("lessonid")); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "lesson deleted", fiber.Map{"lessonid": c.Params("lessonid")})
}

func (h *CourseHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "course not found")
	case errors.Is(err, service.ErrLessonNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
	case errors.Is(err, service.ErrInstituteNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "institute not found")
	case errors.Is(err, service.ErrNotCourseOwner):
		return utils.SendError(c, fiber.StatusForbidden, "course belongs to another institute")
	case errors.Is(err, service.ErrInstituteNotVerified):
		return utils.SendError(c, fiber.StatusForbidden, "institute is not verified")
	case errors.Is(err, service.ErrInstituteExpired):
		return utils.SendError(c, fiber.StatusForbidden, "institute accreditation has expired")
	case errors.Is(err, service.ErrCourseNotOnline):
		return utils.SendError(c, fiber.StatusConflict, "course has no online content")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case isBadRequest(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
