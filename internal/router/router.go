package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/marinedeck/maritime-api/internal/config"
	"github.com/marinedeck/maritime-api/internal/handler"
	"github.com/marinedeck/maritime-api/internal/middleware"
	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler        *handler.AuthHandler
	InstituteHandler   *handler.InstituteHandler
	AdminHandler       *handler.AdminHandler
	CourseHandler      *handler.CourseHandler
	BatchHandler       *handler.BatchHandler
	BookingHandler     *handler.BookingHandler
	PaymentHandler     *handler.PaymentHandler
	CertificateHandler *handler.CertificateHandler
	EnrollmentHandler  *handler.EnrollmentHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	// Public catalogue
	if deps.InstituteHandler != nil {
		deps.InstituteHandler.RegisterPublic(api.Group("/institutes"))
	}
	if deps.CourseHandler != nil {
		deps.CourseHandler.RegisterPublic(api.Group("/courses"))
	}
	if deps.BatchHandler != nil {
		deps.BatchHandler.RegisterPublic(api.Group("/batches"))
	}

	// Institute self-service
	if deps.InstituteHandler != nil {
		institute := api.Group("/institute", jwtMiddleware, middleware.RequireRole(models.RoleInstitute))
		deps.InstituteHandler.RegisterOwner(institute)
		if deps.CourseHandler != nil {
			deps.CourseHandler.RegisterOwner(institute.Group("/courses"))
		}
		if deps.BatchHandler != nil {
			deps.BatchHandler.RegisterOwner(institute.Group("/batches"))
		}
		if deps.BookingHandler != nil {
			deps.BookingHandler.RegisterOwner(institute.Group("/bookings"))
		}
		if deps.CertificateHandler != nil {
			deps.CertificateHandler.RegisterOwner(institute.Group("/certificates"))
		}
	}

	// Student self-service
	student := api.Group("/student", jwtMiddleware, middleware.RequireRole(models.RoleStudent))
	if deps.BookingHandler != nil {
		deps.BookingHandler.RegisterStudent(student.Group("/bookings"))
	}
	if deps.PaymentHandler != nil {
		deps.PaymentHandler.RegisterStudent(student.Group("/payments"))
	}
	if deps.CertificateHandler != nil {
		deps.CertificateHandler.RegisterStudent(student.Group("/certificates"))
	}
	if deps.EnrollmentHandler != nil {
		deps.EnrollmentHandler.RegisterStudent(student.Group("/enrollments"))
	}

	// Admin
	if deps.AdminHandler != nil {
		admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
		deps.AdminHandler.Register(admin)
	}
}
