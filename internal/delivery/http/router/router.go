package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"signpubliq/internal/config"
	"signpubliq/internal/delivery/http/handler"
)

type Router struct {
	app              *fiber.App
	config           *config.Config
	sessionHandler   *handler.SessionHandler
	envelopeHandler  *handler.EnvelopeHandler
	authHandler      *handler.AuthHandler
	dashboardHandler *handler.DashboardHandler
	healthHandler    *handler.HealthHandler
}

func NewRouter(
	cfg *config.Config,
	sessionHandler *handler.SessionHandler,
	envelopeHandler *handler.EnvelopeHandler,
	authHandler *handler.AuthHandler,
	dashboardHandler *handler.DashboardHandler,
	healthHandler *handler.HealthHandler,
) *Router {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: customErrorHandler,
		// Multipart uploads carry whole documents; the body limit
		// matches the envelope ceiling with headroom for encoding.
		BodyLimit: int(cfg.Wizard.MaxEnvelopeMB+5) << 20,
	})

	return &Router{
		app:              app,
		config:           cfg,
		sessionHandler:   sessionHandler,
		envelopeHandler:  envelopeHandler,
		authHandler:      authHandler,
		dashboardHandler: dashboardHandler,
		healthHandler:    healthHandler,
	}
}

func (r *Router) Setup() *fiber.App {
	// Middleware
	r.app.Use(recover.New())
	r.app.Use(requestid.New())
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Writer-Token",
	}))

	if r.config.IsDevelopment() {
		r.app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	// Health check route
	r.app.Get("/health", r.healthHandler.Health)

	// API v1 routes
	api := r.app.Group("/api/v1")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.Post("/login", r.authHandler.Login)
			auth.Post("/logout", r.authHandler.Logout)
			auth.Get("/me", r.authHandler.Me)
			auth.Post("/signup/initiate", r.authHandler.InitiateSignup)
			auth.Post("/signup/verify", r.authHandler.VerifyEmail)
			auth.Post("/signup/complete", r.authHandler.CompleteSignup)
		}

		// Dashboard routes
		api.Get("/dashboard/summary", r.dashboardHandler.Summary)

		// Wizard session routes
		sessions := api.Group("/sessions")
		{
			sessions.Post("", r.sessionHandler.Create)
			sessions.Get("/:id", r.sessionHandler.Get)
			sessions.Delete("/:id", r.sessionHandler.Cancel)

			sessions.Post("/:id/documents", r.sessionHandler.Upload)
			sessions.Delete("/:id/documents/:index", r.sessionHandler.RemoveDocument)

			sessions.Post("/:id/recipients", r.sessionHandler.AddRecipient)
			sessions.Patch("/:id/recipients/:rid", r.sessionHandler.UpdateRecipient)
			sessions.Delete("/:id/recipients/:rid", r.sessionHandler.RemoveRecipient)

			sessions.Post("/:id/gestures", r.sessionHandler.Gesture)
			sessions.Put("/:id/fields/:fid/position", r.sessionHandler.MoveField)
			sessions.Delete("/:id/fields/:fid", r.sessionHandler.DeleteField)

			sessions.Patch("/:id/settings", r.sessionHandler.UpdateSettings)

			sessions.Get("/:id/review", r.envelopeHandler.Review)
			sessions.Post("/:id/send", r.envelopeHandler.Send)
		}

		// Manage listing
		api.Get("/envelopes", r.envelopeHandler.List)
	}

	return r.app
}

func (r *Router) GetApp() *fiber.App {
	return r.app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
		"error": fiber.Map{
			"code":    code,
			"message": err.Error(),
		},
	})
}
