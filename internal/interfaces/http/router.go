package http

import (
	"errors"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/registro-empresas/internal/application/dto"
	"github.com/jhoicas/registro-empresas/internal/application/usecase"
	"github.com/jhoicas/registro-empresas/internal/domain"
	"github.com/jhoicas/registro-empresas/internal/infrastructure/metrics"
	"github.com/jhoicas/registro-empresas/pkg/jwt"
	"github.com/jhoicas/registro-empresas/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegistrationUC *usecase.RegistrationUseCase
	Log            *logger.Logger
	Metrics        *metrics.Metrics    // opcional
	Gatherer       prometheus.Gatherer // opcional; sin él no se expone /metrics
	JWTSecret      string
	JWTIssuer      string
	ServiceName    string
	Version        string
	SwaggerFile    string // se monta /docs solo si el archivo existe
}

// NewServer construye la aplicación Fiber con middlewares y rutas.
func NewServer(deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.ServiceName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		UnescapePath: true,
		// Params, Body y Form se copian fuera de los buffers de fasthttp.
		Immutable:    true,
		ErrorHandler: errorHandler(deps.Log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(requestLogger(deps.Log, deps.Metrics))

	// Swagger UI en local: http://localhost:<port>/docs
	if deps.SwaggerFile != "" {
		if _, err := os.Stat(deps.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.SwaggerFile,
				Path:     "docs",
				Title:    "Registro de empresas API",
			}))
		}
	}

	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	Router(app, deps)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    domain.CodeNotFound,
			Message: "la ruta " + c.Method() + " " + c.Path() + " no existe",
		})
	})
	return app
}

// Router registra las rutas en la raíz y bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	registrations := NewRegistrationHandler(deps.RegistrationUC, deps.Log)
	validation := NewValidationHandler(deps.RegistrationUC, deps.Log)
	health := healthHandler(deps.ServiceName, deps.Version)

	for _, r := range []fiber.Router{app, app.Group("/api")} {
		r.Get("/health", health)
		r.Get("/validation/health", health)
		r.Post("/validation/:type", validation.Validate)

		for _, prefix := range []string{"/registrations", "/companies"} {
			g := r.Group(prefix)
			g.Post("/", registrations.Create)
			g.Get("/:identifier/certificate", registrations.Certificate)
			g.Get("/:identifier", registrations.GetByIdentifier)
		}

		// Rutas de operador (requieren Bearer Token con rol operator o admin)
		admin := r.Group("/admin", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer), RequireRole(jwt.RoleOperator, jwt.RoleAdmin))
		admin.Get("/registrations", registrations.List)
	}
}

func healthHandler(service, version string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{
			Status:    "ok",
			Service:   service,
			Version:   version,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// requestLogger registra cada petición y su duración.
func requestLogger(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		if m != nil {
			m.ObserveHTTPRequest(c.Method(), c.Route().Path, status, start)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		rid, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", rid).
			Msg("request")
		return err
	}
}

func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
			return c.Status(code).JSON(dto.ErrorResponse{Code: domain.CodeInternal, Message: "error interno"})
		}
		return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: err.Error()})
	}
}
