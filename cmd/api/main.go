package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/registro-empresas/internal/application/usecase"
	"github.com/jhoicas/registro-empresas/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/registro-empresas/internal/infrastructure/pdf"
	"github.com/jhoicas/registro-empresas/internal/infrastructure/storage"
	"github.com/jhoicas/registro-empresas/internal/infrastructure/tracing"
	httpRouter "github.com/jhoicas/registro-empresas/internal/interfaces/http"
	"github.com/jhoicas/registro-empresas/pkg/config"
	"github.com/jhoicas/registro-empresas/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	shutdownTracing, err := tracing.Setup(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	ctx := context.Background()
	repo, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	// PDF: constancia de registro con QR de verificación
	certificates := infrapdf.NewMarotoCertificateGenerator(cfg.App.Name)
	registrationUC := usecase.NewRegistrationUseCase(repo, certificates, m, log)

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: las rutas /admin rechazarán todas las peticiones")
	}

	app := httpRouter.NewServer(httpRouter.RouterDeps{
		RegistrationUC: registrationUC,
		Log:            log,
		Metrics:        m,
		Gatherer:       prometheus.DefaultGatherer,
		JWTSecret:      cfg.JWT.Secret,
		JWTIssuer:      cfg.JWT.Issuer,
		ServiceName:    cfg.App.Name,
		Version:        cfg.App.Version,
		SwaggerFile:    "./docs/swagger.json",
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := repo.Close(); err != nil {
		log.Error().Err(err).Msg("cerrar almacenamiento")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cerrar trazas")
	}

	log.Info().Msg("aplicación detenida")
}
