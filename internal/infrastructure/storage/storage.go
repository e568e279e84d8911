// Package storage elige e inicializa el backend del registro según STORE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/registro-empresas/internal/domain/repository"
	"github.com/jhoicas/registro-empresas/internal/infrastructure/filestore"
	"github.com/jhoicas/registro-empresas/internal/infrastructure/postgres"
	"github.com/jhoicas/registro-empresas/internal/infrastructure/sqlite"
	"github.com/jhoicas/registro-empresas/pkg/config"
	"github.com/jhoicas/registro-empresas/pkg/logger"
)

// Open abre el store configurado. Con postgres aplica las migraciones antes de crear el pool.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.RegistrationRepository, error) {
	switch cfg.Store.Driver {
	case config.StoreFile:
		s, err := filestore.Open(cfg.Store.FilePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", config.StoreFile).Str("path", s.Path()).Msg("store de archivo listo")
		return s, nil

	case config.StoreSQLite:
		s, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", config.StoreSQLite).Str("path", cfg.Store.SQLitePath).Msg("store sqlite listo")
		return s, nil

	case config.StorePostgres:
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			return nil, fmt.Errorf("storage: migraciones: %w", err)
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("storage: conectar postgres: %w", err)
		}
		log.Info().Str("driver", config.StorePostgres).Int("max_conns", int(pool.Config().MaxConns)).Msg("store postgres listo")
		return postgres.NewRegistrationStore(pool), nil

	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Store.Driver)
	}
}
