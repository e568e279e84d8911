package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/registro-empresas/pkg/config"
	"github.com/jhoicas/registro-empresas/pkg/logger"
)

var (
	version     = "dev"
	storeDriver string
)

var rootCmd = &cobra.Command{
	Use:           "registryctl",
	Short:         "Operación del registro de empresas",
	Long:          `Comandos de operador: aprovisionamiento del almacén y emisión de tokens para las rutas /admin.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", "",
		"driver de almacenamiento (file, sqlite, postgres); por defecto STORE_DRIVER")
}

// loadConfig carga la configuración (.env y variables de entorno) aplicando los flags.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if storeDriver != "" {
		cfg.Store.Driver = storeDriver
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: "registryctl",
		Version: cfg.App.Version,
	})
	return cfg, log, nil
}
