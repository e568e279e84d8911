package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/registro-empresas/internal/application/dto"
	"github.com/jhoicas/registro-empresas/internal/application/seeding"
	"github.com/jhoicas/registro-empresas/internal/infrastructure/storage"
)

var (
	seedFile    string
	seedFormat  string
	seedCharset string
	seedDemo    bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fusiona registros en el almacén (el último de cada identificación gana)",
	Long: `Carga registros desde un archivo JSON, YAML o CSV y los fusiona por identificación
normalizada. Un registro existente se reemplaza.

Los CSV llevan cabecera con los nombres de campo del API
(identification, name, email, phone, address, ...).

Ejemplos:
  registryctl seed --file data/seed.json
  registryctl seed --file empresas.csv --charset latin1
  registryctl seed --demo --store sqlite`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "archivo de registros")
	seedCmd.Flags().StringVar(&seedFormat, "format", "", "json, yaml o csv (por defecto según la extensión)")
	seedCmd.Flags().StringVar(&seedCharset, "charset", "", "codificación del CSV: utf-8 o latin1")
	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "cargar las empresas de ejemplo")
	seedCmd.MarkFlagsMutuallyExclusive("file", "demo")
	seedCmd.MarkFlagsOneRequired("file", "demo")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	reqs := seeding.Demo()
	if !seedDemo {
		reqs, err = readSeedFile(seedFile, seedFormat, seedCharset)
		if err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	repo, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("abrir almacenamiento: %w", err)
	}
	defer repo.Close()

	n, err := seeding.Run(ctx, repo, reqs)
	if err != nil {
		return err
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("seeded", n).Int("total", total).Str("store", cfg.Store.Driver).Msg("aprovisionamiento completado")
	fmt.Fprintf(cmd.OutOrStdout(), "%d registros procesados, %d en el almacén\n", n, total)
	return nil
}

func readSeedFile(path, format, charset string) ([]dto.RegisterRequest, error) {
	if format == "" {
		f, err := seeding.FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		format = f
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	return seeding.Decode(f, format, charset)
}
