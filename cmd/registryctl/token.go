package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/registro-empresas/pkg/jwt"
)

var (
	tokenSubject string
	tokenRole    string
	tokenExpMin  int
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite un JWT para las rutas /admin",
	Long: `Firma un token HS256 con JWT_SECRET y JWT_ISSUER de la configuración.

Ejemplo:
  curl -H "Authorization: Bearer $(registryctl token --subject ops@empresa.co)" \
    localhost:3001/api/admin/registrations`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		if cfg.JWT.Secret == "" {
			return errors.New("JWT_SECRET no está configurado")
		}
		exp := tokenExpMin
		if exp <= 0 {
			exp = cfg.JWT.Expiration
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, tokenSubject, tokenRole, cfg.JWT.Issuer, exp)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "", "identidad del operador")
	tokenCmd.Flags().StringVarP(&tokenRole, "role", "r", jwt.RoleOperator, "rol: operator o admin")
	tokenCmd.Flags().IntVar(&tokenExpMin, "exp", 0, "minutos de validez (por defecto JWT_EXPIRATION_MINUTES)")
	_ = tokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(tokenCmd)
}
