// registryctl herramienta de operación del registro de empresas.
//
// Uso:
//
//	go run ./cmd/registryctl seed --file data/seed.csv --charset latin1
//	go run ./cmd/registryctl seed --demo
//	go run ./cmd/registryctl token --subject ops@empresa.co --role operator
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
