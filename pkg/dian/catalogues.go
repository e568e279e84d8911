// Package dian contiene catálogos y cálculos alineados al Anexo Técnico
// de Factura Electrónica de Venta DIAN (Colombia) v1.9.
package dian

// =============================================================================
// Tabla 3 - Tipos de identificación (Anexo 1.9 - 13.2.1)
// =============================================================================

const (
	IdentificationTypeNIT             = "31" // NIT - admite dígito de verificación
	IdentificationTypeCC              = "13" // Cédula de ciudadanía
	IdentificationTypeForeignDocument = "42" // Documento de identificación extranjero
)

// IdentificationTypeNames descripción de cada código de la Tabla 3 soportado.
var IdentificationTypeNames = map[string]string{
	IdentificationTypeNIT:             "NIT",
	IdentificationTypeCC:              "Cédula de ciudadanía",
	IdentificationTypeForeignDocument: "Documento de identificación extranjero",
}
