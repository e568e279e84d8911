// Package identification normaliza y valida números de identificación (NIT,
// documentos extranjeros y otros). Todas las funciones son puras y totales.
package identification

import (
	"strings"
	"unicode"
)

// Normalize devuelve la clave canónica de unicidad: sin espacios ni guiones y en minúsculas.
// Debe usarse igual en escritura y en lectura.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r == '-' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// stripSeparators quita espacios y guiones sin cambiar mayúsculas.
func stripSeparators(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

func removeSpaces(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}
