package dian

import (
	"fmt"
	"unicode"
)

// pesos para el cálculo del dígito de verificación NIT (Orden Administrativa 4 de 1989, DIAN).
// Se aplican de derecha a izquierda sobre los dígitos del NIT (máximo 15).
var nitWeights = [15]int{3, 7, 13, 17, 19, 23, 29, 37, 41, 43, 47, 53, 59, 67, 71}

// ComputeNITVerificationDigit calcula el dígito de verificación (módulo 11) del NIT sin DV.
// taxID puede traer puntos, espacios o guiones; solo se consideran los dígitos.
func ComputeNITVerificationDigit(taxID string) (byte, error) {
	digits := extractDigits(taxID)
	if len(digits) == 0 {
		return 0, fmt.Errorf("dian: NIT sin dígitos")
	}
	if len(digits) > len(nitWeights) {
		return 0, fmt.Errorf("dian: NIT admite máximo %d dígitos, se encontraron %d", len(nitWeights), len(digits))
	}
	var sum int
	for i := 0; i < len(digits); i++ {
		d := digits[len(digits)-1-i]
		sum += int(d-'0') * nitWeights[i]
	}
	remainder := sum % 11
	if remainder == 0 || remainder == 1 {
		return byte('0' + remainder), nil
	}
	return byte('0' + (11 - remainder)), nil
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
