package identification

import (
	"regexp"
	"strings"

	"github.com/jhoicas/registro-empresas/internal/domain"
	"github.com/jhoicas/registro-empresas/internal/domain/entity"
	"github.com/jhoicas/registro-empresas/pkg/dian"
)

const minNITDigits = 8

var (
	// NIT de 8 a 10 dígitos con dígito de verificación opcional separado por guión.
	nitPattern = regexp.MustCompile(`^\d{8,10}(-\d)?$`)
	digitsOnly = regexp.MustCompile(`^\d+$`)
)

// ValidationResult resultado de validar una identificación. Reason es nil si Valid.
type ValidationResult struct {
	Valid   bool
	Reason  error
	Message string
	// Clean identificación sin espacios ni guiones.
	Clean string
	// CheckDigit dígito de verificación DIAN calculado (solo NIT, informativo).
	CheckDigit string
	// CheckDigitMatches es nil si no se envió dígito de verificación.
	CheckDigitMatches *bool
}

// Validate comprueba la estructura de raw según el tipo declarado. Nunca falla:
// la entrada mal formada es un resultado normal.
func Validate(raw string, t entity.IdentificationType) ValidationResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return invalid(domain.ErrMissingIdentifier, "")
	}
	clean := stripSeparators(trimmed)
	if t != entity.IdentificationNIT {
		return ValidationResult{Valid: true, Message: "identificación aceptada", Clean: clean}
	}
	return validateNIT(trimmed, clean)
}

func validateNIT(trimmed, clean string) ValidationResult {
	if clean == "" || !digitsOnly.MatchString(clean) {
		return invalid(domain.ErrInvalidFormat, clean)
	}
	if len(clean) < minNITDigits {
		return invalid(domain.ErrTooShort, clean)
	}
	compact := removeSpaces(trimmed)
	// Se acepta el NIT sin separadores (8-10 dígitos), con dígito de verificación
	// "XXXXXXXXX-X", o agrupado con guiones siempre que queden 8-10 dígitos.
	if !nitPattern.MatchString(compact) && len(clean) > 10 {
		return invalid(domain.ErrInvalidFormat, clean)
	}

	res := ValidationResult{Valid: true, Message: "formato de NIT válido", Clean: clean}
	base, supplied := splitCheckDigit(compact, clean)
	if dv, err := dian.ComputeNITVerificationDigit(base); err == nil {
		res.CheckDigit = string(dv)
		if supplied != "" {
			ok := supplied == res.CheckDigit
			res.CheckDigitMatches = &ok
		}
	}
	return res
}

// splitCheckDigit separa la base del dígito de verificación cuando viene en forma "base-dv".
func splitCheckDigit(compact, clean string) (base, dv string) {
	if nitPattern.MatchString(compact) {
		if i := strings.LastIndexByte(compact, '-'); i >= 0 {
			return compact[:i], compact[i+1:]
		}
	}
	return clean, ""
}

func invalid(reason error, clean string) ValidationResult {
	return ValidationResult{Reason: reason, Message: message(reason), Clean: clean}
}

func message(reason error) string {
	switch reason {
	case domain.ErrInvalidFormat:
		return "formato de NIT inválido. Formato esperado: XXXXXXXXXX-X o XXXXXXXXXX"
	case domain.ErrTooShort:
		return "el NIT debe tener al menos 8 dígitos"
	default:
		return reason.Error()
	}
}
