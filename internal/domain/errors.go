package domain

import (
	"errors"
	"sort"
	"strings"

	"github.com/jhoicas/registro-empresas/internal/domain/entity"
)

// Errores de dominio. Todos salvo ErrStorageUnavailable son resultados esperados
// de la entrada del usuario, no fallas del sistema.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrMissingIdentifier  = errors.New("el número de identificación es requerido")
	ErrInvalidFormat      = errors.New("formato de identificación inválido")
	ErrTooShort           = errors.New("el NIT debe tener al menos 8 dígitos")
	ErrAlreadyRegistered  = errors.New("la identificación ya está registrada")
	ErrMissingFields      = errors.New("faltan campos requeridos")
	ErrInvalidEmail       = errors.New("formato de email inválido")
	ErrInvalidPhone       = errors.New("formato de teléfono inválido")
	ErrInvalidType        = errors.New("tipo de identificación inválido")
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
)

// Códigos estables expuestos en la API.
const (
	CodeMissingIdentifier  = "MISSING_IDENTIFIER"
	CodeInvalidFormat      = "INVALID_FORMAT"
	CodeTooShort           = "TOO_SHORT"
	CodeAlreadyRegistered  = "ALREADY_REGISTERED"
	CodeMissingFields      = "MISSING_FIELDS"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeInvalidPhone       = "INVALID_PHONE"
	CodeInvalidType        = "INVALID_TYPE"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL"
)

// Code traduce un error de dominio a su código de API.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAlreadyRegistered):
		return CodeAlreadyRegistered
	case errors.Is(err, ErrMissingIdentifier):
		return CodeMissingIdentifier
	case errors.Is(err, ErrTooShort):
		return CodeTooShort
	case errors.Is(err, ErrInvalidFormat):
		return CodeInvalidFormat
	case errors.Is(err, ErrMissingFields):
		return CodeMissingFields
	case errors.Is(err, ErrInvalidEmail):
		return CodeInvalidEmail
	case errors.Is(err, ErrInvalidPhone):
		return CodeInvalidPhone
	case errors.Is(err, ErrInvalidType):
		return CodeInvalidType
	case errors.Is(err, ErrStorageUnavailable):
		return CodeStorageUnavailable
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	default:
		return CodeInternal
	}
}

// IsValidationError informa si err es un resultado esperado de entrada del usuario.
func IsValidationError(err error) bool {
	switch Code(err) {
	case CodeMissingIdentifier, CodeInvalidFormat, CodeTooShort, CodeMissingFields,
		CodeInvalidEmail, CodeInvalidPhone, CodeInvalidType:
		return true
	}
	return false
}

// FieldError agrupa errores atribuidos a campos concretos (campo -> motivo).
type FieldError struct {
	Kind   error
	Fields map[string]string
}

// NewMissingFieldsError construye el error para los campos ausentes indicados.
func NewMissingFieldsError(fields ...string) *FieldError {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f] = "requerido"
	}
	return &FieldError{Kind: ErrMissingFields, Fields: m}
}

// NewFieldError construye un error de formato para un único campo.
func NewFieldError(kind error, field string) *FieldError {
	return &FieldError{Kind: kind, Fields: map[string]string{field: kind.Error()}}
}

func (e *FieldError) Error() string {
	names := e.FieldNames()
	if len(names) == 0 {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + strings.Join(names, ", ")
}

func (e *FieldError) Unwrap() error { return e.Kind }

// FieldNames devuelve los nombres de campo ordenados.
func (e *FieldError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// AlreadyRegisteredError acompaña ErrAlreadyRegistered con el registro existente.
type AlreadyRegisteredError struct {
	Existing *entity.RegisteredEntity
}

func (e *AlreadyRegisteredError) Error() string {
	if e.Existing == nil {
		return ErrAlreadyRegistered.Error()
	}
	return ErrAlreadyRegistered.Error() + ": " + e.Existing.RawIdentifier
}

func (e *AlreadyRegisteredError) Unwrap() error { return ErrAlreadyRegistered }
