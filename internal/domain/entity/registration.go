package entity

import (
	"strings"
	"time"
)

// IdentificationType tipo de identificación declarado por quien registra.
type IdentificationType string

const (
	IdentificationNIT     IdentificationType = "NIT"     // NIT colombiano (persona jurídica)
	IdentificationForeign IdentificationType = "FOREIGN" // documento extranjero
	IdentificationOther   IdentificationType = "OTHER"   // persona natural u otro documento
)

// StatusActive es el único estado asignado en la creación.
const StatusActive = "active"

// Valid informa si el tipo es uno de los conocidos.
func (t IdentificationType) Valid() bool {
	switch t {
	case IdentificationNIT, IdentificationForeign, IdentificationOther:
		return true
	}
	return false
}

// RequiresCompanyName informa si el tipo exige razón social (NIT y extranjero)
// en lugar de nombres y apellidos.
func (t IdentificationType) RequiresCompanyName() bool {
	return t == IdentificationNIT || t == IdentificationForeign
}

// RegisteredEntity representa una empresa o persona registrada una única vez por identificación.
// Se crea una sola vez y no se modifica.
type RegisteredEntity struct {
	ID                   string             `json:"id" yaml:"id"`
	RawIdentifier        string             `json:"nit" yaml:"nit"`
	NormalizedIdentifier string             `json:"normalizedNIT" yaml:"normalizedNIT"`
	IdentificationType   IdentificationType `json:"identificationType" yaml:"identificationType"`
	Name                 string             `json:"name" yaml:"name"`
	Email                string             `json:"email" yaml:"email"`
	Phone                string             `json:"phone" yaml:"phone"`
	Address              string             `json:"address" yaml:"address"`
	RegisteredAt         time.Time          `json:"registeredAt" yaml:"registeredAt"`
	Status               string             `json:"status" yaml:"status"`
}

// Clone devuelve una copia independiente (los stores nunca exponen su estado interno).
func (e *RegisteredEntity) Clone() *RegisteredEntity {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

// RegistrationDetails datos de detalle según el tipo: CompanyDetails o PersonDetails.
type RegistrationDetails interface {
	// DisplayName nombre a persistir.
	DisplayName() string
	// MissingFields nombres de los campos requeridos ausentes.
	MissingFields() []string
}

// CompanyDetails detalles para NIT y documento extranjero.
type CompanyDetails struct {
	Name string
}

func (d CompanyDetails) DisplayName() string { return strings.TrimSpace(d.Name) }

func (d CompanyDetails) MissingFields() []string {
	if strings.TrimSpace(d.Name) == "" {
		return []string{"name"}
	}
	return nil
}

// PersonDetails detalles de persona natural; SecondName es opcional.
type PersonDetails struct {
	FirstName      string
	SecondName     string
	FirstLastName  string
	SecondLastName string
}

// DisplayName une las partes no vacías con un espacio.
func (d PersonDetails) DisplayName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{d.FirstName, d.SecondName, d.FirstLastName, d.SecondLastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func (d PersonDetails) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(d.FirstName) == "" {
		missing = append(missing, "firstName")
	}
	if strings.TrimSpace(d.FirstLastName) == "" {
		missing = append(missing, "firstLastName")
	}
	if strings.TrimSpace(d.SecondLastName) == "" {
		missing = append(missing, "secondLastName")
	}
	return missing
}
