package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/registro-empresas/internal/domain/entity"
)

// RegisterRequest entrada de la fase de registro. Acepta los alias que envían los
// distintos formularios (nit / identificationNumber, companyName).
type RegisterRequest struct {
	IdentificationType   string `json:"identificationType" yaml:"identificationType" form:"identificationType"`
	Identification       string `json:"identification" yaml:"identification" form:"identification"`
	NIT                  string `json:"nit" yaml:"nit" form:"nit"`
	IdentificationNumber string `json:"identificationNumber" yaml:"identificationNumber" form:"identificationNumber"`
	Name                 string `json:"name" yaml:"name" form:"name"`
	CompanyName          string `json:"companyName" yaml:"companyName" form:"companyName"`
	FirstName            string `json:"firstName" yaml:"firstName" form:"firstName"`
	SecondName           string `json:"secondName" yaml:"secondName" form:"secondName"`
	FirstLastName        string `json:"firstLastName" yaml:"firstLastName" form:"firstLastName"`
	SecondLastName       string `json:"secondLastName" yaml:"secondLastName" form:"secondLastName"`
	Email                string `json:"email" yaml:"email" form:"email"`
	Phone                string `json:"phone" yaml:"phone" form:"phone"`
	Address              string `json:"address" yaml:"address" form:"address"`
}

// RawIdentifier primer alias no vacío del identificador.
func (r RegisterRequest) RawIdentifier() string {
	return firstNonEmpty(r.Identification, r.NIT, r.IdentificationNumber)
}

// CompanyNameValue razón social enviada como name o companyName.
func (r RegisterRequest) CompanyNameValue() string {
	return firstNonEmpty(r.Name, r.CompanyName)
}

// Details construye la variante de detalle según el tipo.
func (r RegisterRequest) Details(t entity.IdentificationType) entity.RegistrationDetails {
	if t.RequiresCompanyName() {
		return entity.CompanyDetails{Name: r.CompanyNameValue()}
	}
	return entity.PersonDetails{
		FirstName:      r.FirstName,
		SecondName:     r.SecondName,
		FirstLastName:  r.FirstLastName,
		SecondLastName: r.SecondLastName,
	}
}

// RegistrationResponse salida de un registro.
type RegistrationResponse struct {
	ID                 string    `json:"id"`
	NIT                string    `json:"nit"`
	NormalizedNIT      string    `json:"normalizedNIT"`
	IdentificationType string    `json:"identificationType"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Address            string    `json:"address"`
	RegisteredAt       time.Time `json:"registeredAt"`
	Status             string    `json:"status"`
}

// RegistrationListResponse lista paginada de registros.
type RegistrationListResponse struct {
	Items []RegistrationResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// NewRegistrationResponse mapea la entidad a su representación de salida.
func NewRegistrationResponse(e *entity.RegisteredEntity) *RegistrationResponse {
	if e == nil {
		return nil
	}
	return &RegistrationResponse{
		ID:                 e.ID,
		NIT:                e.RawIdentifier,
		NormalizedNIT:      e.NormalizedIdentifier,
		IdentificationType: string(e.IdentificationType),
		Name:               e.Name,
		Email:              e.Email,
		Phone:              e.Phone,
		Address:            e.Address,
		RegisteredAt:       e.RegisteredAt,
		Status:             e.Status,
	}
}

// firstNonEmpty primer valor con contenido distinto de espacios.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
