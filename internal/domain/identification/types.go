package identification

import (
	"strings"

	"github.com/jhoicas/registro-empresas/internal/domain"
	"github.com/jhoicas/registro-empresas/internal/domain/entity"
	"github.com/jhoicas/registro-empresas/pkg/dian"
)

// ParseType interpreta el tipo de identificación por nombre ("nit", "foreign", "other",
// sin distinguir mayúsculas) o por código DIAN de la Tabla 3 ("31", "42", "13").
func ParseType(s string) (entity.IdentificationType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(entity.IdentificationNIT), dian.IdentificationTypeNIT:
		return entity.IdentificationNIT, nil
	case string(entity.IdentificationForeign), "EXTRANJERO", dian.IdentificationTypeForeignDocument:
		return entity.IdentificationForeign, nil
	case string(entity.IdentificationOther), "OTRO", "CC", dian.IdentificationTypeCC:
		return entity.IdentificationOther, nil
	}
	return "", domain.ErrInvalidType
}

// DIANCode devuelve el código de la Tabla 3 DIAN correspondiente al tipo.
func DIANCode(t entity.IdentificationType) string {
	switch t {
	case entity.IdentificationNIT:
		return dian.IdentificationTypeNIT
	case entity.IdentificationForeign:
		return dian.IdentificationTypeForeignDocument
	default:
		return dian.IdentificationTypeCC
	}
}
