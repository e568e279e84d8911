// Package seeding carga registros de aprovisionamiento desde archivos JSON, YAML o CSV
// y los fusiona en el almacén. No aplica la validación del flujo de registro: el operador
// es responsable de los datos.
package seeding

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/registro-empresas/internal/application/dto"
	"github.com/jhoicas/registro-empresas/internal/domain"
	"github.com/jhoicas/registro-empresas/internal/domain/entity"
	"github.com/jhoicas/registro-empresas/internal/domain/identification"
	"github.com/jhoicas/registro-empresas/internal/domain/repository"
)

// Formatos de archivo admitidos.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// FormatFromPath deduce el formato por la extensión del archivo.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("seeding: extensión no soportada %q", filepath.Ext(path))
}

// Decode lee solicitudes en el formato indicado. charset solo aplica a CSV
// ("", "utf-8" o "latin1"/"iso-8859-1").
func Decode(r io.Reader, format, charset string) ([]dto.RegisterRequest, error) {
	switch format {
	case FormatJSON:
		var out []dto.RegisterRequest
		if err := json.NewDecoder(r).Decode(&out); err != nil {
			return nil, fmt.Errorf("seeding: decodificar JSON: %w", err)
		}
		return out, nil
	case FormatYAML:
		var out []dto.RegisterRequest
		if err := yaml.NewDecoder(r).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("seeding: decodificar YAML: %w", err)
		}
		return out, nil
	case FormatCSV:
		reader, err := withCharset(r, charset)
		if err != nil {
			return nil, err
		}
		return decodeCSV(reader)
	}
	return nil, fmt.Errorf("seeding: formato desconocido %q", format)
}

func withCharset(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, fmt.Errorf("seeding: charset no soportado %q", charset)
}

// decodeCSV espera una cabecera con los nombres de campo JSON de RegisterRequest.
func decodeCSV(r io.Reader) ([]dto.RegisterRequest, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("seeding: leer cabecera CSV: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var out []dto.RegisterRequest
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("seeding: CSV línea %d: %w", line, err)
		}
		var req dto.RegisterRequest
		for i, col := range header {
			if i < len(rec) {
				setField(&req, col, strings.TrimSpace(rec[i]))
			}
		}
		out = append(out, req)
	}
	return out, nil
}

func setField(r *dto.RegisterRequest, col, v string) {
	switch col {
	case "identificationType":
		r.IdentificationType = v
	case "identification":
		r.Identification = v
	case "nit":
		r.NIT = v
	case "identificationNumber":
		r.IdentificationNumber = v
	case "name":
		r.Name = v
	case "companyName":
		r.CompanyName = v
	case "firstName":
		r.FirstName = v
	case "secondName":
		r.SecondName = v
	case "firstLastName":
		r.FirstLastName = v
	case "secondLastName":
		r.SecondLastName = v
	case "email":
		r.Email = v
	case "phone":
		r.Phone = v
	case "address":
		r.Address = v
	}
}

// Builder convierte solicitudes en registros listos para Seed.
type Builder struct {
	Now   func() time.Time
	NewID func() string
}

// Build normaliza cada solicitud. Falla si alguna no trae identificación o tipo válido.
func (b Builder) Build(reqs []dto.RegisterRequest) ([]*entity.RegisteredEntity, error) {
	now, newID := b.Now, b.NewID
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	registeredAt := now().UTC().Truncate(time.Microsecond)

	out := make([]*entity.RegisteredEntity, 0, len(reqs))
	for i, req := range reqs {
		t := entity.IdentificationNIT
		if strings.TrimSpace(req.IdentificationType) != "" {
			parsed, err := identification.ParseType(req.IdentificationType)
			if err != nil {
				return nil, fmt.Errorf("seeding: registro %d: %w", i+1, err)
			}
			t = parsed
		}
		raw := strings.TrimSpace(req.RawIdentifier())
		key := identification.Normalize(raw)
		if key == "" {
			return nil, fmt.Errorf("seeding: registro %d: %w", i+1, domain.ErrMissingIdentifier)
		}
		out = append(out, &entity.RegisteredEntity{
			ID:                   newID(),
			RawIdentifier:        raw,
			NormalizedIdentifier: key,
			IdentificationType:   t,
			Name:                 req.Details(t).DisplayName(),
			Email:                strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:                strings.TrimSpace(req.Phone),
			Address:              strings.TrimSpace(req.Address),
			RegisteredAt:         registeredAt,
			Status:               entity.StatusActive,
		})
	}
	return out, nil
}

// Run construye los registros y los fusiona en repo. Devuelve cuántos se procesaron.
func Run(ctx context.Context, repo repository.RegistrationRepository, reqs []dto.RegisterRequest) (int, error) {
	list, err := Builder{}.Build(reqs)
	if err != nil {
		return 0, err
	}
	if len(list) == 0 {
		return 0, nil
	}
	return repo.Seed(ctx, list)
}

// Demo conjunto de empresas de ejemplo para entornos de desarrollo.
func Demo() []dto.RegisterRequest {
	return []dto.RegisterRequest{
		{Identification: "900674335", Name: "Seeded Company A", Email: "a@example.com", Phone: "3000000001", Address: "Carrera 1 # 10 - 20"},
		{Identification: "900674336", Name: "Seeded Company B", Email: "b@example.com", Phone: "3000000002", Address: "Carrera 2 # 20 - 30"},
		{Identification: "811033098", Name: "Seeded Company C", Email: "c@example.com", Phone: "3000000003", Address: "Calle 3 # 30 - 40"},
	}
}
