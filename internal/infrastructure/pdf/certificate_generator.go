// Package pdf genera la constancia de registro en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + N° de registro │ Fecha de registro         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TITULAR: Nombre / Razón social + tipo e identificación      │
//	│  CONTACTO: Email / Tel / Dirección                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de verificación + leyenda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/registro-empresas/internal/application/usecase"
	"github.com/jhoicas/registro-empresas/internal/domain/entity"
	"github.com/jhoicas/registro-empresas/internal/domain/identification"
	"github.com/jhoicas/registro-empresas/pkg/dian"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// bogota zona horaria en la que se imprime la fecha; si no está disponible se usa UTC.
var bogota = func() *time.Location {
	if loc, err := time.LoadLocation("America/Bogota"); err == nil {
		return loc
	}
	return time.UTC
}()

var _ usecase.CertificateGenerator = (*MarotoCertificateGenerator)(nil)

// MarotoCertificateGenerator genera constancias con Maroto v2.
type MarotoCertificateGenerator struct {
	issuer string
}

// NewMarotoCertificateGenerator construye el generador; issuer aparece como autor del documento.
func NewMarotoCertificateGenerator(issuer string) *MarotoCertificateGenerator {
	return &MarotoCertificateGenerator{issuer: issuer}
}

// GenerateCertificate genera el PDF y devuelve sus bytes.
func (g *MarotoCertificateGenerator) GenerateCertificate(_ context.Context, data usecase.CertificateData) ([]byte, error) {
	if data.Entity == nil {
		return nil, fmt.Errorf("pdf: registro nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Constancia de registro", true).
		WithAuthor(nonEmpty(g.issuer, "registro-empresas"), true).
		Build()

	m := maroto.New(cfg)
	e := data.Entity

	m.AddRows(headerRow(e))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(holderRow(e, data.CheckDigit))
	m.AddRows(contactRow(e))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(4))
	m.AddRows(footerRow(data.VerifyData))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(e *entity.RegisteredEntity) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("CONSTANCIA DE REGISTRO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Registro N° "+e.ID, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Fecha de registro", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(e.RegisteredAt.In(bogota).Format("02/01/2006 15:04"), props.Text{
				Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Estado: "+e.Status, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func holderRow(e *entity.RegisteredEntity, checkDigit string) core.Row {
	ident := e.RawIdentifier
	if checkDigit != "" {
		ident = fmt.Sprintf("%s (DV %s)", e.RawIdentifier, checkDigit)
	}
	return row.New(18).Add(
		col.New(12).Add(
			text.New("TITULAR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(e.Name, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
			text.New(fmt.Sprintf("%s: %s", typeLabel(e.IdentificationType), ident), props.Text{
				Size: 9, Top: 12, Color: colorGray,
			}),
		),
	)
}

func contactRow(e *entity.RegisteredEntity) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CONTACTO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s   |   Dirección: %s",
				nonEmpty(e.Email, "-"),
				nonEmpty(e.Phone, "-"),
				nonEmpty(e.Address, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

const legalNotice = "La identificación indicada quedó registrada una única vez en el sistema. " +
	"Este documento no reemplaza el RUT expedido por la DIAN."

func footerRow(verifyData string) core.Row {
	if verifyData == "" {
		return row.New(14).Add(col.New(12).Add(
			text.New(legalNotice, props.Text{Size: 7, Top: 4, Color: colorGray}),
		))
	}
	return row.New(45).Add(
		col.New(4).Add(code.NewQr(verifyData, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Escanea el código QR para verificar el registro.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New(legalNotice, props.Text{Size: 7, Top: 16, Left: 3, Color: colorGray}),
		),
	)
}

func typeLabel(t entity.IdentificationType) string {
	if name, ok := dian.IdentificationTypeNames[identification.DIANCode(t)]; ok {
		return name
	}
	return string(t)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
