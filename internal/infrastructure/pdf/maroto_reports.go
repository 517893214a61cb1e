// Package pdf genera los reportes exportables del panel (listado de empresas y de editais).
//
// Layout de la página A4 apaisada:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Lancei + título          │  Emitido em dd/mm/aaaa   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: cabecera con fondo + una fila por registro          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de registros                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	marotoentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/lancei-admin/internal/application/ports"
	"github.com/jhoicas/lancei-admin/internal/domain/entity"
	"github.com/jhoicas/lancei-admin/pkg/cnpj"
	"github.com/jhoicas/lancei-admin/pkg/ptbr"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 120}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ ports.ReportGenerator = (*MarotoReports)(nil)

// column cabecera de tabla: etiqueta y ancho en la grilla de 12.
type column struct {
	label string
	size  int
	align align.Type
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReports implementa ports.ReportGenerator usando Maroto v2.
type MarotoReports struct {
	now func() time.Time
}

// NewMarotoReports construye el generador.
func NewMarotoReports() *MarotoReports { return &MarotoReports{now: time.Now} }

// WithClock reemplaza el reloj (tests).
func (g *MarotoReports) WithClock(now func() time.Time) *MarotoReports {
	g.now = now
	return g
}

// CompaniesReport listado de empresas con estado y plan.
func (g *MarotoReports) CompaniesReport(_ context.Context, title string, companies []*entity.Company) ([]byte, error) {
	m := maroto.New(g.config(title))
	m.AddRows(g.headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	cols := []column{
		{"Empresa", 4, align.Left},
		{"CNPJ", 2, align.Left},
		{"E-mail", 3, align.Left},
		{"Status", 1, align.Center},
		{"Plano", 2, align.Left},
	}
	m.AddRows(tableHeaderRow(cols))
	for _, c := range companies {
		m.AddRows(tableRow(cols,
			c.Name,
			cnpj.Format(c.CNPJ),
			c.Email,
			c.Status,
			planLabel(c),
		))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(companies), "empresa(s)"))

	return generate(m)
}

// TendersReport editais de una empresa.
func (g *MarotoReports) TendersReport(_ context.Context, company *entity.Company, tenders []*entity.Tender) ([]byte, error) {
	title := "Editais - " + company.Name
	m := maroto.New(g.config(title))
	m.AddRows(g.headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	cols := []column{
		{"Órgão", 3, align.Left},
		{"Edital", 2, align.Left},
		{"Plataforma", 2, align.Left},
		{"Disputa", 2, align.Center},
		{"Proposta até", 2, align.Center},
		{"Status", 1, align.Center},
	}
	m.AddRows(tableHeaderRow(cols))
	for _, t := range tenders {
		m.AddRows(tableRow(cols,
			t.Organ,
			t.Number,
			t.Platform,
			ptbr.DateTime(t.DisputeAt),
			ptbr.DateTime(t.ProposalDeadline),
			t.Status,
		))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(tenders), "edital(is)"))

	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReports) config(title string) *marotoentity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor("Lancei", true).
		Build()
}

// headerRow: marca + título (izq) y fecha de emisión (der).
func (g *MarotoReports) headerRow(title string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Lancei", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{Size: 10, Top: 8, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Emitido em "+ptbr.DateTime(g.now()), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera con fondo de color primario.
func tableHeaderRow(cols []column) core.Row {
	r := row.New(8)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r.WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRow: una fila con un valor por columna.
func tableRow(cols []column, values ...string) core.Row {
	r := row.New(7)
	for i, c := range cols {
		r.Add(col.New(c.size).Add(text.New(nonEmpty(values[i], "-"), props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return r
}

func footerRow(total int, noun string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total: %d %s", total, noun), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2, Color: colorGray,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// planLabel nombre del plan y marcador de prueba ("Básico", "Teste (7 dias) · expirado").
func planLabel(c *entity.Company) string {
	label := c.PlanName
	if c.PlanTier != nil {
		if label == "" {
			return *c.PlanTier
		}
		label += " · " + *c.PlanTier
	}
	return label
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
