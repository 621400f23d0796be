// Package pdf genera la versión imprimible del reporte diario de la línea de pruebas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Unidad + Supervisor  │  Fecha + Turno               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TURNO MAÑANA: Operador | Prob. | Apr. | Rech. | ... | V9    │
//	│  TURNO TARDE:  (misma tabla)                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES DEL DÍA + tasas de aprobación/rechazo               │
//	│  IMPACTO EN STOCK (v1 / v9)                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/linea-stock-api/internal/application/dto"
	appreports "github.com/jhoicas/linea-stock-api/internal/application/reports"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
)

var _ appreports.ReportPDFGenerator = (*ReportPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var shiftLabels = map[string]string{
	entity.ShiftMorning:   "Mañana",
	entity.ShiftAfternoon: "Tarde",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// ReportPDFGenerator implementa reports.ReportPDFGenerator usando Maroto v2.
type ReportPDFGenerator struct {
	printer *message.Printer
}

// NewReportPDFGenerator construye el generador; los números se formatean con separadores en español.
func NewReportPDFGenerator() *ReportPDFGenerator {
	return &ReportPDFGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *ReportPDFGenerator) GenerateReportPDF(
	_ context.Context,
	report *entity.Report,
	summary *dto.ReportSummaryResponse,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de turno "+report.Header.Date, true).
		WithAuthor(report.Header.Supervisor, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("TURNO MAÑANA"))
	m.AddRows(tableHeaderRow())
	m.AddRows(g.entryRows(report.Morning)...)
	m.AddRows(g.subtotalRow(summary.Morning))

	m.AddRows(sectionTitle("TURNO TARDE"))
	m.AddRows(tableHeaderRow())
	m.AddRows(g.entryRows(report.Afternoon)...)
	m.AddRows(g.subtotalRow(summary.Afternoon))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: unidad + supervisor (izq) y fecha + turno (der).
func headerRow(report *entity.Report) core.Row {
	h := report.Header
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(h.Unit, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Supervisor: "+nonEmpty(h.Supervisor, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DIARIO DE PRUEBAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(h.Date, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Turno: "+nonEmpty(shiftLabels[h.Shift], h.Shift), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

// tableHeaderRow: cabecera de la tabla de operadores.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Operador", 4, align.Left),
		h("Prob.", 1, align.Right),
		h("Apr.", 1, align.Right),
		h("Rech.", 2, align.Right),
		h("Limp.", 1, align.Right),
		h("Reset.", 2, align.Right),
		h("V9", 1, align.Right),
	)
}

// entryRows: una fila por operador; una fila "sin registros" si el turno está vacío.
func (g *ReportPDFGenerator) entryRows(entries []entity.OperatorEntry) []core.Row {
	if len(entries) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin registros", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		))}
	}
	out := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		out = append(out, g.countRow(e.Name, e.Tested, e.Approved, e.Rejected, e.Cleaned, e.Resetados, e.V9, false))
	}
	return out
}

func (g *ReportPDFGenerator) subtotalRow(s dto.ShiftSummary) core.Row {
	return g.countRow("Subtotal", s.Tested, s.Approved, s.Rejected, s.Cleaned, s.Resetados, s.V9, true)
}

func (g *ReportPDFGenerator) countRow(name string, tested, approved, rejected, cleaned, resetados, v9 int, bold bool) core.Row {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	cell := func(v string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(v, props.Text{
			Style: style, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		cell(name, 4, align.Left),
		cell(g.number(tested), 1, align.Right),
		cell(g.number(approved), 1, align.Right),
		cell(g.number(rejected), 2, align.Right),
		cell(g.number(cleaned), 1, align.Right),
		cell(g.number(resetados), 2, align.Right),
		cell(g.number(v9), 1, align.Right),
	)
}

// totalsRow: totales del día, tasas e impacto en stock.
func (g *ReportPDFGenerator) totalsRow(s *dto.ReportSummaryResponse) core.Row {
	labels := []string{"Equipos probados:", "Aprobación:", "Rechazo:", "Descuento stock v1:", "Descuento stock v9:"}
	values := []string{
		g.number(s.Total.Tested),
		s.Total.ApprovalRate.StringFixed(2) + "%",
		s.Total.RejectionRate.StringFixed(2) + "%",
		g.number(s.StockImpact[entity.VariantV1]),
		g.number(s.StockImpact[entity.VariantV9]),
	}
	labelCol, valueCol := col.New(4), col.New(4)
	for i := range labels {
		top := float64(i*5 + 1)
		labelCol.Add(text.New(labels[i], props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		}))
		valueCol.Add(text.New(values[i], props.Text{
			Size: 9, Align: align.Right, Right: 1, Top: top,
		}))
	}
	return row.New(30).Add(col.New(4), labelCol, valueCol)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *ReportPDFGenerator) number(n int) string {
	return g.printer.Sprintf("%d", n)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
