// Package pdf implementa la generación del reporte de ingresos diarios en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Bodega + Fecha del reporte                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cantidad | Importe                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DEL DÍA                                               │
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
)

// Verificar en tiempo de compilación que DailyIncomePDFGenerator implementa el puerto.
var _ usecase.ReportPDFGenerator = (*DailyIncomePDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// DailyIncomePDFGenerator genera el reporte de ingresos diarios usando Maroto v2.
type DailyIncomePDFGenerator struct{}

// NewDailyIncomePDFGenerator construye el generador.
func NewDailyIncomePDFGenerator() *DailyIncomePDFGenerator { return &DailyIncomePDFGenerator{} }

// GenerateDailyIncomePDF genera el PDF y devuelve sus bytes.
func (g *DailyIncomePDFGenerator) GenerateDailyIncomePDF(
	_ context.Context,
	warehouseName string,
	report *dto.DailyIncomeResponse,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Ingresos Diarios", true).
		WithAuthor(warehouseName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(warehouseName, report.Date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	total := decimal.Zero
	for _, item := range report.Items {
		m.AddRows(tableDetailRow(item))
		total = total.Add(item.TotalAmount)
	}
	if len(report.Items) == 0 {
		m.AddRows(row.New(8).Add(
			col.New(12).Add(text.New("Sin entradas registradas en la fecha", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 2,
			})),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la bodega (izq) y título + fecha (der).
func headerRow(warehouseName, date string) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(warehouseName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE INGRESOS DIARIOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+date, props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: encabezado de la tabla sobre fondo primario.
func tableHeaderRow() core.Row {
	style := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 1}
	right := style
	right.Align = align.Right
	return row.New(6).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		col.New(6).Add(text.New("Producto", style)),
		col.New(3).Add(text.New("Cantidad", right)),
		col.New(3).Add(text.New("Importe", right)),
	)
}

// tableDetailRow: una línea de la tabla por producto.
func tableDetailRow(item dto.DailyIncomeItem) core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New(item.ProductName, props.Text{Size: 8, Top: 1})),
		col.New(3).Add(text.New(item.TotalQuantity.String(), props.Text{
			Size: 8, Align: align.Right, Top: 1,
		})),
		col.New(3).Add(text.New("$ "+item.TotalAmount.StringFixed(2), props.Text{
			Size: 8, Align: align.Right, Top: 1,
		})),
	)
}

// totalRow: total del día.
func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(9).Add(text.New("TOTAL DEL DÍA", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
		col.New(3).Add(text.New("$ "+total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
		})),
	)
}
