// Package pdf implementa la generación de reportes en PDF con Maroto v2.
//
// Reporte de inventario (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Nombre | N° Parte | Cant | Precio USD | Valor Total  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Productos listados / Valor total del inventario    │
//	└─────────────────────────────────────────────────────────────┘
//
// El reporte de ventas sigue el mismo layout con una fila por día.
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
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/dmreyes/repuestos-api/internal/application/reports"
	"github.com/dmreyes/repuestos-api/internal/domain/entity"
	"github.com/dmreyes/repuestos-api/internal/domain/repository"
)

var _ reports.PDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()
	return maroto.New(cfg)
}

// GenerateInventoryPDF genera el reporte de inventario y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryPDF(_ context.Context, products []*entity.Product) ([]byte, error) {
	m := newDocument("Reporte de Inventario")

	m.AddRows(titleRow("REPORTE DE INVENTARIO", time.Now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(inventoryHeaderRow())
	totalValue := decimal.Zero
	for _, p := range products {
		lineValue := p.PriceUSD.Mul(decimal.NewFromInt(int64(p.Quantity)))
		totalValue = totalValue.Add(lineValue)
		m.AddRows(inventoryDetailRow(p, lineValue))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(inventoryTotalsRow(len(products), totalValue))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de inventario: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateSalesPDF genera el reporte de ventas por día y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSalesPDF(_ context.Context, totals []repository.DailySalesTotal, from, to time.Time) ([]byte, error) {
	m := newDocument("Reporte de Ventas")

	m.AddRows(titleRow("REPORTE DE VENTAS", time.Now()))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Período: %s al %s", from.Format("02/01/2006"), to.Format("02/01/2006")), props.Text{
			Size: 8, Color: colorGray, Top: 1,
		}),
	)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(salesHeaderRow())
	grandTotal := decimal.Zero
	saleCount := 0
	for _, d := range zeroFillDays(totals, from, to) {
		grandTotal = grandTotal.Add(d.Total)
		saleCount += d.Count
		m.AddRows(salesDetailRow(d))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(salesTotalsRow(saleCount, grandTotal))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de ventas: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// titleRow: título del reporte + fecha de generación.
func titleRow(title string, generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func headerCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 2, Left: 1, Right: 1,
	}))
}

// inventoryHeaderRow: cabecera de la tabla de productos.
func inventoryHeaderRow() core.Row {
	return row.New(8).Add(
		headerCol("Producto", 4, align.Left),
		headerCol("N° Parte", 2, align.Left),
		headerCol("Cant.", 1, align.Center),
		headerCol("Precio USD", 2, align.Right),
		headerCol("Valor Total", 3, align.Right),
	)
}

// inventoryDetailRow: una fila por producto.
func inventoryDetailRow(p *entity.Product, lineValue decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(4).Add(text.New(
			p.Name,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			nonEmpty(p.PartNumber, "—"),
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", p.Quantity),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(2).Add(text.New(
			"$"+p.PriceUSD.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(3).Add(text.New(
			"$"+lineValue.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// inventoryTotalsRow: bloque de totales alineado a la derecha.
func inventoryTotalsRow(productCount int, totalValue decimal.Decimal) core.Row {
	return row.New(16).Add(
		col.New(4),
		col.New(4).Add(
			text.New("Productos listados:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			}),
			text.New("VALOR DEL INVENTARIO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 7, Right: 2,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d", productCount), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			}),
			text.New("$"+totalValue.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 7, Right: 1,
			}),
		),
	)
}

// salesHeaderRow: cabecera de la tabla de ventas por día.
func salesHeaderRow() core.Row {
	return row.New(8).Add(
		headerCol("Fecha", 4, align.Left),
		headerCol("Ventas", 3, align.Center),
		headerCol("Total USD", 5, align.Right),
	)
}

// salesDetailRow: una fila por día del período.
func salesDetailRow(d repository.DailySalesTotal) core.Row {
	return row.New(7).Add(
		col.New(4).Add(text.New(
			d.Day.Format("02/01/2006"),
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(3).Add(text.New(
			fmt.Sprintf("%d", d.Count),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(5).Add(text.New(
			"$"+d.Total.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// salesTotalsRow: total del período.
func salesTotalsRow(saleCount int, grandTotal decimal.Decimal) core.Row {
	return row.New(16).Add(
		col.New(4),
		col.New(4).Add(
			text.New("Ventas del período:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			}),
			text.New("TOTAL VENDIDO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 7, Right: 2,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d", saleCount), props.Text{
				Size: 9, Align: align.Right, Right: 1,
			}),
			text.New("$"+grandTotal.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 7, Right: 1,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// zeroFillDays completa con cero los días del período sin ventas, para que el
// reporte muestre el rango continuo.
func zeroFillDays(totals []repository.DailySalesTotal, from, to time.Time) []repository.DailySalesTotal {
	byDay := make(map[string]repository.DailySalesTotal, len(totals))
	for _, t := range totals {
		byDay[t.Day.Format("2006-01-02")] = t
	}

	var result []repository.DailySalesTotal
	for day := dateOnly(from); !day.After(dateOnly(to)); day = day.AddDate(0, 0, 1) {
		if t, ok := byDay[day.Format("2006-01-02")]; ok {
			result = append(result, t)
			continue
		}
		result = append(result, repository.DailySalesTotal{Day: day, Total: decimal.Zero})
	}
	return result
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
