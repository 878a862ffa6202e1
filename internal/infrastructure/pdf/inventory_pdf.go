// Package pdf genera el reporte de inventario en PDF con Maroto v2.
package pdf

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

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

	"github.com/jhoicas/detailing-stock-api/internal/application/reports"
	"github.com/jhoicas/detailing-stock-api/internal/domain/repository"
)

var _ reports.PDFGenerator = (*InventoryPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// InventoryPDFGenerator implementa reports.PDFGenerator usando Maroto v2.
type InventoryPDFGenerator struct{}

// NewInventoryPDFGenerator construye el generador.
func NewInventoryPDFGenerator() *InventoryPDFGenerator { return &InventoryPDFGenerator{} }

// InventoryPDF genera el reporte de inventario y devuelve sus bytes.
func (g *InventoryPDFGenerator) InventoryPDF(s reports.Snapshot) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range s.Products {
		m.AddRows(productRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(s.Products))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow() core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de Inventario", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(6).Add(
		header("SKU", 2),
		header("Producto", 4),
		header("Cantidad", 2),
		header("Costo prom.", 2),
		header("Valor", 2),
	)
}

func productRow(r *repository.InventoryReportRow) core.Row {
	p := r.Product
	value := p.Quantity.Mul(p.CostPrice).Round(2)
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7, Align: a, Top: 1}))
	}
	return row.New(5).Add(
		cell(p.SKU, 2, align.Left),
		cell(p.Name, 4, align.Left),
		cell(p.Quantity.String()+" "+p.UnitLabel(), 2, align.Left),
		cell("$"+p.CostPrice.StringFixed(2), 2, align.Left),
		cell("$"+value.StringFixed(2), 2, align.Left),
	)
}

func totalsRow(rows []*repository.InventoryReportRow) core.Row {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Product.Quantity.Mul(r.Product.CostPrice))
	}
	return row.New(8).Add(
		col.New(8).Add(text.New(fmt.Sprintf("Productos: %d", len(rows)), props.Text{
			Size: 9, Top: 2, Color: colorGray,
		})),
		col.New(4).Add(text.New("Valor total: $"+total.Round(2).StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1, Color: colorPrimary,
		})),
	)
}
