// Package excel genera los libros XLSX de export y respaldo usando excelize.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/detailing-stock-api/internal/application/reports"
)

var _ reports.Exporter = (*Exporter)(nil)

// Exporter implementa reports.Exporter: un libro con hojas de inventario,
// movimientos, proveedores y vendedores.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Nombres de hoja del libro.
const (
	sheetInventory = "Inventario"
	sheetMovements = "Movimientos"
	sheetSuppliers = "Proveedores"
	sheetVendors   = "Vendedores"
)

const timeLayout = "2006-01-02 15:04:05"

// InventoryWorkbook genera el libro completo y devuelve sus bytes.
func (e *Exporter) InventoryWorkbook(s reports.Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeInventorySheet(f, s); err != nil {
		return nil, err
	}
	if err := writeMovementsSheet(f, s); err != nil {
		return nil, err
	}
	if err := writeSuppliersSheet(f, s); err != nil {
		return nil, err
	}
	if err := writeVendorsSheet(f, s); err != nil {
		return nil, err
	}

	// La hoja por defecto de excelize sobra; el inventario queda primero.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: eliminar hoja por defecto: %w", err)
	}
	idx, err := f.GetSheetIndex(sheetInventory)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeInventorySheet(f *excelize.File, s reports.Snapshot) error {
	if _, err := f.NewSheet(sheetInventory); err != nil {
		return err
	}
	headers := []any{
		"SKU", "Nombre", "Descripción", "Unidad", "Cantidad", "Costo promedio",
		"Valor total", "Stock mínimo", "Proveedor", "Activo",
		"Entradas acum.", "Salidas acum.", "Pérdidas acum.",
	}
	if err := f.SetSheetRow(sheetInventory, "A1", &headers); err != nil {
		return err
	}
	for i, row := range s.Products {
		supplier := ""
		if row.SupplierName != nil {
			supplier = *row.SupplierName
		}
		active := "Sí"
		if !row.Product.IsActive {
			active = "No"
		}
		p := row.Product
		cells := []any{
			p.SKU, p.Name, p.Description, p.UnitLabel(),
			p.Quantity.InexactFloat64(), p.CostPrice.InexactFloat64(),
			p.Quantity.Mul(p.CostPrice).Round(2).InexactFloat64(),
			p.MinStock.InexactFloat64(), supplier, active,
			row.TotalEntries.InexactFloat64(), row.TotalExits.InexactFloat64(),
			row.TotalLosses.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheetInventory, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}
	return nil
}

func writeMovementsSheet(f *excelize.File, s reports.Snapshot) error {
	if _, err := f.NewSheet(sheetMovements); err != nil {
		return err
	}
	headers := []any{"Fecha", "Producto", "SKU", "Tipo", "Cantidad", "Costo unitario", "Notas"}
	if err := f.SetSheetRow(sheetMovements, "A1", &headers); err != nil {
		return err
	}
	for i, m := range s.Movements {
		cells := []any{
			m.Movement.CreatedAt.Format(timeLayout),
			m.ProductName, m.ProductSKU, movementTypeLabel(m.Movement.Type),
			m.Movement.Quantity.InexactFloat64(), m.Movement.UnitCost.InexactFloat64(),
			m.Movement.Notes,
		}
		if err := f.SetSheetRow(sheetMovements, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}
	return nil
}

func writeSuppliersSheet(f *excelize.File, s reports.Snapshot) error {
	if _, err := f.NewSheet(sheetSuppliers); err != nil {
		return err
	}
	headers := []any{"Nombre", "Contacto", "Teléfono", "Email", "Dirección"}
	if err := f.SetSheetRow(sheetSuppliers, "A1", &headers); err != nil {
		return err
	}
	for i, sup := range s.Suppliers {
		cells := []any{sup.Name, sup.Contact, sup.Phone, sup.Email, sup.Address}
		if err := f.SetSheetRow(sheetSuppliers, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}
	return nil
}

func writeVendorsSheet(f *excelize.File, s reports.Snapshot) error {
	if _, err := f.NewSheet(sheetVendors); err != nil {
		return err
	}
	headers := []any{"Nombre", "Teléfono"}
	if err := f.SetSheetRow(sheetVendors, "A1", &headers); err != nil {
		return err
	}
	for i, v := range s.Vendors {
		cells := []any{v.Name, v.Phone}
		if err := f.SetSheetRow(sheetVendors, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}
	return nil
}

func movementTypeLabel(t string) string {
	switch t {
	case "entry":
		return "Entrada"
	case "exit":
		return "Salida"
	case "loss":
		return "Pérdida"
	}
	return t
}
