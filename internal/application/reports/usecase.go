package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/detailing-stock-api/internal/application/dto"
	"github.com/jhoicas/detailing-stock-api/internal/application/usecase"
	"github.com/jhoicas/detailing-stock-api/internal/domain/entity"
	"github.com/jhoicas/detailing-stock-api/internal/domain/repository"
)

const (
	dashboardLowStockLimit = 10
	dashboardRecentLimit   = 10
	expensesDefaultMonths  = 12
)

// ReportUseCase dashboard, reportes de inventario y gastos, export XLSX y
// respaldos. Todas las consultas son de solo lectura; los respaldos escriben
// un snapshot lógico del sistema en el directorio configurado.
type ReportUseCase struct {
	reportRepo   repository.ReportRepository
	movementRepo repository.MovementRepository
	supplierRepo repository.SupplierRepository
	vendorRepo   repository.VendorRepository
	exporter     Exporter
	pdf          PDFGenerator
	backups      BackupStore
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	movementRepo repository.MovementRepository,
	supplierRepo repository.SupplierRepository,
	vendorRepo repository.VendorRepository,
	exporter Exporter,
	pdf PDFGenerator,
	backups BackupStore,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:   reportRepo,
		movementRepo: movementRepo,
		supplierRepo: supplierRepo,
		vendorRepo:   vendorRepo,
		exporter:     exporter,
		pdf:          pdf,
		backups:      backups,
	}
}

// Dashboard resumen para la pantalla principal: totales, stock bajo,
// movimientos recientes, conteos de hoy y comparación de gasto mensual.
//
// Las consultas independientes corren en paralelo.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	type countResult struct {
		n   int64
		err error
	}
	type valueResult struct {
		v   decimal.Decimal
		err error
	}
	type lowStockResult struct {
		products []*entity.Product
		err      error
	}
	type recentResult struct {
		movements []*repository.MovementListItem
		err       error
	}
	type todayResult struct {
		counts repository.DayCounts
		err    error
	}

	totalCh := make(chan countResult, 1)
	valueCh := make(chan valueResult, 1)
	lowCh := make(chan lowStockResult, 1)
	recentCh := make(chan recentResult, 1)
	todayCh := make(chan todayResult, 1)
	spendThisCh := make(chan valueResult, 1)
	spendLastCh := make(chan valueResult, 1)

	go func() {
		n, err := uc.reportRepo.CountProducts(ctx)
		totalCh <- countResult{n, err}
	}()
	go func() {
		v, err := uc.reportRepo.StockValue(ctx)
		valueCh <- valueResult{v, err}
	}()
	go func() {
		products, err := uc.reportRepo.LowStock(ctx, dashboardLowStockLimit)
		lowCh <- lowStockResult{products, err}
	}()
	go func() {
		movements, err := uc.reportRepo.RecentMovements(ctx, dashboardRecentLimit)
		recentCh <- recentResult{movements, err}
	}()
	go func() {
		counts, err := uc.reportRepo.CountsByDay(ctx, now)
		todayCh <- todayResult{counts, err}
	}()
	go func() {
		v, err := uc.reportRepo.EntrySpendByMonth(ctx, thisMonth)
		spendThisCh <- valueResult{v, err}
	}()
	go func() {
		v, err := uc.reportRepo.EntrySpendByMonth(ctx, lastMonth)
		spendLastCh <- valueResult{v, err}
	}()

	total := <-totalCh
	value := <-valueCh
	low := <-lowCh
	recent := <-recentCh
	today := <-todayCh
	spendThis := <-spendThisCh
	spendLast := <-spendLastCh

	for _, err := range []error{total.err, value.err, low.err, recent.err, today.err, spendThis.err, spendLast.err} {
		if err != nil {
			return nil, fmt.Errorf("dashboard: %w", err)
		}
	}

	lowItems := make([]dto.ProductResponse, 0, len(low.products))
	for _, p := range low.products {
		lowItems = append(lowItems, *usecase.ToProductResponse(p, nil))
	}
	recentItems := make([]dto.MovementResponse, 0, len(recent.movements))
	for _, m := range recent.movements {
		recentItems = append(recentItems, *usecase.ToMovementResponse(m))
	}

	difference := spendThis.v.Sub(spendLast.v).Round(2)
	percentage := decimal.Zero
	if spendLast.v.GreaterThan(decimal.Zero) {
		percentage = difference.Div(spendLast.v).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &dto.DashboardResponse{
		TotalProducts:    total.n,
		StockValue:       value.v.Round(2),
		LowStockProducts: lowItems,
		RecentMovements:  recentItems,
		Today: dto.TodayCountsDTO{
			Entries: today.counts.Entries,
			Exits:   today.counts.Exits,
			Losses:  today.counts.Losses,
		},
		Comparison: dto.MonthComparisonDTO{
			ThisMonth:  spendThis.v.Round(2),
			LastMonth:  spendLast.v.Round(2),
			Difference: difference,
			Percentage: percentage,
		},
	}, nil
}

// InventoryReport reporte de inventario: cada producto con su valor y sus
// acumulados históricos por tipo de movimiento, más totales.
func (uc *ReportUseCase) InventoryReport(ctx context.Context) (*dto.InventoryReportResponse, error) {
	rows, err := uc.reportRepo.InventoryRows(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryReportItemDTO, 0, len(rows))
	totalValue := decimal.Zero
	lowStockCount := 0
	for _, row := range rows {
		value := row.Product.Quantity.Mul(row.Product.CostPrice).Round(2)
		totalValue = totalValue.Add(value)
		if row.Product.Quantity.LessThanOrEqual(row.Product.MinStock) {
			lowStockCount++
		}
		items = append(items, dto.InventoryReportItemDTO{
			ProductResponse: *usecase.ToProductResponse(&row.Product, row.SupplierName),
			TotalValue:      value,
			TotalEntries:    row.TotalEntries,
			TotalExits:      row.TotalExits,
			TotalLosses:     row.TotalLosses,
		})
	}
	return &dto.InventoryReportResponse{
		Products: items,
		Summary: dto.InventorySummaryDTO{
			TotalProducts: len(items),
			TotalValue:    totalValue,
			LowStockCount: lowStockCount,
		},
	}, nil
}

// ExpensesReport valor movido por mes y tipo en los últimos meses, con
// promedios mensuales de entradas y salidas.
func (uc *ReportUseCase) ExpensesReport(ctx context.Context, months int) (*dto.ExpensesReportResponse, error) {
	if months <= 0 {
		months = expensesDefaultMonths
	}
	rows, err := uc.reportRepo.MonthlyExpenses(ctx, months)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MonthExpensesDTO, 0, len(rows))
	sumEntries := decimal.Zero
	sumExits := decimal.Zero
	for _, row := range rows {
		sumEntries = sumEntries.Add(row.TotalEntries)
		sumExits = sumExits.Add(row.TotalExits)
		items = append(items, dto.MonthExpensesDTO{
			Month:        row.Month,
			TotalEntries: row.TotalEntries,
			TotalExits:   row.TotalExits,
			TotalLosses:  row.TotalLosses,
		})
	}
	averages := dto.ExpenseAveragesDTO{Entries: decimal.Zero, Exits: decimal.Zero}
	if len(rows) > 0 {
		n := decimal.NewFromInt(int64(len(rows)))
		averages.Entries = sumEntries.Div(n).Round(2)
		averages.Exits = sumExits.Div(n).Round(2)
	}
	return &dto.ExpensesReportResponse{Months: items, Averages: averages}, nil
}

// ExportInventory genera el libro XLSX de inventario y movimientos para
// descarga. Devuelve el nombre de archivo sugerido y el contenido.
func (uc *ReportUseCase) ExportInventory(ctx context.Context) (string, []byte, error) {
	snapshot, err := uc.buildSnapshot(ctx)
	if err != nil {
		return "", nil, err
	}
	content, err := uc.exporter.InventoryWorkbook(*snapshot)
	if err != nil {
		return "", nil, err
	}
	filename := fmt.Sprintf("inventario_%s.xlsx", time.Now().Format("2006-01-02"))
	return filename, content, nil
}

// ExportInventoryPDF genera el reporte de inventario en PDF para descarga.
func (uc *ReportUseCase) ExportInventoryPDF(ctx context.Context) (string, []byte, error) {
	snapshot, err := uc.buildSnapshot(ctx)
	if err != nil {
		return "", nil, err
	}
	content, err := uc.pdf.InventoryPDF(*snapshot)
	if err != nil {
		return "", nil, err
	}
	filename := fmt.Sprintf("inventario_%s.pdf", time.Now().Format("2006-01-02"))
	return filename, content, nil
}

// CreateBackup escribe un snapshot lógico completo (productos, movimientos,
// proveedores y vendedores) como XLSX en el directorio de respaldos.
func (uc *ReportUseCase) CreateBackup(ctx context.Context) (*dto.BackupResponse, error) {
	snapshot, err := uc.buildSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	content, err := uc.exporter.InventoryWorkbook(*snapshot)
	if err != nil {
		return nil, err
	}
	filename := fmt.Sprintf("respaldo_%s.xlsx", time.Now().Format("20060102_150405"))
	path, err := uc.backups.Save(filename, content)
	if err != nil {
		return nil, err
	}
	return &dto.BackupResponse{
		Message:  "Respaldo creado correctamente",
		Filename: filename,
		Path:     path,
	}, nil
}

// ListBackups lista los respaldos existentes, más recientes primero.
func (uc *ReportUseCase) ListBackups() ([]dto.BackupFileDTO, error) {
	files, err := uc.backups.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.BackupFileDTO, 0, len(files))
	for _, f := range files {
		items = append(items, dto.BackupFileDTO{
			Filename: f.Filename,
			Size:     f.Size,
			Created:  f.Created,
		})
	}
	return items, nil
}

func (uc *ReportUseCase) buildSnapshot(ctx context.Context) (*Snapshot, error) {
	rows, err := uc.reportRepo.InventoryRows(ctx)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.List(repository.MovementFilter{})
	if err != nil {
		return nil, err
	}
	suppliers, err := uc.supplierRepo.List("")
	if err != nil {
		return nil, err
	}
	vendors, err := uc.vendorRepo.List("")
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Products:  rows,
		Movements: movements,
		Suppliers: suppliers,
		Vendors:   vendors,
	}, nil
}
