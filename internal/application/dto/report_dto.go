package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardResponse resumen para la pantalla principal.
type DashboardResponse struct {
	TotalProducts    int64              `json:"total_products"`
	StockValue       decimal.Decimal    `json:"stock_value"`
	LowStockProducts []ProductResponse  `json:"low_stock_products"`
	RecentMovements  []MovementResponse `json:"recent_movements"`
	Today            TodayCountsDTO     `json:"today"`
	Comparison       MonthComparisonDTO `json:"comparison"`
}

// TodayCountsDTO número de movimientos de hoy por tipo.
type TodayCountsDTO struct {
	Entries int64 `json:"entries"`
	Exits   int64 `json:"exits"`
	Losses  int64 `json:"losses"`
}

// MonthComparisonDTO gasto en entradas: mes en curso contra mes anterior.
type MonthComparisonDTO struct {
	ThisMonth  decimal.Decimal `json:"this_month"`
	LastMonth  decimal.Decimal `json:"last_month"`
	Difference decimal.Decimal `json:"difference"`
	Percentage decimal.Decimal `json:"percentage"` // 0 si el mes anterior fue 0
}

// InventoryReportResponse reporte de inventario con acumulados por producto.
type InventoryReportResponse struct {
	Products []InventoryReportItemDTO `json:"products"`
	Summary  InventorySummaryDTO      `json:"summary"`
}

// InventoryReportItemDTO fila del reporte de inventario.
type InventoryReportItemDTO struct {
	ProductResponse
	TotalValue   decimal.Decimal `json:"total_value"` // quantity * cost_price
	TotalEntries decimal.Decimal `json:"total_entries"`
	TotalExits   decimal.Decimal `json:"total_exits"`
	TotalLosses  decimal.Decimal `json:"total_losses"`
}

// InventorySummaryDTO totales del reporte de inventario.
type InventorySummaryDTO struct {
	TotalProducts int             `json:"total_products"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockCount int             `json:"low_stock_count"`
}

// ExpensesReportResponse últimos meses de valor movido por tipo, más promedios.
type ExpensesReportResponse struct {
	Months   []MonthExpensesDTO `json:"months"` // ascendente por mes
	Averages ExpenseAveragesDTO `json:"averages"`
}

// MonthExpensesDTO valor movido en un mes por tipo.
type MonthExpensesDTO struct {
	Month        string          `json:"month"` // YYYY-MM
	TotalEntries decimal.Decimal `json:"total_entries"`
	TotalExits   decimal.Decimal `json:"total_exits"`
	TotalLosses  decimal.Decimal `json:"total_losses"`
}

// ExpenseAveragesDTO promedios mensuales de entradas y salidas.
type ExpenseAveragesDTO struct {
	Entries decimal.Decimal `json:"entries"`
	Exits   decimal.Decimal `json:"exits"`
}

// BackupResponse resultado de crear un respaldo.
type BackupResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// BackupFileDTO un respaldo existente en disco.
type BackupFileDTO struct {
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	Created  time.Time `json:"created"`
}
