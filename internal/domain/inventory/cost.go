// Package inventory contiene los servicios de dominio del motor de stock:
// costo promedio ponderado y redondeos canónicos de cantidad.
package inventory

import "github.com/shopspring/decimal"

// Escalas canónicas: costos a 2 decimales, cantidades a 3.
const (
	CostScale     = 2
	QuantityScale = 3
)

// AverageCost calcula el nuevo costo promedio ponderado tras una entrada:
//
//	NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
//
// Redondeado a 2 decimales en cada entrada (no al final del historial): la
// deriva numérica acumulada entre muchas entradas pequeñas es una
// aproximación aceptada, no un bug. Si el stock actual es cero (o la suma no
// es positiva), el promedio es directamente el costo de la entrada.
func AverageCost(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if stockActual.LessThanOrEqual(decimal.Zero) || sum.LessThanOrEqual(decimal.Zero) {
		return costoEntrada.Round(CostScale)
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum).Round(CostScale)
}

// Consumed calcula el consumo de una salida con retorno: salida menos retorno,
// redondeado a 3 decimales.
func Consumed(quantityOut, quantityReturn decimal.Decimal) decimal.Decimal {
	return quantityOut.Sub(quantityReturn).Round(QuantityScale)
}
