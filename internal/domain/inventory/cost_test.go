package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/detailing-stock-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// TestAverageCost_StockCero una entrada sobre stock cero toma exactamente el
// costo de la entrada (sin promediar contra nada).
func TestAverageCost_StockCero(t *testing.T) {
	got := inventory.AverageCost(decimal.Zero, decimal.Zero, dec("10"), dec("5.00"))
	assert.True(t, dec("5.00").Equal(got), "esperaba 5.00, obtuve %s", got)
}

// TestAverageCost_PromedioPonderado (10 un a 5.00) + (10 un a 7.00) = 6.00.
func TestAverageCost_PromedioPonderado(t *testing.T) {
	got := inventory.AverageCost(dec("10"), dec("5.00"), dec("10"), dec("7.00"))
	assert.True(t, dec("6.00").Equal(got), "esperaba 6.00, obtuve %s", got)
}

// TestAverageCost_RedondeoPorEntrada el redondeo a 2 decimales ocurre en cada
// entrada, no al final: (3 a 1.00) + (1 a 2.00) = 5/4 = 1.25; (1 a 1.00) sobre
// 1.333... redondea el paso intermedio.
func TestAverageCost_RedondeoPorEntrada(t *testing.T) {
	got := inventory.AverageCost(dec("3"), dec("1.00"), dec("1"), dec("2.00"))
	assert.True(t, dec("1.25").Equal(got))

	// 1/3 no exacto: ((2 * 1.00) + (1 * 2.00)) / 3 = 1.333... -> 1.33
	got = inventory.AverageCost(dec("2"), dec("1.00"), dec("1"), dec("2.00"))
	assert.True(t, dec("1.33").Equal(got), "esperaba 1.33, obtuve %s", got)
}

// TestAverageCost_ReplayHistorial aplicar el historial de entradas en orden de
// creación reproduce el mismo costo final que la aplicación incremental.
func TestAverageCost_ReplayHistorial(t *testing.T) {
	type entry struct{ qty, cost string }
	history := []entry{
		{"10", "5.00"},
		{"4", "9.50"},
		{"25", "3.75"},
		{"0.5", "12.00"},
	}

	// Aplicación incremental (lo que hace el motor en vivo)
	qty := decimal.Zero
	cost := decimal.Zero
	for _, e := range history {
		cost = inventory.AverageCost(qty, cost, dec(e.qty), dec(e.cost))
		qty = qty.Add(dec(e.qty))
	}

	// Replay completo desde cero
	replayQty := decimal.Zero
	replayCost := decimal.Zero
	for _, e := range history {
		replayCost = inventory.AverageCost(replayQty, replayCost, dec(e.qty), dec(e.cost))
		replayQty = replayQty.Add(dec(e.qty))
	}

	assert.True(t, cost.Equal(replayCost), "replay: %s vs incremental: %s", replayCost, cost)
	assert.True(t, qty.Equal(replayQty))
}

// TestConsumed consumo = salida - retorno, redondeado a 3 decimales.
func TestConsumed(t *testing.T) {
	assert.True(t, dec("7").Equal(inventory.Consumed(dec("10"), dec("3"))))
	assert.True(t, dec("0.125").Equal(inventory.Consumed(dec("0.5"), dec("0.375"))))
	assert.True(t, dec("0.333").Equal(inventory.Consumed(dec("1"), dec("0.6667"))))
	assert.True(t, inventory.Consumed(dec("2"), dec("2")).IsZero())
}
