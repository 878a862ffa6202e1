package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/detailing-stock-api/internal/application/inventory"
	"github.com/jhoicas/detailing-stock-api/internal/domain"
	"github.com/jhoicas/detailing-stock-api/internal/domain/entity"
	"github.com/jhoicas/detailing-stock-api/internal/domain/repository"
)

// ── Entradas ─────────────────────────────────────────────────────────────────

// TestRecordEntry_StockCero entrada de 10 a 5.00 sobre producto vacío:
// quantity=10, cost_price=5.00 exacto.
func TestRecordEntry_StockCero(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("shampoo", entity.UnitTypeUnit, "0", "0")

	cost := dec("5.00")
	res, err := f.uc.RecordEntry(context.Background(), inventory.EntryInput{
		ProductID: p.ID, Quantity: dec("10"), UnitCost: &cost,
	})
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(res.Product.Quantity))
	assert.True(t, dec("5.00").Equal(res.Product.CostPrice))
	assert.True(t, res.PreviousCost.IsZero())
	assert.True(t, dec("5.00").Equal(res.NewAverageCost))
}

// TestRecordEntry_PromedioPonderado 10 a 5.00 existentes + 10 a 7.00 nuevas:
// quantity=20, cost_price=6.00 ((10*5+10*7)/20).
func TestRecordEntry_PromedioPonderado(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("cera", entity.UnitTypeUnit, "10", "5.00")

	cost := dec("7.00")
	res, err := f.uc.RecordEntry(context.Background(), inventory.EntryInput{
		ProductID: p.ID, Quantity: dec("10"), UnitCost: &cost,
	})
	require.NoError(t, err)
	assert.True(t, dec("20").Equal(res.Product.Quantity))
	assert.True(t, dec("6.00").Equal(res.Product.CostPrice), "obtuve %s", res.Product.CostPrice)
	assert.True(t, dec("5.00").Equal(res.PreviousCost))
}

// TestRecordEntry_SinCosto sin unit_cost la entrada usa el costo promedio
// vigente: el promedio no cambia y el movimiento guarda ese costo.
func TestRecordEntry_SinCosto(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("aplicador", entity.UnitTypeUnit, "4", "2.50")

	res, err := f.uc.RecordEntry(context.Background(), inventory.EntryInput{
		ProductID: p.ID, Quantity: dec("6"),
	})
	require.NoError(t, err)
	assert.True(t, dec("2.50").Equal(res.Product.CostPrice))

	movs, _ := f.movements.List(movementFilterFor(p.ID))
	require.Len(t, movs, 1)
	assert.True(t, dec("2.50").Equal(movs[0].Movement.UnitCost), "el movimiento guarda el costo de entrada")
}

// TestRecordEntry_GuardaCostoDeEntrada el movimiento guarda el costo de la
// entrada, no el nuevo promedio.
func TestRecordEntry_GuardaCostoDeEntrada(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("pulidor", entity.UnitTypeUnit, "10", "5.00")

	cost := dec("7.00")
	_, err := f.uc.RecordEntry(context.Background(), inventory.EntryInput{
		ProductID: p.ID, Quantity: dec("10"), UnitCost: &cost,
	})
	require.NoError(t, err)

	movs, _ := f.movements.List(movementFilterFor(p.ID))
	require.Len(t, movs, 1)
	assert.True(t, dec("7.00").Equal(movs[0].Movement.UnitCost))
}

// TestRecordEntry_PrefijoVendedor con vendor_id que resuelve, el nombre del
// vendedor antecede las notas.
func TestRecordEntry_PrefijoVendedor(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("microfibra", entity.UnitTypeUnit, "0", "0")
	vendor := &entity.Vendor{Name: "Distribuidora Norte"}
	require.NoError(t, f.vendors.Create(vendor))

	cost := dec("1.20")
	_, err := f.uc.RecordEntry(context.Background(), inventory.EntryInput{
		ProductID: p.ID, Quantity: dec("50"), UnitCost: &cost,
		VendorID: &vendor.ID, Notes: "caja de 50",
	})
	require.NoError(t, err)

	movs, _ := f.movements.List(movementFilterFor(p.ID))
	require.Len(t, movs, 1)
	assert.Equal(t, "Proveedor: Distribuidora Norte | caja de 50", movs[0].Movement.Notes)
}

// TestRecordEntry_Invalida cantidad cero o negativa y producto inexistente.
func TestRecordEntry_Invalida(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("shampoo", entity.UnitTypeUnit, "0", "0")

	_, err := f.uc.RecordEntry(context.Background(), inventory.EntryInput{ProductID: p.ID, Quantity: dec("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RecordEntry(context.Background(), inventory.EntryInput{ProductID: p.ID, Quantity: dec("-3")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RecordEntry(context.Background(), inventory.EntryInput{ProductID: "no-existe", Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Salidas y pérdidas ───────────────────────────────────────────────────────

// TestRecordExit_StockInsuficiente salida de 10 con stock 5: falla y el stock
// queda intacto en 5.
func TestRecordExit_StockInsuficiente(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("cera", entity.UnitTypeUnit, "5", "3.00")

	_, err := f.uc.RecordExit(context.Background(), p.ID, dec("10"), "")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, _ := f.products.GetByID(p.ID)
	assert.True(t, dec("5").Equal(stored.Quantity), "el stock no debe cambiar")
	movs, _ := f.movements.List(movementFilterFor(p.ID))
	assert.Empty(t, movs, "no debe persistirse ningún movimiento")
}

// TestRecordExit_SnapshotDeCosto la salida guarda el promedio vigente como
// unit_cost y no recalcula el promedio.
func TestRecordExit_SnapshotDeCosto(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("apc", entity.UnitTypeWeight, "8", "4.25")

	res, err := f.uc.RecordExit(context.Background(), p.ID, dec("3"), "dilución")
	require.NoError(t, err)
	assert.True(t, dec("5").Equal(res.Product.Quantity))
	assert.True(t, dec("4.25").Equal(res.Product.CostPrice))

	movs, _ := f.movements.List(movementFilterFor(p.ID))
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeExit, movs[0].Movement.Type)
	assert.True(t, dec("4.25").Equal(movs[0].Movement.UnitCost))
}

// TestRecordLoss_MismasReglas la pérdida descuenta stock con las mismas
// reglas que la salida.
func TestRecordLoss_MismasReglas(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("toalla", entity.UnitTypeUnit, "2", "6.00")

	res, err := f.uc.RecordLoss(context.Background(), p.ID, dec("1"), "dañada")
	require.NoError(t, err)
	assert.True(t, dec("1").Equal(res.Product.Quantity))

	_, err = f.uc.RecordLoss(context.Background(), p.ID, dec("5"), "")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ── Salida con retorno ───────────────────────────────────────────────────────

// TestRecordExitWithReturn sale 10, retorna 3: consumo 7, stock 20->13, y las
// notas detallan salida/retorno/consumo con unidad.
func TestRecordExitWithReturn(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("shampoo", entity.UnitTypeUnit, "20", "2.00")

	res, err := f.uc.RecordExitWithReturn(context.Background(), p.ID, dec("10"), dec("3"), "lavado flota")
	require.NoError(t, err)
	assert.True(t, dec("7").Equal(res.Consumed))
	assert.True(t, dec("13").Equal(res.Product.Quantity))

	movs, _ := f.movements.List(movementFilterFor(p.ID))
	require.Len(t, movs, 1, "se persiste UN solo movimiento de tipo exit")
	m := movs[0].Movement
	assert.Equal(t, entity.MovementTypeExit, m.Type)
	assert.True(t, dec("7").Equal(m.Quantity))
	assert.Contains(t, m.Notes, "Salida: 10un")
	assert.Contains(t, m.Notes, "Retorno: 3un")
	assert.Contains(t, m.Notes, "Consumo: 7un")
	assert.Contains(t, m.Notes, "lavado flota")
}

// TestRecordExitWithReturn_UnidadPeso productos por peso etiquetan en kg.
func TestRecordExitWithReturn_UnidadPeso(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("arcilla", entity.UnitTypeWeight, "5", "30.00")

	_, err := f.uc.RecordExitWithReturn(context.Background(), p.ID, dec("1.5"), dec("0.25"), "")
	require.NoError(t, err)

	movs, _ := f.movements.List(movementFilterFor(p.ID))
	require.Len(t, movs, 1)
	assert.Contains(t, movs[0].Movement.Notes, "Consumo: 1.25kg")
}

// TestRecordExitWithReturn_Errores consumo cero, retorno mayor que la salida
// y stock insuficiente para el consumo.
func TestRecordExitWithReturn_Errores(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("shampoo", entity.UnitTypeUnit, "5", "2.00")

	_, err := f.uc.RecordExitWithReturn(context.Background(), p.ID, dec("4"), dec("4"), "")
	assert.ErrorIs(t, err, domain.ErrNoConsumption)

	_, err = f.uc.RecordExitWithReturn(context.Background(), p.ID, dec("4"), dec("6"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RecordExitWithReturn(context.Background(), p.ID, dec("10"), dec("2"), "")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, _ := f.products.GetByID(p.ID)
	assert.True(t, dec("5").Equal(stored.Quantity), "ningún fallo debe tocar el stock")
}

// ── Edición (reversión + reaplicación) ───────────────────────────────────────

// TestEditMovement_Entrada entrada de 10 sobre stock 0 (queda 10); editarla a
// 4 aplica ajuste 4-10=-6 y deja el stock en 4.
func TestEditMovement_Entrada(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("sellador", entity.UnitTypeUnit, "0", "0")

	cost := dec("15.00")
	_, err := f.uc.RecordEntry(context.Background(), inventory.EntryInput{ProductID: p.ID, Quantity: dec("10"), UnitCost: &cost})
	require.NoError(t, err)
	movs, _ := f.movements.List(movementFilterFor(p.ID))
	require.Len(t, movs, 1)

	newQty := dec("4")
	res, err := f.uc.EditMovement(context.Background(), movs[0].Movement.ID, inventory.EditInput{Quantity: &newQty})
	require.NoError(t, err)
	assert.True(t, dec("-6").Equal(res.InventoryChange))
	assert.True(t, dec("4").Equal(res.NewInventory))

	stored, _ := f.products.GetByID(p.ID)
	assert.True(t, dec("4").Equal(stored.Quantity))
}

// TestEditMovement_SalidaAumenta aumentar la cantidad de una salida descuenta
// la diferencia: exit 2 -> 5 con stock 8 deja 8 + (2-5) = 5.
func TestEditMovement_SalidaAumenta(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("apc", entity.UnitTypeUnit, "10", "3.00")

	_, err := f.uc.RecordExit(context.Background(), p.ID, dec("2"), "")
	require.NoError(t, err)
	movs, _ := f.movements.List(movementFilterFor(p.ID))

	newQty := dec("5")
	res, err := f.uc.EditMovement(context.Background(), movs[0].Movement.ID, inventory.EditInput{Quantity: &newQty})
	require.NoError(t, err)
	assert.True(t, dec("-3").Equal(res.InventoryChange))
	assert.True(t, dec("5").Equal(res.NewInventory))
}

// TestEditMovement_SinCambio editar a la misma cantidad es un no-op sobre el
// stock (ajuste cero).
func TestEditMovement_SinCambio(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("cera", entity.UnitTypeUnit, "0", "0")

	cost := dec("9.00")
	_, err := f.uc.RecordEntry(context.Background(), inventory.EntryInput{ProductID: p.ID, Quantity: dec("10"), UnitCost: &cost})
	require.NoError(t, err)
	movs, _ := f.movements.List(movementFilterFor(p.ID))

	same := dec("10")
	res, err := f.uc.EditMovement(context.Background(), movs[0].Movement.ID, inventory.EditInput{Quantity: &same})
	require.NoError(t, err)
	assert.True(t, res.InventoryChange.IsZero())

	stored, _ := f.products.GetByID(p.ID)
	assert.True(t, dec("10").Equal(stored.Quantity))
}

// TestEditMovement_RechazaStockNegativo si ya se consumió parte de la
// entrada, reducirla por debajo de lo consumido se bloquea sin mutar nada.
func TestEditMovement_RechazaStockNegativo(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("pulidor", entity.UnitTypeUnit, "0", "0")

	cost := dec("20.00")
	_, err := f.uc.RecordEntry(context.Background(), inventory.EntryInput{ProductID: p.ID, Quantity: dec("10"), UnitCost: &cost})
	require.NoError(t, err)
	entries, _ := f.movements.List(movementFilterFor(p.ID))
	entryID := entries[0].Movement.ID

	_, err = f.uc.RecordExit(context.Background(), p.ID, dec("8"), "")
	require.NoError(t, err) // stock queda en 2

	newQty := dec("5") // ajuste 5-10 = -5, stock 2-5 = -3
	_, err = f.uc.EditMovement(context.Background(), entryID, inventory.EditInput{Quantity: &newQty})
	assert.ErrorIs(t, err, domain.ErrNegativeStock)

	stored, _ := f.products.GetByID(p.ID)
	assert.True(t, dec("2").Equal(stored.Quantity), "stock intacto tras el rechazo")
	m, _ := f.movements.GetByID(entryID)
	assert.True(t, dec("10").Equal(m.Quantity), "movimiento intacto tras el rechazo")
}

// TestEditMovement_NoRecalculaPromedio editar la cantidad de una entrada no
// toca cost_price (decisión explícita: la edición corrige digitación).
func TestEditMovement_NoRecalculaPromedio(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("cerámico", entity.UnitTypeUnit, "10", "5.00")

	cost := dec("7.00")
	_, err := f.uc.RecordEntry(context.Background(), inventory.EntryInput{ProductID: p.ID, Quantity: dec("10"), UnitCost: &cost})
	require.NoError(t, err) // promedio pasa a 6.00
	movs, _ := f.movements.List(movementFilterFor(p.ID))

	newQty := dec("2")
	_, err = f.uc.EditMovement(context.Background(), movs[0].Movement.ID, inventory.EditInput{Quantity: &newQty})
	require.NoError(t, err)

	stored, _ := f.products.GetByID(p.ID)
	assert.True(t, dec("6.00").Equal(stored.CostPrice), "el promedio queda como estaba")
}

// TestEditMovement_NotasYCosto campos no enviados quedan intactos.
func TestEditMovement_NotasYCosto(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("apc", entity.UnitTypeUnit, "10", "3.00")

	_, err := f.uc.RecordExit(context.Background(), p.ID, dec("4"), "nota original")
	require.NoError(t, err)
	movs, _ := f.movements.List(movementFilterFor(p.ID))

	newNotes := "nota corregida"
	res, err := f.uc.EditMovement(context.Background(), movs[0].Movement.ID, inventory.EditInput{Notes: &newNotes})
	require.NoError(t, err)
	assert.Equal(t, "nota corregida", res.Movement.Notes)
	assert.True(t, dec("4").Equal(res.Movement.Quantity), "cantidad sin cambio")
	assert.True(t, res.InventoryChange.IsZero())
}

// TestEditMovement_NoExiste edición de movimiento inexistente.
func TestEditMovement_NoExiste(t *testing.T) {
	f := newEngineFixture()
	qty := dec("1")
	_, err := f.uc.EditMovement(context.Background(), "no-existe", inventory.EditInput{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Eliminación (reversión) ──────────────────────────────────────────────────

// TestDeleteMovement_RevierteSalida exit de 5 con stock 10 (queda 5);
// eliminarla devuelve +5 y el stock vuelve a 10.
func TestDeleteMovement_RevierteSalida(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("shampoo", entity.UnitTypeUnit, "10", "2.00")

	_, err := f.uc.RecordExit(context.Background(), p.ID, dec("5"), "")
	require.NoError(t, err)
	movs, _ := f.movements.List(movementFilterFor(p.ID))

	res, err := f.uc.DeleteMovement(context.Background(), movs[0].Movement.ID)
	require.NoError(t, err)
	assert.True(t, dec("5").Equal(res.InventoryChange))
	assert.True(t, dec("10").Equal(res.NewInventory))

	remaining, _ := f.movements.List(movementFilterFor(p.ID))
	assert.Empty(t, remaining)
}

// TestDeleteMovement_IdempotenciaDeReversion crear y eliminar un movimiento
// devuelve el stock exactamente a su valor previo.
func TestDeleteMovement_IdempotenciaDeReversion(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("cera", entity.UnitTypeUnit, "7.5", "4.00")

	cost := dec("5.00")
	_, err := f.uc.RecordEntry(context.Background(), inventory.EntryInput{ProductID: p.ID, Quantity: dec("2.5"), UnitCost: &cost})
	require.NoError(t, err)
	movs, _ := f.movements.List(movementFilterFor(p.ID))

	_, err = f.uc.DeleteMovement(context.Background(), movs[0].Movement.ID)
	require.NoError(t, err)

	stored, _ := f.products.GetByID(p.ID)
	assert.True(t, dec("7.5").Equal(stored.Quantity), "el stock vuelve al valor previo al movimiento")
}

// TestDeleteMovement_BloqueaEntradaConsumida eliminar una entrada ya
// consumida dejaría stock negativo: se bloquea.
func TestDeleteMovement_BloqueaEntradaConsumida(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("pulidor", entity.UnitTypeUnit, "0", "0")

	cost := dec("10.00")
	_, err := f.uc.RecordEntry(context.Background(), inventory.EntryInput{ProductID: p.ID, Quantity: dec("10"), UnitCost: &cost})
	require.NoError(t, err)
	entries, _ := f.movements.List(movementFilterFor(p.ID))
	entryID := entries[0].Movement.ID

	_, err = f.uc.RecordExit(context.Background(), p.ID, dec("8"), "")
	require.NoError(t, err) // stock 2; revertir la entrada sería 2-10 = -8

	_, err = f.uc.DeleteMovement(context.Background(), entryID)
	assert.ErrorIs(t, err, domain.ErrNegativeStock)

	m, _ := f.movements.GetByID(entryID)
	assert.NotNil(t, m, "el movimiento bloqueado no se elimina")
	stored, _ := f.products.GetByID(p.ID)
	assert.True(t, dec("2").Equal(stored.Quantity))
}

// ── Invariante global ────────────────────────────────────────────────────────

// TestInvariante_StockNuncaNegativo tras cualquier secuencia de operaciones
// que la API permita, el stock queda >= 0.
func TestInvariante_StockNuncaNegativo(t *testing.T) {
	f := newEngineFixture()
	p := f.seedProduct("shampoo", entity.UnitTypeUnit, "0", "0")
	ctx := context.Background()

	cost := dec("3.00")
	_, err := f.uc.RecordEntry(ctx, inventory.EntryInput{ProductID: p.ID, Quantity: dec("12"), UnitCost: &cost})
	require.NoError(t, err)
	_, err = f.uc.RecordExit(ctx, p.ID, dec("5"), "")
	require.NoError(t, err)
	_, err = f.uc.RecordLoss(ctx, p.ID, dec("2"), "")
	require.NoError(t, err)
	_, err = f.uc.RecordExitWithReturn(ctx, p.ID, dec("6"), dec("2"), "")
	require.NoError(t, err)
	// 12 - 5 - 2 - 4 = 1; intentos por encima del stock deben fallar
	_, err = f.uc.RecordExit(ctx, p.ID, dec("2"), "")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, _ := f.products.GetByID(p.ID)
	assert.True(t, dec("1").Equal(stored.Quantity))
	assert.False(t, stored.Quantity.IsNegative())
}

func movementFilterFor(productID string) repository.MovementFilter {
	return repository.MovementFilter{ProductID: productID}
}
