package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/detailing-stock-api/internal/domain"
	"github.com/jhoicas/detailing-stock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/detailing-stock-api/internal/domain/inventory"
	"github.com/jhoicas/detailing-stock-api/internal/domain/repository"
)

// MovementUseCase es el motor de movimientos de stock: registra entradas,
// salidas, pérdidas y salidas con retorno, y compensa el stock al editar o
// eliminar movimientos históricos. Toda mutación corre dentro de una
// transacción con la fila del producto bloqueada (SELECT FOR UPDATE), lo que
// serializa las mutaciones concurrentes sobre el mismo producto.
type MovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository // lecturas fuera de transacción
	vendorRepo   repository.VendorRepository
}

// NewMovementUseCase construye el motor de movimientos.
func NewMovementUseCase(txRunner TxRunner, movementRepo repository.MovementRepository, vendorRepo repository.VendorRepository) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movementRepo: movementRepo, vendorRepo: vendorRepo}
}

// EntryInput entrada para RecordEntry. UnitCost nil = usar el costo promedio
// vigente del producto como costo de la entrada.
type EntryInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitCost  *decimal.Decimal
	VendorID  *string
	Notes     string
}

// EntryResult producto actualizado más el costo promedio antes y después.
type EntryResult struct {
	Product        *entity.Product
	PreviousCost   decimal.Decimal
	NewAverageCost decimal.Decimal
}

// ExitResult producto actualizado tras una salida o pérdida.
type ExitResult struct {
	Product *entity.Product
}

// ExitReturnResult producto actualizado y consumo calculado (salida - retorno).
type ExitReturnResult struct {
	Product  *entity.Product
	Consumed decimal.Decimal
}

// EditInput campos editables de un movimiento. nil = sin cambio.
type EditInput struct {
	Quantity *decimal.Decimal
	UnitCost *decimal.Decimal
	Notes    *string
}

// EditResult movimiento actualizado, delta aplicado al stock y stock resultante.
type EditResult struct {
	Movement        *entity.Movement
	InventoryChange decimal.Decimal
	NewInventory    decimal.Decimal
}

// DeleteResult delta aplicado al stock al revertir el movimiento y stock resultante.
type DeleteResult struct {
	InventoryChange decimal.Decimal
	NewInventory    decimal.Decimal
}

// RecordEntry registra una entrada: suma cantidad al stock y recalcula el
// costo promedio ponderado (redondeado a 2 decimales en cada entrada). El
// movimiento guarda el costo de la entrada, no el nuevo promedio. Si el
// vendedor se resuelve, su nombre antecede las notas.
func (uc *MovementUseCase) RecordEntry(ctx context.Context, in EntryInput) (*EntryResult, error) {
	if in.ProductID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	notes := in.Notes
	if in.VendorID != nil && *in.VendorID != "" {
		// Referencia débil: si el vendedor no existe se registra igual, sin prefijo.
		if vendor, err := uc.vendorRepo.GetByID(*in.VendorID); err == nil && vendor != nil {
			notes = joinNotes(fmt.Sprintf("Proveedor: %s", vendor.Name), notes)
		}
	}

	var result EntryResult
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		entryCost := product.CostPrice
		if in.UnitCost != nil {
			entryCost = *in.UnitCost
		}
		previousCost := product.CostPrice
		newQuantity := product.Quantity.Add(in.Quantity)
		newCost := domaininv.AverageCost(product.Quantity, product.CostPrice, in.Quantity, entryCost)

		movement := &entity.Movement{
			ProductID: product.ID,
			Type:      entity.MovementTypeEntry,
			Quantity:  in.Quantity,
			UnitCost:  entryCost,
			Notes:     notes,
			VendorID:  in.VendorID,
			CreatedAt: time.Now(),
		}
		if err := movementRepo.Create(movement); err != nil {
			return err
		}
		if err := productRepo.UpdateStockAndCost(product.ID, newQuantity, newCost); err != nil {
			return err
		}

		product.Quantity = newQuantity
		product.CostPrice = newCost
		result = EntryResult{Product: product, PreviousCost: previousCost, NewAverageCost: newCost}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RecordExit registra una salida (consumo). El movimiento guarda como
// unit_cost el costo promedio vigente; el promedio no se recalcula.
func (uc *MovementUseCase) RecordExit(ctx context.Context, productID string, quantity decimal.Decimal, notes string) (*ExitResult, error) {
	return uc.recordOutflow(ctx, entity.MovementTypeExit, productID, quantity, notes)
}

// RecordLoss registra una pérdida o daño. Mismas reglas que la salida.
func (uc *MovementUseCase) RecordLoss(ctx context.Context, productID string, quantity decimal.Decimal, notes string) (*ExitResult, error) {
	return uc.recordOutflow(ctx, entity.MovementTypeLoss, productID, quantity, notes)
}

// recordOutflow lógica común de salida y pérdida: bloquea la fila del
// producto, verifica stock suficiente y descuenta la cantidad.
func (uc *MovementUseCase) recordOutflow(ctx context.Context, movementType, productID string, quantity decimal.Decimal, notes string) (*ExitResult, error) {
	if productID == "" || !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var result ExitResult
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Quantity.LessThan(quantity) {
			return domain.ErrInsufficientStock
		}

		movement := &entity.Movement{
			ProductID: product.ID,
			Type:      movementType,
			Quantity:  quantity,
			UnitCost:  product.CostPrice, // snapshot del promedio vigente
			Notes:     notes,
			CreatedAt: time.Now(),
		}
		if err := movementRepo.Create(movement); err != nil {
			return err
		}
		newQuantity := product.Quantity.Sub(quantity)
		if err := productRepo.UpdateStock(product.ID, newQuantity); err != nil {
			return err
		}

		product.Quantity = newQuantity
		result = ExitResult{Product: product}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RecordExitWithReturn registra una salida con retorno: sale quantityOut,
// retorna quantityReturn y se descuenta solo el consumo (redondeado a 3
// decimales). Persiste UN movimiento de tipo exit con cantidad = consumo y
// notas que detallan salida, retorno y consumo con la unidad del producto.
func (uc *MovementUseCase) RecordExitWithReturn(ctx context.Context, productID string, quantityOut, quantityReturn decimal.Decimal, notes string) (*ExitReturnResult, error) {
	if productID == "" || !quantityOut.GreaterThan(decimal.Zero) || quantityReturn.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if quantityReturn.GreaterThan(quantityOut) {
		return nil, domain.ErrInvalidInput
	}
	consumed := domaininv.Consumed(quantityOut, quantityReturn)
	if consumed.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrNoConsumption
	}

	var result ExitReturnResult
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Quantity.LessThan(consumed) {
			return domain.ErrInsufficientStock
		}

		unit := product.UnitLabel()
		detailed := fmt.Sprintf("Salida: %s%s | Retorno: %s%s | Consumo: %s%s",
			quantityOut.String(), unit, quantityReturn.String(), unit, consumed.String(), unit)
		movement := &entity.Movement{
			ProductID: product.ID,
			Type:      entity.MovementTypeExit,
			Quantity:  consumed,
			UnitCost:  product.CostPrice,
			Notes:     joinNotes(detailed, notes),
			CreatedAt: time.Now(),
		}
		if err := movementRepo.Create(movement); err != nil {
			return err
		}
		newQuantity := product.Quantity.Sub(consumed).Round(domaininv.QuantityScale)
		if err := productRepo.UpdateStock(product.ID, newQuantity); err != nil {
			return err
		}

		product.Quantity = newQuantity
		result = ExitReturnResult{Product: product, Consumed: consumed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// EditMovement corrige quantity/unit_cost/notes de un movimiento histórico y
// compensa el stock actual: ajuste = efecto(nuevo) - efecto(original). Si el
// ajuste dejaría el stock en negativo, falla con ErrNegativeStock sin mutar
// nada. El costo promedio NO se recalcula, ni siquiera en entradas: la edición
// corrige errores de digitación y el promedio ya quedó aplicado en su momento.
func (uc *MovementUseCase) EditMovement(ctx context.Context, movementID string, in EditInput) (*EditResult, error) {
	if movementID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity != nil && !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost != nil && in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var result EditResult
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		movement, err := movementRepo.GetByID(movementID)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetForUpdate(movement.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		newQuantity := movement.Quantity
		if in.Quantity != nil {
			newQuantity = *in.Quantity
		}
		// Revertir el efecto original y aplicar el nuevo en un solo delta.
		adjustment := entity.EffectOf(movement.Type, newQuantity).Sub(movement.StockEffect())
		newInventory := product.Quantity.Add(adjustment)
		if newInventory.IsNegative() {
			return domain.ErrNegativeStock
		}

		movement.Quantity = newQuantity
		if in.UnitCost != nil {
			movement.UnitCost = *in.UnitCost
		}
		if in.Notes != nil {
			movement.Notes = *in.Notes
		}
		if err := movementRepo.Update(movement); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(product.ID, newInventory); err != nil {
			return err
		}

		result = EditResult{Movement: movement, InventoryChange: adjustment, NewInventory: newInventory}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteMovement elimina un movimiento aplicando el efecto inverso al stock:
// una entrada resta, una salida o pérdida devuelve. Si la reversión dejaría el
// stock en negativo, el borrado se bloquea con ErrNegativeStock.
func (uc *MovementUseCase) DeleteMovement(ctx context.Context, movementID string) (*DeleteResult, error) {
	if movementID == "" {
		return nil, domain.ErrInvalidInput
	}

	var result DeleteResult
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		movement, err := movementRepo.GetByID(movementID)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetForUpdate(movement.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		reversal := movement.StockEffect().Neg()
		newInventory := product.Quantity.Add(reversal)
		if newInventory.IsNegative() {
			return domain.ErrNegativeStock
		}

		if err := movementRepo.Delete(movement.ID); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(product.ID, newInventory); err != nil {
			return err
		}

		result = DeleteResult{InventoryChange: reversal, NewInventory: newInventory}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMovement obtiene un movimiento con nombre y SKU del producto.
func (uc *MovementUseCase) GetMovement(id string) (*repository.MovementListItem, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementRepo.GetWithProduct(id)
}

// ListMovements lista movimientos con los filtros dados, más recientes primero.
func (uc *MovementUseCase) ListMovements(filter repository.MovementFilter) ([]*repository.MovementListItem, error) {
	return uc.movementRepo.List(filter)
}

// joinNotes une prefijo y notas libres con " | ", omitiendo partes vacías.
func joinNotes(prefix, notes string) string {
	if notes == "" {
		return prefix
	}
	if prefix == "" {
		return notes
	}
	return prefix + " | " + notes
}
