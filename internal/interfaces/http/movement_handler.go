package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/detailing-stock-api/internal/application/dto"
	"github.com/jhoicas/detailing-stock-api/internal/application/inventory"
	"github.com/jhoicas/detailing-stock-api/internal/application/usecase"
	"github.com/jhoicas/detailing-stock-api/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP del motor de movimientos (protegido).
type MovementHandler struct {
	uc *inventory.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Entry godoc
// @Summary      Registrar entrada (compra)
// @Description  Suma cantidad al stock y recalcula el costo promedio ponderado.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntryRequest  true  "product_id, quantity, unit_cost (opcional), vendor_id (opcional), notes"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/entry [post]
func (h *MovementHandler) Entry(c *fiber.Ctx) error {
	var in dto.EntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.RecordEntry(c.Context(), inventory.EntryInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		VendorID:  in.VendorID,
		Notes:     in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.EntryResponse{
		Message:        "Entrada registrada correctamente",
		Product:        *usecase.ToProductResponse(res.Product, nil),
		PreviousCost:   res.PreviousCost,
		NewAverageCost: res.NewAverageCost,
	})
}

// Exit godoc
// @Summary      Registrar salida (consumo)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExitRequest  true  "product_id, quantity, notes"
// @Success      201   {object}  dto.StockMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/exit [post]
func (h *MovementHandler) Exit(c *fiber.Ctx) error {
	var in dto.ExitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.RecordExit(c.Context(), in.ProductID, in.Quantity, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockMutationResponse{
		Message: "Salida registrada correctamente",
		Product: *usecase.ToProductResponse(res.Product, nil),
	})
}

// Loss godoc
// @Summary      Registrar pérdida o daño
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExitRequest  true  "product_id, quantity, notes"
// @Success      201   {object}  dto.StockMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/loss [post]
func (h *MovementHandler) Loss(c *fiber.Ctx) error {
	var in dto.ExitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.RecordLoss(c.Context(), in.ProductID, in.Quantity, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockMutationResponse{
		Message: "Pérdida registrada correctamente",
		Product: *usecase.ToProductResponse(res.Product, nil),
	})
}

// ExitReturn godoc
// @Summary      Registrar salida con retorno
// @Description  Sale una cantidad, retorna parte sin usar y solo el consumo se descuenta del stock.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExitReturnRequest  true  "product_id, quantity_out, quantity_return, notes"
// @Success      201   {object}  dto.ExitReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/exit-return [post]
func (h *MovementHandler) ExitReturn(c *fiber.Ctx) error {
	var in dto.ExitReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.RecordExitWithReturn(c.Context(), in.ProductID, in.QuantityOut, in.QuantityReturn, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ExitReturnResponse{
		Message:  "Salida con retorno registrada correctamente",
		Product:  *usecase.ToProductResponse(res.Product, nil),
		Consumed: res.Consumed,
	})
}

// List godoc
// @Summary      Listar movimientos
// @Description  Filtra por producto, tipo y periodo relativo (daily, weekly, biweekly, monthly) o rango explícito de fechas. El periodo tiene prioridad.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "entry | exit | loss"
// @Param        period      query  string  false  "daily | weekly | biweekly | monthly"
// @Param        start_date  query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Param        end_date    query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.ListMovementsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	filter, err := buildMovementFilter(q)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	list, err := h.uc.ListMovements(filter)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *usecase.ToMovementResponse(it))
	}
	return c.JSON(items)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	it, err := h.uc.GetMovement(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if it == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
	}
	return c.JSON(usecase.ToMovementResponse(it))
}

// Edit godoc
// @Summary      Editar movimiento (con ajuste compensatorio del stock)
// @Description  Corrige quantity/unit_cost/notes. El stock del producto se ajusta por la diferencia de efecto; si quedaría negativo, la edición se rechaza.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.EditMovementRequest  true  "Campos a corregir (los omitidos no cambian)"
// @Success      200   {object}  dto.EditMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Edit(c *fiber.Ctx) error {
	var in dto.EditMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.EditMovement(c.Context(), c.Params("id"), inventory.EditInput{
		Quantity: in.Quantity,
		UnitCost: in.UnitCost,
		Notes:    in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.EditMovementResponse{
		Message: "Movimiento actualizado correctamente",
		Movement: *usecase.ToMovementResponse(&repository.MovementListItem{
			Movement: *res.Movement,
		}),
		InventoryChange: res.InventoryChange,
		NewInventory:    res.NewInventory,
	})
}

// Delete godoc
// @Summary      Eliminar movimiento (revierte su efecto en el stock)
// @Description  Una entrada resta del stock; una salida o pérdida devuelve. Si la reversión dejaría el stock negativo, se bloquea.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.DeleteMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	res, err := h.uc.DeleteMovement(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DeleteMovementResponse{
		Message:         "Movimiento eliminado correctamente",
		InventoryChange: res.InventoryChange,
		NewInventory:    res.NewInventory,
	})
}

// buildMovementFilter traduce los parámetros de query al filtro del repositorio.
// El periodo relativo tiene prioridad sobre el rango explícito.
func buildMovementFilter(q dto.ListMovementsQuery) (repository.MovementFilter, error) {
	filter := repository.MovementFilter{ProductID: q.ProductID, Type: q.Type}
	now := time.Now()

	if q.Period != "" {
		var from time.Time
		switch q.Period {
		case "daily":
			from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		case "weekly":
			from = now.AddDate(0, 0, -7)
		case "biweekly":
			from = now.AddDate(0, 0, -14)
		case "monthly":
			from = now.AddDate(0, 0, -30)
		default:
			return filter, errInvalidPeriod
		}
		filter.From = &from
		return filter, nil
	}

	if q.StartDate != "" {
		from, err := parseDate(q.StartDate)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if q.EndDate != "" {
		to, err := parseDate(q.EndDate)
		if err != nil {
			return filter, err
		}
		// Fecha sin hora: incluir el día completo
		if len(q.EndDate) == len("2006-01-02") {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		filter.To = &to
	}
	return filter, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return t, nil
}
