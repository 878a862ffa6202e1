package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrNegativeStock: editar o eliminar un movimiento dejaría el stock del
	// producto en negativo; la operación se bloquea sin mutar nada.
	ErrNegativeStock = errors.New("el ajuste dejaría el stock en negativo")
	// ErrNoConsumption: salida con retorno cuyo consumo calculado es cero o negativo.
	ErrNoConsumption = errors.New("el consumo debe ser mayor que cero")
)
