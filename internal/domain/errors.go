package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyVoided     = errors.New("la transacción ya fue anulada")
)

// StockShortageError detalla un faltante de stock para una variante concreta.
// Envuelve ErrInsufficientStock para que errors.Is siga funcionando en los handlers.
type StockShortageError struct {
	VariantID   string
	VariantName string
	Available   int64
	Requested   int64
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: disponible %d, solicitado %d (faltan %d)",
		e.VariantName, e.Available, e.Requested, e.Shortage())
}

func (e *StockShortageError) Unwrap() error { return ErrInsufficientStock }

// Shortage devuelve las unidades que faltan para cubrir lo solicitado.
func (e *StockShortageError) Shortage() int64 {
	if e.Requested <= e.Available {
		return 0
	}
	return e.Requested - e.Available
}
