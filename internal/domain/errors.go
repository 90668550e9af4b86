package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrDuplicate               = errors.New("recurso duplicado")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrInsufficientLotQuantity = errors.New("cantidad insuficiente en el lote")
	ErrStockAllocationFailed   = errors.New("no se pudo asignar la salida a los lotes disponibles")
	ErrAlreadyVoided           = errors.New("el movimiento ya fue anulado")
	ErrOperationNotAllowed     = errors.New("operación no permitida")
	ErrInvalidReversal         = errors.New("la anulación viola los límites de cantidad del lote")
	ErrConcurrentModification  = errors.New("el registro fue modificado por otra operación")
)

// Error acompaña un error centinela (Kind) con un mensaje legible para el usuario.
// errors.Is(err, domain.ErrX) sigue funcionando a través de Unwrap.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

// Errorf construye un *Error del tipo indicado con mensaje formateado.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
