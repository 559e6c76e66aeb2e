package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUserAlreadyExists = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrUnknownCategory   = errors.New("categoría desconocida")
	ErrSeedInProgress    = errors.New("otra instancia está sembrando el catálogo")
	ErrInvalidStoreLink  = errors.New("link de almacén documental inválido")
)

// StoreError error devuelto por el almacén documental. StatusCode sigue la convención HTTP
// (409 conflicto, 408 timeout, 429 throttling, 500 desconocido).
type StoreError struct {
	StatusCode int
	Op         string
	Message    string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *StoreError) Unwrap() error { return e.Err }

// BaseError devuelve la causa más interna de err.
func BaseError(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
	return nil
}
