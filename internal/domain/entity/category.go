package entity

import "time"

// Category representa una categoría del catálogo de repuestos.
// El ID lo asigna el almacén relacional al sembrar.
type Category struct {
	ID          string
	Name        string // único
	Description string
	ImageURL    string
	CreatedAt   time.Time
}
