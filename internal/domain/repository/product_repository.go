package repository

import (
	"context"

	"github.com/jhoicas/partsunlimited-catalog/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia relacional para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Count(ctx context.Context) (int, error)
}
