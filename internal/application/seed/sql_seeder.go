package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/partsunlimited-catalog/internal/domain/entity"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain/repository"
	"github.com/jhoicas/partsunlimited-catalog/pkg/logger"
)

var (
	_ DataSeeder       = (*SQLDataSeeder)(nil)
	_ RelationalSeeder = (*SQLDataSeeder)(nil)
)

// SQLDataSeeder siembra el catálogo en PostgreSQL. Cada paso corre en su propia transacción y
// sólo escribe si la tabla está vacía.
type SQLDataSeeder struct {
	tx  CatalogTxRunner
	log *logger.Logger
	now func() time.Time
}

// NewSQLDataSeeder construye el seeder relacional.
func NewSQLDataSeeder(tx CatalogTxRunner, log *logger.Logger) *SQLDataSeeder {
	if log == nil {
		log = logger.Nop()
	}
	return &SQLDataSeeder{tx: tx, log: log.Named("sql_seeder"), now: func() time.Time { return time.Now().UTC() }}
}

// Seed respaldo sólo relacional: categorías y luego productos derivados de ellas.
func (s *SQLDataSeeder) Seed(ctx context.Context, data *SampleData) error {
	categories, err := s.SeedCategories(ctx, data)
	if err != nil {
		return fmt.Errorf("sembrar categorías: %w", err)
	}
	products, err := data.Products(categories, true)
	if err != nil {
		return err
	}
	if err := s.SeedProducts(ctx, products); err != nil {
		return fmt.Errorf("sembrar productos: %w", err)
	}
	return nil
}

// SeedCategories inserta las categorías de muestra si la tabla está vacía y devuelve las persistidas.
func (s *SQLDataSeeder) SeedCategories(ctx context.Context, data *SampleData) ([]*entity.Category, error) {
	var out []*entity.Category
	err := s.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, _ repository.ProductRepository) error {
		n, err := categoryRepo.Count(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			for _, c := range data.Categories() {
				c.ID = uuid.New().String()
				if err := categoryRepo.Create(ctx, c); err != nil {
					return err
				}
			}
			s.log.Info().Int("count", len(data.CategorySeeds)).Msg("categorías insertadas")
		}
		out, err = categoryRepo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SeedProducts inserta los productos si la tabla está vacía. Conserva los IDs recibidos
// (los asigna el almacén documental) y no modifica los valores de entrada.
func (s *SQLDataSeeder) SeedProducts(ctx context.Context, products []*entity.Product) error {
	return s.tx.Run(ctx, func(_ repository.CategoryRepository, productRepo repository.ProductRepository) error {
		n, err := productRepo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			s.log.Info().Int("existing", n).Msg("productos relacionales ya sembrados")
			return nil
		}
		for _, p := range products {
			row := *p
			if row.ID == "" {
				row.ID = uuid.New().String()
			}
			if row.CreatedAt.IsZero() {
				row.CreatedAt = s.now()
			}
			if err := productRepo.Create(ctx, &row); err != nil {
				return err
			}
		}
		s.log.Info().Int("count", len(products)).Msg("productos relacionales insertados")
		return nil
	})
}
