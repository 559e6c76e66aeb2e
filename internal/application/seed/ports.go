package seed

import (
	"context"

	"github.com/jhoicas/partsunlimited-catalog/internal/domain/entity"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain/repository"
)

// DataSeeder puebla un almacén con los datos de muestra.
type DataSeeder interface {
	Seed(ctx context.Context, data *SampleData) error
}

// RelationalSeeder colaborador relacional: resuelve categorías y persiste productos.
// SeedCategories debe dejar las categorías persistidas antes de devolverlas.
type RelationalSeeder interface {
	SeedCategories(ctx context.Context, data *SampleData) ([]*entity.Category, error)
	SeedProducts(ctx context.Context, products []*entity.Product) error
}

// DocumentClient cliente del almacén documental. Los links tienen la forma
// dbs/<database> y dbs/<database>/colls/<collection>.
type DocumentClient interface {
	ListDatabases(ctx context.Context) ([]string, error)
	CreateDatabase(ctx context.Context, id string) error
	ListCollections(ctx context.Context, databaseLink string) ([]string, error)
	CreateCollection(ctx context.Context, databaseLink string, coll entity.DocumentCollection) error
	QueryDocuments(ctx context.Context, collectionLink string) ([]*entity.Product, error)
	CreateDocument(ctx context.Context, collectionLink string, product *entity.Product) error
	Close(ctx context.Context) error
}

// DocDBConfiguration contrato de configuración del almacén documental.
type DocDBConfiguration interface {
	DatabaseID() string
	CollectionID() string
	BuildClient(ctx context.Context) (DocumentClient, error)
	BuildDatabaseLink() string
	BuildProductCollectionLink() string
}

// Unlock libera un candado adquirido.
type Unlock func(ctx context.Context) error

// Locker candado de aprovisionamiento entre procesos. Acquire devuelve domain.ErrSeedInProgress
// si otro proceso lo tiene.
type Locker interface {
	Acquire(ctx context.Context, key string) (Unlock, error)
}

// CatalogTxRunner ejecuta fn dentro de una transacción relacional con repos atados a ella.
type CatalogTxRunner interface {
	Run(ctx context.Context, fn func(
		categoryRepo repository.CategoryRepository,
		productRepo repository.ProductRepository,
	) error) error
}
