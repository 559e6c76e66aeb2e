package mongodb_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/jhoicas/partsunlimited-catalog/internal/application/seed"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain/entity"
	"github.com/jhoicas/partsunlimited-catalog/internal/infrastructure/mongodb"
)

const (
	dbLink   = "dbs/PartsUnlimited"
	collLink = "dbs/PartsUnlimited/colls/Products"
)

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func storeError(t *testing.T, err error) *domain.StoreError {
	t.Helper()
	var se *domain.StoreError
	require.ErrorAs(t, err, &se)
	return se
}

// ──────────────────────────────────────────────────────────────────────────────
// Base de datos y colección
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_ListDatabases(t *testing.T) {
	mt := newMockT(t)

	mt.Run("ok", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "databases", Value: bson.A{
			bson.D{{Key: "name", Value: "admin"}},
			bson.D{{Key: "name", Value: "PartsUnlimited"}},
		}}))

		names, err := mongodb.NewStore(mt.Client).ListDatabases(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []string{"admin", "PartsUnlimited"}, names)
	})

	mt.Run("sin permisos", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized on admin",
		}))

		_, err := mongodb.NewStore(mt.Client).ListDatabases(context.Background())
		se := storeError(mt.T, err)
		assert.Equal(mt, http.StatusForbidden, se.StatusCode)
		assert.Equal(mt, "listDatabases", se.Op)
		assert.Equal(mt, "not authorized on admin", se.Message)
	})
}

func TestStore_CreateDatabase(t *testing.T) {
	mt := newMockT(t)

	mt.Run("crea", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, mongodb.NewStore(mt.Client).CreateDatabase(context.Background(), "PartsUnlimited"))
	})

	mt.Run("ya existe", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 48, Name: "NamespaceExists", Message: "Collection PartsUnlimited._provisioning already exists.",
		}))
		assert.NoError(mt, mongodb.NewStore(mt.Client).CreateDatabase(context.Background(), "PartsUnlimited"))
	})

	mt.Run("id vacío", func(mt *mtest.T) {
		err := mongodb.NewStore(mt.Client).CreateDatabase(context.Background(), "")
		assert.ErrorIs(mt, err, mongodb.ErrEmptyID)
	})
}

func TestStore_ListCollections(t *testing.T) {
	mt := newMockT(t)

	mt.Run("oculta la colección de control", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "PartsUnlimited.$cmd.listCollections", mtest.FirstBatch,
			bson.D{{Key: "name", Value: "_provisioning"}, {Key: "type", Value: "collection"}},
			bson.D{{Key: "name", Value: "Products"}, {Key: "type", Value: "collection"}},
		))

		names, err := mongodb.NewStore(mt.Client).ListCollections(context.Background(), dbLink)
		require.NoError(mt, err)
		assert.Equal(mt, []string{"Products"}, names)
	})

	mt.Run("link inválido", func(mt *mtest.T) {
		_, err := mongodb.NewStore(mt.Client).ListCollections(context.Background(), "PartsUnlimited")
		assert.ErrorIs(mt, err, domain.ErrInvalidStoreLink)
	})
}

func TestStore_CreateCollection(t *testing.T) {
	mt := newMockT(t)
	coll := entity.DocumentCollection{ID: "Products", IndexingPolicy: entity.CatalogIndexingPolicy()}

	mt.Run("crea colección e índices", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(), // create
			mtest.CreateSuccessResponse(), // createIndexes
		)
		require.NoError(mt, mongodb.NewStore(mt.Client).CreateCollection(context.Background(), dbLink, coll))
	})

	mt.Run("colección existente sigue con índices", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 48, Name: "NamespaceExists", Message: "exists"}),
			mtest.CreateSuccessResponse(),
		)
		require.NoError(mt, mongodb.NewStore(mt.Client).CreateCollection(context.Background(), dbLink, coll))
	})

	mt.Run("throttling", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 16500, Name: "RequestRateTooLarge", Message: "Request rate is large",
		}))
		err := mongodb.NewStore(mt.Client).CreateCollection(context.Background(), dbLink, coll)
		se := storeError(mt.T, err)
		assert.Equal(mt, http.StatusTooManyRequests, se.StatusCode)
		assert.Equal(mt, "createCollection", se.Op)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos
// ──────────────────────────────────────────────────────────────────────────────

func productDoc(id, sku, price string) bson.D {
	d, _ := primitive.ParseDecimal128(price)
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "sku", Value: sku},
		{Key: "categoryId", Value: "c1"},
		{Key: "recommendationId", Value: int32(1)},
		{Key: "title", Value: "Title " + sku},
		{Key: "price", Value: d},
		{Key: "salePrice", Value: d},
		{Key: "productDetails", Value: bson.D{{Key: "Color", Value: "Black"}}},
		{Key: "inventory", Value: int32(4)},
		{Key: "leadTime", Value: int32(2)},
		{Key: "createdAt", Value: primitive.NewDateTimeFromTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))},
	}
}

func TestStore_QueryDocuments(t *testing.T) {
	mt := newMockT(t)

	mt.Run("decodifica productos", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "PartsUnlimited.Products", mtest.FirstBatch,
			productDoc("p1", "BRA-0001", "25.99"),
			productDoc("p2", "OIL-0001", "15.99"),
		))

		products, err := mongodb.NewStore(mt.Client).QueryDocuments(context.Background(), collLink)
		require.NoError(mt, err)
		require.Len(mt, products, 2)
		assert.Equal(mt, "BRA-0001", products[0].SKU)
		assert.True(mt, products[0].Price.Equal(decimal.RequireFromString("25.99")))
		assert.JSONEq(mt, `{"Color":"Black"}`, string(products[1].ProductDetails))
		assert.Equal(mt, 4, products[1].Inventory)
	})

	mt.Run("tolera documentos poblados por otra herramienta", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "PartsUnlimited.Products", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "1"},
				{Key: "sku", Value: "LIG-0001"},
				{Key: "price", Value: 38.99},
				{Key: "salePrice", Value: 38.99},
			},
			bson.D{
				{Key: "_id", Value: int32(7)},
				{Key: "sku", Value: "OIL-0001"},
				{Key: "categoryId", Value: int32(4)},
				{Key: "price", Value: int32(15)},
				{Key: "salePrice", Value: int64(12)},
				{Key: "productDetails", Value: `{"Filter Type":"Canister"}`},
				{Key: "inventory", Value: 3.0},
			},
		))

		products, err := mongodb.NewStore(mt.Client).QueryDocuments(context.Background(), collLink)
		require.NoError(mt, err)
		require.Len(mt, products, 2)
		assert.Equal(mt, "1", products[0].ID)
		assert.True(mt, products[0].Price.Equal(decimal.RequireFromString("38.99")))
		assert.Equal(mt, "7", products[1].ID)
		assert.Equal(mt, "4", products[1].CategoryID)
		assert.True(mt, products[1].Price.Equal(decimal.NewFromInt(15)))
		assert.True(mt, products[1].SalePrice.Equal(decimal.NewFromInt(12)))
		assert.JSONEq(mt, `{"Filter Type":"Canister"}`, string(products[1].ProductDetails))
		assert.Equal(mt, 3, products[1].Inventory)
	})

	mt.Run("precio no numérico", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "PartsUnlimited.Products", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "1"}, {Key: "sku", Value: "LIG-0001"}, {Key: "price", Value: true}},
		))

		_, err := mongodb.NewStore(mt.Client).QueryDocuments(context.Background(), collLink)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "LIG-0001")
	})

	mt.Run("colección vacía", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "PartsUnlimited.Products", mtest.FirstBatch))

		products, err := mongodb.NewStore(mt.Client).QueryDocuments(context.Background(), collLink)
		require.NoError(mt, err)
		assert.Empty(mt, products)
	})
}

func TestStore_CreateDocument(t *testing.T) {
	mt := newMockT(t)
	p := &entity.Product{ID: "p1", SKU: "BRA-0001", Price: decimal.RequireFromString("25.99")}

	mt.Run("inserta", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		require.NoError(mt, mongodb.NewStore(mt.Client).CreateDocument(context.Background(), collLink, p))
	})

	mt.Run("duplicado", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error collection: PartsUnlimited.Products",
		}))
		err := mongodb.NewStore(mt.Client).CreateDocument(context.Background(), collLink, p)
		se := storeError(mt.T, err)
		assert.Equal(mt, http.StatusConflict, se.StatusCode)
		assert.Equal(mt, "insert", se.Op)
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Siembra completa sobre el adaptador
// ──────────────────────────────────────────────────────────────────────────────

// mockConfig entrega un Store sobre el cliente de mtest; Close no desconecta (lo hace mtest).
type mockConfig struct {
	*mongodb.Configuration
	store *mongodb.Store
}

type noCloseStore struct{ *mongodb.Store }

func (noCloseStore) Close(context.Context) error { return nil }

func (c mockConfig) BuildClient(context.Context) (seed.DocumentClient, error) {
	return noCloseStore{c.store}, nil
}

type stubRelational struct {
	categories []*entity.Category
	products   []*entity.Product
}

func (r *stubRelational) SeedCategories(context.Context, *seed.SampleData) ([]*entity.Category, error) {
	return r.categories, nil
}

func (r *stubRelational) SeedProducts(_ context.Context, p []*entity.Product) error {
	r.products = p
	return nil
}

func TestDocDBSeeder_SobreMongo(t *testing.T) {
	mt := newMockT(t)

	mt.Run("colección nueva", func(mt *mtest.T) {
		data := seed.DefaultSampleData()
		var categories []*entity.Category
		for i, c := range data.Categories() {
			c.ID = string(rune('a' + i))
			categories = append(categories, c)
		}

		responses := []bson.D{
			mtest.CreateSuccessResponse(bson.E{Key: "databases", Value: bson.A{}}),                 // listDatabases
			mtest.CreateSuccessResponse(),                                                          // create _provisioning
			mtest.CreateCursorResponse(0, "PartsUnlimited.$cmd.listCollections", mtest.FirstBatch), // listCollections
			mtest.CreateSuccessResponse(),                                                          // create Products
			mtest.CreateSuccessResponse(),                                                          // createIndexes
			mtest.CreateCursorResponse(0, "PartsUnlimited.Products", mtest.FirstBatch),             // find
		}
		for range data.ProductSeeds {
			responses = append(responses, mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		}
		mt.AddMockResponses(responses...)

		cfg := mockConfig{
			Configuration: mongodb.NewConfiguration(configFor("PartsUnlimited", "Products")),
			store:         mongodb.NewStore(mt.Client),
		}
		rel := &stubRelational{categories: categories}
		seeder := seed.NewDocDBSeeder(cfg, rel, nil, nil)

		require.NoError(mt, seeder.Seed(context.Background(), data))

		report := seeder.LastRun()
		assert.Equal(mt, seed.StageDone, report.Stage)
		assert.True(mt, report.DatabaseCreated)
		assert.True(mt, report.CollectionCreated)
		assert.Equal(mt, len(data.ProductSeeds), report.Inserted)
		assert.Len(mt, rel.products, len(data.ProductSeeds))
	})
}
