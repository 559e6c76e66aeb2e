package seed_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/partsunlimited-catalog/internal/application/seed"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain/entity"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén documental en memoria que registra cada llamada
// ──────────────────────────────────────────────────────────────────────────────

type fakeDocStore struct {
	mu                 sync.Mutex
	databases          []string
	collections        map[string][]string // dbLink -> ids
	docs               map[string][]*entity.Product
	createdDatabases   []string
	createdCollections []entity.DocumentCollection
	inserts            int
	calls              []string
	failOn             map[string]error
	buildErr           error
	closed             int
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{
		collections: map[string][]string{},
		docs:        map[string][]*entity.Product{},
		failOn:      map[string]error{},
	}
}

func (f *fakeDocStore) record(op string) error {
	f.calls = append(f.calls, op)
	return f.failOn[op]
}

func (f *fakeDocStore) called(op string) bool {
	for _, c := range f.calls {
		if c == op {
			return true
		}
	}
	return false
}

func (f *fakeDocStore) ListDatabases(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListDatabases"); err != nil {
		return nil, err
	}
	return append([]string(nil), f.databases...), nil
}

func (f *fakeDocStore) CreateDatabase(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateDatabase"); err != nil {
		return err
	}
	f.createdDatabases = append(f.createdDatabases, id)
	f.databases = append(f.databases, id)
	return nil
}

func (f *fakeDocStore) ListCollections(_ context.Context, dbLink string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListCollections"); err != nil {
		return nil, err
	}
	return append([]string(nil), f.collections[dbLink]...), nil
}

func (f *fakeDocStore) CreateCollection(_ context.Context, dbLink string, coll entity.DocumentCollection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateCollection"); err != nil {
		return err
	}
	f.createdCollections = append(f.createdCollections, coll)
	f.collections[dbLink] = append(f.collections[dbLink], coll.ID)
	return nil
}

func (f *fakeDocStore) QueryDocuments(_ context.Context, collLink string) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("QueryDocuments"); err != nil {
		return nil, err
	}
	return append([]*entity.Product(nil), f.docs[collLink]...), nil
}

func (f *fakeDocStore) CreateDocument(_ context.Context, collLink string, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateDocument"); err != nil {
		return err
	}
	f.inserts++
	f.docs[collLink] = append(f.docs[collLink], p)
	return nil
}

func (f *fakeDocStore) Close(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

// fakeConfig contrato de configuración sobre el almacén en memoria.
type fakeConfig struct {
	store *fakeDocStore
	db    string
	coll  string
}

func (c fakeConfig) DatabaseID() string   { return c.db }
func (c fakeConfig) CollectionID() string { return c.coll }
func (c fakeConfig) BuildDatabaseLink() string {
	return "dbs/" + c.db
}
func (c fakeConfig) BuildProductCollectionLink() string {
	return fmt.Sprintf("dbs/%s/colls/%s", c.db, c.coll)
}
func (c fakeConfig) BuildClient(_ context.Context) (seed.DocumentClient, error) {
	if c.store.buildErr != nil {
		return nil, c.store.buildErr
	}
	return c.store, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Colaborador relacional en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeRelational struct {
	categories      []*entity.Category
	seededProducts  [][]*entity.Product
	categoriesCalls int
	categoriesErr   error
	productsErr     error
}

func (r *fakeRelational) SeedCategories(_ context.Context, data *seed.SampleData) ([]*entity.Category, error) {
	r.categoriesCalls++
	if r.categoriesErr != nil {
		return nil, r.categoriesErr
	}
	if r.categories == nil {
		for i, c := range data.Categories() {
			c.ID = fmt.Sprintf("cat-%d", i+1)
			r.categories = append(r.categories, c)
		}
	}
	return r.categories, nil
}

func (r *fakeRelational) SeedProducts(_ context.Context, products []*entity.Product) error {
	if r.productsErr != nil {
		return r.productsErr
	}
	r.seededProducts = append(r.seededProducts, products)
	return nil
}

// fakeLocker candado en memoria.
type fakeLocker struct {
	held     map[string]bool
	released []string
}

func (l *fakeLocker) Acquire(_ context.Context, key string) (seed.Unlock, error) {
	if l.held == nil {
		l.held = map[string]bool{}
	}
	if l.held[key] {
		return nil, domain.ErrSeedInProgress
	}
	l.held[key] = true
	return func(context.Context) error {
		delete(l.held, key)
		l.released = append(l.released, key)
		return nil
	}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos relacionales en memoria + TxRunner que no aísla (suficiente para el seeder)
// ──────────────────────────────────────────────────────────────────────────────

type memCategoryRepo struct {
	rows      []*entity.Category
	createErr error
}

func (r *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *c
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *memCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	return append([]*entity.Category(nil), r.rows...), nil
}

func (r *memCategoryRepo) Count(_ context.Context) (int, error) { return len(r.rows), nil }

type memProductRepo struct {
	rows []*entity.Product
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.rows = append(r.rows, p)
	return nil
}

func (r *memProductRepo) Count(_ context.Context) (int, error) { return len(r.rows), nil }

type memTxRunner struct {
	categories *memCategoryRepo
	products   *memProductRepo
	runs       int
}

func newMemTxRunner() *memTxRunner {
	return &memTxRunner{categories: &memCategoryRepo{}, products: &memProductRepo{}}
}

func (m *memTxRunner) Run(_ context.Context, fn func(repository.CategoryRepository, repository.ProductRepository) error) error {
	m.runs++
	return fn(m.categories, m.products)
}
