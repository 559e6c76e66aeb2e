package seed

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/partsunlimited-catalog/internal/domain"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain/entity"
	"github.com/jhoicas/partsunlimited-catalog/pkg/logger"
)

var _ DataSeeder = (*DocDBSeeder)(nil)

// lockKeyPrefix prefijo del candado de aprovisionamiento; se completa con el link de la colección.
const lockKeyPrefix = "seed:lock:"

// DocDBSeeder siembra el catálogo en el almacén documental. Las categorías se resuelven primero
// en el almacén relacional; los productos resultantes vuelven a él para persistirse.
type DocDBSeeder struct {
	cfg        DocDBConfiguration
	relational RelationalSeeder
	locker     Locker // nil = sin exclusión entre procesos
	log        *logger.Logger

	mu   sync.Mutex
	last RunReport
}

// NewDocDBSeeder construye el seeder. locker puede ser nil.
func NewDocDBSeeder(cfg DocDBConfiguration, relational RelationalSeeder, locker Locker, log *logger.Logger) *DocDBSeeder {
	if log == nil {
		log = logger.Nop()
	}
	return &DocDBSeeder{
		cfg:        cfg,
		relational: relational,
		locker:     locker,
		log:        log.Named("docdb_seeder"),
		last:       RunReport{Stage: StageNotStarted},
	}
}

// Seed ejecuta una corrida completa: categorías (relacional) → productos (documental) → productos (relacional).
// Cualquier error se devuelve al llamador; no hay reintentos.
func (s *DocDBSeeder) Seed(ctx context.Context, data *SampleData) error {
	if s.locker != nil {
		unlock, err := s.locker.Acquire(ctx, lockKeyPrefix+s.cfg.BuildProductCollectionLink())
		if err != nil {
			return err
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				s.log.Warn().Err(err).Msg("liberar candado de siembra")
			}
		}()
	}

	categories, err := s.relational.SeedCategories(ctx, data)
	if err != nil {
		return fmt.Errorf("sembrar categorías: %w", err)
	}

	products, err := s.CreateDocDBProducts(ctx, data, categories)
	if err != nil {
		return err
	}

	products, err = s.reconcileCategories(data, products, categories)
	if err != nil {
		return err
	}

	if err := s.relational.SeedProducts(ctx, products); err != nil {
		return fmt.Errorf("sembrar productos relacionales: %w", err)
	}
	return nil
}

// CreateDocDBProducts asegura base de datos y colección y, si la colección no tiene productos,
// inserta los de muestra uno a uno. Si ya hay productos se devuelven tal cual (son la fuente de verdad).
func (s *DocDBSeeder) CreateDocDBProducts(ctx context.Context, data *SampleData, categories []*entity.Category) (products []*entity.Product, err error) {
	report := RunReport{Stage: StageNotStarted, History: []Stage{StageNotStarted}}
	defer func() {
		if err != nil {
			report.Err = err
			report.advance(StageFailed)
			s.logFailure(err)
		}
		s.setLast(report)
	}()

	client, err := s.cfg.BuildClient(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := client.Close(context.WithoutCancel(ctx)); cerr != nil {
			s.log.Warn().Err(cerr).Msg("cerrar cliente del almacén documental")
		}
	}()

	if report.DatabaseCreated, err = s.createDatabaseIfNotExists(ctx, client); err != nil {
		return nil, err
	}
	report.advance(StageDatabaseEnsured)
	s.log.Info().Str("database", s.cfg.DatabaseID()).Bool("created", report.DatabaseCreated).Msg("base de datos asegurada")

	if report.CollectionCreated, err = s.createCollectionIfNotExists(ctx, client); err != nil {
		return nil, err
	}
	report.advance(StageCollectionEnsured)
	s.log.Info().Str("collection", s.cfg.CollectionID()).Bool("created", report.CollectionCreated).Msg("colección asegurada")

	products, inserted, err := s.createProducts(ctx, client, data, categories)
	if err != nil {
		return nil, err
	}
	if inserted {
		report.Inserted = len(products)
		report.advance(StagePopulated)
	} else {
		report.Existing = len(products)
		report.advance(StageAlreadyPopulated)
	}
	report.advance(StageDone)
	s.log.Info().
		Int("inserted", report.Inserted).
		Int("existing", report.Existing).
		Msg("siembra del almacén documental terminada")
	return products, nil
}

// LastRun devuelve el reporte de la última corrida de CreateDocDBProducts.
func (s *DocDBSeeder) LastRun() RunReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.last
	r.History = append([]Stage(nil), s.last.History...)
	return r
}

func (s *DocDBSeeder) setLast(r RunReport) {
	s.mu.Lock()
	s.last = r
	s.mu.Unlock()
}

func (s *DocDBSeeder) createProducts(ctx context.Context, client DocumentClient, data *SampleData, categories []*entity.Category) ([]*entity.Product, bool, error) {
	link := s.cfg.BuildProductCollectionLink()
	existing, err := client.QueryDocuments(ctx, link)
	if err != nil {
		return nil, false, err
	}
	if len(existing) > 0 {
		return existing, false, nil
	}

	products, err := data.Products(categories, true)
	if err != nil {
		return nil, false, err
	}
	for _, p := range products {
		if err := client.CreateDocument(ctx, link, p); err != nil {
			return nil, false, err
		}
	}
	return products, true, nil
}

func (s *DocDBSeeder) createDatabaseIfNotExists(ctx context.Context, client DocumentClient) (bool, error) {
	names, err := client.ListDatabases(ctx)
	if err != nil {
		return false, err
	}
	if contains(names, s.cfg.DatabaseID()) {
		return false, nil
	}
	if err := client.CreateDatabase(ctx, s.cfg.DatabaseID()); err != nil {
		return false, err
	}
	return true, nil
}

func (s *DocDBSeeder) createCollectionIfNotExists(ctx context.Context, client DocumentClient) (bool, error) {
	dbLink := s.cfg.BuildDatabaseLink()
	names, err := client.ListCollections(ctx, dbLink)
	if err != nil {
		return false, err
	}
	if contains(names, s.cfg.CollectionID()) {
		return false, nil
	}
	coll := entity.DocumentCollection{
		ID:             s.cfg.CollectionID(),
		IndexingPolicy: entity.CatalogIndexingPolicy(),
	}
	if err := client.CreateCollection(ctx, dbLink, coll); err != nil {
		return false, err
	}
	return true, nil
}

// reconcileCategories alinea la categoría de los productos con las categorías relacionales.
// Documentos sembrados contra otra base relacional traen IDs de categoría ajenos; se reasignan por
// nombre a partir del SKU de muestra. Devuelve copias: los documentos del almacén no se modifican.
func (s *DocDBSeeder) reconcileCategories(data *SampleData, products []*entity.Product, categories []*entity.Category) ([]*entity.Product, error) {
	known := make(map[string]bool, len(categories))
	byName := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		known[c.ID] = true
		byName[c.Name] = c
	}
	categoryOf := make(map[string]string, len(data.ProductSeeds))
	for _, p := range data.ProductSeeds {
		categoryOf[p.SKU] = p.Category
	}

	out := make([]*entity.Product, 0, len(products))
	reassigned := 0
	for _, p := range products {
		if known[p.CategoryID] {
			out = append(out, p)
			continue
		}
		cat, ok := byName[categoryOf[p.SKU]]
		if !ok {
			return nil, fmt.Errorf("producto %s: %w: id %q", p.SKU, domain.ErrUnknownCategory, p.CategoryID)
		}
		row := *p
		row.CategoryID = cat.ID
		out = append(out, &row)
		reassigned++
	}
	if reassigned > 0 {
		s.log.Warn().Int("reassigned", reassigned).Msg("categorías de documentos existentes reasignadas por SKU")
	}
	return out, nil
}

// logFailure registra el error sin alterarlo: los del almacén llevan status y mensaje.
func (s *DocDBSeeder) logFailure(err error) {
	base := domain.BaseError(err)
	var se *domain.StoreError
	if errors.As(err, &se) {
		s.log.Error().
			Int("status", se.StatusCode).
			Str("op", se.Op).
			Str("detail", se.Message).
			Str("base", base.Error()).
			Msg("error del almacén documental")
		return
	}
	s.log.Error().Str("base", base.Error()).Msg("error sembrando el almacén documental")
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
