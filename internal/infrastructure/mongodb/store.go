package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/partsunlimited-catalog/internal/application/seed"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain/entity"
)

var _ seed.DocumentClient = (*Store)(nil)

// provisioningCollection colección de control con la que se materializa una base de datos:
// MongoDB crea las bases de forma perezosa, al crear su primera colección.
const provisioningCollection = "_provisioning"

// Store adaptador del almacén documental sobre un *mongo.Client. Los recursos se direccionan por link
// (dbs/<db>, dbs/<db>/colls/<coll>) y todos los errores del driver salen como *domain.StoreError.
type Store struct {
	client *mongo.Client
}

// NewStore construye el adaptador. Store.Close desconecta el cliente.
func NewStore(client *mongo.Client) *Store {
	return &Store{client: client}
}

// ListDatabases nombres de las bases de datos visibles.
func (s *Store) ListDatabases(ctx context.Context) ([]string, error) {
	names, err := s.client.ListDatabaseNames(ctx, bson.D{})
	if err != nil {
		return nil, translate("listDatabases", err)
	}
	return names, nil
}

// CreateDatabase materializa la base creando su colección de control. Si ya existe no es error.
func (s *Store) CreateDatabase(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("createDatabase: %w", ErrEmptyID)
	}
	err := s.client.Database(id).CreateCollection(ctx, provisioningCollection)
	if err != nil && !isNamespaceExists(err) {
		return translate("createDatabase", err)
	}
	return nil
}

// ListCollections colecciones de la base (sin la colección de control).
func (s *Store) ListCollections(ctx context.Context, dbLink string) ([]string, error) {
	dbID, err := ParseDatabaseLink(dbLink)
	if err != nil {
		return nil, err
	}
	names, err := s.client.Database(dbID).ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, translate("listCollections", err)
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != provisioningCollection {
			out = append(out, n)
		}
	}
	return out, nil
}

// CreateCollection crea la colección y sus índices según la política. Una colección existente
// o un índice equivalente ya creado no son error.
func (s *Store) CreateCollection(ctx context.Context, dbLink string, coll entity.DocumentCollection) error {
	dbID, err := ParseDatabaseLink(dbLink)
	if err != nil {
		return err
	}
	if coll.ID == "" {
		return fmt.Errorf("createCollection: %w", ErrEmptyID)
	}
	models, err := IndexModels(coll.IndexingPolicy)
	if err != nil {
		return err
	}

	db := s.client.Database(dbID)
	if err := db.CreateCollection(ctx, coll.ID); err != nil && !isNamespaceExists(err) {
		return translate("createCollection", err)
	}
	if len(models) == 0 {
		return nil
	}
	if _, err := db.Collection(coll.ID).Indexes().CreateMany(ctx, models); err != nil && !isIndexOptionsConflict(err) {
		return translate("createIndexes", err)
	}
	return nil
}

// QueryDocuments todos los productos de la colección. Los documentos se leen con tipos laxos
// para no fallar sobre colecciones pobladas por otra herramienta.
func (s *Store) QueryDocuments(ctx context.Context, collLink string) ([]*entity.Product, error) {
	coll, err := s.collection(collLink)
	if err != nil {
		return nil, err
	}
	cur, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, translate("find", err)
	}
	var docs []storedProduct
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate("find", err)
	}
	out := make([]*entity.Product, 0, len(docs))
	for i := range docs {
		p, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// CreateDocument inserta un producto. El ID del producto es la clave del documento.
func (s *Store) CreateDocument(ctx context.Context, collLink string, p *entity.Product) error {
	coll, err := s.collection(collLink)
	if err != nil {
		return err
	}
	doc, err := toDocument(p)
	if err != nil {
		return err
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return translate("insert", err)
	}
	return nil
}

// Close desconecta el cliente.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return translate("disconnect", err)
	}
	return nil
}

func (s *Store) collection(collLink string) (*mongo.Collection, error) {
	dbID, collID, err := ParseCollectionLink(collLink)
	if err != nil {
		return nil, err
	}
	return s.client.Database(dbID).Collection(collID), nil
}
