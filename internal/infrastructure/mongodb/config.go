package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/partsunlimited-catalog/internal/application/seed"
	"github.com/jhoicas/partsunlimited-catalog/pkg/config"
)

var _ seed.DocDBConfiguration = (*Configuration)(nil)

// ErrEmptyID id de base de datos o colección vacío.
var ErrEmptyID = errors.New("id vacío")

const defaultConnectTimeout = 10 * time.Second

// Configuration contrato de configuración del almacén documental sobre config.DocDBConfig.
type Configuration struct {
	cfg config.DocDBConfig
}

// NewConfiguration construye la configuración. Un timeout no positivo usa 10s.
func NewConfiguration(cfg config.DocDBConfig) *Configuration {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	return &Configuration{cfg: cfg}
}

func (c *Configuration) DatabaseID() string   { return c.cfg.DatabaseID }
func (c *Configuration) CollectionID() string { return c.cfg.CollectionID }

// BuildDatabaseLink dbs/<db>.
func (c *Configuration) BuildDatabaseLink() string {
	return DatabaseLink(c.cfg.DatabaseID)
}

// BuildProductCollectionLink dbs/<db>/colls/<coll>.
func (c *Configuration) BuildProductCollectionLink() string {
	return CollectionLink(c.cfg.DatabaseID, c.cfg.CollectionID)
}

// BuildClient conecta al almacén y devuelve el adaptador. Cada llamada abre un cliente nuevo.
func (c *Configuration) BuildClient(ctx context.Context) (seed.DocumentClient, error) {
	client, err := Connect(ctx, c.cfg.URI, c.cfg.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	return NewStore(client), nil
}
