package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo.
// Se persiste como documento en el almacén documental y como fila en PostgreSQL (respaldo).
type Product struct {
	ID               string
	SKU              string // único
	CategoryID       string
	RecommendationID int
	Title            string
	Price            decimal.Decimal
	SalePrice        decimal.Decimal
	ProductArtURL    string
	Description      string
	ProductDetails   json.RawMessage
	Inventory        int
	LeadTime         int // días
	CreatedAt        time.Time
}
