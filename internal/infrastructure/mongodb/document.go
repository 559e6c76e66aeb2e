package mongodb

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/partsunlimited-catalog/internal/domain/entity"
)

// productDocument representación BSON con la que se insertan los productos. Los precios viajan
// como Decimal128 y los detalles como subdocumento para poder filtrarlos.
type productDocument struct {
	ID               string               `bson:"_id"`
	SKU              string               `bson:"sku"`
	CategoryID       string               `bson:"categoryId"`
	RecommendationID int                  `bson:"recommendationId"`
	Title            string               `bson:"title"`
	Price            primitive.Decimal128 `bson:"price"`
	SalePrice        primitive.Decimal128 `bson:"salePrice"`
	ProductArtURL    string               `bson:"productArtUrl"`
	Description      string               `bson:"description"`
	ProductDetails   bson.D               `bson:"productDetails,omitempty"`
	Inventory        int                  `bson:"inventory"`
	LeadTime         int                  `bson:"leadTime"`
	CreatedAt        time.Time            `bson:"createdAt"`
}

func toDocument(p *entity.Product) (*productDocument, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return nil, fmt.Errorf("precio %s: %w", p.SKU, err)
	}
	sale, err := primitive.ParseDecimal128(p.SalePrice.String())
	if err != nil {
		return nil, fmt.Errorf("precio de oferta %s: %w", p.SKU, err)
	}
	var details bson.D
	if len(p.ProductDetails) > 0 && string(p.ProductDetails) != "null" {
		if err := bson.UnmarshalExtJSON(p.ProductDetails, false, &details); err != nil {
			return nil, fmt.Errorf("detalles %s: %w", p.SKU, err)
		}
	}
	return &productDocument{
		ID:               p.ID,
		SKU:              p.SKU,
		CategoryID:       p.CategoryID,
		RecommendationID: p.RecommendationID,
		Title:            p.Title,
		Price:            price,
		SalePrice:        sale,
		ProductArtURL:    p.ProductArtURL,
		Description:      p.Description,
		ProductDetails:   details,
		Inventory:        p.Inventory,
		LeadTime:         p.LeadTime,
		CreatedAt:        p.CreatedAt.UTC().Truncate(time.Millisecond),
	}, nil
}

// storedProduct lectura tolerante de un documento existente: la colección pudo poblarla otra
// herramienta (precios como double o int, _id numérico u ObjectID, detalles como string JSON).
type storedProduct struct {
	ID               bson.RawValue `bson:"_id"`
	SKU              bson.RawValue `bson:"sku"`
	CategoryID       bson.RawValue `bson:"categoryId"`
	RecommendationID bson.RawValue `bson:"recommendationId"`
	Title            bson.RawValue `bson:"title"`
	Price            bson.RawValue `bson:"price"`
	SalePrice        bson.RawValue `bson:"salePrice"`
	ProductArtURL    bson.RawValue `bson:"productArtUrl"`
	Description      bson.RawValue `bson:"description"`
	ProductDetails   bson.RawValue `bson:"productDetails"`
	Inventory        bson.RawValue `bson:"inventory"`
	LeadTime         bson.RawValue `bson:"leadTime"`
	CreatedAt        bson.RawValue `bson:"createdAt"`
}

func (d *storedProduct) toEntity() (*entity.Product, error) {
	sku := rawString(d.SKU)
	price, err := rawDecimal(d.Price)
	if err != nil {
		return nil, fmt.Errorf("precio %s: %w", sku, err)
	}
	sale, err := rawDecimal(d.SalePrice)
	if err != nil {
		return nil, fmt.Errorf("precio de oferta %s: %w", sku, err)
	}
	details, err := rawDetails(d.ProductDetails)
	if err != nil {
		return nil, fmt.Errorf("detalles %s: %w", sku, err)
	}
	recommendation, err := rawInt(d.RecommendationID)
	if err != nil {
		return nil, fmt.Errorf("recommendationId %s: %w", sku, err)
	}
	inventory, err := rawInt(d.Inventory)
	if err != nil {
		return nil, fmt.Errorf("inventory %s: %w", sku, err)
	}
	leadTime, err := rawInt(d.LeadTime)
	if err != nil {
		return nil, fmt.Errorf("leadTime %s: %w", sku, err)
	}
	createdAt, err := rawTime(d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("createdAt %s: %w", sku, err)
	}
	return &entity.Product{
		ID:               rawString(d.ID),
		SKU:              sku,
		CategoryID:       rawString(d.CategoryID),
		RecommendationID: recommendation,
		Title:            rawString(d.Title),
		Price:            price,
		SalePrice:        sale,
		ProductArtURL:    rawString(d.ProductArtURL),
		Description:      rawString(d.Description),
		ProductDetails:   details,
		Inventory:        inventory,
		LeadTime:         leadTime,
		CreatedAt:        createdAt,
	}, nil
}

// isAbsent campo ausente o nulo.
func isAbsent(v bson.RawValue) bool {
	return v.Type == 0 || v.Type == bsontype.Null || v.Type == bsontype.Undefined
}

func rawString(v bson.RawValue) string {
	switch {
	case isAbsent(v):
		return ""
	case v.Type == bsontype.String:
		return v.StringValue()
	case v.Type == bsontype.ObjectID:
		return v.ObjectID().Hex()
	case v.Type == bsontype.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case v.Type == bsontype.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case v.Type == bsontype.Double:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	case v.Type == bsontype.Binary:
		if subtype, data := v.Binary(); subtype == bson.TypeBinaryUUID {
			if id, err := uuid.FromBytes(data); err == nil {
				return id.String()
			}
		}
	}
	return v.String()
}

func rawDecimal(v bson.RawValue) (decimal.Decimal, error) {
	switch {
	case isAbsent(v):
		return decimal.Zero, nil
	case v.Type == bsontype.Decimal128:
		return decimal.NewFromString(v.Decimal128().String())
	case v.Type == bsontype.Double:
		return decimal.NewFromFloat(v.Double()), nil
	case v.Type == bsontype.Int32:
		return decimal.NewFromInt32(v.Int32()), nil
	case v.Type == bsontype.Int64:
		return decimal.NewFromInt(v.Int64()), nil
	case v.Type == bsontype.String:
		return decimal.NewFromString(v.StringValue())
	}
	return decimal.Zero, fmt.Errorf("tipo BSON %s no numérico", v.Type)
}

func rawInt(v bson.RawValue) (int, error) {
	switch {
	case isAbsent(v):
		return 0, nil
	case v.Type == bsontype.Int32:
		return int(v.Int32()), nil
	case v.Type == bsontype.Int64:
		return int(v.Int64()), nil
	case v.Type == bsontype.Double:
		return int(v.Double()), nil
	case v.Type == bsontype.String:
		return strconv.Atoi(v.StringValue())
	}
	return 0, fmt.Errorf("tipo BSON %s no entero", v.Type)
}

func rawTime(v bson.RawValue) (time.Time, error) {
	switch {
	case isAbsent(v):
		return time.Time{}, nil
	case v.Type == bsontype.DateTime:
		return time.UnixMilli(v.DateTime()).UTC(), nil
	case v.Type == bsontype.String:
		return time.Parse(time.RFC3339Nano, v.StringValue())
	}
	return time.Time{}, fmt.Errorf("tipo BSON %s no es fecha", v.Type)
}

// rawDetails acepta subdocumento o string JSON; un string que no es JSON se conserva como string.
func rawDetails(v bson.RawValue) (json.RawMessage, error) {
	switch {
	case isAbsent(v):
		return nil, nil
	case v.Type == bsontype.EmbeddedDocument:
		var d bson.D
		if err := v.Unmarshal(&d); err != nil {
			return nil, err
		}
		return bson.MarshalExtJSON(d, false, false)
	case v.Type == bsontype.String:
		s := v.StringValue()
		if json.Valid([]byte(s)) {
			return json.RawMessage(s), nil
		}
		return json.Marshal(s)
	}
	return nil, fmt.Errorf("tipo BSON %s no soportado", v.Type)
}
