package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/jhoicas/partsunlimited-catalog/internal/domain/entity"
)

// Accesos para los tests externos.
var Translate = translate

func RoundTrip(p *entity.Product) (*entity.Product, error) {
	doc, err := toDocument(p)
	if err != nil {
		return nil, err
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return DecodeProduct(raw)
}

// DecodeProduct lee un documento crudo como lo hace QueryDocuments.
func DecodeProduct(raw bson.Raw) (*entity.Product, error) {
	var stored storedProduct
	if err := bson.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}
	return stored.toEntity()
}
