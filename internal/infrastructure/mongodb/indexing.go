package mongodb

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/partsunlimited-catalog/internal/domain"
	"github.com/jhoicas/partsunlimited-catalog/internal/domain/entity"
)

// wildcardIndexName nombre del índice comodín que cubre todas las rutas.
const wildcardIndexName = "wildcard_range"

// IndexModels traduce una política de indexación a índices de MongoDB.
//
// Un índice Range sobre "/*" (cualquier tipo de dato) se convierte en un único índice comodín
// {"$**": 1}: MongoDB indexa strings y números en el mismo índice y no limita la precisión,
// que es lo que expresa Precision = -1. Otras rutas ("/sku/?") generan un índice por campo,
// ascendente para Range y "hashed" para Hash.
func IndexModels(policy entity.IndexingPolicy) ([]mongo.IndexModel, error) {
	var models []mongo.IndexModel
	seen := map[string]bool{}
	add := func(name string, keys bson.D) {
		if seen[name] {
			return
		}
		seen[name] = true
		models = append(models, mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)})
	}

	for _, inc := range policy.IncludedPaths {
		field, wildcard := fieldFromPath(inc.Path)
		for _, idx := range inc.Indexes {
			switch {
			case wildcard && idx.Kind == entity.IndexKindRange:
				add(wildcardIndexName, bson.D{{Key: "$**", Value: 1}})
			case wildcard:
				return nil, fmt.Errorf("%w: índice %s no soportado sobre %s", domain.ErrInvalidInput, idx.Kind, inc.Path)
			case field == "":
				return nil, fmt.Errorf("%w: ruta de indexación vacía", domain.ErrInvalidInput)
			case idx.Kind == entity.IndexKindHash:
				add("hash_"+field, bson.D{{Key: field, Value: "hashed"}})
			default:
				add("range_"+field, bson.D{{Key: field, Value: 1}})
			}
		}
	}
	return models, nil
}

// fieldFromPath convierte "/a/b/?" en "a.b". "/*" o "/" indican todas las rutas.
func fieldFromPath(path string) (field string, wildcard bool) {
	p := strings.TrimSpace(path)
	if p == entity.WildcardPath || p == "/" || p == "" {
		return "", p != ""
	}
	p = strings.TrimSuffix(p, "/?")
	p = strings.TrimSuffix(p, "/*")
	p = strings.Trim(p, "/")
	return strings.ReplaceAll(p, "/", "."), false
}
