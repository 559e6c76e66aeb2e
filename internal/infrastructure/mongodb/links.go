package mongodb

import (
	"fmt"
	"strings"

	"github.com/jhoicas/partsunlimited-catalog/internal/domain"
)

const (
	databasesSegment   = "dbs"
	collectionsSegment = "colls"
)

// DatabaseLink construye el link de una base de datos: dbs/<db>.
func DatabaseLink(databaseID string) string {
	return databasesSegment + "/" + databaseID
}

// CollectionLink construye el link de una colección: dbs/<db>/colls/<coll>.
func CollectionLink(databaseID, collectionID string) string {
	return DatabaseLink(databaseID) + "/" + collectionsSegment + "/" + collectionID
}

// ParseDatabaseLink extrae el id de base de datos de dbs/<db>.
func ParseDatabaseLink(link string) (string, error) {
	parts := strings.Split(strings.Trim(link, "/"), "/")
	if len(parts) != 2 || parts[0] != databasesSegment || parts[1] == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStoreLink, link)
	}
	return parts[1], nil
}

// ParseCollectionLink extrae base de datos y colección de dbs/<db>/colls/<coll>.
func ParseCollectionLink(link string) (databaseID, collectionID string, err error) {
	parts := strings.Split(strings.Trim(link, "/"), "/")
	if len(parts) != 4 || parts[0] != databasesSegment || parts[2] != collectionsSegment ||
		parts[1] == "" || parts[3] == "" {
		return "", "", fmt.Errorf("%w: %q", domain.ErrInvalidStoreLink, link)
	}
	return parts[1], parts[3], nil
}
