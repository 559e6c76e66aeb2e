package entity

// IndexKind tipo de índice de una ruta incluida.
type IndexKind string

// DataType tipo de dato cubierto por un índice.
type DataType string

const (
	IndexKindRange IndexKind = "range"
	IndexKindHash  IndexKind = "hash"

	DataTypeString DataType = "string"
	DataTypeNumber DataType = "number"
)

// MaxPrecision precisión ilimitada para índices de rango.
const MaxPrecision = -1

// WildcardPath cubre todos los campos del documento.
const WildcardPath = "/*"

// Index índice sobre una ruta.
type Index struct {
	Kind      IndexKind
	DataType  DataType
	Precision int
}

// IncludedPath ruta indexada y sus índices.
type IncludedPath struct {
	Path    string
	Indexes []Index
}

// IndexingPolicy política de indexación de una colección. Inmutable una vez creada la colección.
type IndexingPolicy struct {
	IncludedPaths []IncludedPath
}

// DocumentCollection descripción de una colección a crear en el almacén documental.
type DocumentCollection struct {
	ID             string
	IndexingPolicy IndexingPolicy
}

// CatalogIndexingPolicy indexa todos los campos con rango string y numérico a precisión máxima,
// de modo que cualquier consulta futura (orden, filtros) no requiera índices adicionales.
func CatalogIndexingPolicy() IndexingPolicy {
	return IndexingPolicy{
		IncludedPaths: []IncludedPath{
			{
				Path: WildcardPath,
				Indexes: []Index{
					{Kind: IndexKindRange, DataType: DataTypeString, Precision: MaxPrecision},
					{Kind: IndexKindRange, DataType: DataTypeNumber, Precision: MaxPrecision},
				},
			},
		},
	}
}

// HasRangeIndex indica si la política incluye un índice de rango para path y tipo con la precisión dada.
func (p IndexingPolicy) HasRangeIndex(path string, dt DataType, precision int) bool {
	for _, ip := range p.IncludedPaths {
		if ip.Path != path {
			continue
		}
		for _, idx := range ip.Indexes {
			if idx.Kind == IndexKindRange && idx.DataType == dt && idx.Precision == precision {
				return true
			}
		}
	}
	return false
}
