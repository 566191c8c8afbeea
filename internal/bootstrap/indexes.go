package bootstrap

import (
	"encoding/json"
	"os"
)

// IndexField is one field of a composite index definition.
type IndexField struct {
	FieldPath string `json:"fieldPath"`
	Order     string `json:"order"` // ASCENDING or DESCENDING
}

// IndexDefinition describes one composite index over the boards collection.
type IndexDefinition struct {
	CollectionGroup string       `json:"collectionGroup"`
	QueryScope      string       `json:"queryScope"`
	Fields          []IndexField `json:"fields"`
}

// IndexFile is the persisted index-definition artifact handed to the managed
// database's index builder.
type IndexFile struct {
	Indexes []IndexDefinition `json:"indexes"`
}

// BoardIndexDefinitions returns the six composite definitions covering the
// cross product of the two base fields (userId, isPublic) and the three
// order fields (updatedAt, createdAt, name).
func BoardIndexDefinitions() []IndexDefinition {
	baseFields := []string{"userId", "isPublic"}
	orderFields := []IndexField{
		{FieldPath: "updatedAt", Order: "DESCENDING"},
		{FieldPath: "createdAt", Order: "DESCENDING"},
		{FieldPath: "name", Order: "ASCENDING"},
	}

	defs := make([]IndexDefinition, 0, len(baseFields)*len(orderFields))
	for _, base := range baseFields {
		for _, order := range orderFields {
			defs = append(defs, IndexDefinition{
				CollectionGroup: "boards",
				QueryScope:      "COLLECTION",
				Fields: []IndexField{
					{FieldPath: base, Order: "ASCENDING"},
					order,
				},
			})
		}
	}
	return defs
}

// WriteIndexFile persists the board index definitions to path.
func WriteIndexFile(path string) error {
	file := IndexFile{Indexes: BoardIndexDefinitions()}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
