package db

// EntityKind enumerates the entity types the service persists. Storage table
// names are an explicit mapping from kind, never derived from Go type names.
type EntityKind int

// Entity kinds.
const (
	KindClip EntityKind = iota
)

var collectionNames = map[EntityKind]string{
	KindClip: "clips",
}

// Collection returns the storage table name for the entity kind. It panics
// on an unmapped kind, which is a programming error caught by tests.
func (k EntityKind) Collection() string {
	name, ok := collectionNames[k]
	if !ok {
		panic("db: no collection mapped for entity kind")
	}
	return name
}
