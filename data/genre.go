package data

// Genres come from artist payloads as bare name strings.
//
// The name should be unique, but the schema deliberately doesn't
// enforce it: the historical ingestion path could create duplicate rows
// for one name, and db.ReconcileDuplicateGenres merges them after the
// fact. ID is a surrogate key so duplicates remain addressable.
type Genre struct {
	ID   int64
	Name string

	Artists []*Artist `gorm:"-"`
}
