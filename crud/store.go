// Package crud implements the data access layer: parameterized query
// operations over the user, station and reading tables. Failures are
// reported through the apperr taxonomy; absence on lookups is a nil result,
// not an error.
package crud

import (
	"time"

	"gorm.io/gorm"
)

// Store wraps the database handle. All access to the schema goes through
// its methods; each method is a single logical transaction.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore builds a Store over an open GORM connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}
