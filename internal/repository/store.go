package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store owns the GORM handle and exposes the unit-of-work boundary. A
// single Transaction call is the only point at which staged writes become
// durable together.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn inside one database transaction. Repositories used
// within must be rebound via WithTx(tx).
func (s *Store) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := s.db.WithContext(ctx).Transaction(fn)
	return translateError(err)
}
