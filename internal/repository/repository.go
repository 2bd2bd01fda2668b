// Package repository provides the generic GORM-backed persistence layer.
// One Repository[T] serves every entity type; error translation into the
// application taxonomy happens here and nowhere else.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/openclerk/backoffice/internal"
	"gorm.io/gorm"
)

// identifiable is satisfied by anything embedding entity.BaseEntity or
// entity.JoinBase.
type identifiable interface {
	PrimaryKey() uint
}

// lockable marks entities carrying an optimistic concurrency token.
type lockable interface {
	CurrentLockVersion() int64
	BumpLockVersion()
}

// softDeletable marks entities that record who deleted them.
type softDeletable interface {
	SetDeletedBy(actor string)
}

type Repository[T any] struct {
	db *gorm.DB
}

func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// WithTx returns a repository bound to tx, so a sequence of writes shares
// one commit boundary (see Store.Transaction).
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx}
}

// GetByID returns the row or a NotFound error. Soft-deleted rows are
// excluded by GORM's default scope.
func (r *Repository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var e T
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &e, nil
}

// GetAll returns every live row in insertion order.
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// Find filters by a GORM condition: a map of field equalities or a query
// string with placeholder args.
func (r *Repository[T]) Find(ctx context.Context, query any, args ...any) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Where(query, args...).Order("id ASC").Find(&out).Error; err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// Add inserts the record and populates its identifier.
func (r *Repository[T]) Add(ctx context.Context, e *T) error {
	return translateError(r.db.WithContext(ctx).Create(e).Error)
}

// Update performs a full-record replace keyed by the primary key. For
// lockable entities the stored lock_version must match the incoming one;
// a mismatch means a concurrent writer won and the caller gets a conflict.
func (r *Repository[T]) Update(ctx context.Context, e *T) error {
	ident, ok := any(e).(identifiable)
	if !ok || ident.PrimaryKey() == 0 {
		return internal.NewValidationError("entity has no identifier", internal.ErrCodeValidationFailed)
	}
	id := ident.PrimaryKey()

	tx := r.db.WithContext(ctx).Model(e).
		Select("*").
		Omit("id", "created_at", "created_by", "deleted_at", "deleted_by")

	if lv, lok := any(e).(lockable); lok {
		previous := lv.CurrentLockVersion()
		lv.BumpLockVersion()
		tx = tx.Where("lock_version = ?", previous)
	}

	res := tx.Updates(e)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		exists, err := r.Exists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			return internal.ErrStaleVersion
		}
		return internal.ErrEntityNotFound
	}
	return nil
}

// Delete removes the record: soft for entities with a deleted_at column,
// hard for join rows. The deleting actor is stamped first when the entity
// tracks it.
func (r *Repository[T]) Delete(ctx context.Context, e *T, actor string) error {
	if sd, ok := any(e).(softDeletable); ok && actor != "" {
		sd.SetDeletedBy(actor)
		if err := r.db.WithContext(ctx).Model(e).UpdateColumn("deleted_by", actor).Error; err != nil {
			return translateError(err)
		}
	}
	return translateError(r.db.WithContext(ctx).Delete(e).Error)
}

func (r *Repository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

// translateError maps store failures onto the application error taxonomy.
// Requires gorm.Config{TranslateError: true} so driver-specific constraint
// errors arrive as gorm sentinel values.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case isAppError(err):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return internal.ErrEntityNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return internal.ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return internal.NewReferentialError("referenced row does not exist")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return internal.ErrDuplicateKey
		case "23503":
			return internal.NewReferentialError(pgErr.Detail)
		}
	}

	return internal.NewInternalError("store operation failed", err)
}

func isAppError(err error) bool {
	_, ok := internal.IsAppError(err)
	return ok
}
