// Package crud provides the generic service layer: a thin pass-through over
// the generic repository, plus the activity/audit side effects every write
// operation carries.
package crud

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openclerk/backoffice/internal"
	"github.com/openclerk/backoffice/internal/core/entity"
)

type RepositoryAPI[T any] interface {
	GetByID(ctx context.Context, id uint) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	Find(ctx context.Context, query any, args ...any) ([]T, error)
	Add(ctx context.Context, e *T) error
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, e *T, actor string) error
}

// ActivityLogger records "who did what"; implemented by the activitylog
// service. Failures must never affect the primary operation.
type ActivityLogger interface {
	LogActivity(ctx context.Context, activityType entity.ActivityType, entityType string, entityID *uint, description string) error
}

// AuditRecorder captures before/after snapshots; implemented by the
// audittrail service.
type AuditRecorder interface {
	Record(ctx context.Context, entityType string, entityID uint, action string, before, after any) error
}

type validatable interface {
	Validate() error
}

type creatorStamped interface {
	SetCreatedBy(actor string)
}

type updaterStamped interface {
	SetUpdatedBy(actor string)
}

type Service[T any] struct {
	repo       RepositoryAPI[T]
	entityName string
	activity   ActivityLogger
	audit      AuditRecorder
	logger     *slog.Logger
}

func NewService[T any](repo RepositoryAPI[T], entityName string, activity ActivityLogger, audit AuditRecorder, logger *slog.Logger) *Service[T] {
	return &Service[T]{
		repo:       repo,
		entityName: entityName,
		activity:   activity,
		audit:      audit,
		logger:     logger,
	}
}

func (s *Service[T]) GetAll(ctx context.Context) ([]T, error) {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list entities", "entity", s.entityName, "error", err)
		return nil, err
	}
	s.logActivity(ctx, entity.ActivityRead, nil, fmt.Sprintf("listed %s records", s.entityName))
	return records, nil
}

func (s *Service[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !internal.IsNotFound(err) {
			s.logger.Error("failed to get entity", "entity", s.entityName, "id", id, "error", err)
		}
		return nil, err
	}
	return record, nil
}

func (s *Service[T]) Find(ctx context.Context, query any, args ...any) ([]T, error) {
	return s.repo.Find(ctx, query, args...)
}

func (s *Service[T]) Create(ctx context.Context, e *T) (*T, error) {
	if v, ok := any(e).(validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	actor, _ := internal.ActorFromContext(ctx)
	if cs, ok := any(e).(creatorStamped); ok {
		cs.SetCreatedBy(actor.UserName)
	}

	if err := s.repo.Add(ctx, e); err != nil {
		s.logger.Error("failed to create entity", "entity", s.entityName, "error", err)
		return nil, err
	}

	id := primaryKeyOf(e)
	s.logActivity(ctx, entity.ActivityCreate, &id, fmt.Sprintf("created %s %d", s.entityName, id))
	s.recordAudit(ctx, id, "create", nil, e)
	return e, nil
}

// Update replaces the stored record with e. A body identifier that
// contradicts the path identifier is rejected before any store interaction.
func (s *Service[T]) Update(ctx context.Context, id uint, e *T) (*T, error) {
	bodyID := primaryKeyOf(e)
	if bodyID != 0 && bodyID != id {
		return nil, internal.NewValidationError("body id does not match path id", internal.ErrCodeIDMismatch)
	}
	if bodyID == 0 {
		setPrimaryKey(e, id)
	}

	if v, ok := any(e).(validatable); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	actor, _ := internal.ActorFromContext(ctx)
	if us, ok := any(e).(updaterStamped); ok {
		us.SetUpdatedBy(actor.UserName)
	}

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("failed to update entity", "entity", s.entityName, "id", id, "error", err)
		return nil, err
	}

	s.logActivity(ctx, entity.ActivityUpdate, &id, fmt.Sprintf("updated %s %d", s.entityName, id))
	s.recordAudit(ctx, id, "update", before, e)
	return e, nil
}

// Delete removes the record. An absent id is a no-op, mirroring the
// idempotent delete contract of the REST surface.
func (s *Service[T]) Delete(ctx context.Context, id uint) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if internal.IsNotFound(err) {
			return nil
		}
		return err
	}

	actor, _ := internal.ActorFromContext(ctx)
	if err := s.repo.Delete(ctx, existing, actor.UserName); err != nil {
		s.logger.Error("failed to delete entity", "entity", s.entityName, "id", id, "error", err)
		return err
	}

	s.logActivity(ctx, entity.ActivityDelete, &id, fmt.Sprintf("deleted %s %d", s.entityName, id))
	s.recordAudit(ctx, id, "delete", existing, nil)
	return nil
}

func (s *Service[T]) EntityName() string {
	return s.entityName
}

// logActivity reports but never propagates failures: a lost log line must
// not roll back the primary operation.
func (s *Service[T]) logActivity(ctx context.Context, activityType entity.ActivityType, entityID *uint, description string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.LogActivity(ctx, activityType, s.entityName, entityID, description); err != nil {
		s.logger.Error("activity log write failed", "entity", s.entityName, "error", err)
	}
}

func (s *Service[T]) recordAudit(ctx context.Context, entityID uint, action string, before, after any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, s.entityName, entityID, action, before, after); err != nil {
		s.logger.Error("audit trail write failed", "entity", s.entityName, "error", err)
	}
}

type identifiable interface {
	PrimaryKey() uint
}

func primaryKeyOf[T any](e *T) uint {
	if ident, ok := any(e).(identifiable); ok {
		return ident.PrimaryKey()
	}
	return 0
}

type keySettable interface {
	SetPrimaryKey(id uint)
}

func setPrimaryKey[T any](e *T, id uint) {
	if ks, ok := any(e).(keySettable); ok {
		ks.SetPrimaryKey(id)
	}
}
