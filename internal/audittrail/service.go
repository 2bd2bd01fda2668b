// Package audittrail appends before/after snapshots of data changes.
package audittrail

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/openclerk/backoffice/internal"
	"github.com/openclerk/backoffice/internal/core/entity"
)

type RepositoryAPI interface {
	Append(ctx context.Context, trail *entity.AuditTrail) error
	ByEntity(ctx context.Context, entityType string, entityID uint) ([]entity.AuditTrail, error)
	ByUser(ctx context.Context, userID uint, limit int) ([]entity.AuditTrail, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record serializes before/after as JSON and appends one trail row. A nil
// snapshot (create has no before, delete no after) is stored as an empty
// string.
func (s *Service) Record(ctx context.Context, entityType string, entityID uint, action string, before, after any) error {
	actor, _ := internal.ActorFromContext(ctx)

	trail := &entity.AuditTrail{
		UserID:     actor.UserID,
		UserName:   actor.UserName,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		OldValues:  s.snapshot(before),
		NewValues:  s.snapshot(after),
	}

	if err := s.repo.Append(ctx, trail); err != nil {
		s.logger.Error("failed to append audit trail", "entity_type", entityType, "entity_id", entityID, "error", err)
		return err
	}
	return nil
}

func (s *Service) GetEntityTrail(ctx context.Context, entityType string, entityID uint) ([]entity.AuditTrail, error) {
	return s.repo.ByEntity(ctx, entityType, entityID)
}

func (s *Service) GetUserTrail(ctx context.Context, userID uint, limit int) ([]entity.AuditTrail, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.ByUser(ctx, userID, limit)
}

func (s *Service) snapshot(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("failed to serialize audit snapshot", "error", err)
		return ""
	}
	return string(data)
}
