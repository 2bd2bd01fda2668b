// Package activitylog appends "actor X performed action Y on entity Z"
// records. Rows are write-once; neither the service nor the table offers
// an update path.
package activitylog

import (
	"context"
	"log/slog"

	"github.com/openclerk/backoffice/internal"
	"github.com/openclerk/backoffice/internal/core/entity"
)

type RepositoryAPI interface {
	Append(ctx context.Context, log *entity.ActivityLog) error
	ByUser(ctx context.Context, userID uint, limit int) ([]entity.ActivityLog, error)
	Recent(ctx context.Context, limit int) ([]entity.ActivityLog, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// LogActivity records one action. Actor identity and origin address come
// from the request context; a missing actor is recorded as-is rather than
// rejected, since log writes must never fail the primary operation.
func (s *Service) LogActivity(ctx context.Context, activityType entity.ActivityType, entityType string, entityID *uint, description string) error {
	actor, _ := internal.ActorFromContext(ctx)

	log := &entity.ActivityLog{
		UserID:       actor.UserID,
		UserName:     actor.UserName,
		ActivityType: activityType,
		EntityType:   entityType,
		EntityID:     entityID,
		Description:  description,
		IPAddress:    actor.IPAddr,
	}

	if err := s.repo.Append(ctx, log); err != nil {
		s.logger.Error("failed to append activity log", "entity_type", entityType, "error", err)
		return err
	}
	return nil
}

func (s *Service) GetUserActivities(ctx context.Context, userID uint, limit int) ([]entity.ActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.repo.ByUser(ctx, userID, limit)
}

func (s *Service) GetRecentActivities(ctx context.Context, limit int) ([]entity.ActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.repo.Recent(ctx, limit)
}
