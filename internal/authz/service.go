// Package authz answers "can user U perform action A on module M" by
// chaining user → roles → permissions, and manages those assignments.
package authz

import (
	"context"
	"log/slog"

	"github.com/openclerk/backoffice/internal/core/entity"
)

// RepositoryAPI is the slice of the generic repository the resolver needs.
type RepositoryAPI[T any] interface {
	Find(ctx context.Context, query any, args ...any) ([]T, error)
	Add(ctx context.Context, e *T) error
	Delete(ctx context.Context, e *T, actor string) error
}

// Service resolves permissions from the store on every call. There is no
// cache: request volume is low and staleness after a grant change would be
// worse than the extra reads.
type Service struct {
	userRoles RepositoryAPI[entity.UserRole]
	rolePerms RepositoryAPI[entity.RolePermission]
	perms     RepositoryAPI[entity.Permission]
	roles     RepositoryAPI[entity.Role]
	logger    *slog.Logger
}

func NewService(
	userRoles RepositoryAPI[entity.UserRole],
	rolePerms RepositoryAPI[entity.RolePermission],
	perms RepositoryAPI[entity.Permission],
	roles RepositoryAPI[entity.Role],
	logger *slog.Logger,
) *Service {
	return &Service{
		userRoles: userRoles,
		rolePerms: rolePerms,
		perms:     perms,
		roles:     roles,
		logger:    logger,
	}
}

// UserHasPermission walks UserRole → RolePermission → Permission. An empty
// set at any stage denies.
func (s *Service) UserHasPermission(ctx context.Context, userID uint, module, action string) (bool, error) {
	roleIDs, err := s.roleIDsForUser(ctx, userID)
	if err != nil {
		return false, err
	}
	if len(roleIDs) == 0 {
		return false, nil
	}

	permIDs, err := s.permissionIDsForRoles(ctx, roleIDs)
	if err != nil {
		return false, err
	}
	if len(permIDs) == 0 {
		return false, nil
	}

	matches, err := s.perms.Find(ctx, "id IN ? AND module = ? AND action = ?", permIDs, module, action)
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

func (s *Service) GetUserRoles(ctx context.Context, userID uint) ([]entity.Role, error) {
	roleIDs, err := s.roleIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(roleIDs) == 0 {
		return []entity.Role{}, nil
	}
	return s.roles.Find(ctx, "id IN ?", roleIDs)
}

// GetUserPermissions returns the deduplicated set of permissions granted
// through any of the user's roles.
func (s *Service) GetUserPermissions(ctx context.Context, userID uint) ([]entity.Permission, error) {
	roleIDs, err := s.roleIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(roleIDs) == 0 {
		return []entity.Permission{}, nil
	}

	permIDs, err := s.permissionIDsForRoles(ctx, roleIDs)
	if err != nil {
		return nil, err
	}
	if len(permIDs) == 0 {
		return []entity.Permission{}, nil
	}
	return s.perms.Find(ctx, "id IN ?", permIDs)
}

// AssignRole is idempotent: assigning an already-held role is a no-op.
func (s *Service) AssignRole(ctx context.Context, userID, roleID uint) error {
	existing, err := s.userRoles.Find(ctx, map[string]any{"user_id": userID, "role_id": roleID})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	ur := &entity.UserRole{UserID: userID, RoleID: roleID}
	if err := s.userRoles.Add(ctx, ur); err != nil {
		s.logger.Error("failed to assign role", "user_id", userID, "role_id", roleID, "error", err)
		return err
	}
	s.logger.Info("role assigned", "user_id", userID, "role_id", roleID)
	return nil
}

func (s *Service) RemoveRole(ctx context.Context, userID, roleID uint) error {
	existing, err := s.userRoles.Find(ctx, map[string]any{"user_id": userID, "role_id": roleID})
	if err != nil {
		return err
	}
	for i := range existing {
		if err := s.userRoles.Delete(ctx, &existing[i], ""); err != nil {
			return err
		}
	}
	return nil
}

// GrantPermission is idempotent like AssignRole.
func (s *Service) GrantPermission(ctx context.Context, roleID, permissionID uint) error {
	existing, err := s.rolePerms.Find(ctx, map[string]any{"role_id": roleID, "permission_id": permissionID})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	rp := &entity.RolePermission{RoleID: roleID, PermissionID: permissionID}
	if err := s.rolePerms.Add(ctx, rp); err != nil {
		s.logger.Error("failed to grant permission", "role_id", roleID, "permission_id", permissionID, "error", err)
		return err
	}
	s.logger.Info("permission granted", "role_id", roleID, "permission_id", permissionID)
	return nil
}

func (s *Service) RevokePermission(ctx context.Context, roleID, permissionID uint) error {
	existing, err := s.rolePerms.Find(ctx, map[string]any{"role_id": roleID, "permission_id": permissionID})
	if err != nil {
		return err
	}
	for i := range existing {
		if err := s.rolePerms.Delete(ctx, &existing[i], ""); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) roleIDsForUser(ctx context.Context, userID uint) ([]uint, error) {
	userRoles, err := s.userRoles.Find(ctx, map[string]any{"user_id": userID})
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(userRoles))
	for _, ur := range userRoles {
		ids = append(ids, ur.RoleID)
	}
	return ids, nil
}

func (s *Service) permissionIDsForRoles(ctx context.Context, roleIDs []uint) ([]uint, error) {
	rolePerms, err := s.rolePerms.Find(ctx, "role_id IN ?", roleIDs)
	if err != nil {
		return nil, err
	}
	seen := make(map[uint]struct{}, len(rolePerms))
	ids := make([]uint, 0, len(rolePerms))
	for _, rp := range rolePerms {
		if _, dup := seen[rp.PermissionID]; dup {
			continue
		}
		seen[rp.PermissionID] = struct{}{}
		ids = append(ids, rp.PermissionID)
	}
	return ids, nil
}
