package postgres

import (
	"time"

	"github.com/openclerk/backoffice/internal"
	"github.com/openclerk/backoffice/internal/auth"
	"github.com/openclerk/backoffice/internal/core/entity"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) auth.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetCredentialsByEmail(email string) (string, uint, error) {
	var user entity.User
	err := r.db.Where("email = ? AND is_active = ?", email, true).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", 0, internal.ErrInvalidCredentials
		}
		return "", 0, internal.NewInternalError("failed to look up user", err)
	}
	return user.PasswordHash, user.ID, nil
}

// GetUserWithPermissions resolves the principal's effective permissions
// through its roles in a single query. Permission strings come back as
// "Module:Action" pairs.
func (r *UserRepository) GetUserWithPermissions(userID uint) (*auth.User, error) {
	var user entity.User
	if err := r.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrEntityNotFound
		}
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if !user.IsActive {
		return nil, internal.ErrUserInactive
	}

	var permissions []string
	err := r.db.Raw(`
		SELECT DISTINCT p.module || ':' || p.action
		FROM permissions p
		JOIN role_permissions rp ON p.id = rp.permission_id
		JOIN user_roles ur ON rp.role_id = ur.role_id
		WHERE ur.user_id = ?
	`, userID).Scan(&permissions).Error
	if err != nil {
		return nil, internal.NewInternalError("failed to load user permissions", err)
	}

	return &auth.User{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Username,
		Permissions: permissions,
	}, nil
}

func (r *UserRepository) TouchLastLogin(userID uint) error {
	now := time.Now()
	return r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_login_at", &now).Error
}
