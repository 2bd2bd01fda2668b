package entity

import "github.com/openclerk/backoffice/internal"

// Role groups permissions. Users get roles through UserRole rows.
type Role struct {
	BaseEntity
	Name        string `gorm:"column:name;size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"column:description;size:500" json:"description"`
	IsActive    bool   `gorm:"column:is_active;default:true" json:"is_active"`
}

func (Role) TableName() string { return "roles" }

func (r *Role) Validate() error {
	if r.Name == "" {
		return internal.NewValidationError("role name is required", internal.ErrCodeMissingField)
	}
	return nil
}

// Permission is identified by its (module, action) pair, e.g.
// ("Employee", "Delete").
type Permission struct {
	BaseEntity
	Name        string `gorm:"column:name;size:100" json:"name"`
	Description string `gorm:"column:description;size:500" json:"description"`
	Module      string `gorm:"column:module;size:100;not null;uniqueIndex:idx_permissions_module_action" json:"module"`
	Action      string `gorm:"column:action;size:100;not null;uniqueIndex:idx_permissions_module_action" json:"action"`
}

func (Permission) TableName() string { return "permissions" }

func (p *Permission) Validate() error {
	if p.Module == "" || p.Action == "" {
		return internal.NewValidationError("module and action are required", internal.ErrCodeMissingField)
	}
	return nil
}

// UserRole joins User to Role. Hard-deleted on revocation.
type UserRole struct {
	JoinBase
	UserID uint `gorm:"column:user_id;not null;index" json:"user_id"`
	RoleID uint `gorm:"column:role_id;not null;index" json:"role_id"`
}

func (UserRole) TableName() string { return "user_roles" }

// RolePermission joins Role to Permission. Hard-deleted on revocation.
type RolePermission struct {
	JoinBase
	RoleID       uint `gorm:"column:role_id;not null;index" json:"role_id"`
	PermissionID uint `gorm:"column:permission_id;not null;index" json:"permission_id"`
}

func (RolePermission) TableName() string { return "role_permissions" }
