// Package entity defines the persistent data model shared by every business
// module: the audit envelope, the RBAC tables and the module entities
// themselves. Column layout follows db/migrations.
package entity

import (
	"time"

	"github.com/openclerk/backoffice/internal"
	"gorm.io/gorm"
)

// BaseEntity is the audit envelope embedded by every user-facing business
// entity. Rows are soft-deleted: gorm.DeletedAt keeps deleted rows out of
// default queries without removing them. LockVersion is the optimistic
// concurrency token checked on full-record replace.
type BaseEntity struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	CreatedBy   string         `gorm:"column:created_by;size:100" json:"created_by"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	UpdatedBy   *string        `gorm:"column:updated_by;size:100" json:"updated_by,omitempty"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
	DeletedBy   *string        `gorm:"column:deleted_by;size:100" json:"-"`
	LockVersion int64          `gorm:"column:lock_version;not null;default:0" json:"lock_version"`
}

func (b BaseEntity) PrimaryKey() uint { return b.ID }

func (b *BaseEntity) SetPrimaryKey(id uint) { b.ID = id }

func (b *BaseEntity) SetCreatedBy(actor string) { b.CreatedBy = actor }

func (b *BaseEntity) SetUpdatedBy(actor string) { b.UpdatedBy = &actor }

func (b *BaseEntity) SetDeletedBy(actor string) { b.DeletedBy = &actor }

func (b *BaseEntity) CurrentLockVersion() int64 { return b.LockVersion }

func (b *BaseEntity) BumpLockVersion() { b.LockVersion++ }

// JoinBase is the slim envelope for pure join rows (UserRole,
// RolePermission). Join rows are hard-deleted, so no soft-delete fields.
type JoinBase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	CreatedBy string    `gorm:"column:created_by;size:100" json:"created_by"`
}

func (j JoinBase) PrimaryKey() uint { return j.ID }

func (j *JoinBase) SetPrimaryKey(id uint) { j.ID = id }

func (j *JoinBase) SetCreatedBy(actor string) { j.CreatedBy = actor }

// User is the authentication principal. RBAC roles attach via UserRole.
type User struct {
	BaseEntity
	Username     string     `gorm:"column:username;size:100;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"column:email;size:200;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;size:200;not null" json:"-"`
	FirstName    string     `gorm:"column:first_name;size:100" json:"first_name"`
	LastName     string     `gorm:"column:last_name;size:100" json:"last_name"`
	IsActive     bool       `gorm:"column:is_active;default:true" json:"is_active"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) Validate() error {
	if u.Username == "" {
		return internal.NewValidationError("username is required", internal.ErrCodeMissingField)
	}
	if u.Email == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeMissingField)
	}
	return nil
}

type ActivityType string

const (
	ActivityCreate ActivityType = "create"
	ActivityRead   ActivityType = "read"
	ActivityUpdate ActivityType = "update"
	ActivityDelete ActivityType = "delete"
	ActivityLogin  ActivityType = "login"
	ActivityLogout ActivityType = "logout"
)

// ActivityLog records who did what to which entity, when and from where.
// Append-only: rows are never updated or deleted.
type ActivityLog struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"column:user_id;index" json:"user_id"`
	UserName     string       `gorm:"column:user_name;size:100" json:"user_name"`
	ActivityType ActivityType `gorm:"column:activity_type;size:20;not null" json:"activity_type"`
	EntityType   string       `gorm:"column:entity_type;size:100;index" json:"entity_type"`
	EntityID     *uint        `gorm:"column:entity_id" json:"entity_id,omitempty"`
	Description  string       `gorm:"column:description;size:500" json:"description"`
	IPAddress    string       `gorm:"column:ip_address;size:45" json:"ip_address"`
	Timestamp    time.Time    `gorm:"column:timestamp;autoCreateTime;index" json:"timestamp"`
}

func (ActivityLog) TableName() string { return "activity_logs" }

// AuditTrail records serialized before/after snapshots of a data change.
// Append-only like ActivityLog.
type AuditTrail struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"column:user_id;index" json:"user_id"`
	UserName   string    `gorm:"column:user_name;size:100" json:"user_name"`
	EntityType string    `gorm:"column:entity_type;size:100;index" json:"entity_type"`
	EntityID   uint      `gorm:"column:entity_id;index" json:"entity_id"`
	Action     string    `gorm:"column:action;size:20;not null" json:"action"`
	OldValues  string    `gorm:"column:old_values;type:text" json:"old_values"`
	NewValues  string    `gorm:"column:new_values;type:text" json:"new_values"`
	Timestamp  time.Time `gorm:"column:timestamp;autoCreateTime;index" json:"timestamp"`
}

func (AuditTrail) TableName() string { return "audit_trails" }
