package entity

import (
	"time"

	"github.com/openclerk/backoffice/internal"
	"github.com/shopspring/decimal"
)

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "Planning"
	ProjectInProgress ProjectStatus = "InProgress"
	ProjectOnHold     ProjectStatus = "OnHold"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectCancelled  ProjectStatus = "Cancelled"
)

type Project struct {
	BaseEntity
	Name           string          `gorm:"column:name;size:200;not null" json:"name"`
	Description    string          `gorm:"column:description;size:1000" json:"description"`
	ProjectManager string          `gorm:"column:project_manager;size:100" json:"project_manager"`
	StartDate      time.Time       `gorm:"column:start_date" json:"start_date"`
	EndDate        *time.Time      `gorm:"column:end_date" json:"end_date,omitempty"`
	Budget         decimal.Decimal `gorm:"column:budget;type:decimal(18,2)" json:"budget"`
	Status         ProjectStatus   `gorm:"column:status;size:20;default:Planning" json:"status"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) Validate() error {
	if p.Name == "" {
		return internal.NewValidationError("project name is required", internal.ErrCodeMissingField)
	}
	return nil
}

type TaskStatus string

const (
	TaskToDo       TaskStatus = "ToDo"
	TaskInProgress TaskStatus = "InProgress"
	TaskReview     TaskStatus = "Review"
	TaskDone       TaskStatus = "Done"
)

type ProjectTask struct {
	BaseEntity
	ProjectID      uint       `gorm:"column:project_id;not null;index" json:"project_id"`
	Title          string     `gorm:"column:title;size:200;not null" json:"title"`
	Description    string     `gorm:"column:description;size:1000" json:"description"`
	Status         TaskStatus `gorm:"column:status;size:20;default:ToDo" json:"status"`
	Priority       Priority   `gorm:"column:priority;size:20;default:Medium" json:"priority"`
	AssignedTo     string     `gorm:"column:assigned_to;size:100" json:"assigned_to"`
	DueDate        *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	EstimatedHours int        `gorm:"column:estimated_hours;default:0" json:"estimated_hours"`
}

func (ProjectTask) TableName() string { return "project_tasks" }

func (t *ProjectTask) Validate() error {
	if t.ProjectID == 0 {
		return internal.NewValidationError("project id is required", internal.ErrCodeMissingField)
	}
	if t.Title == "" {
		return internal.NewValidationError("task title is required", internal.ErrCodeMissingField)
	}
	return nil
}

type TimeEntry struct {
	BaseEntity
	ProjectID   uint            `gorm:"column:project_id;not null;index" json:"project_id"`
	TaskID      *uint           `gorm:"column:task_id;index" json:"task_id,omitempty"`
	UserID      uint            `gorm:"column:user_id;index" json:"user_id"`
	Date        time.Time       `gorm:"column:date" json:"date"`
	Hours       decimal.Decimal `gorm:"column:hours;type:decimal(8,2)" json:"hours"`
	Description string          `gorm:"column:description;size:500" json:"description"`
}

func (TimeEntry) TableName() string { return "time_entries" }

func (t *TimeEntry) Validate() error {
	if t.ProjectID == 0 {
		return internal.NewValidationError("project id is required", internal.ErrCodeMissingField)
	}
	return nil
}
