package entity

import (
	"github.com/openclerk/backoffice/internal"
	"github.com/shopspring/decimal"
)

type CustomerStatus string

const (
	CustomerActive      CustomerStatus = "Active"
	CustomerInactive    CustomerStatus = "Inactive"
	CustomerSuspended   CustomerStatus = "Suspended"
	CustomerBlacklisted CustomerStatus = "Blacklisted"
)

type Customer struct {
	BaseEntity
	Name        string         `gorm:"column:name;size:200;not null" json:"name"`
	Email       string         `gorm:"column:email;size:200" json:"email"`
	PhoneNumber string         `gorm:"column:phone_number;size:50" json:"phone_number"`
	Company     string         `gorm:"column:company;size:200" json:"company"`
	Address     string         `gorm:"column:address;size:500" json:"address"`
	Status      CustomerStatus `gorm:"column:status;size:20;default:Active" json:"status"`
}

func (Customer) TableName() string { return "customers" }

func (c *Customer) Validate() error {
	if c.Name == "" {
		return internal.NewValidationError("customer name is required", internal.ErrCodeMissingField)
	}
	if c.Email == "" {
		return internal.NewValidationError("customer email is required", internal.ErrCodeMissingField)
	}
	return nil
}

type LeadStatus string

const (
	LeadNew       LeadStatus = "New"
	LeadContacted LeadStatus = "Contacted"
	LeadQualified LeadStatus = "Qualified"
	LeadConverted LeadStatus = "Converted"
	LeadLost      LeadStatus = "Lost"
)

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Lead optionally converts into a Customer, at which point CustomerID is set.
type Lead struct {
	BaseEntity
	Name           string          `gorm:"column:name;size:200;not null" json:"name"`
	Email          string          `gorm:"column:email;size:200" json:"email"`
	PhoneNumber    string          `gorm:"column:phone_number;size:50" json:"phone_number"`
	Company        string          `gorm:"column:company;size:200" json:"company"`
	Source         string          `gorm:"column:source;size:100" json:"source"`
	Status         LeadStatus      `gorm:"column:status;size:20;default:New" json:"status"`
	Priority       Priority        `gorm:"column:priority;size:20;default:Medium" json:"priority"`
	EstimatedValue decimal.Decimal `gorm:"column:estimated_value;type:decimal(18,2)" json:"estimated_value"`
	CustomerID     *uint           `gorm:"column:customer_id;index" json:"customer_id,omitempty"`
}

func (Lead) TableName() string { return "leads" }

func (l *Lead) Validate() error {
	if l.Name == "" {
		return internal.NewValidationError("lead name is required", internal.ErrCodeMissingField)
	}
	return nil
}
