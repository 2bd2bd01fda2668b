package entity

import (
	"time"

	"github.com/openclerk/backoffice/internal"
	"github.com/shopspring/decimal"
)

type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "Active"
	EmployeeOnLeave    EmployeeStatus = "OnLeave"
	EmployeeTerminated EmployeeStatus = "Terminated"
	EmployeeInactive   EmployeeStatus = "Inactive"
)

type Employee struct {
	BaseEntity
	FirstName   string          `gorm:"column:first_name;size:100;not null" json:"first_name"`
	LastName    string          `gorm:"column:last_name;size:100" json:"last_name"`
	Email       string          `gorm:"column:email;size:200;uniqueIndex;not null" json:"email"`
	PhoneNumber string          `gorm:"column:phone_number;size:50" json:"phone_number"`
	Department  string          `gorm:"column:department;size:100" json:"department"`
	Position    string          `gorm:"column:position;size:100" json:"position"`
	Salary      decimal.Decimal `gorm:"column:salary;type:decimal(18,2)" json:"salary"`
	HireDate    time.Time       `gorm:"column:hire_date" json:"hire_date"`
	Status      EmployeeStatus  `gorm:"column:status;size:20;default:Active" json:"status"`
}

func (Employee) TableName() string { return "employees" }

func (e *Employee) Validate() error {
	if e.FirstName == "" {
		return internal.NewValidationError("employee first name is required", internal.ErrCodeMissingField)
	}
	if e.Email == "" {
		return internal.NewValidationError("employee email is required", internal.ErrCodeMissingField)
	}
	return nil
}

type LeaveType string

const (
	LeaveSick      LeaveType = "Sick"
	LeaveVacation  LeaveType = "Vacation"
	LeavePersonal  LeaveType = "Personal"
	LeaveMaternity LeaveType = "Maternity"
	LeavePaternity LeaveType = "Paternity"
)

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "Pending"
	LeaveApproved  LeaveStatus = "Approved"
	LeaveRejected  LeaveStatus = "Rejected"
	LeaveCancelled LeaveStatus = "Cancelled"
)

type LeaveRequest struct {
	BaseEntity
	EmployeeID       uint        `gorm:"column:employee_id;not null;index" json:"employee_id"`
	Type             LeaveType   `gorm:"column:type;size:20;not null" json:"type"`
	StartDate        time.Time   `gorm:"column:start_date;not null" json:"start_date"`
	EndDate          time.Time   `gorm:"column:end_date;not null" json:"end_date"`
	Reason           string      `gorm:"column:reason;size:500" json:"reason"`
	Status           LeaveStatus `gorm:"column:status;size:20;default:Pending" json:"status"`
	ApproverComments *string     `gorm:"column:approver_comments;size:500" json:"approver_comments,omitempty"`
}

func (LeaveRequest) TableName() string { return "leave_requests" }

func (l *LeaveRequest) Validate() error {
	if l.EmployeeID == 0 {
		return internal.NewValidationError("employee id is required", internal.ErrCodeMissingField)
	}
	if l.EndDate.Before(l.StartDate) {
		return internal.NewValidationError("end date must not be before start date", internal.ErrCodeValidationFailed)
	}
	return nil
}

type PayrollRecord struct {
	BaseEntity
	EmployeeID     uint            `gorm:"column:employee_id;not null;index" json:"employee_id"`
	PayPeriodStart time.Time       `gorm:"column:pay_period_start;not null" json:"pay_period_start"`
	PayPeriodEnd   time.Time       `gorm:"column:pay_period_end;not null" json:"pay_period_end"`
	GrossPay       decimal.Decimal `gorm:"column:gross_pay;type:decimal(18,2)" json:"gross_pay"`
	Deductions     decimal.Decimal `gorm:"column:deductions;type:decimal(18,2)" json:"deductions"`
	NetPay         decimal.Decimal `gorm:"column:net_pay;type:decimal(18,2)" json:"net_pay"`
	PaymentDate    time.Time       `gorm:"column:payment_date" json:"payment_date"`
}

func (PayrollRecord) TableName() string { return "payroll_records" }

func (p *PayrollRecord) Validate() error {
	if p.EmployeeID == 0 {
		return internal.NewValidationError("employee id is required", internal.ErrCodeMissingField)
	}
	return nil
}
