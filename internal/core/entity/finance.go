package entity

import (
	"time"

	"github.com/openclerk/backoffice/internal"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountAsset     AccountType = "Asset"
	AccountLiability AccountType = "Liability"
	AccountEquity    AccountType = "Equity"
	AccountRevenue   AccountType = "Revenue"
	AccountExpense   AccountType = "Expense"
)

type Account struct {
	BaseEntity
	AccountName   string          `gorm:"column:account_name;size:200;not null" json:"account_name"`
	AccountNumber string          `gorm:"column:account_number;size:50;uniqueIndex;not null" json:"account_number"`
	Currency      string          `gorm:"column:currency;size:10;default:USD" json:"currency"`
	Balance       decimal.Decimal `gorm:"column:balance;type:decimal(18,2)" json:"balance"`
	Type          AccountType     `gorm:"column:type;size:20;default:Asset" json:"type"`
}

func (Account) TableName() string { return "accounts" }

func (a *Account) Validate() error {
	if a.AccountName == "" {
		return internal.NewValidationError("account name is required", internal.ErrCodeMissingField)
	}
	if a.AccountNumber == "" {
		return internal.NewValidationError("account number is required", internal.ErrCodeMissingField)
	}
	return nil
}

type TransactionType string

const (
	TransactionDebit  TransactionType = "Debit"
	TransactionCredit TransactionType = "Credit"
)

type Transaction struct {
	BaseEntity
	AccountID       uint            `gorm:"column:account_id;not null;index" json:"account_id"`
	Type            TransactionType `gorm:"column:type;size:10;not null" json:"type"`
	Amount          decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Description     string          `gorm:"column:description;size:500" json:"description"`
	Reference       string          `gorm:"column:reference;size:100" json:"reference"`
	TransactionDate time.Time       `gorm:"column:transaction_date" json:"transaction_date"`
}

func (Transaction) TableName() string { return "transactions" }

func (t *Transaction) Validate() error {
	if t.AccountID == 0 {
		return internal.NewValidationError("account id is required", internal.ErrCodeMissingField)
	}
	return nil
}

type BudgetStatus string

const (
	BudgetDraft     BudgetStatus = "Draft"
	BudgetActive    BudgetStatus = "Active"
	BudgetCompleted BudgetStatus = "Completed"
)

type Budget struct {
	BaseEntity
	Name            string          `gorm:"column:name;size:200;not null" json:"name"`
	Description     string          `gorm:"column:description;size:500" json:"description"`
	Department      string          `gorm:"column:department;size:100" json:"department"`
	AllocatedAmount decimal.Decimal `gorm:"column:allocated_amount;type:decimal(18,2)" json:"allocated_amount"`
	SpentAmount     decimal.Decimal `gorm:"column:spent_amount;type:decimal(18,2)" json:"spent_amount"`
	StartDate       time.Time       `gorm:"column:start_date" json:"start_date"`
	EndDate         time.Time       `gorm:"column:end_date" json:"end_date"`
	Status          BudgetStatus    `gorm:"column:status;size:20;default:Draft" json:"status"`
}

func (Budget) TableName() string { return "budgets" }

func (b *Budget) Validate() error {
	if b.Name == "" {
		return internal.NewValidationError("budget name is required", internal.ErrCodeMissingField)
	}
	return nil
}
