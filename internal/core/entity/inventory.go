package entity

import (
	"time"

	"github.com/openclerk/backoffice/internal"
	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductActive       ProductStatus = "Active"
	ProductInactive     ProductStatus = "Inactive"
	ProductDiscontinued ProductStatus = "Discontinued"
	ProductOutOfStock   ProductStatus = "OutOfStock"
)

type Product struct {
	BaseEntity
	Name            string          `gorm:"column:name;size:200;not null" json:"name"`
	Description     string          `gorm:"column:description;size:1000" json:"description"`
	Category        string          `gorm:"column:category;size:100" json:"category"`
	SKU             string          `gorm:"column:sku;size:50;uniqueIndex;not null" json:"sku"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:decimal(18,2)" json:"unit_price"`
	QuantityInStock int             `gorm:"column:quantity_in_stock;default:0" json:"quantity_in_stock"`
	ReorderLevel    int             `gorm:"column:reorder_level;default:0" json:"reorder_level"`
	Status          ProductStatus   `gorm:"column:status;size:20;default:Active" json:"status"`
}

func (Product) TableName() string { return "products" }

func (p *Product) Validate() error {
	if p.Name == "" {
		return internal.NewValidationError("product name is required", internal.ErrCodeMissingField)
	}
	if p.SKU == "" {
		return internal.NewValidationError("product SKU is required", internal.ErrCodeMissingField)
	}
	return nil
}

type StockMovementType string

const (
	StockIn         StockMovementType = "In"
	StockOut        StockMovementType = "Out"
	StockAdjustment StockMovementType = "Adjustment"
	StockTransfer   StockMovementType = "Transfer"
)

type StockMovement struct {
	BaseEntity
	ProductID    uint              `gorm:"column:product_id;not null;index" json:"product_id"`
	WarehouseID  *uint             `gorm:"column:warehouse_id;index" json:"warehouse_id,omitempty"`
	MovementType StockMovementType `gorm:"column:movement_type;size:20;not null" json:"movement_type"`
	Quantity     int               `gorm:"column:quantity;not null" json:"quantity"`
	Reference    string            `gorm:"column:reference;size:100" json:"reference"`
	Notes        string            `gorm:"column:notes;size:500" json:"notes"`
	MovementDate time.Time         `gorm:"column:movement_date" json:"movement_date"`
}

func (StockMovement) TableName() string { return "stock_movements" }

func (s *StockMovement) Validate() error {
	if s.ProductID == 0 {
		return internal.NewValidationError("product id is required", internal.ErrCodeMissingField)
	}
	return nil
}

type Warehouse struct {
	BaseEntity
	Name        string `gorm:"column:name;size:200;not null" json:"name"`
	Location    string `gorm:"column:location;size:200" json:"location"`
	Address     string `gorm:"column:address;size:500" json:"address"`
	Capacity    int    `gorm:"column:capacity;default:0" json:"capacity"`
	ManagerName string `gorm:"column:manager_name;size:100" json:"manager_name"`
}

func (Warehouse) TableName() string { return "warehouses" }

func (w *Warehouse) Validate() error {
	if w.Name == "" {
		return internal.NewValidationError("warehouse name is required", internal.ErrCodeMissingField)
	}
	return nil
}
