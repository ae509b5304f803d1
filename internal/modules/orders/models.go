package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          string          `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      string          `gorm:"type:char(36);not null;index:ix_orders_user_id" json:"user_id"`
	Status      string          `gorm:"type:varchar(32);not null" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Notes       *string         `gorm:"type:varchar(1000)" json:"notes,omitempty"`
	CreatedAt   time.Time       `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"type:datetime(3);not null" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID          string          `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID     string          `gorm:"type:char(36);not null;index:ix_order_items_order_id" json:"order_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Description *string         `gorm:"type:varchar(1000)" json:"description,omitempty"`
	CreatedAt   time.Time       `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (OrderItem) TableName() string { return "order_items" }

// LineTotal is quantity x unit price for this item.
func (it OrderItem) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
