package payments

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/modules/orders"
)

// Method identifies a payment method. The set is closed: adding one
// means adding a Strategy and registering it.
type Method string

const (
	MethodCard         Method = "card"
	MethodBankTransfer Method = "bank_transfer"
	MethodWallet       Method = "wallet"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ValidStatus reports whether s is one of the known payment statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

type Payment struct {
	ID              string          `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID         string          `gorm:"type:char(36);not null;index:ix_payments_order_id" json:"order_id"`
	PaymentMethod   Method          `gorm:"type:varchar(32);not null" json:"payment_method"`
	Status          string          `gorm:"type:varchar(32);not null" json:"status"`
	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	TransactionID   *string         `gorm:"type:varchar(128)" json:"transaction_id"`
	GatewayResponse datatypes.JSON  `gorm:"type:json" json:"gateway_response"`
	Meta            datatypes.JSON  `gorm:"type:json" json:"meta"`
	CreatedAt       time.Time       `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"type:datetime(3);not null" json:"updated_at"`

	Order *orders.Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

func (Payment) TableName() string { return "payments" }
