package orders

import "errors"

var (
	ErrNoItems          = errors.New("order requires at least one item")
	ErrInvalidStatus    = errors.New("unknown order status")
	ErrOrderHasPayments = errors.New("order has payments and cannot be deleted")
)
