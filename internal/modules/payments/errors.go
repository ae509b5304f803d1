package payments

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrOrderNotPayable   = errors.New("order must be confirmed to accept payments")
	ErrUnsupportedMethod = errors.New("payment method is not supported")
	ErrPaymentDeclined   = errors.New("payment declined by gateway")
)

// FieldErrors maps a canonical payment field name to a human-readable
// problem with it.
type FieldErrors map[string]string

// ValidationError reports method-specific input rejected before any
// gateway attempt was made. No payment row exists for it.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("payment validation failed: %s", strings.Join(keys, ", "))
}
