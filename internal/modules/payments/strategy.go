package payments

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// Data carries the raw method-specific fields of one payment attempt.
// Amount, OrderID and Method are filled in by the orchestrator from the
// order before validation; the rest comes from the caller.
type Data struct {
	Method  Method
	OrderID string
	Amount  decimal.Decimal

	// card
	CardNumber     string
	ExpiryMonth    int
	ExpiryYear     int
	CVV            string
	CardholderName string

	// bank_transfer
	AccountNumber     string
	RoutingNumber     string
	AccountHolderName string
	BankName          string

	// wallet
	WalletEmail string
}

// Outcome is the result of one simulated gateway attempt.
// TransactionID is set iff Status is completed.
type Outcome struct {
	Status          string
	TransactionID   *string
	GatewayResponse map[string]any
	Message         string
}

// Strategy is the seam where a real gateway integration would replace
// the simulation. Validate must be pure; Execute is called only after
// Validate returned no errors.
type Strategy interface {
	Method() Method
	Validate(data Data) FieldErrors
	Execute(data Data) Outcome
}

// RandFunc supplies the gateway outcome draw in [0,1). Injectable so
// tests can force completion or decline.
type RandFunc func() float64

func defaultRand() float64 { return rand.Float64() }

func gatewayTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func last4(s string) string {
	if len(s) < 4 {
		return s
	}
	return s[len(s)-4:]
}

func maskedAccount(s string) string {
	return "****" + last4(s)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func declineOutcome(message string) Outcome {
	return Outcome{
		Status:        StatusFailed,
		TransactionID: nil,
		GatewayResponse: map[string]any{
			"error":     "Payment failed",
			"reason":    message,
			"timestamp": gatewayTimestamp(),
		},
		Message: message,
	}
}
