package payments

import (
	"net/mail"

	"github.com/google/uuid"
)

// WalletStrategy simulates a hosted third-party wallet.
type WalletStrategy struct {
	successRate float64
	rand        RandFunc
}

func NewWalletStrategy(successRate float64, rnd RandFunc) *WalletStrategy {
	if rnd == nil {
		rnd = defaultRand
	}
	return &WalletStrategy{successRate: successRate, rand: rnd}
}

func (s *WalletStrategy) Method() Method { return MethodWallet }

func (s *WalletStrategy) Validate(data Data) FieldErrors {
	errs := FieldErrors{}

	if data.WalletEmail == "" {
		errs["wallet_email"] = "Wallet email is required"
	} else if !validEmail(data.WalletEmail) {
		errs["wallet_email"] = "Invalid wallet email format"
	}

	if !data.Amount.IsPositive() {
		errs["amount"] = "Amount must be greater than 0"
	}

	return errs
}

func (s *WalletStrategy) Execute(data Data) Outcome {
	if s.rand() >= s.successRate {
		return declineOutcome("Insufficient funds or invalid wallet account")
	}

	txID := "WL_" + uuid.NewString()
	return Outcome{
		Status:        StatusCompleted,
		TransactionID: &txID,
		GatewayResponse: map[string]any{
			"wallet_transaction_id": txID,
			"status":                "completed",
			"amount":                data.Amount.StringFixed(2),
			"currency":              "USD",
			"wallet_email":          data.WalletEmail,
			"timestamp":             gatewayTimestamp(),
		},
		Message: "Payment processed successfully via Wallet",
	}
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
