package payments

import "github.com/google/uuid"

// BankTransferStrategy simulates an ACH-style bank transfer.
type BankTransferStrategy struct {
	successRate float64
	rand        RandFunc
}

func NewBankTransferStrategy(successRate float64, rnd RandFunc) *BankTransferStrategy {
	if rnd == nil {
		rnd = defaultRand
	}
	return &BankTransferStrategy{successRate: successRate, rand: rnd}
}

func (s *BankTransferStrategy) Method() Method { return MethodBankTransfer }

func (s *BankTransferStrategy) Validate(data Data) FieldErrors {
	errs := FieldErrors{}

	if data.AccountNumber == "" {
		errs["account_number"] = "Account number is required"
	} else if !allDigits(data.AccountNumber) || len(data.AccountNumber) < 8 || len(data.AccountNumber) > 20 {
		errs["account_number"] = "Invalid account number format"
	}

	if data.RoutingNumber == "" {
		errs["routing_number"] = "Routing number is required"
	} else if !allDigits(data.RoutingNumber) || len(data.RoutingNumber) != 9 {
		errs["routing_number"] = "Invalid routing number format"
	}

	if data.AccountHolderName == "" {
		errs["account_holder_name"] = "Account holder name is required"
	}

	if !data.Amount.IsPositive() {
		errs["amount"] = "Amount must be greater than 0"
	}

	return errs
}

func (s *BankTransferStrategy) Execute(data Data) Outcome {
	if s.rand() >= s.successRate {
		return declineOutcome("Invalid bank details or insufficient funds")
	}

	bankName := data.BankName
	if bankName == "" {
		bankName = "Unknown Bank"
	}

	txID := "BT_" + uuid.NewString()
	return Outcome{
		Status:        StatusCompleted,
		TransactionID: &txID,
		GatewayResponse: map[string]any{
			"bank_transaction_id":   txID,
			"status":                "completed",
			"amount":                data.Amount.StringFixed(2),
			"currency":              "USD",
			"bank_name":             bankName,
			"account_number_masked": maskedAccount(data.AccountNumber),
			"timestamp":             gatewayTimestamp(),
		},
		Message: "Payment processed successfully via Bank Transfer",
	}
}
