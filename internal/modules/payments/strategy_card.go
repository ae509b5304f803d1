package payments

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CardStrategy simulates a credit/debit card processor.
type CardStrategy struct {
	successRate float64
	rand        RandFunc
}

func NewCardStrategy(successRate float64, rnd RandFunc) *CardStrategy {
	if rnd == nil {
		rnd = defaultRand
	}
	return &CardStrategy{successRate: successRate, rand: rnd}
}

func (s *CardStrategy) Method() Method { return MethodCard }

func (s *CardStrategy) Validate(data Data) FieldErrors {
	errs := FieldErrors{}

	number := normalizeCardNumber(data.CardNumber)
	if data.CardNumber == "" {
		errs["card_number"] = "Card number is required"
	} else if !validCardNumber(number) {
		errs["card_number"] = "Invalid card number format"
	}

	if data.ExpiryMonth == 0 || data.ExpiryYear == 0 {
		errs["expiry"] = "Card expiry date is required"
	} else if !validExpiry(data.ExpiryMonth, data.ExpiryYear, time.Now()) {
		errs["expiry"] = "Card has expired"
	}

	if data.CVV == "" {
		errs["cvv"] = "CVV is required"
	} else if !allDigits(data.CVV) || len(data.CVV) < 3 || len(data.CVV) > 4 {
		errs["cvv"] = "Invalid CVV format"
	}

	if data.CardholderName == "" {
		errs["cardholder_name"] = "Cardholder name is required"
	}

	if !data.Amount.IsPositive() {
		errs["amount"] = "Amount must be greater than 0"
	}

	return errs
}

func (s *CardStrategy) Execute(data Data) Outcome {
	if s.rand() >= s.successRate {
		return declineOutcome("Invalid card details or insufficient funds")
	}

	number := normalizeCardNumber(data.CardNumber)
	txID := "CC_" + uuid.NewString()
	return Outcome{
		Status:        StatusCompleted,
		TransactionID: &txID,
		GatewayResponse: map[string]any{
			"card_transaction_id": txID,
			"status":              "completed",
			"amount":              data.Amount.StringFixed(2),
			"currency":            "USD",
			"card_last_four":      last4(number),
			"card_type":           DetectCardType(number),
			"timestamp":           gatewayTimestamp(),
		},
		Message: "Payment processed successfully via Credit Card",
	}
}

func normalizeCardNumber(number string) string {
	number = strings.ReplaceAll(number, " ", "")
	return strings.ReplaceAll(number, "-", "")
}

// validCardNumber checks length 13-19 digits plus the Luhn checksum.
func validCardNumber(number string) bool {
	if !allDigits(number) || len(number) < 13 || len(number) > 19 {
		return false
	}

	sum := 0
	for i := 0; i < len(number); i++ {
		digit := int(number[len(number)-i-1] - '0')
		if i%2 == 1 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
	}
	return sum%10 == 0
}

func validExpiry(month, year int, now time.Time) bool {
	if month < 1 || month > 12 {
		return false
	}
	if year < now.Year() {
		return false
	}
	if year == now.Year() && month < int(now.Month()) {
		return false
	}
	return true
}

// DetectCardType derives a display label from the issuer prefix. Used
// for metadata only, never for validation decisions.
func DetectCardType(number string) string {
	number = normalizeCardNumber(number)
	switch {
	case strings.HasPrefix(number, "4"):
		return "Visa"
	case len(number) >= 2 && number[0] == '5' && number[1] >= '1' && number[1] <= '5':
		return "Mastercard"
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return "American Express"
	case strings.HasPrefix(number, "6"):
		return "Discover"
	default:
		return "Unknown"
	}
}
