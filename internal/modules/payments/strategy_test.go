package payments

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alwaysSucceed() float64 { return 0 }
func alwaysFail() float64    { return 0.9999 }

func validCardData() Data {
	return Data{
		CardNumber:     "4242424242424242",
		ExpiryMonth:    12,
		ExpiryYear:     time.Now().Year() + 2,
		CVV:            "123",
		CardholderName: "Jane Doe",
		Amount:         decimal.RequireFromString("100.00"),
	}
}

func TestCardStrategy_Validate(t *testing.T) {
	s := NewCardStrategy(0.95, nil)

	t.Run("valid input passes", func(t *testing.T) {
		assert.Empty(t, s.Validate(validCardData()))
	})

	t.Run("spaces and dashes are normalized", func(t *testing.T) {
		d := validCardData()
		d.CardNumber = "4242 4242-4242 4242"
		assert.Empty(t, s.Validate(d))
	})

	t.Run("luhn failure", func(t *testing.T) {
		d := validCardData()
		d.CardNumber = "4242424242424241"
		errs := s.Validate(d)
		assert.Contains(t, errs, "card_number")
	})

	t.Run("too short", func(t *testing.T) {
		d := validCardData()
		d.CardNumber = "424242424242"
		assert.Contains(t, s.Validate(d), "card_number")
	})

	t.Run("missing number", func(t *testing.T) {
		d := validCardData()
		d.CardNumber = ""
		assert.Equal(t, "Card number is required", s.Validate(d)["card_number"])
	})

	t.Run("expired card", func(t *testing.T) {
		d := validCardData()
		d.ExpiryYear = time.Now().Year() - 1
		assert.Contains(t, s.Validate(d), "expiry")
	})

	t.Run("month out of range", func(t *testing.T) {
		d := validCardData()
		d.ExpiryMonth = 13
		assert.Contains(t, s.Validate(d), "expiry")
	})

	t.Run("bad cvv", func(t *testing.T) {
		d := validCardData()
		d.CVV = "12"
		assert.Contains(t, s.Validate(d), "cvv")

		d.CVV = "12a"
		assert.Contains(t, s.Validate(d), "cvv")
	})

	t.Run("missing cardholder", func(t *testing.T) {
		d := validCardData()
		d.CardholderName = ""
		assert.Contains(t, s.Validate(d), "cardholder_name")
	})

	t.Run("non-positive amount", func(t *testing.T) {
		d := validCardData()
		d.Amount = decimal.Zero
		assert.Contains(t, s.Validate(d), "amount")
	})
}

func TestValidExpiry_CurrentMonth(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, validExpiry(6, 2026, now))
	assert.False(t, validExpiry(5, 2026, now))
	assert.True(t, validExpiry(1, 2027, now))
	assert.False(t, validExpiry(12, 2025, now))
}

func TestCardStrategy_Execute(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := NewCardStrategy(0.95, alwaysSucceed)
		out := s.Execute(validCardData())

		assert.Equal(t, StatusCompleted, out.Status)
		require.NotNil(t, out.TransactionID)
		assert.Regexp(t, `^CC_`, *out.TransactionID)
		assert.Equal(t, "100.00", out.GatewayResponse["amount"])
		assert.Equal(t, "USD", out.GatewayResponse["currency"])
		assert.Equal(t, "4242", out.GatewayResponse["card_last_four"])
		assert.Equal(t, "Visa", out.GatewayResponse["card_type"])
		assert.NotEmpty(t, out.GatewayResponse["timestamp"])
	})

	t.Run("decline", func(t *testing.T) {
		s := NewCardStrategy(0.95, alwaysFail)
		out := s.Execute(validCardData())

		assert.Equal(t, StatusFailed, out.Status)
		assert.Nil(t, out.TransactionID)
		assert.Equal(t, "Payment failed", out.GatewayResponse["error"])
		assert.NotEmpty(t, out.GatewayResponse["reason"])
	})
}

func TestDetectCardType(t *testing.T) {
	cases := map[string]string{
		"4242424242424242": "Visa",
		"5100000000000000": "Mastercard",
		"5500000000000000": "Mastercard",
		"340000000000000":  "American Express",
		"370000000000000":  "American Express",
		"6011000000000000": "Discover",
		"9999999999999999": "Unknown",
	}
	for number, want := range cases {
		assert.Equal(t, want, DetectCardType(number), number)
	}
}

func validBankData() Data {
	return Data{
		AccountNumber:     "12345678",
		RoutingNumber:     "123456789",
		AccountHolderName: "Jane Doe",
		Amount:            decimal.RequireFromString("50.00"),
	}
}

func TestBankTransferStrategy_Validate(t *testing.T) {
	s := NewBankTransferStrategy(0.95, nil)

	assert.Empty(t, s.Validate(validBankData()))

	t.Run("account number bounds", func(t *testing.T) {
		d := validBankData()
		d.AccountNumber = "1234567" // 7 digits
		assert.Contains(t, s.Validate(d), "account_number")

		d.AccountNumber = "123456789012345678901" // 21 digits
		assert.Contains(t, s.Validate(d), "account_number")
	})

	t.Run("routing number must be 9 digits", func(t *testing.T) {
		d := validBankData()
		d.RoutingNumber = "12345678"
		assert.Contains(t, s.Validate(d), "routing_number")

		d.RoutingNumber = "12345678a"
		assert.Contains(t, s.Validate(d), "routing_number")
	})

	t.Run("missing holder", func(t *testing.T) {
		d := validBankData()
		d.AccountHolderName = ""
		assert.Contains(t, s.Validate(d), "account_holder_name")
	})
}

func TestBankTransferStrategy_Execute(t *testing.T) {
	s := NewBankTransferStrategy(0.95, alwaysSucceed)
	out := s.Execute(validBankData())

	assert.Equal(t, StatusCompleted, out.Status)
	require.NotNil(t, out.TransactionID)
	assert.Regexp(t, `^BT_`, *out.TransactionID)
	assert.Equal(t, "****5678", out.GatewayResponse["account_number_masked"])
	assert.Equal(t, "Unknown Bank", out.GatewayResponse["bank_name"])

	out = NewBankTransferStrategy(0.95, alwaysFail).Execute(validBankData())
	assert.Equal(t, StatusFailed, out.Status)
	assert.Nil(t, out.TransactionID)
}

func TestWalletStrategy_Validate(t *testing.T) {
	s := NewWalletStrategy(0.90, nil)

	ok := Data{WalletEmail: "jane@example.com", Amount: decimal.RequireFromString("10.00")}
	assert.Empty(t, s.Validate(ok))

	bad := ok
	bad.WalletEmail = "not-an-email"
	assert.Contains(t, s.Validate(bad), "wallet_email")

	bad.WalletEmail = ""
	assert.Equal(t, "Wallet email is required", s.Validate(bad)["wallet_email"])

	neg := ok
	neg.Amount = decimal.RequireFromString("-1")
	assert.Contains(t, s.Validate(neg), "amount")
}

func TestWalletStrategy_Execute(t *testing.T) {
	d := Data{WalletEmail: "jane@example.com", Amount: decimal.RequireFromString("10.00")}

	out := NewWalletStrategy(0.90, alwaysSucceed).Execute(d)
	assert.Equal(t, StatusCompleted, out.Status)
	require.NotNil(t, out.TransactionID)
	assert.Regexp(t, `^WL_`, *out.TransactionID)

	out = NewWalletStrategy(0.90, alwaysFail).Execute(d)
	assert.Equal(t, StatusFailed, out.Status)
	assert.Nil(t, out.TransactionID)
}
