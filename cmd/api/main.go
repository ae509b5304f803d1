package main

import (
	"log"
	"os"
	"strconv"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	apphttp "github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/http"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/modules/payments"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	payCfg := payments.Config{
		CardSuccessRate:   rateFromEnv("PAYMENT_CARD_SUCCESS_RATE"),
		BankSuccessRate:   rateFromEnv("PAYMENT_BANK_SUCCESS_RATE"),
		WalletSuccessRate: rateFromEnv("PAYMENT_WALLET_SUCCESS_RATE"),
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := apphttp.NewRouter(logger, db, payCfg)
	_ = r.Run(":" + port)
}

// rateFromEnv reads a success rate in (0,1]; zero means "use default".
func rateFromEnv(key string) float64 {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 || f > 1 {
		log.Fatalf("%s must be a float in (0,1], got %q", key, v)
	}
	return f
}
