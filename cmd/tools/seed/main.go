package main

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/modules/orders"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/modules/users"
)

// Seeds a demo user with a few orders in different statuses so payment
// flows can be exercised right away.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	user := users.User{
		ID:           uuid.NewString(),
		Name:         "Demo User",
		Email:        "demo@example.com",
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}

	seedOrder(db, user.ID, orders.StatusConfirmed, []orders.ItemInput{
		{ProductName: "Mechanical Keyboard", Quantity: 1, Price: decimal.RequireFromString("89.99")},
		{ProductName: "USB-C Cable", Quantity: 2, Price: decimal.RequireFromString("5.00")},
	})
	seedOrder(db, user.ID, orders.StatusPending, []orders.ItemInput{
		{ProductName: "Monitor Stand", Quantity: 1, Price: decimal.RequireFromString("34.50")},
	})
	seedOrder(db, user.ID, orders.StatusCancelled, []orders.ItemInput{
		{ProductName: "Webcam", Quantity: 1, Price: decimal.RequireFromString("59.00")},
	})

	log.Printf("Seeded user %s (demo@example.com / password) with 3 orders.", user.ID)
}

func seedOrder(db *gorm.DB, userID, status string, items []orders.ItemInput) {
	now := time.Now()

	total := decimal.Zero
	o := orders.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    status,
		Notes:     nil,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&o).Error; err != nil {
		log.Fatalf("Failed to seed order: %v", err)
	}

	for _, in := range items {
		it := orders.OrderItem{
			ID:          uuid.NewString(),
			OrderID:     o.ID,
			ProductName: in.ProductName,
			Quantity:    in.Quantity,
			Price:       in.Price,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := db.Create(&it).Error; err != nil {
			log.Fatalf("Failed to seed order item: %v", err)
		}
		total = total.Add(it.LineTotal())
	}

	if err := db.Model(&orders.Order{}).Where("id = ?", o.ID).Update("total_amount", total).Error; err != nil {
		log.Fatalf("Failed to set order total: %v", err)
	}
}
