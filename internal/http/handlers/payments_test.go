package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apphttp "github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/http"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/modules/orders"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/modules/payments"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/modules/users"
)

func newTestRouter(t *testing.T, rnd payments.RandFunc) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&users.User{}, &orders.Order{}, &orders.OrderItem{}, &payments.Payment{}))

	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	return apphttp.NewRouter(l, db, payments.Config{Rand: rnd}), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, db *gorm.DB) users.User {
	t.Helper()
	now := time.Now()
	u := users.User{
		ID:           uuid.NewString(),
		Name:         "Jane Doe",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createOrder(t *testing.T, r *gin.Engine, userID, status string) orders.Order {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/orders", gin.H{
		"user_id": userID,
		"status":  status,
		"items": []gin.H{
			{"product_name": "Keyboard", "quantity": 2, "price": "45.00"},
			{"product_name": "Mouse", "quantity": 1, "price": "10.00"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data orders.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func cardPayload() gin.H {
	return gin.H{
		"payment_method":  "card",
		"card_number":     "4242424242424242",
		"expiry_month":    12,
		"expiry_year":     time.Now().Year() + 2,
		"cvv":             "123",
		"cardholder_name": "Jane Doe",
	}
}

func TestMethodsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodGet, "/api/v1/payments/methods", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []string{"card", "bank_transfer", "wallet"}, resp.Data)
}

func TestProcessPayment_Success(t *testing.T) {
	router, store := newTestRouter(t, func() float64 { return 0 })
	u := seedUser(t, store)
	o := createOrder(t, router, u.ID, "confirmed")

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders/"+o.ID+"/payments", cardPayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data payments.Payment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, payments.StatusCompleted, resp.Data.Status)
	assert.Equal(t, o.ID, resp.Data.OrderID)
	require.NotNil(t, resp.Data.TransactionID)
	assert.Equal(t, "100.00", resp.Data.Amount.StringFixed(2))
}

func TestProcessPayment_OrderNotPayable(t *testing.T) {
	router, store := newTestRouter(t, func() float64 { return 0 })
	u := seedUser(t, store)
	o := createOrder(t, router, u.ID, "pending")

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders/"+o.ID+"/payments", cardPayload())
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestProcessPayment_UnsupportedMethod(t *testing.T) {
	router, store := newTestRouter(t, func() float64 { return 0 })
	u := seedUser(t, store)
	o := createOrder(t, router, u.ID, "confirmed")

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders/"+o.ID+"/payments", gin.H{
		"payment_method": "apple_pay",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestProcessPayment_ValidationFields(t *testing.T) {
	router, store := newTestRouter(t, func() float64 { return 0 })
	u := seedUser(t, store)
	o := createOrder(t, router, u.ID, "confirmed")

	payload := cardPayload()
	payload["card_number"] = "4242424242424241"
	payload["cvv"] = "1"

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders/"+o.ID+"/payments", payload)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "card_number")
	assert.Contains(t, resp.Fields, "cvv")
}

func TestProcessPayment_DeclinedStillRecorded(t *testing.T) {
	router, store := newTestRouter(t, func() float64 { return 0.9999 })
	u := seedUser(t, store)
	o := createOrder(t, router, u.ID, "confirmed")

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders/"+o.ID+"/payments", cardPayload())
	assert.Equal(t, http.StatusPaymentRequired, w.Code, w.Body.String())

	list := doJSON(t, router, http.MethodGet, "/api/v1/orders/"+o.ID+"/payments", nil)
	require.Equal(t, http.StatusOK, list.Code)

	var resp struct {
		Data []payments.Payment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, payments.StatusFailed, resp.Data[0].Status)
	assert.Nil(t, resp.Data[0].TransactionID)
}

func TestUpdatePaymentStatusEndpoint(t *testing.T) {
	router, store := newTestRouter(t, func() float64 { return 0 })
	u := seedUser(t, store)
	o := createOrder(t, router, u.ID, "confirmed")

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders/"+o.ID+"/payments", cardPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data payments.Payment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	upd := doJSON(t, router, http.MethodPatch, "/api/v1/payments/"+created.Data.ID+"/status", gin.H{
		"status": "pending",
	})
	require.Equal(t, http.StatusOK, upd.Code, upd.Body.String())

	var resp struct {
		Data payments.Payment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(upd.Body.Bytes(), &resp))
	assert.Equal(t, payments.StatusPending, resp.Data.Status)

	bad := doJSON(t, router, http.MethodPatch, "/api/v1/payments/"+created.Data.ID+"/status", gin.H{
		"status": "refunded",
	})
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestDeleteOrder_BlockedAfterPayment(t *testing.T) {
	router, store := newTestRouter(t, func() float64 { return 0 })
	u := seedUser(t, store)
	o := createOrder(t, router, u.ID, "confirmed")

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders/"+o.ID+"/payments", cardPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	del := doJSON(t, router, http.MethodDelete, "/api/v1/orders/"+o.ID, nil)
	assert.Equal(t, http.StatusConflict, del.Code, del.Body.String())
}
