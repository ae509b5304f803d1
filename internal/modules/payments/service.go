package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/modules/orders"
)

type Service struct {
	db       *gorm.DB
	registry *Registry
	log      *slog.Logger
}

func NewService(db *gorm.DB, registry *Registry, l *slog.Logger) *Service {
	return &Service{db: db, registry: registry, log: l}
}

func (s *Service) Registry() *Registry { return s.registry }

// AvailableMethods lists the registered payment methods for capability
// discovery by callers.
func (s *Service) AvailableMethods() []Method {
	return s.registry.List()
}

func (s *Service) IsMethodSupported(method Method) bool {
	return s.registry.IsSupported(method)
}

// ProcessPayment runs one payment attempt against the order: gate,
// enrich, resolve, validate, execute, persist.
//
// A declined attempt is persisted with status failed and a nil
// transaction id before ErrPaymentDeclined is returned, so the audit
// trail keeps every genuine gateway attempt. Pre-attempt rejections
// (gate, unsupported method, validation) create no row at all.
func (s *Service) ProcessPayment(ctx context.Context, order orders.Order, method Method, data Data) (Payment, error) {
	if !orders.CanAcceptPayments(order) {
		return Payment{}, ErrOrderNotPayable
	}

	// The attempt is always for the order's current total.
	data.Amount = order.TotalAmount
	data.OrderID = order.ID
	data.Method = method

	strategy, err := s.registry.Resolve(method)
	if err != nil {
		return Payment{}, err
	}

	if fieldErrs := strategy.Validate(data); len(fieldErrs) > 0 {
		return Payment{}, &ValidationError{Fields: fieldErrs}
	}

	outcome := strategy.Execute(data)

	gatewayJSON, err := json.Marshal(outcome.GatewayResponse)
	if err != nil {
		return Payment{}, fmt.Errorf("marshal gateway response: %w", err)
	}
	metaJSON, err := json.Marshal(extractMeta(method, data))
	if err != nil {
		return Payment{}, fmt.Errorf("marshal payment meta: %w", err)
	}

	now := time.Now()
	payment := Payment{
		ID:              uuid.NewString(),
		OrderID:         order.ID,
		PaymentMethod:   method,
		Status:          outcome.Status,
		Amount:          data.Amount,
		TransactionID:   outcome.TransactionID,
		GatewayResponse: datatypes.JSON(gatewayJSON),
		Meta:            datatypes.JSON(metaJSON),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return Payment{}, err
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "payment_attempt",
		slog.String("payment_id", payment.ID),
		slog.String("order_id", order.ID),
		slog.String("method", string(method)),
		slog.String("status", payment.Status),
		slog.String("amount", payment.Amount.StringFixed(2)),
	)

	if outcome.Status == StatusFailed {
		// The row above is kept; only the call fails.
		return payment, fmt.Errorf("%w: %s", ErrPaymentDeclined, outcome.Message)
	}

	return s.Get(ctx, payment.ID)
}

// UpdateStatus is an administrative override. It overwrites the stored
// status without re-running any gateway logic and performs no
// state-machine validation beyond the status being a known one.
func (s *Service) UpdateStatus(ctx context.Context, paymentID, status string) (Payment, error) {
	if !ValidStatus(status) {
		return Payment{}, fmt.Errorf("unknown payment status %q", status)
	}

	res := s.db.WithContext(ctx).Model(&Payment{}).
		Where("id = ?", paymentID).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return Payment{}, res.Error
	}
	if res.RowsAffected == 0 {
		return Payment{}, gorm.ErrRecordNotFound
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "payment_status_overridden",
		slog.String("payment_id", paymentID),
		slog.String("status", status),
	)
	return s.Get(ctx, paymentID)
}

func (s *Service) Get(ctx context.Context, id string) (Payment, error) {
	var p Payment
	if err := s.db.WithContext(ctx).
		Preload("Order").
		Preload("Order.Items").
		First(&p, "id = ?", id).Error; err != nil {
		return Payment{}, err
	}
	return p, nil
}

func (s *Service) ListByOrder(ctx context.Context, orderID string) ([]Payment, error) {
	var list []Payment
	if err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

type ListByUserParams struct {
	UserID   string
	Page     int
	PageSize int
}

type ListByUserResult struct {
	Items []Payment
	Total int64
}

// ListByUser pages through the payments of every order owned by the user.
func (s *Service) ListByUser(ctx context.Context, in ListByUserParams) (ListByUserResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 15
	}

	q := s.db.WithContext(ctx).Model(&Payment{}).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.user_id = ?", in.UserID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListByUserResult{}, err
	}

	var list []Payment
	if err := q.
		Preload("Order").
		Order("payments.created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&list).Error; err != nil {
		return ListByUserResult{}, err
	}

	return ListByUserResult{Items: list, Total: total}, nil
}

// extractMeta builds the method-specific metadata stored with the
// payment. Identifiers are masked; full card numbers, CVVs and full
// account numbers never land here.
func extractMeta(method Method, data Data) map[string]any {
	meta := map[string]any{}

	switch method {
	case MethodCard:
		number := normalizeCardNumber(data.CardNumber)
		meta["cardholder_name"] = data.CardholderName
		meta["card_last_four"] = last4(number)
		meta["card_type"] = DetectCardType(number)
		meta["expiry_month"] = data.ExpiryMonth
		meta["expiry_year"] = data.ExpiryYear
	case MethodBankTransfer:
		meta["account_holder_name"] = data.AccountHolderName
		meta["account_number_masked"] = maskedAccount(data.AccountNumber)
		meta["routing_number"] = data.RoutingNumber
		if data.BankName != "" {
			meta["bank_name"] = data.BankName
		}
	case MethodWallet:
		meta["wallet_email"] = data.WalletEmail
	}

	return meta
}
