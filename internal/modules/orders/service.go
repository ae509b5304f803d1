package orders

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	db   *gorm.DB
	repo *Repo
	log  *slog.Logger
}

func NewService(db *gorm.DB, l *slog.Logger) *Service {
	return &Service{db: db, repo: NewRepo(db), log: l}
}

func (s *Service) Repo() *Repo { return s.repo }

// CanAcceptPayments is the gate every payment attempt passes through.
// Only confirmed orders take payments; it deliberately ignores whether
// the order already has completed payments (retries are allowed).
func CanAcceptPayments(o Order) bool {
	return o.Status == StatusConfirmed
}

type ItemInput struct {
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	Description *string
}

type CreateInput struct {
	UserID string
	Status string // optional, defaults to pending
	Notes  *string
	Items  []ItemInput
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Order, error) {
	if len(in.Items) == 0 {
		return Order{}, ErrNoItems
	}
	status := in.Status
	if status == "" {
		status = StatusPending
	}
	if !ValidStatus(status) {
		return Order{}, ErrInvalidStatus
	}

	now := time.Now()
	o := Order{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		Status:      status,
		TotalAmount: decimal.Zero,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		return s.writeItems(tx, &o, in.Items, now)
	})
	if err != nil {
		return Order{}, err
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "order_created",
		slog.String("order_id", o.ID),
		slog.String("user_id", o.UserID),
		slog.String("total", o.TotalAmount.StringFixed(2)),
	)
	return s.repo.GetWithItems(ctx, o.ID)
}

type UpdateInput struct {
	Notes *string
	Items []ItemInput // empty leaves the item set untouched
}

// Update rewrites order fields. A non-empty item list replaces the item
// set wholesale; the total is always recomputed from what is stored,
// never adjusted incrementally.
func (s *Service) Update(ctx context.Context, orderID string, in UpdateInput) (Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order
		if err := tx.First(&o, "id = ?", orderID).Error; err != nil {
			return err
		}

		now := time.Now()
		if in.Notes != nil {
			o.Notes = in.Notes
		}

		if len(in.Items) > 0 {
			if err := tx.Where("order_id = ?", o.ID).Delete(&OrderItem{}).Error; err != nil {
				return err
			}
			if err := s.writeItems(tx, &o, in.Items, now); err != nil {
				return err
			}
		}

		o.UpdatedAt = now
		return tx.Model(&Order{}).Where("id = ?", o.ID).Updates(map[string]any{
			"notes":        o.Notes,
			"total_amount": o.TotalAmount,
			"updated_at":   now,
		}).Error
	})
	if err != nil {
		return Order{}, err
	}
	return s.repo.GetWithItems(ctx, orderID)
}

// writeItems inserts the item rows and recomputes o.TotalAmount in memory.
func (s *Service) writeItems(tx *gorm.DB, o *Order, items []ItemInput, now time.Time) error {
	total := decimal.Zero
	for _, in := range items {
		it := OrderItem{
			ID:          uuid.NewString(),
			OrderID:     o.ID,
			ProductName: in.ProductName,
			Quantity:    in.Quantity,
			Price:       in.Price,
			Description: in.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Create(&it).Error; err != nil {
			return err
		}
		total = total.Add(it.LineTotal())
	}
	o.TotalAmount = total
	return tx.Model(&Order{}).Where("id = ?", o.ID).Update("total_amount", total).Error
}

func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (Order, error) {
	if !ValidStatus(status) {
		return Order{}, ErrInvalidStatus
	}
	if err := s.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error; err != nil {
		return Order{}, err
	}
	s.log.LogAttrs(ctx, slog.LevelInfo, "order_status_updated",
		slog.String("order_id", orderID),
		slog.String("status", status),
	)
	return s.repo.GetWithItems(ctx, orderID)
}

// Delete removes an order and its items. Orders that already took a
// payment attempt are part of the audit trail and stay.
func (s *Service) Delete(ctx context.Context, orderID string) error {
	has, err := s.repo.HasPayments(ctx, orderID)
	if err != nil {
		return err
	}
	if has {
		return ErrOrderHasPayments
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Order{}, "id = ?", orderID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
