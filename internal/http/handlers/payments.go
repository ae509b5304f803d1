package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/http/middleware"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/http/render"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/http/validation"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/modules/orders"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/modules/payments"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/shared/apperr"
)

type PaymentsHandler struct {
	Svc      *payments.Service
	OrderSvc *orders.Service
}

func NewPaymentsHandler(svc *payments.Service, orderSvc *orders.Service) *PaymentsHandler {
	return &PaymentsHandler{Svc: svc, OrderSvc: orderSvc}
}

// processPaymentRequest carries the canonical payment field names.
// Amount is never accepted from the caller: the orchestrator charges the
// order's current total.
type processPaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`

	CardNumber     string `json:"card_number"`
	ExpiryMonth    int    `json:"expiry_month"`
	ExpiryYear     int    `json:"expiry_year"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholder_name"`

	AccountNumber     string `json:"account_number"`
	RoutingNumber     string `json:"routing_number"`
	AccountHolderName string `json:"account_holder_name"`
	BankName          string `json:"bank_name"`

	WalletEmail string `json:"wallet_email"`
}

func (h *PaymentsHandler) Process(c *gin.Context) {
	var req processPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Payment payload is invalid.", validation.FromBindError(err, &req)))
		return
	}

	order, err := h.OrderSvc.Repo().GetWithItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, mapOrderError(err))
		return
	}

	data := payments.Data{
		CardNumber:        req.CardNumber,
		ExpiryMonth:       req.ExpiryMonth,
		ExpiryYear:        req.ExpiryYear,
		CVV:               req.CVV,
		CardholderName:    req.CardholderName,
		AccountNumber:     req.AccountNumber,
		RoutingNumber:     req.RoutingNumber,
		AccountHolderName: req.AccountHolderName,
		BankName:          req.BankName,
		WalletEmail:       req.WalletEmail,
	}

	p, err := h.Svc.ProcessPayment(c.Request.Context(), order, payments.Method(req.PaymentMethod), data)
	if err != nil {
		middleware.Fail(c, mapPaymentError(err))
		return
	}

	render.Success(c, http.StatusCreated, "Payment processed successfully", p)
}

func (h *PaymentsHandler) Show(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, mapPaymentError(err))
		return
	}

	render.Success(c, http.StatusOK, "Payment retrieved successfully", p)
}

func (h *PaymentsHandler) ListForOrder(c *gin.Context) {
	order, err := h.OrderSvc.Repo().GetWithItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, mapOrderError(err))
		return
	}

	list, err := h.Svc.ListByOrder(c.Request.Context(), order.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	render.Success(c, http.StatusOK, "Order payments retrieved successfully", list)
}

func (h *PaymentsHandler) ListByUser(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		middleware.Fail(c, apperr.InvalidErr("user_id query parameter is required.", nil))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	res, err := h.Svc.ListByUser(c.Request.Context(), payments.ListByUserParams{
		UserID:   userID,
		Page:     page,
		PageSize: perPage,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	render.Paginated(c, "Payments retrieved successfully", res.Items, page, perPage, res.Total)
}

func (h *PaymentsHandler) Methods(c *gin.Context) {
	render.Success(c, http.StatusOK, "Available payment methods retrieved successfully", h.Svc.AvailableMethods())
}

type updatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed failed"`
}

func (h *PaymentsHandler) UpdateStatus(c *gin.Context) {
	var req updatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Status payload is invalid.", validation.FromBindError(err, &req)))
		return
	}

	p, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		middleware.Fail(c, mapPaymentError(err))
		return
	}

	render.Success(c, http.StatusOK, "Payment status updated successfully", p)
}

func mapPaymentError(err error) error {
	var ve *payments.ValidationError

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFoundErr("Payment not found.")
	case errors.Is(err, payments.ErrOrderNotPayable):
		return apperr.ConflictErr("Order must be confirmed to accept payments.")
	case errors.Is(err, payments.ErrUnsupportedMethod):
		return apperr.InvalidErr("Payment method is not supported.", nil)
	case errors.As(err, &ve):
		return apperr.InvalidErr("Payment validation failed.", ve.Fields)
	case errors.Is(err, payments.ErrPaymentDeclined):
		return apperr.PaymentRequiredErr("Payment was declined by the gateway.", err)
	default:
		return apperr.Wrap(err)
	}
}
