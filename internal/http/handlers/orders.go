package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/http/middleware"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/http/render"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/http/validation"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/modules/orders"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/modules/payments"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/shared/apperr"
)

type OrdersHandler struct {
	Svc    *orders.Service
	PaySvc *payments.Service
}

func NewOrdersHandler(svc *orders.Service, pay *payments.Service) *OrdersHandler {
	return &OrdersHandler{Svc: svc, PaySvc: pay}
}

type orderItemRequest struct {
	ProductName string          `json:"product_name" binding:"required,max=255"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Description *string         `json:"description" binding:"omitempty,max=1000"`
}

type storeOrderRequest struct {
	UserID string             `json:"user_id" binding:"required,uuid"`
	Status string             `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	Notes  *string            `json:"notes" binding:"omitempty,max=1000"`
	Items  []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

func itemInputs(reqs []orderItemRequest) ([]orders.ItemInput, validation.FieldErrors) {
	items := make([]orders.ItemInput, 0, len(reqs))
	for i, it := range reqs {
		if !it.Price.IsPositive() {
			return nil, validation.FieldErrors{
				"items[" + strconv.Itoa(i) + "].price": "Must be greater than 0.",
			}
		}
		items = append(items, orders.ItemInput{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Description: it.Description,
		})
	}
	return items, nil
}

func (h *OrdersHandler) Create(c *gin.Context) {
	var req storeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Order payload is invalid.", validation.FromBindError(err, &req)))
		return
	}

	items, fieldErrs := itemInputs(req.Items)
	if fieldErrs != nil {
		middleware.Fail(c, apperr.InvalidErr("Order payload is invalid.", fieldErrs))
		return
	}

	o, err := h.Svc.Create(c.Request.Context(), orders.CreateInput{
		UserID: req.UserID,
		Status: req.Status,
		Notes:  req.Notes,
		Items:  items,
	})
	if err != nil {
		middleware.Fail(c, mapOrderError(err))
		return
	}

	render.Success(c, http.StatusCreated, "Order created successfully", o)
}

func (h *OrdersHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		middleware.Fail(c, apperr.InvalidErr("user_id query parameter is required.", nil))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	res, err := h.Svc.Repo().ListByUser(c.Request.Context(), orders.ListByUserParams{
		UserID:   userID,
		Page:     page,
		PageSize: perPage,
		Status:   c.Query("status"),
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	render.Paginated(c, "Orders retrieved successfully", res.Items, page, perPage, res.Total)
}

func (h *OrdersHandler) Show(c *gin.Context) {
	id := c.Param("id")

	o, err := h.Svc.Repo().GetWithItems(c.Request.Context(), id)
	if err != nil {
		middleware.Fail(c, mapOrderError(err))
		return
	}

	list, err := h.PaySvc.ListByOrder(c.Request.Context(), o.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	render.Success(c, http.StatusOK, "Order retrieved successfully", gin.H{
		"order":    o,
		"payments": list,
	})
}

type updateOrderRequest struct {
	Notes *string            `json:"notes" binding:"omitempty,max=1000"`
	Items []orderItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}

func (h *OrdersHandler) Update(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Order payload is invalid.", validation.FromBindError(err, &req)))
		return
	}

	items, fieldErrs := itemInputs(req.Items)
	if fieldErrs != nil {
		middleware.Fail(c, apperr.InvalidErr("Order payload is invalid.", fieldErrs))
		return
	}

	o, err := h.Svc.Update(c.Request.Context(), c.Param("id"), orders.UpdateInput{
		Notes: req.Notes,
		Items: items,
	})
	if err != nil {
		middleware.Fail(c, mapOrderError(err))
		return
	}

	render.Success(c, http.StatusOK, "Order updated successfully", o)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Status payload is invalid.", validation.FromBindError(err, &req)))
		return
	}

	o, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		middleware.Fail(c, mapOrderError(err))
		return
	}

	render.Success(c, http.StatusOK, "Order status updated successfully", o)
}

func (h *OrdersHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, mapOrderError(err))
		return
	}

	render.Success(c, http.StatusOK, "Order deleted successfully", gin.H{})
}

func mapOrderError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFoundErr("Order not found.")
	case errors.Is(err, orders.ErrOrderHasPayments):
		return apperr.ConflictErr("Cannot delete order with existing payments.")
	case errors.Is(err, orders.ErrNoItems):
		return apperr.InvalidErr("At least one order item is required.", nil)
	case errors.Is(err, orders.ErrInvalidStatus):
		return apperr.InvalidErr("Unknown order status.", nil)
	default:
		return apperr.Wrap(err)
	}
}
