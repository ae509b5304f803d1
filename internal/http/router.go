package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/http/handlers"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/http/middleware"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/modules/orders"
	"github.com/YoussefEhabElsrogi/OrderPaymentAPI/internal/modules/payments"
)

// NewRouter wires middleware, services and routes onto a gin engine.
func NewRouter(l *slog.Logger, db *gorm.DB, payCfg payments.Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(l))
	r.Use(middleware.ErrorHandler(l))
	r.Use(middleware.Recovery(l))

	orderSvc := orders.NewService(db, l)
	paySvc := payments.NewService(db, payments.NewRegistry(payCfg), l)

	ordersH := handlers.NewOrdersHandler(orderSvc, paySvc)
	paymentsH := handlers.NewPaymentsHandler(paySvc, orderSvc)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		o := api.Group("/orders")
		{
			o.POST("", ordersH.Create)
			o.GET("", ordersH.List)
			o.GET("/:id", ordersH.Show)
			o.PUT("/:id", ordersH.Update)
			o.PATCH("/:id/status", ordersH.UpdateStatus)
			o.DELETE("/:id", ordersH.Delete)

			o.POST("/:id/payments", paymentsH.Process)
			o.GET("/:id/payments", paymentsH.ListForOrder)
		}

		p := api.Group("/payments")
		{
			p.GET("", paymentsH.ListByUser)
			p.GET("/methods", paymentsH.Methods)
			p.GET("/:id", paymentsH.Show)
			p.PATCH("/:id/status", paymentsH.UpdateStatus)
		}
	}

	return r
}
