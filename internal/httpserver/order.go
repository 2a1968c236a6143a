package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"electroshop/internal/domain"
	ordersvc "electroshop/internal/service/order"
)

type orderRequest struct {
	AddressID              string `json:"addressId" binding:"required"`
	GatewayName            string `json:"gatewayName"`
	GatewayPaymentID       string `json:"gatewayPaymentId"`
	GatewayStatus          string `json:"gatewayStatus"`
	GatewayResponseMessage string `json:"gatewayResponseMessage"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type orderLineView struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	PriceCents  int64  `json:"priceCents"`
	DiscountPct int    `json:"discountPct"`
}

type paymentView struct {
	Method                 string `json:"method"`
	GatewayName            string `json:"gatewayName,omitempty"`
	GatewayPaymentID       string `json:"gatewayPaymentId,omitempty"`
	GatewayStatus          string `json:"gatewayStatus,omitempty"`
	GatewayResponseMessage string `json:"gatewayResponseMessage,omitempty"`
}

type orderView struct {
	OrderID    string          `json:"orderId"`
	Email      string          `json:"email"`
	OrderDate  string          `json:"orderDate"`
	TotalCents int64           `json:"totalCents"`
	Status     string          `json:"status"`
	AddressID  string          `json:"addressId"`
	Payment    *paymentView    `json:"payment,omitempty"`
	Lines      []orderLineView `json:"orderLines"`
}

func toOrderView(o domain.Order) orderView {
	lines := make([]orderLineView, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, orderLineView{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			PriceCents:  line.PriceCents,
			DiscountPct: line.DiscountPct,
		})
	}
	view := orderView{
		OrderID:    o.ID,
		Email:      o.Email,
		OrderDate:  o.OrderDate.Format(time.DateOnly),
		TotalCents: o.TotalCents,
		Status:     string(o.Status),
		AddressID:  o.AddressID,
		Lines:      lines,
	}
	if o.Payment != nil {
		view.Payment = &paymentView{
			Method:                 o.Payment.Method,
			GatewayName:            o.Payment.GatewayName,
			GatewayPaymentID:       o.Payment.GatewayPaymentID,
			GatewayStatus:          o.Payment.GatewayStatus,
			GatewayResponseMessage: o.Payment.GatewayResponseMessage,
		}
	}
	return view
}

func createOrder(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, fmt.Errorf("addressId required: %w", domain.ErrInvalid))
			return
		}
		order, err := svc.Create(c.Request.Context(), ordersvc.CreateInput{
			Email:                  callerEmail(c),
			AddressID:              req.AddressID,
			Method:                 c.Param("paymentMethod"),
			GatewayName:            req.GatewayName,
			GatewayPaymentID:       req.GatewayPaymentID,
			GatewayStatus:          req.GatewayStatus,
			GatewayResponseMessage: req.GatewayResponseMessage,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toOrderView(*order))
	}
}

func getUserOrders(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListByEmail(c.Request.Context(), callerEmail(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOrderViews(orders))
	}
}

func getAllOrders(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAll(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOrderViews(orders))
	}
}

func updateOrderStatus(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, fmt.Errorf("status required: %w", domain.ErrInvalid))
			return
		}
		order, err := svc.UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOrderView(*order))
	}
}

func toOrderViews(orders []domain.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o))
	}
	return views
}
