package httpserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"electroshop/internal/domain"
	cartsvc "electroshop/internal/service/cart"
)

// cartItemView surfaces the in-cart quantity on each product entry, the
// shape clients expect from the cart endpoints.
type cartItemView struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	PriceCents  int64  `json:"priceCents"`
	DiscountPct int    `json:"discountPct"`
}

type cartView struct {
	CartID     string         `json:"cartId"`
	Email      string         `json:"email"`
	TotalCents int64          `json:"totalCents"`
	Products   []cartItemView `json:"products"`
}

func toCartView(cart domain.Cart) cartView {
	items := make([]cartItemView, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		items = append(items, cartItemView{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			PriceCents:  line.PriceCents,
			DiscountPct: line.DiscountPct,
		})
	}
	return cartView{
		CartID:     cart.ID,
		Email:      cart.Email,
		TotalCents: cart.TotalCents,
		Products:   items,
	}
}

func addProductToCart(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		quantity, err := strconv.Atoi(c.Param("quantity"))
		if err != nil {
			writeError(c, fmt.Errorf("quantity must be a number: %w", domain.ErrInvalid))
			return
		}
		cart, err := svc.AddLine(c.Request.Context(), callerEmail(c), c.Param("productId"), quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toCartView(*cart))
	}
}

func getUserCart(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.GetCartByEmail(c.Request.Context(), callerEmail(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartView(*cart))
	}
}

func getAllCarts(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		carts, err := svc.ListAllCarts(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		views := make([]cartView, 0, len(carts))
		for _, cart := range carts {
			views = append(views, toCartView(cart))
		}
		c.JSON(http.StatusOK, views)
	}
}

// updateCartProduct maps the operation path segment to a signed delta:
// "increase" adds one, "delete" removes one.
func updateCartProduct(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var delta int
		switch strings.ToLower(c.Param("operation")) {
		case "increase":
			delta = 1
		case "delete":
			delta = -1
		default:
			writeError(c, fmt.Errorf("unknown operation %q: %w", c.Param("operation"), domain.ErrInvalid))
			return
		}
		cart, err := svc.UpdateLineQuantity(c.Request.Context(), callerEmail(c), c.Param("productId"), delta)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toCartView(*cart))
	}
}

func deleteCartProduct(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		message, err := svc.RemoveLine(c.Request.Context(), c.Param("cartId"), c.Param("productId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, apiMessage{Message: message, Status: true})
	}
}
