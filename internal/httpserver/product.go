package httpserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"electroshop/internal/domain"
	productsvc "electroshop/internal/service/product"
)

type addressRepo interface {
	ListByEmail(ctx context.Context, email string) ([]domain.Address, error)
}

type pricingRequest struct {
	PriceCents  int64 `json:"priceCents" binding:"required"`
	DiscountPct int   `json:"discountPct"`
}

func listProducts(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

// updateProductPricing is the entry point the catalog collaborator uses to
// announce a price or discount change; it fans the new special price out
// to every cart holding the product.
func updateProductPricing(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req pricingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, fmt.Errorf("priceCents required: %w", domain.ErrInvalid))
			return
		}
		product, err := svc.UpdatePricing(c.Request.Context(), c.Param("productId"), req.PriceCents, req.DiscountPct)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func getUserAddresses(addresses addressRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := addresses.ListByEmail(c.Request.Context(), callerEmail(c))
		if err != nil {
			writeError(c, err)
			return
		}
		if result == nil {
			result = []domain.Address{}
		}
		c.JSON(http.StatusOK, result)
	}
}
