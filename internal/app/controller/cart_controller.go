package controller

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/dpaiva/lojinha-backend/internal/app/service"
	"github.com/dpaiva/lojinha-backend/internal/errors"
	"github.com/dpaiva/lojinha-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// Quantity is a pointer so that an explicit zero (remove the line)
// survives binding.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func cartID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetCartID(c)
	if !ok {
		errors.RespondWithError(c, http.StatusInternalServerError, errors.CartSessionMissing, "Cart session unavailable")
	}
	return id, ok
}

// GetCart returns the session's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := cartID(c)
	if !ok {
		return
	}

	summary := ctrl.cartService.GetCart(c.Request.Context(), id)

	log.Info("Cart fetched", map[string]interface{}{
		"cart_id":     id,
		"total_items": summary.TotalItems,
	})

	c.JSON(http.StatusOK, summary)
}

// AddToCart adds one unit of a product to the cart
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := cartID(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"cart_id": id,
			"error":   err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	summary, err := ctrl.cartService.AddToCart(c.Request.Context(), id, req.ProductID)
	if err != nil {
		if stderrors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for cart", map[string]interface{}{
				"cart_id":    id,
				"product_id": req.ProductID,
			})
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"cart_id":    id,
			"product_id": req.ProductID,
		})
		errors.InternalError(c, "")
		return
	}

	log.Info("Item added to cart", map[string]interface{}{
		"cart_id":     id,
		"product_id":  req.ProductID,
		"total_items": summary.TotalItems,
	})

	c.JSON(http.StatusCreated, summary)
}

// SetQuantity replaces a cart line's quantity; zero removes the line
// PUT /api/v1/cart/:product_id
func (ctrl *CartController) SetQuantity(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := cartID(c)
	if !ok {
		return
	}

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid set quantity request", map[string]interface{}{
			"cart_id":    id,
			"product_id": productID,
			"error":      err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	summary := ctrl.cartService.SetQuantity(c.Request.Context(), id, productID, *req.Quantity)

	log.Info("Cart quantity set", map[string]interface{}{
		"cart_id":    id,
		"product_id": productID,
		"quantity":   *req.Quantity,
	})

	c.JSON(http.StatusOK, summary)
}

// RemoveFromCart removes a product's line from the cart
// DELETE /api/v1/cart/:product_id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := cartID(c)
	if !ok {
		return
	}

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	summary := ctrl.cartService.RemoveFromCart(c.Request.Context(), id, productID)

	log.Info("Cart item removed", map[string]interface{}{
		"cart_id":    id,
		"product_id": productID,
	})

	c.JSON(http.StatusOK, summary)
}

// ClearCart empties the session's cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := cartID(c)
	if !ok {
		return
	}

	summary := ctrl.cartService.ClearCart(c.Request.Context(), id)

	log.Info("Cart cleared", map[string]interface{}{
		"cart_id": id,
	})

	c.JSON(http.StatusOK, summary)
}

func parseProductID(c *gin.Context) (uint, bool) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("product_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
			"error":      err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product ID")
		return 0, false
	}
	return uint(id), true
}
