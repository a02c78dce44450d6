package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acruxa/storefront/internal/core/service"
)

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	summary, err := h.carts.GetSummary(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(summary))
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if err := h.carts.AddItem(c.Request.Context(), currentUserID(c), req.ProductID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	h.GetCart(c)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateItem handles PUT /api/cart/items/:itemId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if err := h.carts.UpdateQuantity(c.Request.Context(), currentUserID(c), c.Param("itemId"), req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	h.GetCart(c)
}

// RemoveItem handles DELETE /api/cart/items/:itemId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	if err := h.carts.RemoveItem(c.Request.Context(), currentUserID(c), c.Param("itemId")); err != nil {
		respondError(c, err)
		return
	}
	h.GetCart(c)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.carts.ClearCart(c.Request.Context(), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
