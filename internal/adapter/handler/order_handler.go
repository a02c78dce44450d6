package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acruxa/storefront/internal/core/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListUserOrders(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	items := []orderResponse{}
	for _, o := range orders {
		items = append(items, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetOrder handles GET /api/orders/:orderNumber
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetOrderByNumber(c.Request.Context(), currentUserID(c), c.Param("orderNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}
