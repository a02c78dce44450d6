package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/core/service"
	"github.com/acruxa/storefront/internal/port"
)

type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListOrders handles GET /api/admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	q := port.OrderQuery{
		Status:  domain.OrderStatus(c.Query("status")),
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "per_page", 20),
	}

	orders, total, err := h.admin.ListOrders(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	items := []orderResponse{}
	for _, o := range orders {
		items = append(items, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, pagedResponse{
		Items:   items,
		Total:   total,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
}

// GetOrder handles GET /api/admin/orders/:id
func (h *AdminHandler) GetOrder(c *gin.Context) {
	order, err := h.admin.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus handles PUT /api/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if err := h.admin.UpdateOrderStatus(c.Request.Context(), c.Param("id"), domain.OrderStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdatePaymentStatus handles PUT /api/admin/orders/:id/payment-status
func (h *AdminHandler) UpdatePaymentStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if err := h.admin.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), domain.PaymentStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type trackingRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

// SetTracking handles PUT /api/admin/orders/:id/tracking
func (h *AdminHandler) SetTracking(c *gin.Context) {
	var req trackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if err := h.admin.SetTrackingNumber(c.Request.Context(), c.Param("id"), req.TrackingNumber); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type productRequest struct {
	Name       string `json:"name" binding:"required"`
	Slug       string `json:"slug" binding:"required"`
	SKU        string `json:"sku" binding:"required"`
	CategoryID string `json:"category_id"`
	Price      string `json:"price" binding:"required"`
	Stock      int    `json:"stock"`
	IsFeatured bool   `json:"is_featured"`
}

func (r productRequest) toInput() (service.ProductInput, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return service.ProductInput{}, err
	}
	return service.ProductInput{
		Name:       r.Name,
		Slug:       r.Slug,
		SKU:        r.SKU,
		CategoryID: r.CategoryID,
		Price:      price,
		Stock:      r.Stock,
		IsFeatured: r.IsFeatured,
	}, nil
}

// ListProducts handles GET /api/admin/products; inactive rows are included
// and ?q= searches name and SKU.
func (h *AdminHandler) ListProducts(c *gin.Context) {
	q := port.ProductQuery{
		CategorySlug: c.Query("category"),
		Search:       c.Query("q"),
		Page:         queryInt(c, "page", 1),
		PerPage:      queryInt(c, "per_page", 20),
	}

	products, total, err := h.admin.ListProducts(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	items := []productResponse{}
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	c.JSON(http.StatusOK, pagedResponse{
		Items:   items,
		Total:   total,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
}

// GetProduct handles GET /api/admin/products/:id
func (h *AdminHandler) GetProduct(c *gin.Context) {
	product, err := h.admin.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// CreateProduct handles POST /api/admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Price must be a decimal string",
		})
		return
	}

	product, err := h.admin.CreateProduct(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*product))
}

// UpdateProduct handles PUT /api/admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Price must be a decimal string",
		})
		return
	}

	product, err := h.admin.UpdateProduct(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

type productStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetProductStatus handles PUT /api/admin/products/:id/status
func (h *AdminHandler) SetProductStatus(c *gin.Context) {
	var req productStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if err := h.admin.SetProductActive(c.Request.Context(), c.Param("id"), *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteProduct handles DELETE /api/admin/products/:id. Deletion is a
// deactivation so order history keeps its product references.
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	if err := h.admin.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
