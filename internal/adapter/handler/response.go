package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/acruxa/storefront/internal/core/checkout"
	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/core/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// respondError maps service and checkout sentinels onto HTTP statuses.
// Anything unmapped is logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidCard):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_CARD",
			Message: "Card number failed validation",
		})
	case errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "EMPTY_CART",
			Message: "Cannot place an order from an empty cart",
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Resource not found",
		})
	case errors.Is(err, service.ErrInsufficientStock):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "INSUFFICIENT_STOCK",
			Message: "Not enough stock to fulfill the request",
		})
	case errors.Is(err, service.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "DUPLICATE_REQUEST",
			Message: "An identical request is already being processed",
		})
	case errors.Is(err, service.ErrDuplicateProduct):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "DUPLICATE_PRODUCT",
			Message: "A product with that slug or SKU already exists",
		})
	case errors.Is(err, checkout.ErrAddressRequired),
		errors.Is(err, checkout.ErrPaymentRequired),
		errors.Is(err, checkout.ErrNotAtConfirm):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "CHECKOUT_STEP",
			Message: err.Error(),
		})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "INTERNAL",
			Message: "Something went wrong",
		})
	}
}

type productResponse struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id,omitempty"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	SKU        string `json:"sku"`
	Price      string `json:"price"`
	Stock      int    `json:"stock"`
	IsActive   bool   `json:"is_active"`
	IsFeatured bool   `json:"is_featured"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:         p.ID,
		CategoryID: p.CategoryID,
		Name:       p.Name,
		Slug:       p.Slug,
		SKU:        p.SKU,
		Price:      p.Price.StringFixed(2),
		Stock:      p.Stock,
		IsActive:   p.IsActive,
		IsFeatured: p.IsFeatured,
	}
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type pagedResponse struct {
	Items   any `json:"items"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

type cartItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

type cartResponse struct {
	Items     []cartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  string             `json:"subtotal"`
	Tax       string             `json:"tax"`
	Total     string             `json:"total"`
}

func toCartResponse(s *domain.CartSummary) cartResponse {
	resp := cartResponse{
		Items:     []cartItemResponse{},
		ItemCount: s.ItemCount,
		Subtotal:  s.Subtotal.StringFixed(2),
		Tax:       s.Tax.StringFixed(2),
		Total:     s.Total.StringFixed(2),
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, cartItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductSKU:  it.ProductSKU,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			LineTotal:   it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).StringFixed(2),
		})
	}
	return resp
}

type orderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	Tax         string `json:"tax"`
	Total       string `json:"total"`
}

type orderResponse struct {
	ID             string              `json:"id"`
	OrderNumber    string              `json:"order_number"`
	Status         string              `json:"status"`
	PaymentStatus  string              `json:"payment_status"`
	Subtotal       string              `json:"subtotal"`
	Tax            string              `json:"tax"`
	ShippingCost   string              `json:"shipping_cost"`
	DiscountAmount string              `json:"discount_amount"`
	Total          string              `json:"total"`
	Currency       string              `json:"currency"`
	ShippingMethod string              `json:"shipping_method"`
	TrackingNumber string              `json:"tracking_number,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	ShippedAt      *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt    *time.Time          `json:"cancelled_at,omitempty"`
	Items          []orderItemResponse `json:"items"`
}

func toOrderResponse(o domain.Order) orderResponse {
	resp := orderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		Status:         string(o.Status),
		PaymentStatus:  string(o.PaymentStatus),
		Subtotal:       o.Subtotal.StringFixed(2),
		Tax:            o.Tax.StringFixed(2),
		ShippingCost:   o.ShippingCost.StringFixed(2),
		DiscountAmount: o.DiscountAmount.StringFixed(2),
		Total:          o.Total.StringFixed(2),
		Currency:       o.Currency,
		ShippingMethod: o.ShippingMethod,
		TrackingNumber: o.TrackingNumber,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
		CancelledAt:    o.CancelledAt,
		Items:          []orderItemResponse{},
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductSKU:  it.ProductSKU,
			Quantity:    it.Quantity,
			Price:       it.Price.StringFixed(2),
			Tax:         it.Tax.StringFixed(2),
			Total:       it.Total.StringFixed(2),
		})
	}
	return resp
}

type addressResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone,omitempty"`
	Line1      string `json:"address_line_1"`
	Line2      string `json:"address_line_2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

func toAddressResponse(a domain.Address) addressResponse {
	return addressResponse{
		ID:         a.ID,
		FullName:   a.FullName,
		Phone:      a.Phone,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  a.IsDefault,
	}
}

type paymentMethodResponse struct {
	ID           string `json:"id"`
	HolderName   string `json:"holder_name"`
	CardBrand    string `json:"card_brand"`
	CardLastFour string `json:"card_last_four"`
	ExpiryMonth  int    `json:"expiry_month"`
	ExpiryYear   int    `json:"expiry_year"`
	IsDefault    bool   `json:"is_default"`
}

func toPaymentMethodResponse(pm domain.PaymentMethod) paymentMethodResponse {
	return paymentMethodResponse{
		ID:           pm.ID,
		HolderName:   pm.HolderName,
		CardBrand:    pm.CardBrand,
		CardLastFour: pm.CardLastFour,
		ExpiryMonth:  pm.ExpiryMonth,
		ExpiryYear:   pm.ExpiryYear,
		IsDefault:    pm.IsDefault,
	}
}
