package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/core/service"
)

// ProfileHandler covers the user's address book and saved payment methods.
type ProfileHandler struct {
	addresses *service.AddressService
	methods   *service.PaymentMethodService
}

func NewProfileHandler(addresses *service.AddressService, methods *service.PaymentMethodService) *ProfileHandler {
	return &ProfileHandler{addresses: addresses, methods: methods}
}

type addressRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Phone      string `json:"phone"`
	Line1      string `json:"address_line_1" binding:"required"`
	Line2      string `json:"address_line_2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country" binding:"required"`
	IsDefault  bool   `json:"is_default"`
}

func (r addressRequest) toDomain() domain.Address {
	return domain.Address{
		FullName:   r.FullName,
		Phone:      r.Phone,
		Line1:      r.Line1,
		Line2:      r.Line2,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
		IsDefault:  r.IsDefault,
	}
}

// ListAddresses handles GET /api/addresses
func (h *ProfileHandler) ListAddresses(c *gin.Context) {
	addresses, err := h.addresses.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	items := []addressResponse{}
	for _, a := range addresses {
		items = append(items, toAddressResponse(a))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateAddress handles POST /api/addresses
func (h *ProfileHandler) CreateAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	address, err := h.addresses.Create(c.Request.Context(), currentUserID(c), req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAddressResponse(*address))
}

// UpdateAddress handles PUT /api/addresses/:id
func (h *ProfileHandler) UpdateAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	address := req.toDomain()
	address.ID = c.Param("id")
	if err := h.addresses.Update(c.Request.Context(), currentUserID(c), address); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAddressResponse(address))
}

// DeleteAddress handles DELETE /api/addresses/:id
func (h *ProfileHandler) DeleteAddress(c *gin.Context) {
	if err := h.addresses.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetDefaultAddress handles POST /api/addresses/:id/default
func (h *ProfileHandler) SetDefaultAddress(c *gin.Context) {
	if err := h.addresses.SetDefault(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type paymentMethodRequest struct {
	CardNumber  string `json:"card_number" binding:"required"`
	HolderName  string `json:"holder_name" binding:"required"`
	ExpiryMonth int    `json:"expiry_month" binding:"required"`
	ExpiryYear  int    `json:"expiry_year" binding:"required"`
	IsDefault   bool   `json:"is_default"`
}

// ListPaymentMethods handles GET /api/payment-methods
func (h *ProfileHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.methods.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	items := []paymentMethodResponse{}
	for _, pm := range methods {
		items = append(items, toPaymentMethodResponse(pm))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreatePaymentMethod handles POST /api/payment-methods. The card number is
// validated and discarded; only brand and last four are stored.
func (h *ProfileHandler) CreatePaymentMethod(c *gin.Context) {
	var req paymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	method, err := h.methods.Create(c.Request.Context(), currentUserID(c), service.NewPaymentMethod{
		CardNumber:  req.CardNumber,
		HolderName:  req.HolderName,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPaymentMethodResponse(*method))
}

// DeletePaymentMethod handles DELETE /api/payment-methods/:id
func (h *ProfileHandler) DeletePaymentMethod(c *gin.Context) {
	if err := h.methods.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetDefaultPaymentMethod handles POST /api/payment-methods/:id/default
func (h *ProfileHandler) SetDefaultPaymentMethod(c *gin.Context) {
	if err := h.methods.SetDefault(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
