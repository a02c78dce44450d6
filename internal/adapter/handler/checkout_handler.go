package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acruxa/storefront/internal/core/checkout"
	"github.com/acruxa/storefront/internal/core/service"
)

// CheckoutHandler drives the address -> payment -> confirm progression and
// the terminal place-order action. Session state is only read and mutated
// through the manager, which serializes concurrent requests per user.
type CheckoutHandler struct {
	sessions  *checkout.Manager
	orders    *service.OrderService
	addresses *service.AddressService
	methods   *service.PaymentMethodService
}

func NewCheckoutHandler(sessions *checkout.Manager, orders *service.OrderService,
	addresses *service.AddressService, methods *service.PaymentMethodService) *CheckoutHandler {
	return &CheckoutHandler{
		sessions:  sessions,
		orders:    orders,
		addresses: addresses,
		methods:   methods,
	}
}

type checkoutStateResponse struct {
	Step            string `json:"step"`
	AddressID       string `json:"address_id,omitempty"`
	PaymentType     string `json:"payment_type"`
	PaymentMethodID string `json:"payment_method_id,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

func toCheckoutState(s checkout.Session) checkoutStateResponse {
	return checkoutStateResponse{
		Step:            string(s.Step),
		AddressID:       s.AddressID,
		PaymentType:     string(s.PaymentType),
		PaymentMethodID: s.PaymentMethodID,
		Notes:           s.Notes,
	}
}

// GetState handles GET /api/checkout
func (h *CheckoutHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, toCheckoutState(h.sessions.Snapshot(currentUserID(c))))
}

type selectAddressRequest struct {
	AddressID string `json:"address_id" binding:"required"`
}

// SelectAddress handles POST /api/checkout/address
func (h *CheckoutHandler) SelectAddress(c *gin.Context) {
	var req selectAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	userID := currentUserID(c)
	if _, err := h.addresses.Get(c.Request.Context(), userID, req.AddressID); err != nil {
		respondError(c, err)
		return
	}

	state, _ := h.sessions.Update(userID, func(s *checkout.Session) error {
		s.SelectAddress(req.AddressID)
		return nil
	})
	c.JSON(http.StatusOK, toCheckoutState(state))
}

type selectPaymentRequest struct {
	PaymentType     string `json:"payment_type" binding:"required"`
	PaymentMethodID string `json:"payment_method_id"`
}

// SelectPayment handles POST /api/checkout/payment
func (h *CheckoutHandler) SelectPayment(c *gin.Context) {
	var req selectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	pt := checkout.PaymentType(req.PaymentType)
	if pt != checkout.PaymentCashOnDelivery && pt != checkout.PaymentCreditCard {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Unknown payment type",
		})
		return
	}

	userID := currentUserID(c)
	if pt == checkout.PaymentCreditCard && req.PaymentMethodID != "" {
		if _, err := h.methods.Get(c.Request.Context(), userID, req.PaymentMethodID); err != nil {
			respondError(c, err)
			return
		}
	}

	state, _ := h.sessions.Update(userID, func(s *checkout.Session) error {
		s.SelectPayment(pt, req.PaymentMethodID)
		return nil
	})
	c.JSON(http.StatusOK, toCheckoutState(state))
}

// Next handles POST /api/checkout/next
func (h *CheckoutHandler) Next(c *gin.Context) {
	state, err := h.sessions.Update(currentUserID(c), func(s *checkout.Session) error {
		return s.Next()
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCheckoutState(state))
}

// Back handles POST /api/checkout/back
func (h *CheckoutHandler) Back(c *gin.Context) {
	state, _ := h.sessions.Update(currentUserID(c), func(s *checkout.Session) error {
		s.Back()
		return nil
	})
	c.JSON(http.StatusOK, toCheckoutState(state))
}

// Abandon handles DELETE /api/checkout
func (h *CheckoutHandler) Abandon(c *gin.Context) {
	h.sessions.Discard(currentUserID(c))
	c.Status(http.StatusNoContent)
}

type placeOrderRequest struct {
	IdempotencyKey   string `json:"idempotency_key" binding:"required"`
	BillingAddressID string `json:"billing_address_id"`
	Notes            string `json:"notes"`
}

// PlaceOrder handles POST /api/checkout/place. The checkout session must sit
// at the confirm step; on success it is discarded.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	userID := currentUserID(c)
	state, err := h.sessions.Update(userID, func(s *checkout.Session) error {
		return s.ReadyToPlace()
	})
	if err != nil {
		respondError(c, err)
		return
	}

	billingAddressID := req.BillingAddressID
	if billingAddressID == "" {
		billingAddressID = state.AddressID
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), userID, service.PlaceOrderInput{
		IdempotencyKey:    req.IdempotencyKey,
		ShippingAddressID: state.AddressID,
		BillingAddressID:  billingAddressID,
		PaymentType:       state.PaymentType,
		PaymentMethodID:   state.PaymentMethodID,
		Notes:             req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.sessions.Discard(userID)
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}
