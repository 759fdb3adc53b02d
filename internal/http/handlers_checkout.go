package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mokha/internal/domain"
	"mokha/internal/metrics"
	"mokha/internal/service"
)

type quoteReq struct {
	Items            []service.CartLine `json:"items"`
	ShippingMethodID string             `json:"shippingMethodId"`
	RedeemPoints     bool               `json:"redeemPoints"`
	CustomerID       *int64             `json:"customerId,omitempty"`
}

// @Summary Price a candidate cart
// @Tags checkout
// @Accept json
// @Produce json
// @Param input body quoteReq true "Cart"
// @Success 200 {object} service.QuoteResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /checkout/quote [post]
func (s *Server) quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	result, err := s.svc.Checkout.Quote(c, req.Items, req.ShippingMethodID, req.RedeemPoints, req.CustomerID)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

type placeOrderReq struct {
	Items            []service.CartLine  `json:"items"`
	ShippingInfo     domain.ShippingInfo `json:"shippingInfo"`
	ShippingMethodID string              `json:"shippingMethodId"`
	PaymentMethod    string              `json:"paymentMethod"`
	RedeemPoints     bool                `json:"redeemPoints"`
	CustomerID       *int64              `json:"customerId,omitempty"`
}

// @Summary Place an order
// @Tags checkout
// @Accept json
// @Produce json
// @Param input body placeOrderReq true "Checkout"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /checkout/orders [post]
func (s *Server) placeOrder(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	order, err := s.svc.Checkout.PlaceOrder(c, req.Items, req.ShippingInfo, req.ShippingMethodID, req.PaymentMethod, req.RedeemPoints, req.CustomerID)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	metrics.OrderPlaced()
	c.JSON(http.StatusCreated, order)
}
