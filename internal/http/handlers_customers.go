package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mokha/internal/domain"
)

// customerView is the public shape of an account: no password hash.
type customerView struct {
	ID            int64                `json:"id"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	ShippingInfo  *domain.ShippingInfo `json:"shippingInfo,omitempty"`
	LoyaltyPoints int64                `json:"loyaltyPoints"`
}

func toCustomerView(c *domain.Customer) customerView {
	return customerView{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		ShippingInfo:  c.ShippingInfo,
		LoyaltyPoints: c.LoyaltyPoints,
	}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Register a customer account
// @Tags customers
// @Accept json
// @Produce json
// @Param input body registerReq true "Account"
// @Success 201 {object} customerView
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /customers/register [post]
func (s *Server) registerCustomer(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	customer, err := s.svc.Customers.Register(c, req.Name, req.Email, req.Password)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toCustomerView(customer))
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Customer login
// @Tags customers
// @Accept json
// @Produce json
// @Param input body loginReq true "Credentials"
// @Success 200 {object} customerView
// @Failure 401 {object} map[string]string
// @Router /customers/login [post]
func (s *Server) loginCustomer(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	customer, err := s.svc.Customers.Login(c, req.Email, req.Password)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toCustomerView(customer))
}

// @Summary Get customer by id
// @Tags customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} customerView
// @Failure 404 {object} map[string]string
// @Router /customers/{id} [get]
func (s *Server) getCustomer(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	customer, err := s.svc.Customers.GetByID(c, id)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toCustomerView(customer))
}

// @Summary List customers
// @Tags customers
// @Produce json
// @Success 200 {array} customerView
// @Security BearerAuth
// @Router /admin/customers [get]
func (s *Server) listCustomers(c *gin.Context) {
	customers, err := s.svc.Customers.List(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	views := make([]customerView, len(customers))
	for i := range customers {
		views[i] = toCustomerView(&customers[i])
	}
	c.JSON(http.StatusOK, views)
}
