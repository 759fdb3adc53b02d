package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"mokha/internal/auth"
	"mokha/internal/catalog"
	"mokha/internal/logger"
	"mokha/internal/metrics"
	"mokha/internal/repository"
	"mokha/internal/service"
	"mokha/internal/stock"
)

// Services bundles everything the HTTP surface exposes.
type Services struct {
	Checkout  *service.CheckoutService
	Catalog   *service.CatalogService
	Orders    *service.OrderService
	Customers *service.CustomerService
	Employees *service.EmployeeService
	Settings  *service.SettingsService
	Reports   *service.ReportService
	Backup    *service.BackupService
}

type Server struct {
	engine *gin.Engine
	svc    Services
	admin  *auth.Admin
	log    *zap.Logger
}

func NewServer(svc Services, admin *auth.Admin, log *zap.Logger) *Server {
	r := gin.New()
	r.Use(requestID(), logger.Middleware(log), metrics.Middleware(), gin.Recovery())
	s := &Server{engine: r, svc: svc, admin: admin, log: log}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) registerRoutes() {
	// Swagger UI and operational endpoints
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	s.engine.GET("/metrics", metrics.Handler())

	v1 := s.engine.Group("/api/v1")
	{
		products := v1.Group("/products")
		products.GET("", s.listProducts)
		products.GET(":id", s.getProduct)
		products.GET("/export", s.exportProducts)

		checkout := v1.Group("/checkout")
		checkout.POST("/quote", s.quote)
		checkout.POST("/orders", s.placeOrder)

		v1.GET("/categories", s.listCategories)
		v1.GET("/orders/:id", s.getOrder)

		customers := v1.Group("/customers")
		customers.POST("/register", s.registerCustomer)
		customers.POST("/login", s.loginCustomer)
		customers.GET(":id", s.getCustomer)
		customers.GET(":id/orders", s.listCustomerOrders)

		v1.POST("/admin/login", s.adminLogin)

		admin := v1.Group("/admin", s.admin.Middleware())
		{
			admin.POST("/products", s.createProduct)
			admin.PUT("/products/:id", s.updateProduct)
			admin.DELETE("/products/:id", s.deleteProduct)
			admin.POST("/products/:id/favorite", s.toggleFavorite)
			admin.POST("/products/bulk-stock", s.bulkStockUpdate)
			admin.POST("/products/bulk-delete", s.bulkDelete)
			admin.POST("/products/import", s.importProducts)

			admin.GET("/orders", s.listOrders)
			admin.PATCH("/orders/:id/status", s.updateOrderStatus)

			admin.GET("/customers", s.listCustomers)
			admin.GET("/notifications/low-stock", s.lowStock)

			admin.GET("/employees", s.listEmployees)
			admin.POST("/employees", s.createEmployee)
			admin.PUT("/employees/:id", s.updateEmployee)
			admin.DELETE("/employees/:id", s.deleteEmployee)

			admin.GET("/settings", s.getSettings)
			admin.PUT("/settings", s.updateSettings)

			admin.GET("/reports/inventory", s.inventoryReport)

			admin.GET("/backup", s.downloadBackup)
			admin.POST("/backup/restore", s.restoreBackup)
		}
	}
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func mapErrorToStatus(err error) int {
	switch err {
	case service.ErrInvalidInput, service.ErrEmptyCart, service.ErrShippingRequired, service.ErrInvalidBackup:
		return http.StatusBadRequest
	case catalog.ErrEmptyFile, catalog.ErrBadHeader, catalog.ErrNoNewRows:
		return http.StatusBadRequest
	case service.ErrInvalidCredentials:
		return http.StatusUnauthorized
	case repository.ErrNotFound:
		return http.StatusNotFound
	case service.ErrInvalidState, service.ErrMethodUnavailable, service.ErrEmailTaken, repository.ErrDuplicate:
		return http.StatusConflict
	case stock.ErrUnknownProduct, stock.ErrUnknownVariant, stock.ErrInsufficient:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
