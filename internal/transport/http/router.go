package http

import (
	"loja-backend/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Services struct {
	Auth      service.AuthService
	Customers service.CustomerService
	Orders    service.OrderService
	Tokens    service.TokenProvider
}

func Router(svc Services, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authHandler := NewAuthHandler(svc.Auth, log)
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	protected := r.Group("/", AuthRequired(svc.Tokens, log))

	customerHandler := NewCustomerHandler(svc.Customers, log)
	protected.POST("/customers", customerHandler.Create)
	protected.GET("/customers", customerHandler.List)
	protected.GET("/customers/:id", customerHandler.GetOne)
	protected.PUT("/customers/:id", customerHandler.Update)
	protected.DELETE("/customers/:id", customerHandler.Delete)

	orderHandler := NewOrderHandler(svc.Orders, log)
	protected.POST("/orders", orderHandler.Create)
	protected.GET("/orders", orderHandler.List)
	protected.GET("/orders/:id", orderHandler.GetOne)
	protected.PUT("/orders/:id", orderHandler.Update)
	protected.PUT("/orders/:id/pay-installment", orderHandler.PayInstallment)
	protected.DELETE("/orders/:id", orderHandler.Delete)

	return r
}
