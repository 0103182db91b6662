package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/server/handlers"
)

// Handlers groups the HTTP adapters the router wires up.
type Handlers struct {
	Inventory *handlers.InventoryHandler
	Order     *handlers.OrderHandler
	Receipt   *handlers.ReceiptHandler
	Meta      *handlers.MetaHandler
	Report    *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")

	inventory := api.Group("/inventory")
	inventory.GET("", h.Inventory.List)
	inventory.POST("", h.Inventory.Create)
	inventory.GET("/:id", h.Inventory.Get)
	inventory.PUT("/:id", h.Inventory.Update)
	inventory.DELETE("/:id", h.Inventory.Delete)

	order := api.Group("/order")
	order.GET("", h.Order.List)
	order.POST("", h.Order.Create)
	order.GET("/:id", h.Order.Get)
	order.PUT("/:id", h.Order.Update)
	order.PATCH("/:id/status", h.Order.UpdateStatus)
	order.DELETE("/:id", h.Order.Delete)
	order.GET("/:id/remaining", h.Order.Remaining)
	order.POST("/:id/receipt", h.Order.Receive)

	receipt := api.Group("/receipt")
	receipt.GET("", h.Receipt.List)
	receipt.POST("", h.Receipt.Create)
	receipt.GET("/:id", h.Receipt.Get)
	receipt.DELETE("/:id", h.Receipt.Delete)

	metaGroup := api.Group("/meta")
	metaGroup.GET("", h.Meta.Get)
	metaGroup.PUT("", h.Meta.Replace)
	metaGroup.GET("/units", h.Meta.Units)
	metaGroup.GET("/categories", h.Meta.Categories)

	report := api.Group("/report")
	report.GET("/weekly", h.Report.Weekly)
	report.POST("/weekly/run", h.Report.Run)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
			zap.String("client_ip", c.ClientIP()))
	}
}
