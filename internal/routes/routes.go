package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wholesale-catalog/internal/handlers"
)

type crudRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func RegisterRoutes(router *gin.Engine, h *handlers.Set, uploadDir string) {
	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Static("/static", uploadDir)
	router.POST("/upload", h.Upload.Upload)

	mount(router.Group("/products"), h.Products)
	router.GET("/products/:id/quote", h.Products.Quote)

	mount(router.Group("/brands"), h.Brands)
	mount(router.Group("/categories"), h.Categories)
	mount(router.Group("/stores"), h.Stores)
	mount(router.Group("/warehouses"), h.Warehouses)
	mount(router.Group("/users"), h.Users)
	mount(router.Group("/files"), h.Files)
}

func mount(g *gin.RouterGroup, h crudRoutes) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
