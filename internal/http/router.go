package http

import (
	"github.com/acryfusion/storefront/internal/config"
	"github.com/acryfusion/storefront/internal/http/controller"
	"github.com/acryfusion/storefront/internal/http/middleware"
	"github.com/gin-gonic/gin"
)

// InitRouter wires all storefront endpoints onto the given engine.
func InitRouter(
	_ *config.Config,
	server *gin.Engine,
	ctr *controller.Controller,
	catalogCtr *controller.CatalogController,
	imageCtr *controller.ImageController,
	cartCtr *controller.CartController,
) *gin.Engine {
	// Apply recovery middleware globally to prevent panics from crashing the server
	server.Use(middleware.Recovery())
	server.Use(middleware.CORS())
	server.Use(middleware.Logger())

	server.GET("/ping", ctr.Ping)

	// Catalog endpoints
	products := server.Group("/products")
	{
		products.GET("", catalogCtr.ListProducts)
		products.GET("/search", catalogCtr.SearchProducts)
		products.GET("/:id", catalogCtr.GetProduct)
		products.POST("", catalogCtr.CreateProduct)
		products.PUT("/:id", catalogCtr.UpdateProduct)
		products.DELETE("/:id", catalogCtr.DeleteProduct)
	}

	// Image endpoints
	api := server.Group("/api")
	{
		api.POST("/upload", imageCtr.Upload)
		api.GET("/images/:fileId", imageCtr.Serve)
	}

	// Cart endpoints, keyed by the X-Session-ID header
	cartGroup := server.Group("/cart")
	{
		cartGroup.GET("", cartCtr.GetCart)
		cartGroup.POST("/items", cartCtr.AddItem)
		cartGroup.DELETE("/items", cartCtr.RemoveItem)
		cartGroup.PUT("/items/quantity", cartCtr.SetQuantity)
		cartGroup.POST("/clear", cartCtr.ClearCart)
	}

	return server
}
