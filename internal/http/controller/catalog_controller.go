package controller

import (
	"errors"
	"net/http"

	"github.com/acryfusion/storefront/internal/model"
	"github.com/acryfusion/storefront/internal/service"
	"github.com/acryfusion/storefront/internal/store"
	"github.com/gin-gonic/gin"
)

// CatalogController handles HTTP requests for catalog operations.
type CatalogController struct {
	catalogService *service.CatalogService
}

// NewCatalogController creates a new CatalogController with the given catalog service.
func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ProductRequest represents the request body for creating or updating a
// product. Every field is a raw table cell; numeric parsing happens during
// normalization, not here.
type ProductRequest struct {
	ProductName      string `json:"productName" binding:"required"`
	ProductTitle     string `json:"productTitle"`
	ProductDesc      string `json:"productDescription"`
	Details          string `json:"details"`
	Tags             string `json:"tags"`
	Pointers         string `json:"pointers"`
	Category         string `json:"category"`
	SpecsInfo        string `json:"specsInfo"`
	SpecsImagePath   string `json:"specsImagePath"`
	HowToVideoLink   string `json:"howToVideoLink"`
	VideoImagePath   string `json:"videoImagePath"`
	HowToSchematic   string `json:"howToSchematic"`
	SchematicImgPath string `json:"schematicImagePath"`
}

func (req ProductRequest) toRow() model.ProductRow {
	return model.ProductRow{
		ProductName:      req.ProductName,
		ProductTitle:     req.ProductTitle,
		ProductDesc:      req.ProductDesc,
		Details:          req.Details,
		Tags:             req.Tags,
		Pointers:         req.Pointers,
		Category:         req.Category,
		SpecsInfo:        req.SpecsInfo,
		SpecsImagePath:   req.SpecsImagePath,
		HowToVideoLink:   req.HowToVideoLink,
		VideoImagePath:   req.VideoImagePath,
		HowToSchematic:   req.HowToSchematic,
		SchematicImgPath: req.SchematicImgPath,
	}
}

// ListProducts handles the HTTP GET request for the full normalized catalog.
func (cc *CatalogController) ListProducts(c *gin.Context) {
	products, err := cc.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct handles the HTTP GET request for a single product by id.
func (cc *CatalogController) GetProduct(c *gin.Context) {
	product, err := cc.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// SearchProducts handles the HTTP GET request for searching the catalog.
func (cc *CatalogController) SearchProducts(c *gin.Context) {
	products, err := cc.catalogService.SearchProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// CreateProduct handles the HTTP POST request for creating a new product.
func (cc *CatalogController) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := cc.catalogService.CreateProduct(c.Request.Context(), req.toRow())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateProduct handles the HTTP PUT request for replacing a product by id.
func (cc *CatalogController) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := cc.catalogService.UpdateProduct(c.Request.Context(), c.Param("id"), req.toRow())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteProduct handles the HTTP DELETE request for deleting a product by id.
func (cc *CatalogController) DeleteProduct(c *gin.Context) {
	if err := cc.catalogService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted successfully"})
}
