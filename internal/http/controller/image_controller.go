package controller

import (
	"errors"
	"net/http"

	"github.com/acryfusion/storefront/internal/asset"
	"github.com/acryfusion/storefront/internal/service"
	"github.com/gin-gonic/gin"
)

// imageCacheControl keeps served images cacheable for a year. File ids are
// immutable, so a blob never changes under its URL.
const imageCacheControl = "public, max-age=31536000"

// ImageController handles HTTP requests for uploading and serving images.
type ImageController struct {
	catalogService *service.CatalogService
}

// NewImageController creates a new ImageController with the given catalog service.
func NewImageController(catalogService *service.CatalogService) *ImageController {
	return &ImageController{
		catalogService: catalogService,
	}
}

// Upload handles the HTTP POST request for uploading a product image. The
// request is multipart form data with a file part plus imagePath and
// productId fields.
func (ic *ImageController) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	imagePath := c.PostForm("imagePath")
	if imagePath == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imagePath is required"})
		return
	}
	productID := c.PostForm("productId")

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer file.Close()

	result, err := ic.catalogService.UploadImage(c.Request.Context(), service.UploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		ImagePath:   imagePath,
		ProductID:   productID,
		Content:     file,
	})
	if err != nil {
		if errors.Is(err, service.ErrMissingImagePath) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "imagePath is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Serve handles the HTTP GET request for streaming an image by file id.
func (ic *ImageController) Serve(c *gin.Context) {
	content, contentType, err := ic.catalogService.OpenImage(c.Request.Context(), c.Param("fileId"))
	if err != nil {
		if errors.Is(err, asset.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to serve image"})
		return
	}
	defer content.Close()

	c.Header("Cache-Control", imageCacheControl)
	// Length is unknown for streamed blobs, so let the server chunk it.
	c.DataFromReader(http.StatusOK, -1, contentType, content, nil)
}
