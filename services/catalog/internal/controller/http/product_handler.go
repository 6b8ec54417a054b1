package http

import (
	"net/http"
	"strconv"

	"myshop/pkg/logger"
	"myshop/services/catalog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productUseCase usecase.ProductUseCase
	logger         *logger.Logger
}

func NewProductHandler(productUseCase usecase.ProductUseCase, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		logger:         logger,
	}
}

type ProductForm struct {
	Title       string  `form:"title" binding:"required"`
	Description string  `form:"description"`
	Price       float64 `form:"price" binding:"required,gt=0"`
	Discount    float64 `form:"discount" binding:"gte=0,lt=100"`
	Stock       int     `form:"stock" binding:"gte=0"`
}

// CreateProduct godoc
// @Summary      Create a product
// @Description  Admin-only. Create a product with an optional image uploaded as multipart form data.
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Product title"
// @Param        description formData string false "Product description"
// @Param        price formData number true "List price"
// @Param        discount formData number false "Discount percentage"
// @Param        stock formData int false "Units in stock"
// @Param        image formData file false "Product image"
// @Success      201  {object}  entity.Product
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Image is optional
	imageFile, _ := c.FormFile("image")

	product, err := h.productUseCase.CreateProduct(usecase.ProductInput{
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
		Discount:    form.Discount,
		Stock:       form.Stock,
	}, imageFile)
	if err != nil {
		h.logger.Error("Failed to create product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct godoc
// @Summary      Update a product
// @Description  Admin-only. Replace a product's fields; a new image replaces the old one.
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path string true "Product ID"
// @Success      200  {object}  entity.Product
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/{product_id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID := c.Param("product_id")

	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imageFile, _ := c.FormFile("image")

	product, err := h.productUseCase.UpdateProduct(productID, usecase.ProductInput{
		Title:       form.Title,
		Description: form.Description,
		Price:       form.Price,
		Discount:    form.Discount,
		Stock:       form.Stock,
	}, imageFile)
	if err != nil {
		if err.Error() == "product not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

// ArchiveProduct godoc
// @Summary      Archive a product
// @Description  Admin-only. Hide a product from the storefront without touching order history.
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path string true "Product ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/{product_id} [delete]
func (h *ProductHandler) ArchiveProduct(c *gin.Context) {
	productID := c.Param("product_id")

	if err := h.productUseCase.ArchiveProduct(productID); err != nil {
		if err.Error() == "product not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product archived"})
}

// ListProducts godoc
// @Summary      List products
// @Description  List live products with optional text search; admins may include archived items
// @Tags         products
// @Produce      json
// @Param        search query string false "Search in title and description"
// @Param        limit query int false "Number of products to return (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 && parsedLimit <= 100 {
			limit = parsedLimit
		}
	}

	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 0 {
			offset = parsedOffset
		}
	}

	// Only admins see archived products
	includeArchived := c.Query("include_archived") == "true" && c.GetString("role") == "admin"

	products, total, err := h.productUseCase.ListProducts(c.Query("search"), includeArchived, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
		"total":    total,
		"offset":   offset,
	})
}

// GetProduct godoc
// @Summary      Get a product
// @Description  Get a single product by ID
// @Tags         products
// @Produce      json
// @Param        product_id path string true "Product ID"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  map[string]string
// @Router       /products/{product_id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productUseCase.GetProduct(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}
