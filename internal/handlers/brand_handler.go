package handlers

import (
	"net/http"

	"headphone_store_server/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type BrandHandler struct {
	brandService *services.BrandService
	logger       *logrus.Logger
}

func NewBrandHandler(brandService *services.BrandService, logger *logrus.Logger) *BrandHandler {
	return &BrandHandler{
		brandService: brandService,
		logger:       logger,
	}
}

// CreateBrandRequest represents the request payload for creating a brand
type CreateBrandRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateBrandRequest represents the request payload for renaming a brand
type UpdateBrandRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateBrandsBulkRequest represents the request payload for bulk creation
type CreateBrandsBulkRequest struct {
	Items []CreateBrandRequest `json:"items" binding:"required,min=1,dive"`
}

// ListBrands returns all brands
func (h *BrandHandler) ListBrands(c *gin.Context) {
	brands, err := h.brandService.List()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list brands")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// GetBrandBySlug retrieves a brand by its slug
func (h *BrandHandler) GetBrandBySlug(c *gin.Context) {
	brand, err := h.brandService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brand": brand})
}

// GetBrandByID retrieves a brand by its id
func (h *BrandHandler) GetBrandByID(c *gin.Context) {
	brand, err := h.brandService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brand": brand})
}

// CreateBrand creates a new brand
func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var req CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand, err := h.brandService.Create(req.Name)
	if err != nil {
		h.logger.WithError(err).WithField("name", req.Name).Warn("Failed to create brand")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Brand created successfully",
		"brand":   brand,
	})
}

// CreateBrandsBulk creates several brands in one atomic batch
func (h *BrandHandler) CreateBrandsBulk(c *gin.Context) {
	var req CreateBrandsBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	names := make([]string, len(req.Items))
	for i, item := range req.Items {
		names[i] = item.Name
	}

	created, itemErrs, err := h.brandService.CreateBulk(names)
	if err != nil {
		h.logger.WithError(err).Error("Failed to bulk create brands")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"created": created,
		"errors":  itemErrs,
	})
}

// UpdateBrand renames a brand
func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	var req UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand, err := h.brandService.Update(c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Brand updated successfully",
		"brand":   brand,
	})
}

// DeleteBrand removes a brand
func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	brand, err := h.brandService.Delete(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Brand deleted successfully",
		"brand":   brand,
	})
}
