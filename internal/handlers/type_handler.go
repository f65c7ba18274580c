package handlers

import (
	"net/http"

	"headphone_store_server/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type TypeHandler struct {
	typeService *services.TypeService
	logger      *logrus.Logger
}

func NewTypeHandler(typeService *services.TypeService, logger *logrus.Logger) *TypeHandler {
	return &TypeHandler{
		typeService: typeService,
		logger:      logger,
	}
}

// CreateTypeRequest represents the request payload for creating a type
type CreateTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateTypeRequest represents the request payload for renaming a type
type UpdateTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTypesBulkRequest represents the request payload for bulk creation
type CreateTypesBulkRequest struct {
	Items []CreateTypeRequest `json:"items" binding:"required,min=1,dive"`
}

// ListTypes returns all product types
func (h *TypeHandler) ListTypes(c *gin.Context) {
	types, err := h.typeService.List()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list types")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"types": types})
}

// GetTypeBySlug retrieves a type by its slug
func (h *TypeHandler) GetTypeBySlug(c *gin.Context) {
	t, err := h.typeService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": t})
}

// GetTypeByID retrieves a type by its id
func (h *TypeHandler) GetTypeByID(c *gin.Context) {
	t, err := h.typeService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": t})
}

// CreateType creates a new product type
func (h *TypeHandler) CreateType(c *gin.Context) {
	var req CreateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.typeService.Create(req.Name)
	if err != nil {
		h.logger.WithError(err).WithField("name", req.Name).Warn("Failed to create type")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Type created successfully",
		"type":    t,
	})
}

// CreateTypesBulk creates several types in one atomic batch
func (h *TypeHandler) CreateTypesBulk(c *gin.Context) {
	var req CreateTypesBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	names := make([]string, len(req.Items))
	for i, item := range req.Items {
		names[i] = item.Name
	}

	created, itemErrs, err := h.typeService.CreateBulk(names)
	if err != nil {
		h.logger.WithError(err).Error("Failed to bulk create types")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"created": created,
		"errors":  itemErrs,
	})
}

// UpdateType renames a product type
func (h *TypeHandler) UpdateType(c *gin.Context) {
	var req UpdateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.typeService.Update(c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Type updated successfully",
		"type":    t,
	})
}

// DeleteType removes a product type
func (h *TypeHandler) DeleteType(c *gin.Context) {
	t, err := h.typeService.Delete(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Type deleted successfully",
		"type":    t,
	})
}
