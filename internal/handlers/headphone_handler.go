package handlers

import (
	"net/http"

	"headphone_store_server/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HeadphoneHandler struct {
	headphoneService *services.HeadphoneService
	logger           *logrus.Logger
}

func NewHeadphoneHandler(headphoneService *services.HeadphoneService, logger *logrus.Logger) *HeadphoneHandler {
	return &HeadphoneHandler{
		headphoneService: headphoneService,
		logger:           logger,
	}
}

// CreateHeadphoneRequest represents the request payload for creating a
// headphone. Brand and type accept a slug, name or id.
type CreateHeadphoneRequest struct {
	Name      string `json:"name" binding:"required"`
	BrandSlug string `json:"brand_slug" binding:"required"`
	TypeSlug  string `json:"type_slug" binding:"required"`
	Price     int    `json:"price" binding:"gte=0"`
}

// UpdateHeadphoneRequest represents the full desired state for an update
type UpdateHeadphoneRequest struct {
	Name      string `json:"name"`
	BrandSlug string `json:"brand_slug"`
	TypeSlug  string `json:"type_slug"`
	Price     int    `json:"price" binding:"gte=0"`
}

// CreateHeadphonesBulkRequest represents the request payload for bulk
// creation. Brand and type are optional per item.
type CreateHeadphonesBulkRequest struct {
	Items []BulkHeadphoneItem `json:"items" binding:"required,min=1,dive"`
}

type BulkHeadphoneItem struct {
	Name      string `json:"name" binding:"required"`
	BrandSlug string `json:"brand_slug"`
	TypeSlug  string `json:"type_slug"`
	Price     int    `json:"price" binding:"gte=0"`
}

// ListHeadphones returns all headphones with brand and type joined
func (h *HeadphoneHandler) ListHeadphones(c *gin.Context) {
	headphones, err := h.headphoneService.List()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list headphones")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"headphones": headphones})
}

// GetHeadphoneBySlug retrieves a headphone by its slug
func (h *HeadphoneHandler) GetHeadphoneBySlug(c *gin.Context) {
	headphone, err := h.headphoneService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"headphone": headphone})
}

// GetHeadphoneByID retrieves a headphone by its id
func (h *HeadphoneHandler) GetHeadphoneByID(c *gin.Context) {
	headphone, err := h.headphoneService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"headphone": headphone})
}

// CreateHeadphone creates a new headphone
func (h *HeadphoneHandler) CreateHeadphone(c *gin.Context) {
	var req CreateHeadphoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	headphone, err := h.headphoneService.Create(services.HeadphoneInput{
		Name:     req.Name,
		BrandRef: req.BrandSlug,
		TypeRef:  req.TypeSlug,
		Price:    req.Price,
	})
	if err != nil {
		h.logger.WithError(err).WithField("name", req.Name).Warn("Failed to create headphone")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Headphone created successfully",
		"headphone": headphone,
	})
}

// CreateHeadphonesBulk creates several headphones in one atomic batch
func (h *HeadphoneHandler) CreateHeadphonesBulk(c *gin.Context) {
	var req CreateHeadphonesBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inputs := make([]services.HeadphoneInput, len(req.Items))
	for i, item := range req.Items {
		inputs[i] = services.HeadphoneInput{
			Name:     item.Name,
			BrandRef: item.BrandSlug,
			TypeRef:  item.TypeSlug,
			Price:    item.Price,
		}
	}

	created, itemErrs, err := h.headphoneService.CreateBulk(inputs)
	if err != nil {
		h.logger.WithError(err).Error("Failed to bulk create headphones")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"created": created,
		"errors":  itemErrs,
	})
}

// UpdateHeadphone overwrites a headphone with the supplied state
func (h *HeadphoneHandler) UpdateHeadphone(c *gin.Context) {
	var req UpdateHeadphoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := services.HeadphoneUpdate{
		Name:  req.Name,
		Price: req.Price,
	}
	if req.BrandSlug != "" {
		id, err := h.headphoneService.ResolveBrand(req.BrandSlug)
		if err != nil {
			respondError(c, err)
			return
		}
		update.BrandID = &id
	}
	if req.TypeSlug != "" {
		id, err := h.headphoneService.ResolveType(req.TypeSlug)
		if err != nil {
			respondError(c, err)
			return
		}
		update.TypeID = &id
	}

	headphone, err := h.headphoneService.Update(c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Headphone updated successfully",
		"headphone": headphone,
	})
}

// DeleteHeadphone removes a headphone
func (h *HeadphoneHandler) DeleteHeadphone(c *gin.Context) {
	headphone, err := h.headphoneService.Delete(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Headphone deleted successfully",
		"headphone": headphone,
	})
}
