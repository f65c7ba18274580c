package handlers

import (
	"net/http"

	"headphone_store_server/internal/chatbot"
	"headphone_store_server/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	bot              *chatbot.Bot
	chatService      *services.ChatService
	brandService     *services.BrandService
	typeService      *services.TypeService
	headphoneService *services.HeadphoneService
	logger           *logrus.Logger
}

// NewChatHandler wires the chat endpoints. bot may be nil when no AI
// endpoint is configured; /chat then answers 503 while the session and
// db-info endpoints keep working.
func NewChatHandler(
	bot *chatbot.Bot,
	chatService *services.ChatService,
	brandService *services.BrandService,
	typeService *services.TypeService,
	headphoneService *services.HeadphoneService,
	logger *logrus.Logger,
) *ChatHandler {
	return &ChatHandler{
		bot:              bot,
		chatService:      chatService,
		brandService:     brandService,
		typeService:      typeService,
		headphoneService: headphoneService,
		logger:           logger,
	}
}

// ChatRequest represents one user message against a chat session
type ChatRequest struct {
	Message      string `json:"message" binding:"required"`
	SessionID    string `json:"session_id"`
	SystemPrompt string `json:"system_prompt"`
}

// ChatResponse carries the assistant reply and the session it belongs to
type ChatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
}

// Chat routes one message through the assistant
func (h *ChatHandler) Chat(c *gin.Context) {
	if h.bot == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service not available"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, sessionID, err := h.bot.Chat(c.Request.Context(), req.Message, req.SessionID, req.SystemPrompt)
	if err != nil {
		h.logger.WithError(err).Error("Chat turn failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: reply, SessionID: sessionID})
}

// DatabaseInfo returns a catalog snapshot for client dashboards
func (h *ChatHandler) DatabaseInfo(c *gin.Context) {
	brands, err := h.brandService.List()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	types, err := h.typeService.List()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}
	headphones, err := h.headphoneService.List()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	brandNames := make([]string, len(brands))
	for i, b := range brands {
		brandNames[i] = b.Name
	}
	typeNames := make([]string, len(types))
	for i, t := range types {
		typeNames[i] = t.Name
	}
	products := make([]gin.H, len(headphones))
	for i, hp := range headphones {
		products[i] = gin.H{"name": hp.Name, "price": hp.Price}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"brands_count":   len(brands),
		"brands":         brandNames,
		"types_count":    len(types),
		"types":          typeNames,
		"products_count": len(headphones),
		"products":       products,
	})
}

// GetSession returns a session with its recent messages
func (h *ChatHandler) GetSession(c *gin.Context) {
	session, err := h.chatService.GetSessionWithMessages(c.Param("id"), 50)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// DeleteSession removes a session and its messages
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	deleted, err := h.chatService.DeleteSession(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to delete chat session")
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted successfully"})
}

// RecentSessions lists the most recently active sessions
func (h *ChatHandler) RecentSessions(c *gin.Context) {
	sessions, err := h.chatService.RecentSessions(20)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
