package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"adaptlearn-service/internal/service"
)

type ContentHandler struct {
	Service *service.ContentService
}

func NewContentHandler(s *service.ContentService) *ContentHandler {
	return &ContentHandler{Service: s}
}

type createContentRequest struct {
	Title       string `json:"title"`
	Text        string `json:"text" binding:"required"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
	Topic       string `json:"topic,omitempty"`
}

func (h *ContentHandler) CreateContent(c *gin.Context) {
	var req createContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	piece, err := h.Service.StoreContent(context.Background(), req.Title, req.Text, req.Description, req.Source, req.Topic)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, piece)
}

func (h *ContentHandler) GetContent(c *gin.Context) {
	piece, err := h.Service.GetContent(context.Background(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, piece)
}

type mapSkillsRequest struct {
	Skills map[string]float64 `json:"skills" binding:"required"`
}

// MapSkills stores the classifier's skill-relevance verdict for a
// content piece.
func (h *ContentHandler) MapSkills(c *gin.Context) {
	var req mapSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.MapContentSkills(context.Background(), c.Param("id"), req.Skills); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "skills mapped"})
}
