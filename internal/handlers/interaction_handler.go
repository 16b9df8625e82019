package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"adaptlearn-service/internal/service"
)

type InteractionHandler struct {
	Service *service.InteractionService
}

func NewInteractionHandler(s *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{Service: s}
}

func (h *InteractionHandler) RecordInteraction(c *gin.Context) {
	var input service.RecordInteractionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interaction, err := h.Service.RecordInteraction(context.Background(), currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, interaction)
}

func (h *InteractionHandler) RecentInteractions(c *gin.Context) {
	interactions, err := h.Service.RecentInteractions(context.Background(), currentUserID(c), limitParam(c, 20))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interactions)
}

func (h *InteractionHandler) Progress(c *gin.Context) {
	stats, err := h.Service.Progress(context.Background(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
