package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"adaptlearn-service/internal/service"
)

type RecommendationHandler struct {
	Service *service.RecommendationService
}

func NewRecommendationHandler(s *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{Service: s}
}

func (h *RecommendationHandler) RecommendedQuizzes(c *gin.Context) {
	quizzes, err := h.Service.RecommendedQuizzes(context.Background(), currentUserID(c), limitParam(c, 5))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *RecommendationHandler) RecommendedContent(c *gin.Context) {
	content, err := h.Service.RecommendedContent(context.Background(), currentUserID(c), limitParam(c, 5))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}
