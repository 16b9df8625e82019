package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"adaptlearn-service/internal/service"
)

type ProficiencyHandler struct {
	Service *service.ProficiencyService
}

func NewProficiencyHandler(s *service.ProficiencyService) *ProficiencyHandler {
	return &ProficiencyHandler{Service: s}
}

func (h *ProficiencyHandler) UserSkills(c *gin.Context) {
	skills, err := h.Service.UserSkills(context.Background(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

func (h *ProficiencyHandler) WeakestSkills(c *gin.Context) {
	skills, err := h.Service.Weakest(context.Background(), currentUserID(c), limitParam(c, 5))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

func (h *ProficiencyHandler) StrongestSkills(c *gin.Context) {
	skills, err := h.Service.Strongest(context.Background(), currentUserID(c), limitParam(c, 5))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

func limitParam(c *gin.Context, fallback int) int {
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
