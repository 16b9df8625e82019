package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"adaptlearn-service/internal/service"
)

type SkillHandler struct {
	Service *service.SkillService
}

func NewSkillHandler(s *service.SkillService) *SkillHandler {
	return &SkillHandler{Service: s}
}

func (h *SkillHandler) ListSkills(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		skills, err := h.Service.GetSkillsByCategory(context.Background(), category)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, skills)
		return
	}

	skills, err := h.Service.GetAllSkills(context.Background())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

func (h *SkillHandler) GetSkill(c *gin.Context) {
	skill, err := h.Service.GetSkillByID(context.Background(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skill)
}
