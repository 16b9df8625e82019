package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"adaptlearn-service/internal/service"
)

type PathHandler struct {
	Service *service.PathService
}

func NewPathHandler(s *service.PathService) *PathHandler {
	return &PathHandler{Service: s}
}

func (h *PathHandler) CreatePath(c *gin.Context) {
	var input service.CreatePathInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	path, err := h.Service.CreatePath(context.Background(), currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, path)
}

func (h *PathHandler) MyPaths(c *gin.Context) {
	paths, err := h.Service.UserPaths(context.Background(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paths)
}

func (h *PathHandler) GetPath(c *gin.Context) {
	path, err := h.Service.GetPath(context.Background(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, path)
}
