package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"adaptlearn-service/internal/service"
)

type AttemptHandler struct {
	Service *service.AttemptService
}

func NewAttemptHandler(s *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{Service: s}
}

func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	state, err := h.Service.StartAttempt(context.Background(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

type answerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer"`
	TimeTaken  int    `json:"time_taken"`
}

func (h *AttemptHandler) AnswerQuestion(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, err := h.Service.AnswerQuestion(context.Background(), currentUserID(c), c.Param("id"), req.QuestionID, req.Answer, req.TimeTaken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

func (h *AttemptHandler) CompleteAttempt(c *gin.Context) {
	result, err := h.Service.CompleteAttempt(context.Background(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AttemptHandler) AttemptState(c *gin.Context) {
	state, err := h.Service.State(context.Background(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *AttemptHandler) AttemptResults(c *gin.Context) {
	result, err := h.Service.Results(context.Background(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AttemptHandler) MyAttempts(c *gin.Context) {
	attempts, err := h.Service.UserAttempts(context.Background(), currentUserID(c), limitParam(c, 20))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}
