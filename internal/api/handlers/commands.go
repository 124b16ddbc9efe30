package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/archimago/internal/commands"
)

type CommandHandler struct {
	registry *commands.Registry
}

func NewCommandHandler(registry *commands.Registry) *CommandHandler {
	return &CommandHandler{registry: registry}
}

// CommandRequest is a chat message to answer.
type CommandRequest struct {
	Content string `json:"content" binding:"required"`
	Private bool   `json:"private"`
}

// RunCommand answers a chat message the way the bot would.
func (h *CommandHandler) RunCommand(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	replies := h.registry.HandleMessage(c.Request.Context(), req.Content, req.Private)
	if replies == nil {
		replies = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"replies": replies})
}
