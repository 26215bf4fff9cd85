// Package handlers implements the HTTP endpoint handlers. Every handler is a
// thin adapter over the Agent interface; no retrieval or orchestration logic
// lives here.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinegraph/cinegraph"
	"github.com/cinegraph/cinegraph/pkg/server/dto"
)

// AskHandler handles question-answering requests.
type AskHandler struct {
	agent cinegraph.Agent
}

// NewAskHandler creates a new ask handler.
func NewAskHandler(agent cinegraph.Agent) *AskHandler {
	return &AskHandler{agent: agent}
}

// Ask handles POST /ask.
func (h *AskHandler) Ask(c *gin.Context) {
	var req dto.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "query is required"})
		return
	}

	resp, err := h.agent.Ask(c.Request.Context(), req.Query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.AskResponse{
		Response:     resp.Response,
		ToolsUsed:    resp.ToolsUsed,
		Steps:        resp.Steps,
		MessageCount: resp.MessageCount,
	})
}
