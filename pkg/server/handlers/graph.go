package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinegraph/cinegraph"
	"github.com/cinegraph/cinegraph/pkg/server/dto"
)

// filmSchema is the fixed ontology description returned with graph stats.
var filmSchema = dto.GraphSchema{
	NodeLabels: []string{"Film", "Serie", "Actor", "Director", "Genre"},
	Relationships: []string{
		"JOUE_DANS",
		"REALISE",
		"APPARTIENT_A_GENRE",
		"A_JOUÉ_AVEC",
	},
	Properties: map[string][]string{
		"Film":     {"id", "name", "year", "duration", "rating", "embedding"},
		"Serie":    {"id", "name", "seasons", "episodes", "rating", "embedding"},
		"Actor":    {"id", "name", "nationality", "born", "embedding"},
		"Director": {"id", "name", "nationality", "born", "embedding"},
		"Genre":    {"id", "name", "embedding"},
	},
}

// GraphHandler handles graph metadata requests.
type GraphHandler struct {
	agent cinegraph.Agent
}

// NewGraphHandler creates a new graph handler.
func NewGraphHandler(agent cinegraph.Agent) *GraphHandler {
	return &GraphHandler{agent: agent}
}

// GraphInfo handles GET /graph-info.
func (h *GraphHandler) GraphInfo(c *gin.Context) {
	stats, err := h.agent.GraphInfo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.GraphInfoResponse{
		NodeCount:         stats.NodeCount,
		RelationshipCount: stats.RelationshipCount,
		NodeTypes:         stats.NodeLabels,
		RelationshipTypes: stats.RelationshipTypes,
		Schema:            filmSchema,
	})
}
