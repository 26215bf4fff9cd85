package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegraph/cinegraph/pkg/config"
	"github.com/cinegraph/cinegraph/pkg/driver"
	"github.com/cinegraph/cinegraph/pkg/server/dto"
	"github.com/cinegraph/cinegraph/pkg/types"
)

// stubAgent answers every query with a canned response.
type stubAgent struct {
	statsErr error
}

func (a *stubAgent) Ask(ctx context.Context, query string) (*types.AgentResponse, error) {
	return &types.AgentResponse{
		Response:     "Leonardo DiCaprio acted in Inception.",
		ToolsUsed:    []string{"graph_retrieval"},
		Steps:        []types.AgentStep{{Step: "tool_selection", Tools: []string{"graph_retrieval"}}},
		MessageCount: 5,
	}, nil
}

func (a *stubAgent) GraphInfo(ctx context.Context) (*driver.Stats, error) {
	if a.statsErr != nil {
		return nil, a.statsErr
	}
	return &driver.Stats{
		NodeCount:         12,
		RelationshipCount: 20,
		NodeLabels:        []string{"Film", "Actor"},
		RelationshipTypes: []string{"JOUE_DANS"},
		CollectedAt:       time.Now(),
	}, nil
}

func (a *stubAgent) Close(ctx context.Context) error { return nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	srv := New(cfg, &stubAgent{}, nil)
	srv.Setup()
	return srv
}

func TestAskEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body := strings.NewReader(`{"query": "Who acted in Inception?"}`)
	req := httptest.NewRequest(http.MethodPost, "/ask", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.AskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Response, "Leonardo DiCaprio")
	assert.Equal(t, []string{"graph_retrieval"}, resp.ToolsUsed)
	assert.Equal(t, 5, resp.MessageCount)
}

func TestAskEndpointRejectsMissingQuery(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGraphInfoEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/graph-info", nil)
	w := httptest.NewRecorder()

	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.GraphInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.NodeCount)
	assert.Contains(t, resp.Schema.NodeLabels, "Director")
	assert.Contains(t, resp.Schema.Relationships, "JOUE_DANS")
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestRequestsAreTaggedWithQueryID(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Router().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Query-ID"))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/ask", nil)
	w := httptest.NewRecorder()

	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
