package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/searcher/agent"
)

// RemoteAgent plays an agent index by asking an agent server. It follows the
// game through Update, so it must be handed to the engine that plays the game.
type RemoteAgent struct {
	url        string
	client     *http.Client
	index      int
	depth      int
	searchSeed uint64

	layout   string
	pursuers int
	seed     uint64
	settings game.Settings
	history  []game.Move
}

// NewRemoteAgent creates an agent for index in the game starting at initial.
func NewRemoteAgent(url string, index, depth int, searchSeed uint64, initial *game.GameState) *RemoteAgent {
	return &RemoteAgent{
		url:        strings.TrimSuffix(url, "/"),
		client:     http.DefaultClient,
		index:      index,
		depth:      depth,
		searchSeed: searchSeed,
		layout:     initial.Layout().Text(),
		pursuers:   initial.NumAgents() - game.FirstPursuer,
		seed:       initial.Rules().Seed(),
		settings:   initial.Rules().Settings(),
	}
}

func (a *RemoteAgent) Index() int { return a.index }

func (a *RemoteAgent) Update(move game.Move) {
	a.history = append(a.history, move)
}

// GetAction posts the game so far to /choose on the agent server.
func (a *RemoteAgent) GetAction(ctx context.Context, state *game.GameState) (game.Direction, metrics.SearchMetric, error) {
	metric := metrics.SearchMetric{Agent: a.index, Depth: a.depth}
	payload := agent.ChooseRequest{
		Layout:     a.layout,
		Pursuers:   a.pursuers,
		Seed:       a.seed,
		Settings:   &a.settings,
		History:    a.history,
		Agent:      a.index,
		Depth:      a.depth,
		SearchSeed: a.searchSeed + uint64(len(a.history)),
	}

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return game.None, metric, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url+"/choose", bytes.NewReader(bodyBytes))
	if err != nil {
		return game.None, metric, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.client.Do(req)
	if err != nil {
		return game.None, metric, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.None, metric, fmt.Errorf("agent server returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var choice agent.ChooseResponse
	if err := json.NewDecoder(resp.Body).Decode(&choice); err != nil {
		return game.None, metric, err
	}
	metric.Nodes = choice.Nodes
	return choice.Action, metric, nil
}
