package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"battlesheep/experiments/metrics"
	"battlesheep/game"
)

// Remote is an Agent that asks an agent server for its turns.
type Remote struct {
	baseURL string
	depth   int
	client  *http.Client
}

// NewRemote returns an agent posting turns to the server at baseURL. A zero
// depth leaves the depth to the server.
func NewRemote(baseURL string, depth int) *Remote {
	return &Remote{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		depth:   depth,
		client:  &http.Client{Timeout: time.Minute},
	}
}

func (a *Remote) Decide(ctx context.Context, board game.Board, size game.Size, phase game.Phase, player game.Player) (Decision, metrics.SearchMetric, error) {
	payload := TurnRequest{
		BoardJSON: BoardJSON{Board: board, Width: size.Width, Height: size.Height},
		Phase:     EncodePhase(phase),
		Player:    int(player),
		Depth:     a.depth,
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return Decision{}, metrics.SearchMetric{}, fmt.Errorf("failed to encode turn request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/turn", bytes.NewReader(bodyBytes))
	if err != nil {
		return Decision{}, metrics.SearchMetric{}, fmt.Errorf("failed to create turn request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return Decision{}, metrics.SearchMetric{}, fmt.Errorf("failed to request turn: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
		if resp.StatusCode == http.StatusUnprocessableEntity {
			err = fmt.Errorf("%w: %w", game.ErrInvalidMove, err)
		}
		return Decision{}, metrics.SearchMetric{}, err
	}

	var turn TurnResponse
	if err := json.NewDecoder(resp.Body).Decode(&turn); err != nil {
		return Decision{}, metrics.SearchMetric{}, fmt.Errorf("failed to decode turn response: %w", err)
	}
	next, err := turn.Phase.Decode()
	if err != nil {
		return Decision{}, metrics.SearchMetric{}, err
	}
	if len(turn.Board) != len(board) {
		return Decision{}, metrics.SearchMetric{}, fmt.Errorf("agent returned %d cells, expected %d", len(turn.Board), len(board))
	}

	decision := Decision{Board: turn.Board, Phase: next, Moved: turn.Moved, Score: turn.Score}
	if !turn.Moved {
		decision.Board = board
	}
	return decision, turn.Metrics, nil
}
