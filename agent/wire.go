package agent

import (
	"fmt"

	"battlesheep/experiments/metrics"
	"battlesheep/game"
)

const (
	phaseSelectingStart = "selectingStart"
	phasePlaying        = "playing"

	outcomeUndecided = "undecided"
	outcomeTie       = "tie"
	outcomeWinner    = "winner"
)

// PhaseJSON is the wire form of game.Phase.
type PhaseJSON struct {
	Kind       string `json:"kind"`
	StartTiles []int  `json:"startTiles,omitempty"`
	Players    int    `json:"players,omitempty"`
}

func EncodePhase(phase game.Phase) PhaseJSON {
	switch phase := phase.(type) {
	case game.SelectingStart:
		return PhaseJSON{Kind: phaseSelectingStart, StartTiles: phase.StartTiles, Players: phase.Players}
	case game.Playing:
		return PhaseJSON{Kind: phasePlaying}
	default:
		panic(fmt.Sprintf("Unexpected phase type %T", phase))
	}
}

func (p PhaseJSON) Decode() (game.Phase, error) {
	switch p.Kind {
	case phaseSelectingStart:
		players := p.Players
		if players == 0 {
			players = game.NumPlayers
		}
		return game.SelectingStart{StartTiles: p.StartTiles, Players: players}, nil
	case phasePlaying:
		return game.Playing{}, nil
	default:
		return nil, fmt.Errorf("unknown phase %q", p.Kind)
	}
}

// OutcomeJSON is the wire form of game.Outcome.
type OutcomeJSON struct {
	Kind   string `json:"kind"`
	Winner *int   `json:"winner,omitempty"`
}

func EncodeOutcome(outcome game.Outcome) OutcomeJSON {
	switch outcome := outcome.(type) {
	case game.Undecided:
		return OutcomeJSON{Kind: outcomeUndecided}
	case game.Tie:
		return OutcomeJSON{Kind: outcomeTie}
	case game.Winner:
		winner := int(outcome.Player)
		return OutcomeJSON{Kind: outcomeWinner, Winner: &winner}
	default:
		panic(fmt.Sprintf("Unexpected outcome type %T", outcome))
	}
}

// BoardJSON carries a board with its dimensions.
type BoardJSON struct {
	Board  []int `json:"board"`
	Width  int   `json:"width"`
	Height int   `json:"height"`
}

func (b BoardJSON) Size() game.Size {
	return game.Size{Width: b.Width, Height: b.Height}
}

func (b BoardJSON) validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", b.Width, b.Height)
	}
	if !b.Size().Fits(len(b.Board)) {
		return fmt.Errorf("board has %d cells, expected %dx%d", len(b.Board), b.Width, b.Height)
	}
	return nil
}

type LevelResponse struct {
	Name string `json:"name"`
	BoardJSON
	Phase PhaseJSON `json:"phase"`
}

type MovesRequest struct {
	BoardJSON
	Origin int `json:"origin"`
}

type MovesResponse struct {
	Destinations []int `json:"destinations"`
}

type ApplyRequest struct {
	BoardJSON
	From   int `json:"from"`
	To     int `json:"to"`
	Amount int `json:"amount"`
	Player int `json:"player"`
}

type PlaceRequest struct {
	BoardJSON
	Tile   int `json:"tile"`
	Amount int `json:"amount"`
	Player int `json:"player"`
}

type BoardResponse struct {
	Board []int `json:"board"`
}

type TurnRequest struct {
	BoardJSON
	Phase  PhaseJSON `json:"phase"`
	Player int       `json:"player"`
	Depth  int       `json:"depth,omitempty"` // Zero selects the default depth
}

type TurnResponse struct {
	Board   []int                `json:"board"`
	Phase   PhaseJSON            `json:"phase"`
	Moved   bool                 `json:"moved"`
	Score   int                  `json:"score"`
	Metrics metrics.SearchMetric `json:"metrics"`
}

type OutcomeRequest struct {
	BoardJSON
}

type OutcomeResponse struct {
	Outcome OutcomeJSON `json:"outcome"`
	Tiles   []int       `json:"tiles"` // Controlled tiles per player
}

type ErrorResponse struct {
	Error string `json:"error"`
}
