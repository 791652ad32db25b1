package game

import (
	"errors"
	"fmt"

	"github.com/aaronzipp/pig-dice/internal/dice"
)

// ErrInvalidOperation is returned when Roll or Hold is called after the match is won
var ErrInvalidOperation = errors.New("invalid operation")

// OutcomeSelector produces die outcomes for a match
type OutcomeSelector interface {
	Select() dice.Outcome
}

// RollResult is the notification sent after a roll
type RollResult struct {
	State        MatchState        `json:"state"`
	Face         int               `json:"face"`
	Presentation dice.Presentation `json:"presentation"`
	Bust         bool              `json:"bust"`
}

// HoldResult is the notification sent after a hold
type HoldResult struct {
	State   MatchState `json:"state"`
	JustWon bool       `json:"justWon"`
}

// NewGameResult is the notification sent after a reset
type NewGameResult struct {
	State MatchState `json:"state"`
}

// Match owns one MatchState and is the only way to change it.
// Calls complete synchronously; a Match is not safe for concurrent use.
type Match struct {
	state    MatchState
	selector OutcomeSelector
}

// NewMatch starts a match that draws its rolls from sel
func NewMatch(sel OutcomeSelector) *Match {
	return &Match{state: NewMatchState(), selector: sel}
}

// State returns a copy of the current state
func (m *Match) State() MatchState {
	return m.state
}

// Roll throws the die for the active player. A 1 wipes the running score and
// passes the turn; anything else is added to the running score.
func (m *Match) Roll() (RollResult, error) {
	if !m.state.Status.InProgress() {
		return RollResult{}, fmt.Errorf("roll: match already won by %s: %w", m.state.Status.Winner, ErrInvalidOperation)
	}

	outcome := m.selector.Select()
	p := m.state.ActivePlayer
	bust := outcome.Value == BustFace
	if bust {
		m.state.Players[p].CurrentScore = 0
		m.state.ActivePlayer = p.Other()
	} else {
		m.state.Players[p].CurrentScore += outcome.Value
	}

	return RollResult{
		State:        m.state,
		Face:         outcome.Value,
		Presentation: outcome.Presentation,
		Bust:         bust,
	}, nil
}

// Hold banks the active player's running score. Reaching WinThreshold ends
// the match with the turn left on the winner; otherwise the turn passes.
func (m *Match) Hold() (HoldResult, error) {
	if !m.state.Status.InProgress() {
		return HoldResult{}, fmt.Errorf("hold: match already won by %s: %w", m.state.Status.Winner, ErrInvalidOperation)
	}

	p := m.state.ActivePlayer
	m.state.Players[p].TotalScore += m.state.Players[p].CurrentScore
	m.state.Players[p].CurrentScore = 0

	if m.state.Players[p].TotalScore >= WinThreshold {
		m.state.Status = Status{Phase: PhaseWon, Winner: p}
		return HoldResult{State: m.state, JustWon: true}, nil
	}

	m.state.ActivePlayer = p.Other()
	return HoldResult{State: m.state}, nil
}

// NewGame discards the current match and starts over. It always succeeds.
func (m *Match) NewGame() NewGameResult {
	m.state = NewMatchState()
	return NewGameResult{State: m.state}
}
