package game

import (
	"encoding/json"
	"fmt"
)

// PlayerID identifies one of the two seats at a table
type PlayerID int

const (
	Player1 PlayerID = iota
	Player2
)

// Other returns the opponent
func (p PlayerID) Other() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	default:
		return fmt.Sprintf("player(%d)", int(p))
	}
}

// Valid reports whether p names one of the two seats
func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

// Phase represents whether the match is still being played
type Phase string

const (
	PhaseInProgress Phase = "in_progress"
	PhaseWon        Phase = "won"
)

// Status is InProgress or Won(Winner). Winner is only meaningful when Phase is PhaseWon.
type Status struct {
	Phase  Phase    `json:"phase"`
	Winner PlayerID `json:"winner"`
}

// MarshalJSON writes the winner only once the match is won, so an in-progress
// status never reads as a win for Player1.
func (s Status) MarshalJSON() ([]byte, error) {
	out := struct {
		Phase  Phase     `json:"phase"`
		Winner *PlayerID `json:"winner,omitempty"`
	}{Phase: s.Phase}
	if w, ok := s.Won(); ok {
		out.Winner = &w
	}
	return json.Marshal(out)
}

// InProgress reports whether rolls and holds are still accepted
func (s Status) InProgress() bool {
	return s.Phase == PhaseInProgress
}

// Won returns the winner once the match is over
func (s Status) Won() (PlayerID, bool) {
	if s.Phase != PhaseWon {
		return 0, false
	}
	return s.Winner, true
}

// PlayerState tracks one seat's scores
type PlayerState struct {
	TotalScore   int `json:"totalScore"`
	CurrentScore int `json:"currentScore"`
}

// MatchState is the whole game. It is a plain value: copies never alias.
type MatchState struct {
	Players      [2]PlayerState `json:"players"`
	ActivePlayer PlayerID       `json:"activePlayer"`
	Status       Status         `json:"status"`
}

// NewMatchState returns the starting position: zero scores, Player1 to act
func NewMatchState() MatchState {
	return MatchState{
		ActivePlayer: Player1,
		Status:       Status{Phase: PhaseInProgress},
	}
}

// Player returns the scores for seat p
func (s MatchState) Player(p PlayerID) PlayerState {
	return s.Players[p]
}

// Leader returns the seat with the higher banked total; false on a tie
func (s MatchState) Leader() (PlayerID, bool) {
	a, b := s.Players[Player1].TotalScore, s.Players[Player2].TotalScore
	switch {
	case a > b:
		return Player1, true
	case b > a:
		return Player2, true
	default:
		return 0, false
	}
}
