package models

// Seat is one of the two places at a table
type Seat struct {
	Name       string
	MatchesWon int // tally across matches at this table
}
