package handlers

import (
	"net/http"

	"github.com/aaronzipp/pig-dice/internal/game"
	"github.com/aaronzipp/pig-dice/internal/models"
)

// TableSnapshot is everything a client needs to draw a table from scratch
type TableSnapshot struct {
	Code     string           `json:"code"`
	State    game.MatchState  `json:"state"`
	Names    [2]string        `json:"names"`
	Wins     [2]int           `json:"wins"`
	Fairness *models.Fairness `json:"fairness,omitempty"`
}

// HandleState returns the current table snapshot as JSON
func (ctx *Context) HandleState(w http.ResponseWriter, r *http.Request) {
	table, ok := ctx.lookupTable(w, r)
	if !ok {
		return
	}

	table.RLock()
	snap := TableSnapshot{
		Code:     table.Code,
		State:    table.Match.State(),
		Names:    table.Names(),
		Wins:     table.Wins(),
		Fairness: table.Fairness.Snapshot(),
	}
	table.RUnlock()

	writeJSON(w, http.StatusOK, snap)
}
