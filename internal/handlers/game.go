package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/aaronzipp/pig-dice/internal/dice"
	"github.com/aaronzipp/pig-dice/internal/game"
	"github.com/aaronzipp/pig-dice/internal/models"
	"github.com/aaronzipp/pig-dice/internal/render"
	"github.com/aaronzipp/pig-dice/internal/sse"
)

// HandleRoll rolls for the active player
func (ctx *Context) HandleRoll(w http.ResponseWriter, r *http.Request) {
	table, ok := ctx.lookupTable(w, r)
	if !ok {
		return
	}

	table.Lock()
	res, err := table.Match.Roll()
	deliver := false
	if err == nil {
		table.Touch(time.Now())
		deliver = table.Enqueue(matchNotes(table, sse.EventRoll, res, res.State)...)
	}
	table.Unlock()

	if err != nil {
		if debug {
			log.Printf("roll rejected: table=%s err=%v", table.Code, err)
		}
		writeActionError(w, err)
		return
	}

	if debug {
		log.Printf("roll: table=%s face=%d bust=%v active=%s", table.Code, res.Face, res.Bust, res.State.ActivePlayer)
	}

	writeJSON(w, http.StatusOK, res)
	if deliver {
		go sse.Deliver(table)
	}
}

// HandleHold banks the active player's running score
func (ctx *Context) HandleHold(w http.ResponseWriter, r *http.Request) {
	table, ok := ctx.lookupTable(w, r)
	if !ok {
		return
	}

	table.Lock()
	res, err := table.Match.Hold()
	deliver := false
	names := table.Names()
	if err == nil {
		table.Touch(time.Now())
		notes := matchNotes(table, sse.EventHold, res, res.State)
		if res.JustWon {
			winner, _ := res.State.Status.Won()
			table.RecordWin(winner)
			notes = append(notes,
				controlsNote(table, res.State),
				models.Notification{Event: sse.EventTallyUpdate, Data: render.Tally(names, table.Wins())},
			)
		}
		deliver = table.Enqueue(notes...)
	}
	table.Unlock()

	if err != nil {
		if debug {
			log.Printf("hold rejected: table=%s err=%v", table.Code, err)
		}
		writeActionError(w, err)
		return
	}

	if res.JustWon {
		winner, _ := res.State.Status.Won()
		log.Printf("Match won: table=%s winner=%s total=%d", table.Code, names[winner], res.State.Player(winner).TotalScore)
	}

	writeJSON(w, http.StatusOK, res)
	if deliver {
		go sse.Deliver(table)
	}
}

// HandleNewGame resets the match. It is always accepted. With fair dice the
// finished match's server seed is revealed and a fresh one takes over.
func (ctx *Context) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	table, ok := ctx.lookupTable(w, r)
	if !ok {
		return
	}

	table.Lock()
	res := table.Match.NewGame()
	table.Touch(time.Now())
	notes := matchNotes(table, sse.EventNewGame, res, res.State)
	notes = append(notes, controlsNote(table, res.State))
	if table.Fairness != nil {
		revealed := table.Fairness.Rotate(dice.NewServerSeed())
		if debug {
			log.Printf("new game: table=%s revealed seed after %d rolls", table.Code, revealed.Nonce)
		}
		notes = append(notes, fairnessNote(table))
	}
	deliver := table.Enqueue(notes...)
	table.Unlock()

	if debug {
		log.Printf("new game: table=%s", table.Code)
	}

	writeJSON(w, http.StatusOK, res)
	if deliver {
		go sse.Deliver(table)
	}
}

// matchNotes builds the JSON notification and the re-rendered board (must be called with lock held)
func matchNotes(table *models.Table, event string, payload any, state game.MatchState) []models.Notification {
	notes := make([]models.Notification, 0, 4)
	if n, err := sse.JSONNotification(event, payload); err != nil {
		log.Printf("notify: table=%s: %v", table.Code, err)
	} else {
		notes = append(notes, n)
	}
	return append(notes, models.Notification{Event: sse.EventBoardUpdate, Data: render.Board(table.Names(), state)})
}

// controlsNote renders the controls per subscriber so only the owner's
// stream carries the close form (must be called with lock held)
func controlsNote(table *models.Table, state game.MatchState) models.Notification {
	code, owner := table.Code, table.OwnerID
	return models.Notification{
		Event: sse.EventControlsUpdate,
		PerClient: func(sub models.Subscriber) string {
			return render.Controls(code, state, owner != "" && sub.Session == owner)
		},
	}
}

// fairnessNote publishes the table's fairness record (must be called with lock held)
func fairnessNote(table *models.Table) models.Notification {
	n, err := sse.JSONNotification(sse.EventFairness, table.Fairness.Snapshot())
	if err != nil {
		log.Printf("fairness: table=%s: %v", table.Code, err)
	}
	return n
}
