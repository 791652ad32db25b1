package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/aaronzipp/pig-dice/internal/models"
	"github.com/aaronzipp/pig-dice/internal/render"
	"github.com/aaronzipp/pig-dice/internal/sse"
)

// HandleCloseTable deletes the table. Only the session that created it may close it.
func (ctx *Context) HandleCloseTable(w http.ResponseWriter, r *http.Request) {
	table, ok := ctx.lookupTable(w, r)
	if !ok {
		return
	}

	sid := sessionID(r)
	table.RLock()
	isOwner := table.IsOwner(sid)
	table.RUnlock()
	if !isOwner {
		log.Printf("HandleCloseTable: session %q is not owner of %s", sid, table.Code)
		http.Error(w, "Only the table owner can close it", http.StatusForbidden)
		return
	}

	// Broadcast closure, then delete
	NotifyClosed(table)
	ctx.TableStore.Delete(table.Code)

	log.Printf("Closed table: code=%s", table.Code)
	redirect(w, r, "/")
}

// NotifyClosed tells every subscriber of a table to go back to the landing
// page. A fair table reveals its live server seed first.
func NotifyClosed(table *models.Table) {
	table.Lock()
	var notes []models.Notification
	if table.Fairness != nil {
		table.Fairness.Reveal()
		notes = append(notes, fairnessNote(table))
	}
	notes = append(notes, models.Notification{Event: sse.EventNavRedirect, Data: render.RedirectSnippet("/")})
	deliver := table.Enqueue(notes...)
	table.Unlock()

	if deliver {
		go sse.Deliver(table)
	}
}

// HandleRedirect answers the snippet from render.RedirectSnippet with an HX-Location.
// Only same-site paths are followed.
func (ctx *Context) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	to := r.URL.Query().Get("to")
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") {
		to = "/"
	}
	w.Header().Set("HX-Location", to)
	w.WriteHeader(http.StatusOK)
}
