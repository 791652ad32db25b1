package handlers

import (
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/aaronzipp/pig-dice/internal/game"
	"github.com/aaronzipp/pig-dice/internal/models"
	"github.com/aaronzipp/pig-dice/internal/render"
	"github.com/aaronzipp/pig-dice/internal/sse"
)

// HandleSSE streams table notifications via Server-Sent Events
func (ctx *Context) HandleSSE(w http.ResponseWriter, r *http.Request) {
	code := tableCode(r)
	if debug {
		log.Printf("handleSSE called: table=%s", code)
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable buffering in nginx/proxies

	flusher, canFlush := w.(http.Flusher)
	flush := func() {
		if canFlush {
			flusher.Flush()
		}
	}

	table, exists := ctx.TableStore.Get(code)
	if !exists {
		if debug {
			log.Printf("handleSSE: table %s not found, sending nav-redirect to home", code)
		}
		_ = sse.WriteEvent(w, models.StreamMessage{Event: sse.EventNavRedirect, Data: render.RedirectSnippet("/")})
		flush()
		return
	}

	sub := models.Subscriber{ID: uuid.New().String(), Session: sessionID(r)}
	clientID := sub.ID
	clientChan := make(chan models.StreamMessage, game.StreamBufferSize)
	sse.AddClient(table, clientChan, sub)
	defer sse.RemoveClient(table, clientChan)

	for _, msg := range initialMessages(table, sub) {
		if err := sse.WriteEvent(w, msg); err != nil {
			return
		}
	}
	flush()

	// Listen for updates
	reqCtx := r.Context()
	for {
		select {
		case <-reqCtx.Done():
			log.Printf("handleSSE: client %s disconnected from %s", clientID, table.Code)
			return
		case msg := <-clientChan:
			if debug {
				log.Printf("handleSSE: sending event=%s to client %s", msg.Event, clientID)
			}
			if err := sse.WriteEvent(w, msg); err != nil {
				return
			}
			flush()
		}
	}
}

// initialMessages is the snapshot a new subscriber receives before live updates
func initialMessages(table *models.Table, sub models.Subscriber) []models.StreamMessage {
	table.RLock()
	defer table.RUnlock()

	names := table.Names()
	state := table.Match.State()
	msgs := []models.StreamMessage{
		{Event: sse.EventBoardUpdate, Data: render.Board(names, state)},
		{Event: sse.EventControlsUpdate, Data: render.Controls(table.Code, state, table.IsOwner(sub.Session))},
	}
	if tally := render.Tally(names, table.Wins()); tally != "" {
		msgs = append(msgs, models.StreamMessage{Event: sse.EventTallyUpdate, Data: tally})
	}
	return msgs
}
