package handlers

import (
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/aaronzipp/pig-dice/internal/game"
	"github.com/aaronzipp/pig-dice/internal/models"
	"github.com/aaronzipp/pig-dice/internal/sse"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: sameOrigin,
}

// sameOrigin accepts requests without an Origin header or from the serving host
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// wsFrame is one notification on the WebSocket, mirroring an SSE event
type wsFrame struct {
	Event string `json:"event"`
	Data  string `json:"data"`
}

// HandleWS streams the same notifications as HandleSSE over a WebSocket
func (ctx *Context) HandleWS(w http.ResponseWriter, r *http.Request) {
	table, ok := ctx.lookupTable(w, r)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("handleWS: upgrade: %v", err)
		return
	}
	defer conn.Close()

	sub := models.Subscriber{ID: uuid.New().String(), Session: sessionID(r)}
	clientID := sub.ID
	clientChan := make(chan models.StreamMessage, game.StreamBufferSize)
	sse.AddClient(table, clientChan, sub)
	defer sse.RemoveClient(table, clientChan)

	// Reader: the client sends nothing we act on, but reading is what processes
	// pongs and notices the close.
	conn.SetReadLimit(1 << 10)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(msg models.StreamMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(wsFrame{Event: msg.Event, Data: msg.Data})
	}

	for _, msg := range initialMessages(table, sub) {
		if err := write(msg); err != nil {
			return
		}
	}

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-done:
			if debug {
				log.Printf("handleWS: client %s disconnected from %s", clientID, table.Code)
			}
			return
		case msg := <-clientChan:
			if err := write(msg); err != nil {
				log.Printf("handleWS: write: %v", err)
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
