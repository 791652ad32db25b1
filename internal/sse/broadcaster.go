package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"time"

	"github.com/aaronzipp/pig-dice/internal/game"
	"github.com/aaronzipp/pig-dice/internal/models"
)

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

// SetDebug toggles verbose logging after configuration is loaded
func SetDebug(on bool) {
	debug = on
}

// sendTimeout is a var so tests can shorten it
var sendTimeout = time.Duration(game.StreamTimeoutSeconds) * time.Second

// AddClient subscribes a stream to the table
func AddClient(table *models.Table, client chan models.StreamMessage, sub models.Subscriber) {
	table.Lock()
	defer table.Unlock()
	table.AddStream(client, sub)
	if debug {
		log.Printf("addStream: table=%s client=%s, now have %d total clients", table.Code, sub.ID, table.StreamCount())
	}
}

// RemoveClient unsubscribes a stream from the table
func RemoveClient(table *models.Table, client chan models.StreamMessage) {
	table.Lock()
	defer table.Unlock()
	table.RemoveStream(client)
	log.Printf("removeStream: client removed from %s, now have %d total clients", table.Code, table.StreamCount())
}

// Broadcast sends a message to all connected stream clients
func Broadcast(table *models.Table, event, data string) {
	table.RLock()
	// Collect all client channels while holding the lock
	clients := table.GetStreams()
	clientCount := len(clients)
	table.RUnlock()

	if debug {
		log.Printf("broadcast: table=%s event=%s to %d clients", table.Code, event, clientCount)
	}

	// Send messages WITHOUT holding the lock
	msg := models.StreamMessage{Event: event, Data: data}
	successCount := 0
	for client := range clients {
		select {
		case client <- msg:
			successCount++
		case <-time.After(sendTimeout):
			if debug {
				log.Printf("broadcast: timeout sending to client")
			}
		}
	}
	if debug {
		log.Printf("broadcast: sent to %d/%d clients successfully", successCount, clientCount)
	}
}

// JSONNotification encodes v as the data of an event
func JSONNotification(event string, v any) (models.Notification, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return models.Notification{}, fmt.Errorf("encode %s: %w", event, err)
	}
	return models.Notification{Event: event, Data: string(b)}, nil
}

// BroadcastPersonalized sends per-client messages built by renderFunc
func BroadcastPersonalized(table *models.Table, renderFunc func(sub models.Subscriber) string, eventName string) {
	table.RLock()
	clientMap := maps.Clone(table.GetStreams())
	table.RUnlock()

	for client, sub := range clientMap {
		msg := models.StreamMessage{Event: eventName, Data: renderFunc(sub)}
		select {
		case client <- msg:
			// Message sent successfully
		case <-time.After(sendTimeout):
			// Timeout - skip this client to avoid blocking
		}
	}
}

// Deliver broadcasts the table outbox in queue order until it is empty. Start
// it in its own goroutine, after the table lock is released, whenever
// Table.Enqueue reports true. Only one delivery runs per table at a time, so
// subscribers see notifications in the order the table changed.
func Deliver(table *models.Table) {
	for {
		table.Lock()
		notes := table.TakeOutbox()
		table.Unlock()
		if len(notes) == 0 {
			return
		}
		for _, n := range notes {
			if n.PerClient != nil {
				BroadcastPersonalized(table, n.PerClient, n.Event)
			} else {
				Broadcast(table, n.Event, n.Data)
			}
		}
	}
}

// WriteEvent writes one message in text/event-stream framing. Multi-line data
// is split into several data fields.
func WriteEvent(w io.Writer, msg models.StreamMessage) error {
	if _, err := fmt.Fprintf(w, "event: %s\n", msg.Event); err != nil {
		return err
	}
	start := 0
	for i := 0; i <= len(msg.Data); i++ {
		if i == len(msg.Data) || msg.Data[i] == '\n' {
			if _, err := fmt.Fprintf(w, "data: %s\n", msg.Data[start:i]); err != nil {
				return err
			}
			start = i + 1
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
