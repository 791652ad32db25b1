package models

import (
	"sync"
	"time"

	"github.com/aaronzipp/pig-dice/internal/dice"
	"github.com/aaronzipp/pig-dice/internal/game"
)

// Table is one hot-seat session: two named seats sharing a single match
type Table struct {
	Code       string
	OwnerID    string // session that created the table
	Seats      [2]*Seat
	Match      *game.Match
	Fairness   *Fairness // nil unless the table rolls with a fair source
	LastActive time.Time
	mu         sync.RWMutex
	streams    map[chan StreamMessage]Subscriber
	outbox     []Notification
	delivering bool
}

// StreamMessage represents a message sent to SSE or WebSocket subscribers
type StreamMessage struct {
	Event string // Event type (e.g., "roll", "board-update")
	Data  string // JSON or HTML content to send
}

// Subscriber identifies one open stream
type Subscriber struct {
	ID      string // per connection
	Session string // session cookie of the browser, empty when it has none
}

// Notification is a queued stream event. When PerClient is set it renders the
// data for each subscriber and Data is ignored.
type Notification struct {
	Event     string
	Data      string
	PerClient func(sub Subscriber) string
}

// Fairness is the public side of a fair source: the hash of the live server
// seed and the last seed revealed
type Fairness struct {
	ServerSeedHash string       `json:"serverSeedHash"`
	ClientSeed     string       `json:"clientSeed"`
	Revealed       *dice.Reveal `json:"revealed,omitempty"`
	source         *dice.FairSource
}

// NewFairness publishes src
func NewFairness(src *dice.FairSource) *Fairness {
	return &Fairness{
		ServerSeedHash: src.ServerSeedHash(),
		ClientSeed:     src.ClientSeed(),
		source:         src,
	}
}

// Rotate reveals the live seed and moves the source on to next (must be called with table lock held)
func (f *Fairness) Rotate(next string) dice.Reveal {
	r := f.source.Rotate(next)
	f.Revealed = &r
	f.ServerSeedHash = f.source.ServerSeedHash()
	return r
}

// Reveal publishes the live seed without retiring it (must be called with table lock held)
func (f *Fairness) Reveal() dice.Reveal {
	r := f.source.Reveal()
	f.Revealed = &r
	return r
}

// Snapshot copies the public fields so they can be read after the lock is released
func (f *Fairness) Snapshot() *Fairness {
	if f == nil {
		return nil
	}
	c := Fairness{ServerSeedHash: f.ServerSeedHash, ClientSeed: f.ClientSeed}
	if f.Revealed != nil {
		r := *f.Revealed
		c.Revealed = &r
	}
	return &c
}

// NewTable creates a table with a fresh match
func NewTable(code, ownerID string, names [2]string, match *game.Match) *Table {
	return &Table{
		Code:       code,
		OwnerID:    ownerID,
		Seats:      [2]*Seat{{Name: names[0]}, {Name: names[1]}},
		Match:      match,
		LastActive: time.Now(),
	}
}

// Lock acquires the table's write lock
func (t *Table) Lock() {
	t.mu.Lock()
}

// Unlock releases the table's write lock
func (t *Table) Unlock() {
	t.mu.Unlock()
}

// RLock acquires the table's read lock
func (t *Table) RLock() {
	t.mu.RLock()
}

// RUnlock releases the table's read lock
func (t *Table) RUnlock() {
	t.mu.RUnlock()
}

// Touch records activity (must be called with lock held)
func (t *Table) Touch(now time.Time) {
	t.LastActive = now
}

// IdleSince reports when the table was last used
func (t *Table) IdleSince() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.LastActive
}

// Name returns the display name for a seat (must be called with lock held)
func (t *Table) Name(p game.PlayerID) string {
	if !p.Valid() || t.Seats[p] == nil {
		return p.String()
	}
	return t.Seats[p].Name
}

// Names returns both display names (must be called with lock held)
func (t *Table) Names() [2]string {
	return [2]string{t.Name(game.Player1), t.Name(game.Player2)}
}

// Wins returns the session tally (must be called with lock held)
func (t *Table) Wins() [2]int {
	return [2]int{t.Seats[game.Player1].MatchesWon, t.Seats[game.Player2].MatchesWon}
}

// RecordWin adds a match win to the seat's tally (must be called with lock held)
func (t *Table) RecordWin(p game.PlayerID) {
	if p.Valid() {
		t.Seats[p].MatchesWon++
	}
}

// IsOwner reports whether session created the table (must be called with lock held)
func (t *Table) IsOwner(session string) bool {
	return session != "" && t.OwnerID == session
}

// GetStreams returns a copy of the subscriber map (must be called with lock held)
func (t *Table) GetStreams() map[chan StreamMessage]Subscriber {
	clients := make(map[chan StreamMessage]Subscriber, len(t.streams))
	for k, v := range t.streams {
		clients[k] = v
	}
	return clients
}

// AddStream subscribes a channel to the table (must be called with lock held)
func (t *Table) AddStream(client chan StreamMessage, sub Subscriber) {
	if t.streams == nil {
		t.streams = make(map[chan StreamMessage]Subscriber)
	}
	t.streams[client] = sub
}

// RemoveStream unsubscribes a channel (must be called with lock held)
func (t *Table) RemoveStream(client chan StreamMessage) {
	delete(t.streams, client)
}

// StreamCount returns the number of subscribers (must be called with lock held)
func (t *Table) StreamCount() int {
	return len(t.streams)
}

// Enqueue appends notifications to the outbox in the order the table changed.
// It reports true when no delivery is running and the caller must start one
// (must be called with lock held).
func (t *Table) Enqueue(notes ...Notification) bool {
	t.outbox = append(t.outbox, notes...)
	if t.delivering {
		return false
	}
	t.delivering = true
	return true
}

// TakeOutbox empties the outbox. An empty result ends the running delivery
// (must be called with lock held).
func (t *Table) TakeOutbox() []Notification {
	notes := t.outbox
	t.outbox = nil
	if len(notes) == 0 {
		t.delivering = false
	}
	return notes
}
