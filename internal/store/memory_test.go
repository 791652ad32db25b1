package store

import (
	"testing"
	"time"

	"github.com/aaronzipp/pig-dice/internal/dice"
	"github.com/aaronzipp/pig-dice/internal/game"
	"github.com/aaronzipp/pig-dice/internal/models"
)

func newTable(code string) *models.Table {
	sel := dice.NewSelector(dice.NewSource(1), nil)
	return models.NewTable(code, "owner", [2]string{"A", "B"}, game.NewMatch(sel))
}

func TestTableStoreCRUD(t *testing.T) {
	s := NewTableStore()
	if s.Exists("ABC") {
		t.Fatalf("empty store reports ABC")
	}

	tbl := newTable("ABC")
	s.Set("ABC", tbl)
	got, ok := s.Get("ABC")
	if !ok || got != tbl {
		t.Fatalf("Get = %v,%v", got, ok)
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d", s.Len())
	}

	s.Delete("ABC")
	if _, ok := s.Get("ABC"); ok {
		t.Fatalf("table still present after delete")
	}
}

func TestTableStoreSweep(t *testing.T) {
	s := NewTableStore()
	now := time.Now()

	old := newTable("OLD")
	old.LastActive = now.Add(-3 * time.Hour)
	fresh := newTable("NEW")
	fresh.LastActive = now.Add(-time.Minute)
	s.Set(old.Code, old)
	s.Set(fresh.Code, fresh)

	removed := s.Sweep(now, 2*time.Hour)
	if len(removed) != 1 || removed[0] != old {
		t.Fatalf("removed = %v, want only OLD", removed)
	}
	if s.Exists("OLD") || !s.Exists("NEW") {
		t.Fatalf("wrong tables left after sweep")
	}
	if removed := s.Sweep(now, 2*time.Hour); removed != nil {
		t.Fatalf("second sweep removed %d tables", len(removed))
	}
}

func TestUniqueCodesAgainstStore(t *testing.T) {
	s := NewTableStore()
	for i := 0; i < 20; i++ {
		code := game.GetUniqueTableCode(s)
		if s.Exists(code) {
			t.Fatalf("duplicate code %q", code)
		}
		s.Set(code, newTable(code))
	}
	if s.Len() != 20 {
		t.Fatalf("Len = %d, want 20", s.Len())
	}
}
