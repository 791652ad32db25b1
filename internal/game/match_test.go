package game

import (
	"errors"
	"testing"

	"github.com/aaronzipp/pig-dice/internal/dice"
)

// forcedSelector returns the queued faces in order with their base rotation.
type forcedSelector struct {
	faces []int
	calls int
}

func (f *forcedSelector) Select() dice.Outcome {
	v := f.faces[f.calls%len(f.faces)]
	f.calls++
	rx, ry, _ := dice.BaseRotation(v)
	return dice.Outcome{Value: v, Presentation: dice.Presentation{RotateX: rx + 720, RotateY: ry + 360, SpinsX: 2, SpinsY: 1}}
}

func force(faces ...int) *forcedSelector {
	return &forcedSelector{faces: faces}
}

func TestNewMatchStartsClean(t *testing.T) {
	m := NewMatch(force(3))
	s := m.State()
	if s != NewMatchState() {
		t.Fatalf("new match state = %+v", s)
	}
	if s.ActivePlayer != Player1 || !s.Status.InProgress() {
		t.Fatalf("want Player1 in progress, got %+v", s)
	}
}

func TestRollBustResetsAndPassesTurn(t *testing.T) {
	m := NewMatch(force(1))
	m.state.Players[Player1] = PlayerState{TotalScore: 12, CurrentScore: 37}
	m.state.Players[Player2] = PlayerState{TotalScore: 30}

	res, err := m.Roll()
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if res.Face != 1 || !res.Bust {
		t.Fatalf("face=%d bust=%v, want 1 true", res.Face, res.Bust)
	}
	s := res.State
	if s.Players[Player1].CurrentScore != 0 {
		t.Errorf("current score = %d, want 0", s.Players[Player1].CurrentScore)
	}
	if s.ActivePlayer != Player2 {
		t.Errorf("active = %s, want player2", s.ActivePlayer)
	}
	if s.Players[Player1].TotalScore != 12 || s.Players[Player2].TotalScore != 30 {
		t.Errorf("totals changed: %+v", s.Players)
	}
	if s != m.State() {
		t.Errorf("result state differs from match state")
	}
}

func TestRollAccumulatesAndKeepsTurn(t *testing.T) {
	m := NewMatch(force(5))
	m.state.Players[Player1].CurrentScore = 10

	res, err := m.Roll()
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if got := res.State.Players[Player1].CurrentScore; got != 15 {
		t.Errorf("current score = %d, want 15", got)
	}
	if res.State.ActivePlayer != Player1 {
		t.Errorf("turn passed on a non-bust roll")
	}
	if res.Bust {
		t.Errorf("bust flag set for face 5")
	}
}

func TestRollPresentationMatchesFace(t *testing.T) {
	m := NewMatch(force(2, 3, 4, 5, 6, 1))
	for i := 0; i < 6; i++ {
		res, err := m.Roll()
		if err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
		if got, ok := dice.Decode(res.Presentation); !ok || got != res.Face {
			t.Fatalf("presentation decodes to %d, face %d", got, res.Face)
		}
	}
}

func TestRollNeverWins(t *testing.T) {
	m := NewMatch(force(6))
	m.state.Players[Player1].TotalScore = 98
	for i := 0; i < 5; i++ {
		if _, err := m.Roll(); err != nil {
			t.Fatalf("roll: %v", err)
		}
	}
	s := m.State()
	if !s.Status.InProgress() {
		t.Fatalf("roll ended the match: %+v", s.Status)
	}
	if s.Players[Player1].TotalScore != 98 {
		t.Fatalf("roll changed the total: %d", s.Players[Player1].TotalScore)
	}
	if s.Players[Player1].CurrentScore != 30 {
		t.Fatalf("current = %d, want 30", s.Players[Player1].CurrentScore)
	}
}

func TestHoldBanksAndPassesTurn(t *testing.T) {
	m := NewMatch(force(2))
	m.state.Players[Player1] = PlayerState{TotalScore: 40, CurrentScore: 20}

	res, err := m.Hold()
	if err != nil {
		t.Fatalf("hold: %v", err)
	}
	p := res.State.Players[Player1]
	if p.TotalScore != 60 || p.CurrentScore != 0 {
		t.Errorf("player1 = %+v, want total 60 current 0", p)
	}
	if res.State.ActivePlayer != Player2 {
		t.Errorf("turn did not pass")
	}
	if !res.State.Status.InProgress() || res.JustWon {
		t.Errorf("unexpected win: %+v justWon=%v", res.State.Status, res.JustWon)
	}
}

func TestHoldWithNothingStillPassesTurn(t *testing.T) {
	m := NewMatch(force(2))
	res, err := m.Hold()
	if err != nil {
		t.Fatalf("hold: %v", err)
	}
	if res.State.ActivePlayer != Player2 {
		t.Errorf("turn did not pass")
	}
	if res.State.Players[Player1].TotalScore != 0 {
		t.Errorf("total = %d", res.State.Players[Player1].TotalScore)
	}
}

func TestHoldWinsAtThreshold(t *testing.T) {
	tests := []struct {
		name          string
		total, banked int
		want          int
	}{
		{"exactly", 85, 15, 100},
		{"over", 95, 22, 117},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMatch(force(2))
			m.state.ActivePlayer = Player2
			m.state.Players[Player2] = PlayerState{TotalScore: tc.total, CurrentScore: tc.banked}

			res, err := m.Hold()
			if err != nil {
				t.Fatalf("hold: %v", err)
			}
			if !res.JustWon {
				t.Fatalf("justWon = false")
			}
			if res.State.Players[Player2].TotalScore != tc.want {
				t.Errorf("total = %d, want %d", res.State.Players[Player2].TotalScore, tc.want)
			}
			winner, ok := res.State.Status.Won()
			if !ok || winner != Player2 {
				t.Errorf("status = %+v, want won by player2", res.State.Status)
			}
			if res.State.ActivePlayer != Player2 {
				t.Errorf("turn passed after win")
			}
		})
	}
}

func TestRejectedAfterWin(t *testing.T) {
	m := NewMatch(force(4))
	m.state.Players[Player1] = PlayerState{TotalScore: 90, CurrentScore: 10}
	if _, err := m.Hold(); err != nil {
		t.Fatalf("hold: %v", err)
	}
	before := m.State()

	if _, err := m.Roll(); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("roll after win: err = %v, want ErrInvalidOperation", err)
	}
	if _, err := m.Hold(); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("hold after win: err = %v, want ErrInvalidOperation", err)
	}
	if m.State() != before {
		t.Errorf("state changed after rejected calls: %+v vs %+v", m.State(), before)
	}
	sel := m.selector.(*forcedSelector)
	if sel.calls != 0 {
		t.Errorf("selector consulted %d times after win", sel.calls)
	}
}

func TestNewGameResetsFromAnyState(t *testing.T) {
	m := NewMatch(force(6))
	m.state = MatchState{
		Players:      [2]PlayerState{{TotalScore: 104, CurrentScore: 0}, {TotalScore: 77, CurrentScore: 9}},
		ActivePlayer: Player1,
		Status:       Status{Phase: PhaseWon, Winner: Player1},
	}

	res := m.NewGame()
	if res.State != NewMatchState() {
		t.Fatalf("state after new game = %+v", res.State)
	}
	// idempotent
	if again := m.NewGame(); again.State != res.State {
		t.Fatalf("second reset differs: %+v", again.State)
	}
	if _, err := m.Roll(); err != nil {
		t.Fatalf("roll after reset: %v", err)
	}
}

func TestFullTurnSequence(t *testing.T) {
	// p1: 6, 6, hold (12). p2: 4, 1 bust. p1: 3, hold (15).
	m := NewMatch(force(6, 6, 4, 1, 3))
	steps := []func() error{
		func() error { _, err := m.Roll(); return err },
		func() error { _, err := m.Roll(); return err },
		func() error { _, err := m.Hold(); return err },
		func() error { _, err := m.Roll(); return err },
		func() error { _, err := m.Roll(); return err },
		func() error { _, err := m.Roll(); return err },
		func() error { _, err := m.Hold(); return err },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	s := m.State()
	if s.Players[Player1].TotalScore != 15 || s.Players[Player2].TotalScore != 0 {
		t.Fatalf("totals = %+v", s.Players)
	}
	if s.ActivePlayer != Player2 {
		t.Fatalf("active = %s, want player2", s.ActivePlayer)
	}
	if leader, ok := s.Leader(); !ok || leader != Player1 {
		t.Fatalf("leader = %s,%v", leader, ok)
	}
}
