package render

import (
	htmlpkg "html"
	"strconv"
	"strings"

	"github.com/aaronzipp/pig-dice/internal/dice"
	"github.com/aaronzipp/pig-dice/internal/game"
)

// Board generates HTML for both player panels
func Board(names [2]string, state game.MatchState) string {
	winner, won := state.Status.Won()

	var b strings.Builder
	b.WriteString(`<div class="board">`)
	for _, p := range []game.PlayerID{game.Player1, game.Player2} {
		ps := state.Player(p)
		class := "player-panel"
		switch {
		case won && winner == p:
			class += " winner"
		case !won && state.ActivePlayer == p:
			class += " active"
		}
		b.WriteString(`<section id="`)
		b.WriteString(p.String())
		b.WriteString(`" class="`)
		b.WriteString(class)
		b.WriteString(`"><h2 class="player-name">`)
		b.WriteString(htmlpkg.EscapeString(names[p]))
		b.WriteString(`</h2><p class="total-score">`)
		b.WriteString(strconv.Itoa(ps.TotalScore))
		b.WriteString(`</p><div class="current"><span class="label">Current</span><span class="current-score">`)
		b.WriteString(strconv.Itoa(ps.CurrentScore))
		b.WriteString(`</span></div>`)
		if won && winner == p {
			b.WriteString(`<p class="winner-banner">Winner!</p>`)
		}
		b.WriteString(`</section>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// Die generates HTML for the die cube rotated per the presentation
func Die(p dice.Presentation) string {
	var b strings.Builder
	b.WriteString(`<div class="die" style="transform: rotateX(`)
	b.WriteString(strconv.Itoa(p.RotateX))
	b.WriteString(`deg) rotateY(`)
	b.WriteString(strconv.Itoa(p.RotateY))
	b.WriteString(`deg)">`)
	for v := 1; v <= dice.Faces; v++ {
		b.WriteString(`<div class="face face-`)
		b.WriteString(strconv.Itoa(v))
		b.WriteString(`">`)
		b.WriteString(strconv.Itoa(v))
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// Controls generates the roll/hold/new game buttons. Roll and hold are
// disabled once the match is won. The owner also gets the close form.
func Controls(code string, state game.MatchState, owner bool) string {
	disabled := ""
	if !state.Status.InProgress() {
		disabled = ` disabled`
	}

	var b strings.Builder
	b.WriteString(`<div class="controls"><button class="btn btn-primary" data-action="`)
	b.WriteString(game.TablePath(code, "roll"))
	b.WriteString(`"`)
	b.WriteString(disabled)
	b.WriteString(`>Roll</button><button class="btn btn-secondary" data-action="`)
	b.WriteString(game.TablePath(code, "hold"))
	b.WriteString(`"`)
	b.WriteString(disabled)
	b.WriteString(`>Hold</button><button class="btn" data-action="`)
	b.WriteString(game.TablePath(code, "new-game"))
	b.WriteString(`">New Game</button>`)
	if owner {
		b.WriteString(`<form hx-post="`)
		b.WriteString(game.TablePath(code, "close"))
		b.WriteString(`" hx-confirm="Close this table?"><button type="submit" class="btn btn-secondary">Close Table</button></form>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// Tally generates HTML for the matches won at this table
func Tally(names [2]string, wins [2]int) string {
	if wins[0] == 0 && wins[1] == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<h2>Matches</h2><table class="score-table"><thead><tr><th>Player</th><th>Wins</th></tr></thead><tbody>`)
	for i := range names {
		b.WriteString(`<tr><td class="score-player">`)
		b.WriteString(htmlpkg.EscapeString(names[i]))
		b.WriteString(`</td><td><span class="badge-pill badge-win">`)
		b.WriteString(strconv.Itoa(wins[i]))
		b.WriteString(`</span></td></tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// RedirectSnippet returns an HTMX snippet that triggers a client-side redirect
func RedirectSnippet(to string) string {
	var b strings.Builder
	b.WriteString(`<div hx-get="/redirect?to=`)
	b.WriteString(htmlpkg.EscapeString(to))
	b.WriteString(`" hx-trigger="load" hx-swap="none"></div>`)
	return b.String()
}
