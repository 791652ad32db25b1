package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/aaronzipp/pig-dice/internal/dice"
	"github.com/aaronzipp/pig-dice/internal/game"
	"github.com/aaronzipp/pig-dice/internal/models"
	"github.com/aaronzipp/pig-dice/internal/render"
)

const maxNameLength = 24

var defaultNames = [2]string{"Player 1", "Player 2"}

// HandleCreateTable creates a new table and sends the browser to it
func (ctx *Context) HandleCreateTable(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	names := [2]string{
		cleanName(r.FormValue("name1"), defaultNames[0]),
		cleanName(r.FormValue("name2"), defaultNames[1]),
	}

	ownerID := sessionID(r)
	if ownerID == "" {
		ownerID = uuid.New().String()
	}

	match, fairness := ctx.newMatch()
	code := game.GetUniqueTableCode(ctx.TableStore)
	table := models.NewTable(code, ownerID, names, match)
	table.Fairness = fairness
	ctx.TableStore.Set(code, table)

	log.Printf("Created table: code=%s owner=%s players=%q/%q fair=%v", code, ownerID, names[0], names[1], fairness != nil)

	setSessionCookie(w, ownerID)
	redirect(w, r, game.TablePath(code))
}

// HandleJoinTable looks up a table code typed on the landing page
func (ctx *Context) HandleJoinTable(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	code := strings.ToUpper(strings.TrimSpace(r.FormValue("code")))
	if code == "" {
		http.Error(w, "Table code is required", http.StatusBadRequest)
		return
	}
	if !ctx.TableStore.Exists(code) {
		http.Error(w, "Table not found", http.StatusNotFound)
		return
	}
	redirect(w, r, game.TablePath(code))
}

// HandleTable displays the table page
func (ctx *Context) HandleTable(w http.ResponseWriter, r *http.Request) {
	code := tableCode(r)
	table, exists := ctx.TableStore.Get(code)
	if !exists {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	table.RLock()
	state := table.Match.State()
	names := table.Names()
	isOwner := table.IsOwner(sessionID(r))
	rx, ry, _ := dice.BaseRotation(1)
	data := struct {
		Code     string
		Names    [2]string
		Fairness *models.Fairness
		QRPath   string
		Board    template.HTML
		Die      template.HTML
		Controls template.HTML
		Tally    template.HTML
	}{
		Code:     table.Code,
		Names:    names,
		Fairness: table.Fairness.Snapshot(),
		QRPath:   game.TablePath(table.Code, "qr.png"),
		Board:    template.HTML(render.Board(names, state)),
		Die:      template.HTML(render.Die(dice.Presentation{RotateX: rx, RotateY: ry})),
		Controls: template.HTML(render.Controls(table.Code, state, isOwner)),
		Tally:    template.HTML(render.Tally(names, table.Wins())),
	}
	table.RUnlock()

	if err := ctx.Templates.ExecuteTemplate(w, "table.html", data); err != nil {
		log.Printf("HandleTable: template: %v", err)
	}
}

// newMatch builds a match with the configured dice
func (ctx *Context) newMatch() (*game.Match, *models.Fairness) {
	if ctx.NewSelector != nil {
		return game.NewMatch(ctx.NewSelector()), nil
	}
	if ctx.Config.FairDice {
		src := dice.NewFairSource(dice.NewServerSeed(), uuid.New().String())
		sel := dice.NewSelector(src, dice.NewSource(0))
		return game.NewMatch(sel), models.NewFairness(src)
	}
	return game.NewMatch(dice.NewSelector(dice.NewSource(ctx.Config.DiceSeed), nil)), nil
}

// cleanName trims and bounds a display name, falling back to def
func cleanName(name, def string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return def
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}
	return name
}
