package handlers

import (
	"html/template"
	"log"
	"net/http"

	"github.com/aaronzipp/pig-dice/internal/config"
	"github.com/aaronzipp/pig-dice/internal/game"
	"github.com/aaronzipp/pig-dice/internal/store"
)

// Context holds shared application dependencies
type Context struct {
	TableStore *store.TableStore
	Templates  *template.Template
	Config     config.Config

	// NewSelector overrides how matches draw their dice (tests force faces with it)
	NewSelector func() game.OutcomeSelector
}

// HandleIndex serves the landing page
func (ctx *Context) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if err := ctx.Templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		log.Printf("HandleIndex: template: %v", err)
	}
}

// HandleHealth reports liveness
func (ctx *Context) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
