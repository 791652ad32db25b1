package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aaronzipp/pig-dice/internal/game"
	"github.com/aaronzipp/pig-dice/internal/models"
)

const sessionCookie = "session_id"

var debug bool

func init() {
	debug = os.Getenv("DEBUG") != ""
}

// SetDebug toggles verbose logging after configuration is loaded
func SetDebug(on bool) {
	debug = on
}

// tableCode extracts the normalised table code from the route
func tableCode(r *http.Request) string {
	return strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "code")))
}

// lookupTable resolves the route's table or writes a 404
func (ctx *Context) lookupTable(w http.ResponseWriter, r *http.Request) (*models.Table, bool) {
	code := tableCode(r)
	table, exists := ctx.TableStore.Get(code)
	if !exists {
		http.Error(w, "Table not found", http.StatusNotFound)
		return nil, false
	}
	return table, true
}

// sessionID returns the browser's session cookie value, or "" if unset
func sessionID(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// Secure: true, // enable when serving over HTTPS
	})
}

// redirect navigates HTMX requests with HX-Redirect and everything else with a 303
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// writeJSON writes a JSON response with proper headers
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("writeJSON: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeActionError maps engine errors to HTTP statuses
func writeActionError(w http.ResponseWriter, err error) {
	if errors.Is(err, game.ErrInvalidOperation) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	}
	log.Printf("action failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
