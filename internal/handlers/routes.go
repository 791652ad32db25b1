package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes sets up the HTTP routes with middleware
func (ctx *Context) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if debug {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Get("/", ctx.HandleIndex)
	r.Get("/health", ctx.HandleHealth)
	r.Get("/redirect", ctx.HandleRedirect)
	r.Post("/tables", ctx.HandleCreateTable)
	r.Post("/join", ctx.HandleJoinTable)

	r.Route("/table/{code}", func(r chi.Router) {
		r.Get("/", ctx.HandleTable)
		r.Get("/state", ctx.HandleState)
		r.Post("/roll", ctx.HandleRoll)
		r.Post("/hold", ctx.HandleHold)
		r.Post("/new-game", ctx.HandleNewGame)
		r.Post("/close", ctx.HandleCloseTable)
		r.Get("/events", ctx.HandleSSE)
		r.Get("/ws", ctx.HandleWS)
		r.Get("/qr.png", ctx.HandleQRCode)
	})

	// Static files
	if ctx.Config.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(ctx.Config.StaticDir))))
	}

	return r
}
