package main

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aaronzipp/pig-dice/internal/config"
	"github.com/aaronzipp/pig-dice/internal/handlers"
	"github.com/aaronzipp/pig-dice/internal/sse"
	"github.com/aaronzipp/pig-dice/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	handlers.SetDebug(cfg.Debug)
	sse.SetDebug(cfg.Debug)

	templates, err := template.ParseGlob(filepath.Join(cfg.TemplateDir, "*.html"))
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	tableStore := store.NewTableStore()
	appCtx := &handlers.Context{
		TableStore: tableStore,
		Templates:  templates,
		Config:     cfg,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepIdleTables(ctx, tableStore, cfg.SweepInterval, cfg.TableIdleTimeout)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           appCtx.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	log.Printf("Server starting on %s (public URL %s, fair dice %v)", cfg.Addr, cfg.PublicURL, cfg.FairDice)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	log.Printf("Server stopped")
}

// sweepIdleTables drops tables nobody has touched for maxIdle and sends their
// subscribers home.
func sweepIdleTables(ctx context.Context, tables *store.TableStore, every, maxIdle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed := tables.Sweep(now, maxIdle)
			for _, t := range removed {
				handlers.NotifyClosed(t)
			}
			if len(removed) > 0 {
				log.Printf("Swept %d idle tables, %d remaining", len(removed), tables.Len())
			}
		}
	}
}
