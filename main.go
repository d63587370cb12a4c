package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "armoralley.db", "Path to the SQLite battle ledger (empty disables it)")
	fps := flag.Int("fps", FPS, "Simulation frames per second")
	seed := flag.Int64("seed", 1, "Random seed for the first battle")
	difficulty := flag.String("difficulty", string(DifficultyEasy), "Game type: easy, hard or extreme")
	robTheBank := flag.Bool("engineers-rob-the-bank", false, "Engineers steal all funds from an end bunker")
	publicURL := flag.String("public-url", "", "Base URL used in share links (default: ws://<addr>)")
	flag.Parse()

	diff, err := ParseDifficulty(*difficulty)
	if err != nil {
		log.Fatalf("invalid -difficulty: %v", err)
	}
	cfg := DefaultBattleConfig()
	cfg.Seed = *seed
	cfg.Difficulty = diff
	cfg.EngineersRobTheBank = *robTheBank

	if *publicURL == "" {
		host := *addr
		if strings.HasPrefix(host, ":") {
			host = "localhost" + host
		}
		*publicURL = "ws://" + host
	}
	*publicURL = strings.TrimSuffix(*publicURL, "/")

	var db *DB
	var store *EventStore
	if *dbPath != "" {
		db, err = OpenDB(*dbPath)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		store = NewEventStore(db)
	}

	hub := NewHub(db, store, cfg, *fps)
	go hub.Run()

	first := hub.battles.CreateBattle(cfg)
	if token, err := hub.auth.IssueToken(first.ID); err == nil {
		log.Printf("battle %s: watch at %s", first.ID, watchURL(*publicURL, first.ID, token))
	}

	mux := SetupRoutes(hub, *publicURL)
	server := &http.Server{Addr: *addr, Handler: mux}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Printf("Server starting on %s", *addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		return server.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		log.Printf("server: %v", err)
	}

	hub.battles.StopAll()
	if store != nil {
		store.Stop()
	}
	if db != nil {
		db.Close()
	}
}
