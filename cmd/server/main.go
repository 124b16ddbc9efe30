package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/codyseavey/archimago/internal/api"
	"github.com/codyseavey/archimago/internal/bot"
	"github.com/codyseavey/archimago/internal/catalog"
	"github.com/codyseavey/archimago/internal/commands"
	"github.com/codyseavey/archimago/internal/config"
	"github.com/codyseavey/archimago/internal/glossary"
	"github.com/codyseavey/archimago/internal/services"
)

func main() {
	cfg := config.Load()

	// Card catalog: local file first, public API as fallback
	sources := catalog.FallbackSource{catalog.FileSource{Path: cfg.CardsPath}}
	if cfg.CardsURL != "" {
		sources = append(sources, catalog.NewHTTPSource(cfg.CardsURL))
	}
	store := catalog.NewStore(sources)

	// Card data is required, exit on failure
	loadCtx, loadCancel := context.WithTimeout(context.Background(), time.Minute)
	if _, err := store.Refresh(loadCtx); err != nil {
		loadCancel()
		log.Fatalf("Exiting due to failure to load card data: %v", err)
	}
	loadCancel()

	// Glossary is optional, !term is disabled without it
	terms, err := glossary.Load(cfg.TermsPath)
	if err != nil {
		log.Printf("Warning: term command disabled: %v", err)
	} else {
		log.Printf("Loaded %d terms", terms.Len())
	}

	curiosaService := services.NewCuriosaService(services.CuriosaConfig{
		BaseURL:           cfg.CuriosaBaseURL,
		Timeout:           cfg.CuriosaTimeout,
		RequestsPerSecond: cfg.CuriosaRPS,
		CacheSize:         cfg.DeckCacheSize,
		CacheTTL:          cfg.DeckCacheTTL,
	})

	// !stop closes everything down in debug mode
	stopRequested := make(chan struct{})
	var stopOnce sync.Once
	var stop func()
	if cfg.Debug() {
		stop = func() { stopOnce.Do(func() { close(stopRequested) }) }
	}

	registry := commands.NewDefaultRegistry(commands.Dependencies{
		Cards:           store,
		Decks:           curiosaService,
		FAQs:            curiosaService,
		Terms:           terms,
		MaxOverlapDecks: cfg.MaxOverlapDecks,
		Stop:            stop,
	})

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Rebuild the catalog periodically, restarting after a panic
	refresher := catalog.NewRefresher(store, cfg.RefreshInterval)
	go func() {
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Printf("PANIC in catalog refresher: %v - restarting in 30 seconds", r)
					}
				}()
				refresher.Start(ctx)
			}()

			select {
			case <-ctx.Done():
				return // Graceful shutdown
			case <-time.After(30 * time.Second):
				log.Println("Catalog refresher restarting after panic recovery...")
			}
		}
	}()

	var discordBot *bot.Bot
	if cfg.BotEnabled() {
		discordBot, err = bot.New(cfg.DiscordBotToken, registry)
		if err != nil {
			log.Fatalf("Failed to initialize Discord bot: %v", err)
		}
		if err := discordBot.Start(ctx); err != nil {
			log.Fatalf("Failed to start Discord bot: %v", err)
		}
	} else {
		log.Println("DISCORD_BOT_TOKEN not set, running HTTP API only")
	}

	router := api.SetupRouter(api.Services{
		Store:           store,
		Decks:           curiosaService,
		Terms:           terms,
		Registry:        registry,
		MaxOverlapDecks: cfg.MaxOverlapDecks,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
	})

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal or !stop
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-stopRequested:
		log.Println("Stop command received")
	}
	log.Println("Shutting down server...")

	// Cancel the context to stop the refresher and status rotation
	cancel()

	if discordBot != nil {
		if err := discordBot.Close(); err != nil {
			log.Printf("Failed to close Discord session: %v", err)
		}
	}

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
