package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finaily/auth"
	"finaily/cache"
	"finaily/client"
	"finaily/config"
	"finaily/tui"
	"finaily/types"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Parse command-line flags
	apiURL := flag.String("url", cfg.APIURL, "Backend base URL")
	lang := flag.String("lang", string(cfg.Lang), "Digest language (ko or en)")
	flag.Parse()

	cfg.APIURL = *apiURL
	cfg.Lang = types.Language(*lang)
	if !cfg.Lang.Valid() {
		fmt.Printf("Unsupported language %q\n", *lang)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Printf("Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api, closeAPI := newAPI(ctx, cfg, logger)
	defer closeAPI()

	session := auth.FromConfig(cfg.Token, cfg.TokenFile, logger.With("component", "auth"))

	m := tui.NewModel(tui.Config{
		API:      api,
		Session:  session,
		Logger:   logger,
		Lang:     cfg.Lang,
		Limit:    cfg.Limit,
		Debounce: cfg.Debounce,
		Context:  ctx,
	})

	// Create the tea program
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
		program.Quit()
	}()

	logger.Info("starting", "api", cfg.APIURL, "lang", cfg.Lang, "limit", cfg.Limit, "signed_in", session.SignedIn())
	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

// newAPI builds the transport client, fronted by a cache unless disabled.
// Redis is used when configured and reachable, memory otherwise.
func newAPI(ctx context.Context, cfg config.Config, logger *slog.Logger) (client.API, func()) {
	c := client.New(client.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout,
		Logger:  logger.With("component", "client"),
	})
	if !cfg.CacheEnabled() {
		return c, func() {}
	}

	var store cache.Store
	if cfg.RedisAddr != "" {
		rs, err := cache.NewRedisStore(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Warn("redis unavailable, caching in memory", "addr", cfg.RedisAddr, "error", err)
		} else {
			store = rs
		}
	}
	if store == nil {
		mem := cache.NewMemoryStore()
		go sweep(ctx, mem, cfg.CacheTTL)
		store = mem
	}

	cached := cache.New(c, store, cfg.CacheTTL, logger.With("component", "cache"))
	return cached, func() { _ = cached.Close() }
}

// sweep drops expired entries from the memory store until ctx ends
func sweep(ctx context.Context, s *cache.MemoryStore, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}
