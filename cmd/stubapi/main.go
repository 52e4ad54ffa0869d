package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"finaily/api"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":8000"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	tokens := []string{"dev-token"}
	if v := os.Getenv("STUB_TOKENS"); v != "" {
		tokens = strings.Split(v, ",")
	}

	var latency time.Duration
	if v := os.Getenv("STUB_LATENCY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("STUB_LATENCY: %v", err)
		}
		latency = d
	}

	r := api.NewRouter(api.Options{Fixtures: api.NewFixtures(tokens...), Latency: latency})
	log.Printf("Starting stub API server on %s (latency %s)", addr, latency)
	log.Println("API endpoints available:")
	log.Println("  GET   /v1/health")
	log.Println("  GET   /v1/tickers/search?q=")
	log.Println("  GET   /v1/news/market-pulse?lang=")
	log.Println("  GET   /v1/news/:symbol?limit=&lang=")
	log.Println("  GET   /v1/users/me")
	log.Println("  PATCH /v1/users/me")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
