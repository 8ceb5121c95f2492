// Command server runs the demo docextract HTTP service: POST /api/parse
// extracts and scores a canonical Record from posted OCR text, optionally
// enhancing low-confidence results via a configured AI provider and
// persisting the result. Adapted from the teacher's cmd/server/main.go
// init/route-wiring/log-status shape.
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/docextract/docextract/api"
	"github.com/docextract/docextract/configs"
	"github.com/docextract/docextract/internal/auth"
	"github.com/docextract/docextract/internal/storage"
)

func main() {
	if err := auth.Init(); err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}
	log.Println("JWT authentication initialized")

	if err := storage.Init(); err != nil {
		log.Printf("Warning: database not available: %v", err)
		log.Println("Running without record persistence")
	} else {
		defer storage.Close()
		log.Println("Database connection pool initialized")
	}

	if err := storage.InitArchive(); err != nil {
		log.Printf("Warning: object storage not available: %v", err)
		log.Println("Records will not be archived")
	} else {
		log.Println("Object storage initialized")
	}

	config, err := configs.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	handler := api.NewHandler(config)
	router := handler.SetupRoutes()
	router.HandleFunc("/api/token", auth.TokenHandler).Methods("POST")

	protectedRouter := auth.JWTMiddleware(router)

	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	log.Printf("Starting docextract demo service on %s", addr)
	log.Printf("Enhancer: %s (threshold %.2f)", config.AI.DefaultProvider, config.EnhanceThreshold)
	log.Printf("Database: %v", storage.Pool != nil)
	log.Printf("Object storage: %v", storage.Client != nil)
	log.Printf("Endpoints:")
	log.Printf("  POST   http://%s/api/token            - Issue a bearer token", addr)
	log.Printf("  POST   http://%s/api/parse            - Parse OCR text into a Record (requires JWT)", addr)
	log.Printf("  GET    http://%s/api/records           - List stored Records (requires JWT)", addr)
	log.Printf("  GET    http://%s/api/records/{id}      - Get a stored Record (requires JWT)", addr)
	log.Printf("  GET    http://%s/health                - Health check", addr)

	if err := http.ListenAndServe(addr, protectedRouter); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
