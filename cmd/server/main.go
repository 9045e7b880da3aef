package main

import (
	"crypto/tls"
	"log"
	"net/http"

	"lesson-deck/internal/config"
	"lesson-deck/internal/db"
	"lesson-deck/internal/handlers"
	"lesson-deck/internal/render"
	"lesson-deck/internal/services"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize database
	if err := db.InitDatabase(cfg.Data.DBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize services
	deckStore, err := services.NewDeckStore(cfg.Data.Path)
	if err != nil {
		log.Fatalf("Failed to initialize deck store: %v", err)
	}
	attemptService := services.NewAttemptService(db.DB)
	sessionService := services.NewSessionService()
	imageService := services.NewImageService(cfg.Images.Endpoint, cfg.Images.APIKey)
	go sessionService.Run()

	// Initialize handlers
	deckHandler := handlers.NewDeckHandler(deckStore, render.NewRenderer())
	activityHandler := handlers.NewActivityHandler(attemptService)
	imageHandler := handlers.NewImageHandler(imageService)
	wsHandler := handlers.NewWebSocketHandler(sessionService)

	// Setup routes
	router := handlers.SetupRoutes(deckHandler, activityHandler, imageHandler, wsHandler)

	// Configure server
	server := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
		Handler: router,
	}

	// Configure TLS if enabled
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{
			MinVersion: getTLSVersion(cfg.TLS.MinVersion),
		}

		log.Printf("Starting HTTPS server on %s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("TLS Certificate: %s", cfg.TLS.CertFile)
		log.Printf("TLS Key: %s", cfg.TLS.KeyFile)
		log.Printf("TLS Min Version: %s", cfg.TLS.MinVersion)

		log.Fatal(server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile))
	} else {
		log.Printf("Starting HTTP server on %s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Warning: HTTP mode is not recommended for production")

		log.Fatal(server.ListenAndServe())
	}
}

// getTLSVersion converts string version to tls.Version constant
func getTLSVersion(version string) uint16 {
	switch version {
	case "1.0":
		return tls.VersionTLS10
	case "1.1":
		return tls.VersionTLS11
	case "1.2":
		return tls.VersionTLS12
	case "1.3":
		return tls.VersionTLS13
	default:
		return tls.VersionTLS12
	}
}
