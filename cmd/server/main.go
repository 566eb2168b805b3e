package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/lmittmann/tint"

	appservices "github.com/asterwei416/cybercat/internal/application/services"
	"github.com/asterwei416/cybercat/internal/application/usecases"
	"github.com/asterwei416/cybercat/internal/config"
	domainservices "github.com/asterwei416/cybercat/internal/domain/services"
	"github.com/asterwei416/cybercat/internal/infrastructure/api"
	"github.com/asterwei416/cybercat/internal/infrastructure/external"
	"github.com/asterwei416/cybercat/internal/infrastructure/repositories"
	infraservices "github.com/asterwei416/cybercat/internal/infrastructure/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "15:04:05",
		}),
	))

	// Infrastructure layer
	clientPool := infraservices.NewGenAIClientPool(cfg.GeminiAPIKey)
	defer clientPool.Close()

	scanRepository := repositories.NewMemoryScanRepository()
	analysisService := external.NewGeminiAnalysisService(clientPool, cfg.AnalysisModel)
	generationService := external.NewGeminiGenerationService(clientPool, cfg.GenerationModel)

	// Domain layer
	captureService := domainservices.NewCaptureService()

	// Application layer
	sessionService := appservices.NewSessionService()
	scanUseCase := usecases.NewScanUseCase(captureService, analysisService, generationService, scanRepository, sessionService)

	// API layer
	handler := api.NewScanHandler(scanUseCase, sessionService, scanRepository)

	r := mux.NewRouter()
	r.HandleFunc("/", handler.HandleIndex).Methods("GET")
	r.HandleFunc("/api/scan", handler.HandleScan).Methods("POST")
	r.HandleFunc("/api/reset", handler.HandleReset).Methods("POST")
	r.HandleFunc("/api/scans/latest", handler.HandleLatestScan).Methods("GET")
	r.HandleFunc("/api/scans/{id}", handler.HandleScanByID).Methods("GET")
	r.HandleFunc("/healthz", handler.HandleHealth).Methods("GET")

	log.Printf("Starting server on port %s", cfg.Port)
	log.Printf("Analysis model: %s, Generation model: %s", cfg.AnalysisModel, cfg.GenerationModel)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
