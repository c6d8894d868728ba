package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"bidding/db"
	"bidding/db/migrations"
	"bidding/internal/auth"
	"bidding/internal/handlers"
	"bidding/internal/metrics"
	"bidding/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	connString := os.Getenv("POSTGRES_CONN")
	if connString == "" {
		slog.Error("POSTGRES_CONN env variable is not set")
		os.Exit(1)
	}

	dbConn, err := sqlx.Connect("postgres", connString)
	if err != nil {
		slog.Error("Cannot connect to DB", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	migrations.Run()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET env variable is not set")
		os.Exit(1)
	}
	jwtManager := auth.NewJWTManager(jwtSecret, 24*time.Hour)

	store := db.NewStorage(dbConn)
	h := handlers.NewHandler(store)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequirePrincipal(jwtManager))

			r.Post("/biddings/new", h.CreateBiddingHandler)
			r.Get("/biddings", h.GetBiddingsHandler)
			r.Get("/biddings/{biddingId}", h.GetBiddingHandler)
			r.Patch("/biddings/{biddingId}/edit", h.EditBiddingHandler)
			r.Delete("/biddings/{biddingId}", h.DeleteBiddingHandler)
			r.Put("/biddings/{biddingId}/status", h.ChangeBiddingStatusHandler)
			r.Put("/biddings/{biddingId}/select-winner", h.SelectWinnerHandler)
			r.Post("/biddings/{biddingId}/contract", h.CreateContractHandler)
			r.Post("/biddings/{biddingId}/order", h.CreateOrderHandler)
			r.Get("/biddings/{biddingId}/summary", h.GetBiddingSummaryHandler)

			r.Post("/biddings/{biddingId}/participations", h.SubmitParticipationHandler)
			r.Put("/biddings/{biddingId}/participations/{participationId}/evaluation", h.EvaluateParticipationHandler)
			r.Post("/evaluations/score", h.ScorePreviewHandler)
		})
	})

	serverAddr := getEnv("SERVER_ADDRESS", "0.0.0.0:8080")

	slog.Info("Starting server", "address", serverAddr)
	if err := http.ListenAndServe(serverAddr, r); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
