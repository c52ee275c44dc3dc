package rest

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gorilla/mux"

	"github.com/SirPenguin555/Whats-That-Color/internal/cache"
	"github.com/SirPenguin555/Whats-That-Color/internal/service"
	"github.com/SirPenguin555/Whats-That-Color/internal/transport/rest/handler"
	"github.com/SirPenguin555/Whats-That-Color/internal/transport/rest/middleware"
	"github.com/SirPenguin555/Whats-That-Color/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	PlayService    *service.PlayService
	HistoryService *service.HistoryService
	ResponseCache  cache.ResponseCache
	Policy         handler.PolicyFunc
	WSHub          *ws.Hub
	// Metrics serves /metrics when set
	Metrics     http.Handler
	CORSOrigins []string
	Logger      *slog.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	scoreHandler := handler.NewScoreHandler(c.PlayService, c.Policy, c.Logger)
	colorHandler := handler.NewColorHandler()
	playerHandler := handler.NewPlayerHandler(c.HistoryService)
	cacheHandler := handler.NewCacheHandler(c.ResponseCache)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORSOrigins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	if c.Metrics != nil {
		r.Handle("/metrics", c.Metrics).Methods("GET")
	}

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/players/anonymous", authHandler.IssueAnonymous).Methods("POST", "OPTIONS")
	v1.HandleFunc("/colors/next", colorHandler.Next).Methods("GET", "OPTIONS")
	v1.HandleFunc("/colors/{hex}/info", colorHandler.Info).Methods("GET", "OPTIONS")
	v1.HandleFunc("/cache/stats", cacheHandler.Stats).Methods("GET", "OPTIONS")

	// WebSocket routes (public with optional token in query param)
	v1.HandleFunc("/ws/feed", wsHandler.FeedWS).Methods("GET")

	// Scoring works anonymously; a player token records the play
	scoreRoutes := v1.NewRoute().Subrouter()
	scoreRoutes.Use(authMW.OptionalPlayer)
	scoreRoutes.HandleFunc("/score", scoreHandler.Score).Methods("POST", "OPTIONS")

	// Admin routes (require the admin token)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)
	adminRoutes.HandleFunc("/cache", cacheHandler.Clear).Methods("DELETE", "OPTIONS")

	// Player routes (require player auth)
	playerRoutes := v1.NewRoute().Subrouter()
	playerRoutes.Use(authMW.RequirePlayer)

	playerRoutes.HandleFunc("/history", playerHandler.History).Methods("GET", "OPTIONS")
	playerRoutes.HandleFunc("/history/search", playerHandler.Search).Methods("GET", "OPTIONS")
	playerRoutes.HandleFunc("/history/stats", playerHandler.Stats).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(origins []string) mux.MiddlewareFunc {
	allowAny := len(origins) == 0 || slices.Contains(origins, "*")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case allowAny:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(origins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
