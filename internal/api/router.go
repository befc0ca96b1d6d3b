package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"userhub-backend/internal/api/handlers"
	"userhub-backend/internal/config"
	"userhub-backend/internal/services"
	"userhub-backend/internal/websocket"
	"userhub-backend/web"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(cfg *config.Config, hub *websocket.Hub, userService services.UserServiceProvider, statsService services.StatsServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// The API speaks JSON even when routing fails.
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Only POST requests are supported.")
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	statsHandler := handlers.NewStatsHandler(statsService)
	systemHandler := handlers.NewSystemHandler()
	wsHandler := handlers.NewWebSocketHandler(hub)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// Action-dispatching auth endpoint: {action: register|login, ...}
		r.Post("/auth", authHandler.Handle)

		// Live stats feed for the dashboard
		r.Get("/ws", wsHandler.Serve)

		r.Get("/stats", statsHandler.Get)
		r.Get("/system", systemHandler.Get)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.Find)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", userHandler.Get)
				r.Put("/", userHandler.Update)
				r.Delete("/", userHandler.Delete)
			})
		})
	})

	// Registration page and dashboard
	static, err := web.Static()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load embedded web assets")
	}
	r.Handle("/*", http.FileServer(http.FS(static)))

	return r
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
