package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mindplanet/nova-gateway/config"
	"github.com/mindplanet/nova-gateway/content"
)

// APIServer serves the course content: learning modules, the support
// orbit, mood options, the breathing guide, and the resilience quiz.
type APIServer struct {
	httpServer *http.Server
	config     *config.Config
}

func NewAPIServer(cfg *config.Config) *APIServer {
	s := &APIServer{config: cfg}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.APIPort),
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

func (s *APIServer) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(corsMiddleware(s.config.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/modules", s.handleModules)
		r.Get("/moods", s.handleMoods)
		r.Get("/orbit", s.handleOrbit)
		r.Get("/breathing", s.handleBreathing)
		r.Get("/quiz", s.handleQuiz)
		r.Post("/quiz/score", s.handleQuizScore)
	})

	return r
}

// Start begins listening for connections
func (s *APIServer) Start() error {
	log.Printf("🚀 Content API starting on port %d", s.config.APIPort)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *APIServer) Shutdown(ctx context.Context) error {
	log.Println("🛑 Shutting down content API...")
	return s.httpServer.Shutdown(ctx)
}

func (s *APIServer) handleModules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"modules": content.Modules()})
}

func (s *APIServer) handleMoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"moods": content.Moods()})
}

func (s *APIServer) handleOrbit(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"orbit": content.Orbit()})
}

func (s *APIServer) handleBreathing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"phases": content.PhaseTable()})
}

func (s *APIServer) handleQuiz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": content.Quiz()})
}

func (s *APIServer) handleQuizScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answers []int `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body"))
		return
	}

	score := content.ScoreQuiz(req.Answers)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"score":      score,
		"total":      len(content.Quiz()),
		"evaluation": content.Evaluate(score),
	})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string) map[string]interface{} {
	return map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}
}

func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := func(origin string) bool {
		for _, a := range allowedOrigins {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" && allowed(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
