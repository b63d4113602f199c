package handlers

import (
	"net/http"

	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"hueareyou/internal/api"
)

// RouterConfig collects what NewRouter wires together
type RouterConfig struct {
	Auth        *AuthHandler
	Hue         *HueHandler
	Middleware  *Middleware
	Status      *StartupStatus
	CORSOrigins []string
	Logger      *zap.Logger
}

// NewRouter mounts the API under /api/
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := cfg.Middleware

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/"+api.PathLogin, m.RateLimit(cfg.Auth.Login))
	mux.HandleFunc("POST /api/"+api.PathSignUp, m.RateLimit(cfg.Auth.SignUp))
	mux.HandleFunc("POST /api/"+api.PathSaveResult, m.RequireAuth(cfg.Hue.SaveResult))
	mux.HandleFunc("GET /api/"+api.PathGetData, cfg.Hue.GetData)
	if cfg.Status != nil {
		mux.Handle("GET /api/health", cfg.Status)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})

	var handler http.Handler = mux
	handler = c.Handler(handler)
	handler = Recover(logger)(handler)
	handler = Logging(logger)(handler)
	return handler
}
