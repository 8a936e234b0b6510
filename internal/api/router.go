package api

import (
	"fmt"
	"net/http"

	_ "github.com/rohits-web03/chainvault/docs"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/rohits-web03/chainvault/internal/api/handlers"
	"github.com/rohits-web03/chainvault/internal/api/middleware"
	"github.com/rohits-web03/chainvault/internal/metrics"
	"github.com/rs/cors"
)

func SetupRouter(h *handlers.Handler, m *metrics.Metrics, corsOpts cors.Options) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(corsOpts)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)
	if m != nil {
		mainMux.Handle("GET /metrics", m.Handler())
	}

	mainMux.HandleFunc("GET /api/v1/network", h.Network)
	mainMux.HandleFunc("POST /api/v1/chat", handlers.Chat)

	authMux := http.NewServeMux()
	authMux.HandleFunc("POST /nonce", h.RequestNonce)
	authMux.HandleFunc("POST /connect", h.Connect)
	authMux.HandleFunc("POST /logout", h.Logout)

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()

	fileMux := http.NewServeMux()
	fileMux.HandleFunc("GET /{$}", h.ListMyFiles)
	fileMux.HandleFunc("GET /public", h.ListPublicFiles)

	accessMux := http.NewServeMux()
	accessMux.HandleFunc("GET /{$}", h.ListAccess)
	accessMux.HandleFunc("POST /{$}", h.GrantAccess)
	accessMux.HandleFunc("DELETE /{address}", h.RevokeAccess)
	accessMux.HandleFunc("GET /files", h.ListFileAccess)
	accessMux.HandleFunc("POST /files", h.GrantFileAccess)
	accessMux.HandleFunc("DELETE /files/{fileId}/{address}", h.RevokeFileAccess)

	protectedMux.Handle("/files/", http.StripPrefix("/files", fileMux))
	protectedMux.Handle("/files", http.StripPrefix("/files", withRoot(fileMux)))
	protectedMux.Handle("/access/", http.StripPrefix("/access", accessMux))
	protectedMux.Handle("/access", http.StripPrefix("/access", withRoot(accessMux)))
	protectedMux.HandleFunc("GET /shared/{owner}", h.GetSharedFiles)
	protectedMux.HandleFunc("GET /dashboard", h.Dashboard)

	mainMux.Handle("/api/v1/",
		http.StripPrefix(
			"/api/v1",
			middleware.AuthMiddleware(h.JWTSecret)(protectedMux),
		),
	)

	zap.L().Info("Router initialized")
	handler := c.Handler(mainMux)
	var obs middleware.RequestObserver
	if m != nil {
		obs = m
	}
	handler = middleware.Logger(obs)(handler)
	return handler
}

// withRoot lets "/files" reach a sub-mux that registers its index as "/".
func withRoot(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" {
			r.URL.Path = "/"
		}
		next.ServeHTTP(w, r)
	})
}
