package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/server"

	"github.com/helixml/primes"
	apimiddleware "github.com/helixml/primes/infrastructure/api/middleware"
	v1 "github.com/helixml/primes/infrastructure/api/v1"
	mcpinternal "github.com/helixml/primes/internal/mcp"
)

// requestTimeout bounds every /api/v1 request.
const requestTimeout = 60 * time.Second

// APIServer provides an HTTP API backed by a primes Client.
type APIServer struct {
	client      *primes.Client
	corsOrigins []string
	version     string
	maxInterval uint64
}

// NewAPIServer creates a new APIServer wired to the given Client. Requests
// from corsOrigins are allowed cross-origin; no origins disables CORS.
func NewAPIServer(client *primes.Client, corsOrigins []string, version string) *APIServer {
	return &APIServer{
		client:      client,
		corsOrigins: corsOrigins,
		version:     version,
	}
}

// WithMaxInterval limits the interval width accepted by the v1 API and the
// MCP tools. 0 means no limit.
func (a *APIServer) WithMaxInterval(n uint64) *APIServer {
	a.maxInterval = n
	return a
}

// mountRoutes wires the health check, the v1 API and MCP on router.
func (a *APIServer) mountRoutes(router chi.Router) {
	if len(a.corsOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: a.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Correlation-ID", "Mcp-Session-Id"},
			ExposedHeaders: []string{"X-Correlation-ID", "Mcp-Session-Id"},
			MaxAge:         300,
		}))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	primesRouter := v1.NewPrimesRouter(a.client, a.maxInterval)
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(requestTimeout))
		r.Mount("/", primesRouter.Routes())
	})

	// MCP streams responses, so it stays outside the timeout group.
	mcpSrv := mcpinternal.NewServer(a.client.Search.WithMaxInterval(a.maxInterval), a.version, a.client.Logger())
	router.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apimiddleware.WriteError(w, r, apimiddleware.NewAPIError(http.StatusNotFound, "route not found", nil), a.client.Logger())
	})
}

// Server returns a Server listening on addr with every route mounted.
func (a *APIServer) Server(addr string) Server {
	srv := NewServer(addr, a.client.Logger())
	a.mountRoutes(srv.Router())
	return srv
}

// Handler returns the fully wired router as an http.Handler.
func (a *APIServer) Handler() http.Handler {
	return a.Server("").Router()
}
