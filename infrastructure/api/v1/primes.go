// Package v1 provides the v1 API routes.
package v1

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/helixml/primes"
	"github.com/helixml/primes/application/service"
	"github.com/helixml/primes/infrastructure/api/middleware"
)

// PrimeResponse answers a primality check.
type PrimeResponse struct {
	Number uint64 `json:"number"`
	Prime  bool   `json:"prime"`
}

// PrimesRouter handles prime search API endpoints.
type PrimesRouter struct {
	client *primes.Client
	search service.Search
}

// NewPrimesRouter creates a new PrimesRouter. Searches wider than
// maxInterval are rejected; 0 means no limit.
func NewPrimesRouter(client *primes.Client, maxInterval uint64) *PrimesRouter {
	return &PrimesRouter{
		client: client,
		search: client.Search.WithMaxInterval(maxInterval),
	}
}

// Routes returns the chi router for prime endpoints.
func (r *PrimesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/largest-prime", r.LargestPrime)
	router.Get("/primes/{n}", r.IsPrime)

	return router
}

// LargestPrime handles GET /api/v1/largest-prime?start=&end=.
// A missing end searches the single value start.
func (r *PrimesRouter) LargestPrime(w http.ResponseWriter, req *http.Request) {
	logger := r.client.Logger()

	query := req.URL.Query()
	start, err := parseUint("start", query.Get("start"))
	if err != nil {
		middleware.WriteError(w, req, err, logger)
		return
	}

	end := start
	if raw := query.Get("end"); raw != "" {
		end, err = parseUint("end", raw)
		if err != nil {
			middleware.WriteError(w, req, err, logger)
			return
		}
	}

	report, err := r.search.Run(req.Context(), start, end)
	if err != nil {
		middleware.WriteError(w, req, err, logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, report)
}

// IsPrime handles GET /api/v1/primes/{n}.
func (r *PrimesRouter) IsPrime(w http.ResponseWriter, req *http.Request) {
	logger := r.client.Logger()

	n, err := parseUint("n", chi.URLParam(req, "n"))
	if err != nil {
		middleware.WriteError(w, req, err, logger)
		return
	}

	ok, err := r.search.IsPrime(req.Context(), n)
	if err != nil {
		middleware.WriteError(w, req, err, logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, PrimeResponse{Number: n, Prime: ok})
}

func parseUint(name, raw string) (uint64, error) {
	if raw == "" {
		return 0, middleware.NewAPIError(http.StatusBadRequest, name+" is required", nil)
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, middleware.NewAPIError(http.StatusBadRequest, "invalid "+name, err)
	}
	return v, nil
}

