package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/creatorpulse/earnings-cli/internal/config"
	"github.com/creatorpulse/earnings-cli/internal/engine"
	"github.com/creatorpulse/earnings-cli/internal/estimator"
	"github.com/creatorpulse/earnings-cli/internal/rates"
	"github.com/creatorpulse/earnings-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		svc, err := newService()
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(svc, st, cfg.Server),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// estimateRequest is the JSON body of the estimate endpoints.
type estimateRequest struct {
	Platform string `json:"platform"`
	engine.RawInput
	Save bool `json:"save,omitempty"`
}

// newRouter builds the API routes. Separated from the serve command so tests
// can drive the handlers directly.
func newRouter(svc *estimator.Service, st store.Store, serverCfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(rateLimit(rate.NewLimiter(rate.Limit(serverCfg.RateLimitPerSec), serverCfg.RateLimitBurst)))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/estimate", func(w http.ResponseWriter, req *http.Request) {
		var body estimateRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := svc.Estimate(req.Context(), body.RawInput, body.Platform)
		if err != nil {
			writeEstimateError(w, err)
			return
		}
		saveEstimate(req, st, body, result)
		writeJSON(w, http.StatusOK, result)
	})

	r.Post("/v1/estimate/enterprise", func(w http.ResponseWriter, req *http.Request) {
		var body estimateRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := svc.EstimateEnterprise(req.Context(), body.RawInput, body.Platform)
		if err != nil {
			writeEstimateError(w, err)
			return
		}
		saveEstimate(req, st, body, result.Calculation)
		writeJSON(w, http.StatusOK, result)
	})

	r.Get("/v1/benchmarks", func(w http.ResponseWriter, req *http.Request) {
		platform := req.URL.Query().Get("platform")
		niche := req.URL.Query().Get("niche")

		b, err := svc.IndustryBenchmarks(req.Context(), platform, niche)
		if err != nil {
			writeEstimateError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	})

	r.Get("/v1/estimates", func(w http.ResponseWriter, req *http.Request) {
		records, err := st.ListEstimates(req.Context(), store.Filter{
			Platform: req.URL.Query().Get("platform"),
			Niche:    req.URL.Query().Get("niche"),
		})
		if err != nil {
			zap.L().Error("list estimates failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if records == nil {
			records = []store.Record{}
		}
		writeJSON(w, http.StatusOK, records)
	})

	return r
}

// rateLimit applies a global token-bucket limit across all clients.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

// saveEstimate persists the result when the request asks for it. Persistence
// failures are logged, not surfaced; the estimate itself succeeded.
func saveEstimate(req *http.Request, st store.Store, body estimateRequest, result *engine.CalculationResult) {
	if !body.Save || st == nil {
		return
	}
	in, err := engine.Normalize(body.RawInput)
	if err != nil {
		return
	}
	if _, err := st.SaveEstimate(req.Context(), rates.Platform(body.Platform), in, result); err != nil {
		zap.L().Warn("save estimate failed", zap.Error(err))
	}
}

// writeEstimateError maps domain errors to status codes.
func writeEstimateError(w http.ResponseWriter, err error) {
	switch {
	case eris.Is(err, engine.ErrInvalidInput), eris.Is(err, rates.ErrUnsupportedPlatform):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		zap.L().Error("estimate failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
