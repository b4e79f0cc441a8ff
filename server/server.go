// Package server exposes the dashboard over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/cache"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/dashboard"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/logging"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/sales"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/schema"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/surface"
)

// Config wires the server to its collaborators. Cache may be nil.
type Config struct {
	Store       *sales.Store
	Builder     *dashboard.Builder
	Cache       cache.Cache
	Log         *slog.Logger
	CORSOrigins []string
}

// Server serves the dashboard API.
type Server struct {
	store   *sales.Store
	builder *dashboard.Builder
	cache   cache.Cache
	log     *slog.Logger
	tracer  trace.Tracer
	origins []string
}

// New returns a Server. A nil logger discards output.
func New(cfg Config) *Server {
	log := cfg.Log
	if log == nil {
		log = logging.Discard()
	}
	b := cfg.Builder
	if b == nil {
		b = dashboard.NewBuilder(dashboard.WithLogger(log))
	}
	return &Server{
		store:   cfg.Store,
		builder: b,
		cache:   cfg.Cache,
		log:     logging.WithComponent(log, "http"),
		tracer:  otel.Tracer("pizzadash-http"),
		origins: cfg.CORSOrigins,
	}
}

// Routes builds the gin engine.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.requestLogger())

	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader, cacheHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(s.origins) == 0 || (len(s.origins) == 1 && s.origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.origins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "rows": s.store.Len()})
	})

	api := r.Group("/api")
	{
		api.GET("/filters", s.filters)
		api.GET("/dashboard", s.dashboard)
	}
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("http shutdown complete")
	return nil
}

// ============================================================================
// HANDLERS
// ============================================================================

type filtersResponse struct {
	Options  sales.FilterOptions `json:"options"`
	Defaults sales.FilterState   `json:"defaults"`
	Trends   []dashboard.Trend   `json:"trends"`
	Schema   schema.Config       `json:"schema"`
}

func (s *Server) filters(c *gin.Context) {
	c.JSON(http.StatusOK, filtersResponse{
		Options:  s.store.FilterOptions(),
		Defaults: s.store.DefaultFilterState(),
		Trends:   []dashboard.Trend{dashboard.TrendDaily, dashboard.TrendMonthly},
		Schema:   schema.PizzaSales(),
	})
}

func (s *Server) dashboard(c *gin.Context) {
	ctx, span := s.tracer.Start(c.Request.Context(), "GetDashboard")
	defer span.End()

	trend, err := dashboard.ParseTrend(c.Query("trend"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st := s.filterState(c)
	key := "dashboard:" + st.Key() + "|" + string(trend)

	if s.cache != nil {
		b, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			c.Header(cacheHeader, "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", b)
			return
		case !errors.Is(err, cache.ErrMiss):
			s.log.Warn("cache read failed", "key", key, "err", err)
		}
	}

	d, err := s.builder.Build(ctx, s.store.Rows(), st, trend)
	if err != nil {
		s.log.Error("dashboard build failed", "err", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}

	page := surface.NewPage()
	dashboard.Publish(d, page)
	body, err := json.Marshal(page.Document())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode dashboard"})
		return
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, body); err != nil {
			s.log.Warn("cache write failed", "key", key, "err", err)
		}
		c.Header(cacheHeader, "MISS")
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// filterState reads month, category and size. Each may repeat or carry a
// comma-separated list. A missing month means All; a missing category or
// size means every value. A present but empty parameter selects nothing.
func (s *Server) filterState(c *gin.Context) sales.FilterState {
	st := s.store.DefaultFilterState()
	if v, ok := c.GetQueryArray("month"); ok {
		st.Months = splitValues(v)
	}
	if v, ok := c.GetQueryArray("category"); ok {
		st.Categories = splitValues(v)
	}
	if v, ok := c.GetQueryArray("size"); ok {
		st.Sizes = splitValues(v)
	}
	return st
}

func splitValues(values []string) []string {
	out := []string{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
