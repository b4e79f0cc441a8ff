// Package dashboard turns a filter selection into a render-ready pizza-sales
// dashboard: headline KPIs, tabbed chart panels and a narrative summary.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/engine"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/logging"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/sales"
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/schema"
)

// Title is the page heading.
const Title = "Pizza Sales Dashboard"

// NoDataMessage is shown instead of charts for an empty selection.
const NoDataMessage = "No data available"

// Dashboard is the outcome of one render pass.
type Dashboard struct {
	Title    string            `json:"title"`
	Period   string            `json:"period,omitempty"`
	Filters  sales.FilterState `json:"filters"`
	Trend    Trend             `json:"trend"`
	NoData   bool              `json:"noData"`
	Message  string            `json:"message,omitempty"`
	Metrics  *Metrics          `json:"metrics,omitempty"`
	KPIs     []KPI             `json:"kpis,omitempty"`
	Panels   []Panel           `json:"panels,omitempty"`
	Insights []Section         `json:"insights,omitempty"`
}

// ============================================================================
// OPTIONS
// ============================================================================

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger. Records carry component=dashboard.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = logging.WithComponent(l, "dashboard")
		}
	}
}

// WithTracer overrides the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(b *Builder) { b.tracer = t }
}

// WithEngineOptions passes options through to every engine.Execute call.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(b *Builder) { b.engineOpts = append(b.engineOpts, opts...) }
}

// ============================================================================
// BUILDER
// ============================================================================

// Builder runs render passes. It holds no per-pass state and is safe for
// concurrent use.
type Builder struct {
	log        *slog.Logger
	tracer     trace.Tracer
	engineOpts []engine.Option
}

// NewBuilder returns a Builder with a discarding logger and the global tracer.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		log:        logging.Discard(),
		tracer:     otel.Tracer("pizzadash-dashboard"),
		engineOpts: []engine.Option{
			engine.WithCurrency("$"),
			engine.WithLabels(schema.PizzaSales().DisplayName),
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build filters rows, short-circuits on an empty selection and otherwise
// aggregates, summarizes and lays out the dashboard.
func (b *Builder) Build(ctx context.Context, rows []sales.Row, st sales.FilterState, trend Trend) (*Dashboard, error) {
	_, span := b.tracer.Start(ctx, "dashboard.Build", trace.WithAttributes(
		attribute.String("filters", st.Key()),
		attribute.String("trend", string(trend)),
	))
	defer span.End()
	start := time.Now()

	d := &Dashboard{Title: Title, Filters: st, Trend: trend}

	filtered := sales.Filter(rows, st)
	span.SetAttributes(attribute.Int("rows.filtered", len(filtered)))
	if len(filtered) == 0 {
		d.NoData = true
		d.Message = NoDataMessage
		d.Period = engine.DerivePeriod(sales.Bind(nil), schema.OrderMonth)
		b.log.Info("empty selection", "filters", st.Key())
		return d, nil
	}

	view := sales.Bind(filtered)
	res, err := Aggregate(view, trend, b.engineOpts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	metrics := ComputeMetrics(res)
	d.Period = engine.DerivePeriod(view, schema.OrderMonth)
	d.Metrics = &metrics
	d.KPIs = metrics.KPIs()
	d.Panels = res.Panels()
	d.Insights = Summarize(res).Sections()

	b.log.Debug("dashboard built",
		"filters", st.Key(),
		"trend", trend,
		"rows", len(filtered),
		"panels", len(d.Panels),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return d, nil
}
