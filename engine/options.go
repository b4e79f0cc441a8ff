package engine

// ============================================================================
// ENGINE OPTIONS — Functional options for Execute()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Currency string   // unit label used when formatting table totals
	Palette  []string // fallback colors when a QuerySpec has none
	Label    Labeler  // display names for dimension keys
}

// Labeler maps a field key to its display name.
type Labeler func(key string) string

// WithCurrency sets the unit label for formatted table totals (e.g., "$").
func WithCurrency(currency string) Option {
	return func(c *config) {
		c.Currency = currency
	}
}

// WithPalette overrides the default chart color palette.
func WithPalette(colors ...string) Option {
	return func(c *config) {
		if len(colors) > 0 {
			c.Palette = colors
		}
	}
}

// WithLabels sets the display names used for table columns and the default
// x-axis title. Keys the labeler does not know are shown as returned.
func WithLabels(label Labeler) Option {
	return func(c *config) {
		if label != nil {
			c.Label = label
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Palette: defaultColors,
		Label:   LabelForDimension,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
