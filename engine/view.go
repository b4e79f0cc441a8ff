package engine

import "github.com/shopspring/decimal"

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns consumer data. It reads through this interface.
//
// Implementations:
//   DomainView[T]  — reads typed structs via accessor functions (zero-copy)
//   SubView        — filtered subset (indices into parent, zero-copy)
//   ExplodedView   — one synthetic row per element of a list field
//
// Consumers register accessors once at init; engine reads many times.
// ============================================================================

// RecordView provides indexed access to a dataset.
// The engine calls Dimension/Measure in tight loops — keep implementations fast.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) decimal.Decimal
	List(index int, key string) []string
	DimensionKeys() []string // available dimension keys
	MeasureKeys() []string   // available measure keys
}

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent — no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) decimal.Decimal {
	if i < 0 || i >= len(v.indices) {
		return decimal.Zero
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) List(i int, key string) []string {
	if i < 0 || i >= len(v.indices) {
		return nil
	}
	return v.parent.List(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// EXPLODED VIEW — one row per list element
// ============================================================================

// ExplodedView exposes each element of a list field as its own row.
// The element is readable as dimension `as`; every other key reads through
// to the source row, so measures are repeated per element.
type ExplodedView struct {
	parent  RecordView
	as      string
	rows    []int
	values  []string
	dimKeys []string
}

// Explode expands listKey into one row per (source row, element) pair.
// Source order is preserved: rows first, then element order within a row.
// Rows with an empty list produce nothing.
func Explode(view RecordView, listKey, as string) RecordView {
	ev := &ExplodedView{parent: view, as: as}
	for i := 0; i < view.Len(); i++ {
		for _, item := range view.List(i, listKey) {
			ev.rows = append(ev.rows, i)
			ev.values = append(ev.values, item)
		}
	}
	ev.dimKeys = append(append([]string{}, view.DimensionKeys()...), as)
	return ev
}

func (v *ExplodedView) Len() int { return len(v.rows) }

func (v *ExplodedView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.rows) {
		return ""
	}
	if key == v.as {
		return v.values[i]
	}
	return v.parent.Dimension(v.rows[i], key)
}

func (v *ExplodedView) Measure(i int, key string) decimal.Decimal {
	if i < 0 || i >= len(v.rows) {
		return decimal.Zero
	}
	return v.parent.Measure(v.rows[i], key)
}

func (v *ExplodedView) List(i int, key string) []string {
	if i < 0 || i >= len(v.rows) {
		return nil
	}
	return v.parent.List(v.rows[i], key)
}

func (v *ExplodedView) DimensionKeys() []string { return v.dimKeys }
func (v *ExplodedView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// DOMAIN ADAPTER — Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[sales.Row]().
//	    Dimension("pizza_category", func(r sales.Row) string { return r.PizzaCategory }).
//	    Measure("total_price", func(r sales.Row) decimal.Decimal { return r.TotalPrice })
//
//	view := adapter.Bind(rows)
//	result, _ := engine.Execute(spec, view)
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	dimOrder []string
	mesOrder []string
	dims     map[string]func(T) string
	meas     map[string]func(T) decimal.Decimal
	lists    map[string]func(T) []string
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims:  make(map[string]func(T) string),
		meas:  make(map[string]func(T) decimal.Decimal),
		lists: make(map[string]func(T) []string),
	}
}

// Dimension registers a dimension accessor.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	if _, exists := a.dims[key]; !exists {
		a.dimOrder = append(a.dimOrder, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a measure accessor.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) decimal.Decimal) *DomainAdapter[T] {
	if _, exists := a.meas[key]; !exists {
		a.mesOrder = append(a.mesOrder, key)
	}
	a.meas[key] = fn
	return a
}

// List registers a multi-valued field accessor, usable with Explode.
func (a *DomainAdapter[T]) List(key string, fn func(T) []string) *DomainAdapter[T] {
	a.lists[key] = fn
	return a
}

// Bind creates a RecordView from a data slice. Zero-copy — holds reference.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{
		data:     data,
		dims:     a.dims,
		meas:     a.meas,
		lists:    a.lists,
		dimKeys:  a.dimOrder,
		measKeys: a.mesOrder,
	}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data     []T
	dims     map[string]func(T) string
	meas     map[string]func(T) decimal.Decimal
	lists    map[string]func(T) []string
	dimKeys  []string
	measKeys []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.data) {
		return ""
	}
	if fn, ok := v.dims[key]; ok {
		return fn(v.data[i])
	}
	return ""
}

func (v *DomainView[T]) Measure(i int, key string) decimal.Decimal {
	if i < 0 || i >= len(v.data) {
		return decimal.Zero
	}
	if fn, ok := v.meas[key]; ok {
		return fn(v.data[i])
	}
	return decimal.Zero
}

func (v *DomainView[T]) List(i int, key string) []string {
	if i < 0 || i >= len(v.data) {
		return nil
	}
	if fn, ok := v.lists[key]; ok {
		return fn(v.data[i])
	}
	return nil
}

func (v *DomainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.measKeys }
