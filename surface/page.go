// Package surface holds the dashboard.Surface adapters: a JSON page
// document for the HTTP API, plain console text and Sheets-ready CSV.
package surface

import (
	"github.com/ssinghee2000/pizza-sales-analysis-dashboard/dashboard"
)

// ============================================================================
// PAGE — tabbed JSON document
// ============================================================================

// Document is the JSON shape served to the web front end.
type Document struct {
	Title   string    `json:"title"`
	Period  string    `json:"period,omitempty"`
	NoData  bool      `json:"noData"`
	Message string    `json:"message,omitempty"`
	Tabs    []TabPage `json:"tabs"`
}

// TabPage is everything shown under one tab.
type TabPage struct {
	Name    string            `json:"name"`
	Metrics []dashboard.KPI   `json:"metrics,omitempty"`
	Charts  []dashboard.Panel `json:"charts,omitempty"`
	Text    []TextBlock       `json:"text,omitempty"`
}

// TextBlock is a heading with its paragraph.
type TextBlock struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Page collects published items into a Document.
type Page struct {
	doc   Document
	index map[dashboard.Tab]int
}

// NewPage returns a Page with every tab present, in display order.
func NewPage() *Page {
	p := &Page{index: make(map[dashboard.Tab]int, len(dashboard.Tabs))}
	for i, t := range dashboard.Tabs {
		p.index[t] = i
		p.doc.Tabs = append(p.doc.Tabs, TabPage{Name: string(t)})
	}
	return p
}

func (p *Page) tab(t dashboard.Tab) *TabPage {
	i, ok := p.index[t]
	if !ok {
		i = len(p.doc.Tabs)
		p.index[t] = i
		p.doc.Tabs = append(p.doc.Tabs, TabPage{Name: string(t)})
	}
	return &p.doc.Tabs[i]
}

func (p *Page) Header(title, period string) {
	p.doc.Title = title
	p.doc.Period = period
}

func (p *Page) Metric(k dashboard.KPI) {
	t := p.tab(k.Tab)
	t.Metrics = append(t.Metrics, k)
}

func (p *Page) Chart(panel dashboard.Panel) {
	t := p.tab(panel.Tab)
	t.Charts = append(t.Charts, panel)
}

// Text always lands on the conclusions tab.
func (p *Page) Text(heading, body string) {
	t := p.tab(dashboard.TabConclusions)
	t.Text = append(t.Text, TextBlock{Heading: heading, Body: body})
}

func (p *Page) Empty(message string) {
	p.doc.NoData = true
	p.doc.Message = message
	p.doc.Tabs = nil
}

// Document returns the collected page.
func (p *Page) Document() Document { return p.doc }
