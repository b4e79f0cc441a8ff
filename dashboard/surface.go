package dashboard

// Surface draws a dashboard. Implementations decide layout and format;
// the pipeline only hands them labelled values, charts and text.
type Surface interface {
	Header(title, period string)
	Metric(k KPI)
	Chart(p Panel)
	Text(heading, body string)
	Empty(message string)
}

// Publish walks d in display order: header, then either the empty state or
// KPIs, panels and insight sections.
func Publish(d *Dashboard, s Surface) {
	s.Header(d.Title, d.Period)
	if d.NoData {
		s.Empty(d.Message)
		return
	}
	for _, k := range d.KPIs {
		s.Metric(k)
	}
	for _, p := range d.Panels {
		s.Chart(p)
	}
	for _, sec := range d.Insights {
		s.Text(sec.Heading, sec.Body())
	}
}
