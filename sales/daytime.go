package sales

// Daytime buckets the hour of an order.
type Daytime string

const (
	Morning   Daytime = "Morning"   // [0, 12)
	Afternoon Daytime = "Afternoon" // [12, 17)
	Evening   Daytime = "Evening"   // [17, 21)
	Night     Daytime = "Night"     // [21, 24)
)

// Daytimes lists the buckets in clock order.
var Daytimes = []Daytime{Morning, Afternoon, Evening, Night}

// DaytimeForHour maps an hour in 0..23 to its bucket.
// Out-of-range hours are clamped to the nearest bucket.
func DaytimeForHour(hour int) Daytime {
	switch {
	case hour < 12:
		return Morning
	case hour < 17:
		return Afternoon
	case hour < 21:
		return Evening
	default:
		return Night
	}
}
