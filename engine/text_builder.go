package engine

import (
	"fmt"
)

// ============================================================================
// PERIOD HELPER
// ============================================================================

// DerivePeriod builds a human-readable period string from the temporal
// dimension of a view: "No data", a single label, or "earliest – latest".
func DerivePeriod(view RecordView, dimension string) string {
	if view.Len() == 0 {
		return "No data"
	}

	labels := UniqueValues(view, dimension)
	if len(labels) == 0 {
		return "All time"
	}
	if len(labels) == 1 {
		return labels[0]
	}

	earliest, latest := labels[0], labels[0]
	earliestOrder := parseSortableDate(earliest)
	latestOrder := earliestOrder

	for _, l := range labels[1:] {
		order := parseSortableDate(l)
		if order < earliestOrder {
			earliest, earliestOrder = l, order
		}
		if order > latestOrder {
			latest, latestOrder = l, order
		}
	}

	if earliest == latest {
		return earliest
	}
	return fmt.Sprintf("%s – %s", earliest, latest)
}
