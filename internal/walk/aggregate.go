package walk

import (
	"log"
	"sort"
	"time"

	"github.com/RRRRRRR-777/TokoToko-sub005/internal/shared/geo"
	"github.com/twpayne/go-polyline"
)

// RouteDistance sums the haversine distance in meters between consecutive
// samples in sequence order. A pair is skipped when either fix reports
// horizontal accuracy worse than accuracyLimitM; such fixes are GPS noise
// and would inflate the total. A limit of 0 disables the filter.
func RouteDistance(samples []LocationSample, accuracyLimitM float64) float64 {
	ordered := orderBySequence(samples)

	var total float64
	for i := 1; i < len(ordered); i++ {
		if noisy(ordered[i-1], accuracyLimitM) || noisy(ordered[i], accuracyLimitM) {
			continue
		}
		total += geo.HaversineM(
			ordered[i-1].Latitude, ordered[i-1].Longitude,
			ordered[i].Latitude, ordered[i].Longitude,
		)
	}
	return total
}

// EncodeRoute encodes the ordered samples as a Google polyline string.
func EncodeRoute(samples []LocationSample) string {
	ordered := orderBySequence(samples)
	if len(ordered) == 0 {
		return ""
	}

	coords := make([][]float64, 0, len(ordered))
	for _, s := range ordered {
		coords = append(coords, []float64{s.Latitude, s.Longitude})
	}
	return string(polyline.EncodeCoords(coords))
}

// ActiveDuration returns the walk's active seconds: elapsed time minus all
// paused time, including an open pause interval when the walk is currently
// paused. Negative results from clock skew clamp to 0 with a warning.
func (w *Walk) ActiveDuration(now time.Time) float64 {
	if w.StartTime == nil {
		return 0
	}

	end := now
	if w.EndTime != nil {
		end = *w.EndTime
	}
	d := end.Sub(*w.StartTime).Seconds() - w.TotalPausedDuration
	if w.Status == StatusPaused && w.PausedAt != nil {
		d -= now.Sub(*w.PausedAt).Seconds()
	}
	if d < 0 {
		log.Printf("clock anomaly: walk %s active duration %.3fs clamped to 0", w.ID, d)
		return 0
	}
	return d
}

func orderBySequence(samples []LocationSample) []LocationSample {
	ordered := make([]LocationSample, len(samples))
	copy(ordered, samples)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].SequenceNumber < ordered[j].SequenceNumber
	})
	return ordered
}

func noisy(s LocationSample, limitM float64) bool {
	return limitM > 0 && s.HorizontalAccuracy != nil && *s.HorizontalAccuracy > limitM
}
