package commuter

import (
	"math"
	"time"

	"github.com/obs-gh-trevorColby/caltrain-commuter-app/gtfsrt"
)

// overlayResult carries the realtime-adjusted times for one trip.
type overlayResult struct {
	actualDeparture time.Time
	actualArrival   time.Time
	delayMinutes    int
	hasDelay        bool
	cancelled       bool
}

// overlayDelays merges the two realtime sources onto a trip's scheduled
// times. The TripUpdates feed is authoritative when it has an exact trip-id
// match; the scraped source, keyed only by the display number, is consulted
// when the feed is silent or reports exactly zero. Whichever delay wins is
// applied identically to departure and arrival: the model does not support
// a delay that differs between the endpoints.
func overlayDelays(tripID, trainNumber string, scheduledDeparture, scheduledArrival time.Time,
	feed *gtfsrt.Feed, scraped map[string]int) overlayResult {

	out := overlayResult{
		actualDeparture: scheduledDeparture,
		actualArrival:   scheduledArrival,
	}

	delayMinutes := 0
	if td, ok := feed.DelayForTrip(tripID); ok {
		if td.Cancelled {
			out.cancelled = true
			return out
		}
		delayMinutes = peakDelayMinutes(td.StopDelaysSeconds)
	}

	// The scraped page is lower fidelity but more consistently available.
	if delayMinutes == 0 {
		if minutes, ok := scraped[trainNumber]; ok {
			delayMinutes = minutes
		}
	}

	if delayMinutes != 0 {
		d := time.Duration(delayMinutes) * time.Minute
		out.actualDeparture = scheduledDeparture.Add(d)
		out.actualArrival = scheduledArrival.Add(d)
		out.delayMinutes = delayMinutes
		out.hasDelay = true
	}
	return out
}

// peakDelayMinutes picks the maximum-magnitude per-stop delay, keeping its
// sign, rounded to the nearest minute. Delay usually accumulates along the
// route, so the peak, not the first stop, is the trip's effective delay.
func peakDelayMinutes(stopDelaysSeconds []int32) int {
	var peak int32
	for _, d := range stopDelaysSeconds {
		if abs32(d) > abs32(peak) {
			peak = d
		}
	}
	return int(math.Round(float64(peak) / 60))
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
