package commuter

import (
	"fmt"
	"time"

	"github.com/obs-gh-trevorColby/caltrain-commuter-app/gtfs"
)

// syntheticResult fabricates a placeholder board when no dataset has ever
// loaded: hourly departures starting at the next top of the hour. The
// Synthetic flag is the contract with downstream consumers; they must not
// render these as live data.
func (r *Resolver) syntheticResult(req Request, now time.Time) Result {
	direction, known := gtfs.TravelDirection(req.Origin, req.Destination)

	first := now.In(r.loc).Truncate(time.Hour).Add(time.Hour)
	trains := make([]ResolvedTrain, 0, r.limit)
	for i := 0; i < r.limit; i++ {
		departure := first.Add(time.Duration(i) * time.Hour)
		arrival := departure.Add(60 * time.Minute)
		trains = append(trains, ResolvedTrain{
			TrainNumber:     fmt.Sprintf("9%02d", i+1),
			TripID:          fmt.Sprintf("synthetic-%d", i+1),
			Direction:       direction.String(),
			Departure:       departure,
			Arrival:         arrival,
			DurationMinutes: 60,
			Type:            TypeLocal,
		})
	}
	return Result{
		Trains:               trains,
		UsedFallbackData:     true,
		Synthetic:            true,
		LowConfidenceMapping: !known,
	}
}
