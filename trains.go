package commuter

import (
	"sort"
	"time"
)

// TrainType is the service pattern of a trip, inferred from how many stops
// it makes.
type TrainType string

const (
	TypeLocal   TrainType = "Local"
	TypeLimited TrainType = "Limited"
	TypeExpress TrainType = "Express"
)

// Stop-count thresholds for classification. A static heuristic: locals call
// everywhere, expresses skip most of the corridor.
const (
	localMinStops   = 20
	limitedMinStops = 13
)

// classifyByStops maps a trip's total stop count to its service pattern.
func classifyByStops(stopCount int) TrainType {
	switch {
	case stopCount >= localMinStops:
		return TypeLocal
	case stopCount >= limitedMinStops:
		return TypeLimited
	default:
		return TypeExpress
	}
}

// ResolvedTrain is one upcoming departure, realtime-adjusted.
type ResolvedTrain struct {
	TrainNumber     string    `json:"trainNumber"`
	TripID          string    `json:"tripId"`
	Direction       string    `json:"direction"`
	Departure       time.Time `json:"departure"`
	Arrival         time.Time `json:"arrival"`
	DurationMinutes int       `json:"durationMinutes"`
	DelayMinutes    int       `json:"delayMinutes,omitempty"`
	Type            TrainType `json:"type"`
}

// candidate pairs a resolved train with the scheduling facts the selector
// filters and sorts on.
type candidate struct {
	train              ResolvedTrain
	scheduledDeparture time.Time
	actualDeparture    time.Time
	actualArrival      time.Time
	hasDelay           bool
}

// selectTrains applies the inclusion test, orders by scheduled departure
// and truncates to limit.
//
// Trains that already arrived are dropped. Trains that already left the
// origin stay only when they are running late: an en-route delayed train is
// still useful to show, a departed on-time one is stale noise. Sorting uses
// the scheduled instant so the ordering does not reshuffle as delay
// estimates move around.
func selectTrains(candidates []candidate, queryInstant time.Time, limit int) []ResolvedTrain {
	kept := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.actualArrival.Before(queryInstant) {
			continue
		}
		if c.actualDeparture.Before(queryInstant) && !c.hasDelay {
			continue
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].scheduledDeparture.Before(kept[j].scheduledDeparture)
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	out := make([]ResolvedTrain, len(kept))
	for i, c := range kept {
		out[i] = c.train
	}
	return out
}
