package commuter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/obs-gh-trevorColby/caltrain-commuter-app/gtfs"
	"github.com/obs-gh-trevorColby/caltrain-commuter-app/gtfsrt"
)

// DefaultLimit bounds the result set when the caller does not override it.
const DefaultLimit = 5

// Request is one origin/destination resolution query. Now defaults to the
// wall clock; FeedUpdates and ScrapedDelays are optional injected realtime
// overlays, nil meaning "source unavailable".
type Request struct {
	Origin        string
	Destination   string
	Now           time.Time
	FeedUpdates   *gtfsrt.Feed
	ScrapedDelays map[string]int
}

// Result is the ordered departure list plus provenance flags the
// presentation layer needs to label degraded output.
type Result struct {
	Trains               []ResolvedTrain `json:"trains"`
	UsedFallbackData     bool            `json:"usedFallbackData"`
	Synthetic            bool            `json:"synthetic"`
	LowConfidenceMapping bool            `json:"lowConfidenceMapping,omitempty"`
}

// Resolver answers next-departure queries against a dataset store.
type Resolver struct {
	store *gtfs.Store
	loc   *time.Location
	limit int
}

// NewResolver builds a Resolver around a Store. limit <= 0 selects
// DefaultLimit.
func NewResolver(store *gtfs.Store, limit int) (*Resolver, error) {
	loc, err := time.LoadLocation(gtfs.OperatorTimezone)
	if err != nil {
		return nil, fmt.Errorf("load operator timezone: %w", err)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Resolver{store: store, loc: loc, limit: limit}, nil
}

// NextTrains resolves the next upcoming departures from origin to
// destination. Degradation is deliberate end to end: no dataset yields
// synthetic placeholder trains, no active service or no matching stops
// yields an empty list. None of those conditions is an error to the caller.
func (r *Resolver) NextTrains(ctx context.Context, req Request) (Result, error) {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	snap, err := r.store.EnsureFresh(ctx)
	if err != nil {
		if errors.Is(err, gtfs.ErrUnavailable) {
			log.Warn().Str("origin", req.Origin).Str("destination", req.Destination).
				Msg("No dataset available, emitting synthetic schedule")
			return r.syntheticResult(req, now), nil
		}
		return Result{}, err
	}

	direction, _ := gtfs.TravelDirection(req.Origin, req.Destination)
	originMapping := gtfs.StopIDFor(req.Origin, direction)
	destMapping := gtfs.StopIDFor(req.Destination, direction)

	result := Result{
		UsedFallbackData:     snap.Fallback || time.Since(snap.LoadedAt) >= r.store.TTL(),
		LowConfidenceMapping: !originMapping.Exact || !destMapping.Exact,
	}
	if result.LowConfidenceMapping {
		log.Warn().Str("origin", req.Origin).Str("destination", req.Destination).
			Msg("Unmapped station code, using synthesized stop id")
	}

	serviceID, ok := gtfs.ActiveService(now, r.loc, snap)
	if !ok {
		log.Info().Time("at", now).Msg("No active service for query date")
		return result, nil
	}

	local := now.In(r.loc)
	serviceDate := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.loc)

	var candidates []candidate
	for _, trip := range snap.TripsForService(serviceID) {
		originStop, okO := snap.StopTimeAt(trip.ID, originMapping.StopID)
		destStop, okD := snap.StopTimeAt(trip.ID, destMapping.StopID)
		if !okO || !okD || originStop.StopSequence >= destStop.StopSequence {
			continue
		}

		// Departure and arrival are materialized independently: either
		// may cross a day boundary or a DST transition on its own.
		scheduledDeparture, err := gtfs.MaterializeClock(originStop.DepartureTime, serviceDate, r.loc)
		if err != nil {
			log.Debug().Err(err).Str("trip", trip.ID).Msg("Skipping trip with malformed departure time")
			continue
		}
		scheduledArrival, err := gtfs.MaterializeClock(destStop.ArrivalTime, serviceDate, r.loc)
		if err != nil {
			log.Debug().Err(err).Str("trip", trip.ID).Msg("Skipping trip with malformed arrival time")
			continue
		}

		trainNumber := trip.ShortName
		if trainNumber == "" {
			trainNumber = trip.ID
		}

		overlay := overlayDelays(trip.ID, trainNumber, scheduledDeparture, scheduledArrival,
			req.FeedUpdates, req.ScrapedDelays)
		if overlay.cancelled {
			log.Debug().Str("trip", trip.ID).Str("train", trainNumber).Msg("Trip cancelled in realtime feed")
			continue
		}

		candidates = append(candidates, candidate{
			train: ResolvedTrain{
				TrainNumber:     trainNumber,
				TripID:          trip.ID,
				Direction:       direction.String(),
				Departure:       overlay.actualDeparture,
				Arrival:         overlay.actualArrival,
				DurationMinutes: int(overlay.actualArrival.Sub(overlay.actualDeparture) / time.Minute),
				DelayMinutes:    overlay.delayMinutes,
				Type:            classifyByStops(snap.StopCountForTrip(trip.ID)),
			},
			scheduledDeparture: scheduledDeparture,
			actualDeparture:    overlay.actualDeparture,
			actualArrival:      overlay.actualArrival,
			hasDelay:           overlay.hasDelay,
		})
	}

	result.Trains = selectTrains(candidates, now, r.limit)
	return result, nil
}
