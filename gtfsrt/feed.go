package gtfsrt

import (
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// TripDelay is the realtime signal for one trip: the per-stop delays in
// feed order and whether any stop was skipped or the trip canceled outright.
type TripDelay struct {
	TripID            string
	StopDelaysSeconds []int32
	Cancelled         bool
}

// Feed is a decoded TripUpdates message indexed by trip id. Transient: it
// belongs to one resolution request and is not persisted.
type Feed struct {
	headerTimestamp int64
	delays          map[string]TripDelay
}

// NewFeed builds a Feed from already-decoded delay records, for callers
// that obtain trip updates through their own transport.
func NewFeed(delays ...TripDelay) *Feed {
	f := &Feed{delays: make(map[string]TripDelay, len(delays))}
	for _, td := range delays {
		f.delays[td.TripID] = td
	}
	return f
}

// ParseTripUpdates decodes raw TripUpdates protobuf bytes. Entities without
// a trip id are skipped; stop-time updates carrying neither a delay nor a
// schedule relationship contribute a zero ("no delay signal") rather than
// failing the entity.
func ParseTripUpdates(b []byte) (*Feed, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, fmt.Errorf("decode trip updates feed: %w", err)
	}

	feed := &Feed{delays: map[string]TripDelay{}}
	if fm.Header != nil && fm.Header.Timestamp != nil {
		feed.headerTimestamp = int64(*fm.Header.Timestamp)
	}

	for _, e := range fm.Entity {
		tu := e.TripUpdate
		if tu == nil || tu.Trip == nil || tu.Trip.TripId == nil {
			continue
		}
		td := TripDelay{TripID: *tu.Trip.TripId}

		if tu.Trip.ScheduleRelationship != nil &&
			*tu.Trip.ScheduleRelationship == gtfsrtpb.TripDescriptor_CANCELED {
			td.Cancelled = true
		}

		for _, stu := range tu.StopTimeUpdate {
			if stu.ScheduleRelationship != nil &&
				*stu.ScheduleRelationship == gtfsrtpb.TripUpdate_StopTimeUpdate_SKIPPED {
				td.Cancelled = true
			}
			td.StopDelaysSeconds = append(td.StopDelaysSeconds, stopDelaySeconds(stu))
		}

		feed.delays[td.TripID] = td
	}
	return feed, nil
}

// stopDelaySeconds extracts the delay of one stop-time update, preferring
// the departure event. Missing fields mean no signal, not an error.
func stopDelaySeconds(stu *gtfsrtpb.TripUpdate_StopTimeUpdate) int32 {
	if stu.Departure != nil && stu.Departure.Delay != nil {
		return *stu.Departure.Delay
	}
	if stu.Arrival != nil && stu.Arrival.Delay != nil {
		return *stu.Arrival.Delay
	}
	return 0
}

// DelayForTrip returns the delay record matching a trip id exactly.
func (f *Feed) DelayForTrip(tripID string) (TripDelay, bool) {
	if f == nil {
		return TripDelay{}, false
	}
	td, ok := f.delays[tripID]
	return td, ok
}

// Timestamp returns the feed header timestamp (unix seconds), 0 if absent.
func (f *Feed) Timestamp() int64 {
	if f == nil {
		return 0
	}
	return f.headerTimestamp
}

// Len reports how many trips carry realtime records.
func (f *Feed) Len() int {
	if f == nil {
		return 0
	}
	return len(f.delays)
}
