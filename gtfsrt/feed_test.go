package gtfsrt

import (
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

func marshalFeed(t *testing.T, entities ...*gtfsrtpb.FeedEntity) []byte {
	t.Helper()
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(1767800000),
		},
		Entity: entities,
	}
	b, err := proto.Marshal(fm)
	if err != nil {
		t.Fatalf("marshal feed: %v", err)
	}
	return b
}

func tripUpdateEntity(id, tripID string, updates ...*gtfsrtpb.TripUpdate_StopTimeUpdate) *gtfsrtpb.FeedEntity {
	return &gtfsrtpb.FeedEntity{
		Id: proto.String(id),
		TripUpdate: &gtfsrtpb.TripUpdate{
			Trip:           &gtfsrtpb.TripDescriptor{TripId: proto.String(tripID)},
			StopTimeUpdate: updates,
		},
	}
}

func departureDelay(stopID string, seconds int32) *gtfsrtpb.TripUpdate_StopTimeUpdate {
	return &gtfsrtpb.TripUpdate_StopTimeUpdate{
		StopId:    proto.String(stopID),
		Departure: &gtfsrtpb.TripUpdate_StopTimeEvent{Delay: proto.Int32(seconds)},
	}
}

func TestParseTripUpdates(t *testing.T) {
	b := marshalFeed(t,
		tripUpdateEntity("1", "t1",
			departureDelay("70012", 300),
			departureDelay("70112", 780),
			departureDelay("70172", 600),
		),
		tripUpdateEntity("2", "t2"),
	)

	feed, err := ParseTripUpdates(b)
	if err != nil {
		t.Fatalf("ParseTripUpdates: %v", err)
	}
	if feed.Len() != 2 {
		t.Fatalf("feed has %d trips, want 2", feed.Len())
	}
	if feed.Timestamp() != 1767800000 {
		t.Errorf("timestamp = %d", feed.Timestamp())
	}

	td, ok := feed.DelayForTrip("t1")
	if !ok {
		t.Fatal("trip t1 missing")
	}
	if len(td.StopDelaysSeconds) != 3 || td.StopDelaysSeconds[1] != 780 {
		t.Errorf("stop delays = %v", td.StopDelaysSeconds)
	}
	if td.Cancelled {
		t.Error("t1 should not be cancelled")
	}

	if _, ok := feed.DelayForTrip("missing"); ok {
		t.Error("unexpected match for unknown trip")
	}
}

func TestParseTripUpdatesSkippedStopCancelsTrip(t *testing.T) {
	skipped := &gtfsrtpb.TripUpdate_StopTimeUpdate{
		StopId:               proto.String("70112"),
		ScheduleRelationship: gtfsrtpb.TripUpdate_StopTimeUpdate_SKIPPED.Enum(),
	}
	b := marshalFeed(t, tripUpdateEntity("1", "t1", departureDelay("70012", 60), skipped))

	feed, err := ParseTripUpdates(b)
	if err != nil {
		t.Fatal(err)
	}
	td, ok := feed.DelayForTrip("t1")
	if !ok || !td.Cancelled {
		t.Errorf("trip with skipped stop should be cancelled, got %+v", td)
	}
}

func TestParseTripUpdatesCanceledTripDescriptor(t *testing.T) {
	entity := &gtfsrtpb.FeedEntity{
		Id: proto.String("1"),
		TripUpdate: &gtfsrtpb.TripUpdate{
			Trip: &gtfsrtpb.TripDescriptor{
				TripId:               proto.String("t1"),
				ScheduleRelationship: gtfsrtpb.TripDescriptor_CANCELED.Enum(),
			},
		},
	}
	feed, err := ParseTripUpdates(marshalFeed(t, entity))
	if err != nil {
		t.Fatal(err)
	}
	td, ok := feed.DelayForTrip("t1")
	if !ok || !td.Cancelled {
		t.Errorf("canceled trip descriptor should mark trip cancelled, got %+v", td)
	}
}

func TestParseTripUpdatesToleratesPartialEntities(t *testing.T) {
	// Entity with no trip descriptor and an update with no timing fields:
	// neither may fail the parse or pollute other trips.
	noTrip := &gtfsrtpb.FeedEntity{Id: proto.String("1"), TripUpdate: &gtfsrtpb.TripUpdate{}}
	bare := &gtfsrtpb.TripUpdate_StopTimeUpdate{StopId: proto.String("70012")}
	b := marshalFeed(t, noTrip, tripUpdateEntity("2", "t2", bare))

	feed, err := ParseTripUpdates(b)
	if err != nil {
		t.Fatal(err)
	}
	if feed.Len() != 1 {
		t.Fatalf("feed has %d trips, want 1", feed.Len())
	}
	td, _ := feed.DelayForTrip("t2")
	if len(td.StopDelaysSeconds) != 1 || td.StopDelaysSeconds[0] != 0 {
		t.Errorf("bare update should contribute a zero delay, got %v", td.StopDelaysSeconds)
	}
}

func TestParseTripUpdatesMalformedBytes(t *testing.T) {
	if _, err := ParseTripUpdates([]byte{0xff, 0xff, 0x01, 0x02}); err == nil {
		t.Fatal("expected error for malformed protobuf")
	}
}

func TestFeedNilSafe(t *testing.T) {
	var feed *Feed
	if _, ok := feed.DelayForTrip("t1"); ok {
		t.Error("nil feed matched a trip")
	}
	if feed.Len() != 0 || feed.Timestamp() != 0 {
		t.Error("nil feed accessors should be zero")
	}
}
