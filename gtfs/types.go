package gtfs

import "time"

// StopTime is one row of stop_times.txt. Clock strings keep the raw GTFS
// form (HH:MM:SS where the hour may exceed 24 for after-midnight service).
type StopTime struct {
	TripID        string `csv:"trip_id"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	StopID        string `csv:"stop_id"`
	StopSequence  int    `csv:"stop_sequence"`
}

// Trip is one row of trips.txt.
type Trip struct {
	RouteID     string `csv:"route_id"`
	ServiceID   string `csv:"service_id"`
	ID          string `csv:"trip_id"`
	Headsign    string `csv:"trip_headsign"`
	ShortName   string `csv:"trip_short_name"`
	DirectionID int    `csv:"direction_id"`
}

// Calendar is one row of calendar.txt: a weekly pattern valid within an
// inclusive YYYYMMDD date range.
type Calendar struct {
	ServiceID string `csv:"service_id"`
	Monday    int    `csv:"monday"`
	Tuesday   int    `csv:"tuesday"`
	Wednesday int    `csv:"wednesday"`
	Thursday  int    `csv:"thursday"`
	Friday    int    `csv:"friday"`
	Saturday  int    `csv:"saturday"`
	Sunday    int    `csv:"sunday"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
}

// Exception types in calendar_dates.txt.
const (
	ExceptionAdded   = 1
	ExceptionRemoved = 2
)

// CalendarDate is one row of calendar_dates.txt, overriding the weekly
// pattern for a single concrete date.
type CalendarDate struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType int    `csv:"exception_type"`
}

// RunsOn reports whether the weekly flag for the given weekday is set.
// Weekday follows time.Weekday (0 = Sunday).
func (c *Calendar) RunsOn(day time.Weekday) bool {
	switch day {
	case time.Sunday:
		return c.Sunday == 1
	case time.Monday:
		return c.Monday == 1
	case time.Tuesday:
		return c.Tuesday == 1
	case time.Wednesday:
		return c.Wednesday == 1
	case time.Thursday:
		return c.Thursday == 1
	case time.Friday:
		return c.Friday == 1
	case time.Saturday:
		return c.Saturday == 1
	}
	return false
}

// Snapshot is one fully-parsed static dataset. It is never mutated after
// Build; the Store swaps whole snapshots on reload.
type Snapshot struct {
	StopTimes     []StopTime
	Trips         []Trip
	Calendars     []Calendar
	CalendarDates []CalendarDate

	LoadedAt time.Time

	// Fallback marks a snapshot parsed from the locally bundled copy
	// rather than the remote archive, so output can be labelled.
	Fallback bool

	tripsByID       map[string]*Trip
	stopTimesByTrip map[string][]StopTime
}

// Build derives the lookup indexes. Called once by the parser; snapshots
// constructed by hand in tests must call it before use.
func (s *Snapshot) Build() {
	s.tripsByID = make(map[string]*Trip, len(s.Trips))
	for i := range s.Trips {
		s.tripsByID[s.Trips[i].ID] = &s.Trips[i]
	}
	s.stopTimesByTrip = make(map[string][]StopTime)
	for _, st := range s.StopTimes {
		s.stopTimesByTrip[st.TripID] = append(s.stopTimesByTrip[st.TripID], st)
	}
}

// TripByID returns the trip for an id, or nil.
func (s *Snapshot) TripByID(id string) *Trip { return s.tripsByID[id] }

// StopTimesForTrip returns all stop-time rows of a trip in dataset order.
func (s *Snapshot) StopTimesForTrip(tripID string) []StopTime {
	return s.stopTimesByTrip[tripID]
}

// StopCountForTrip returns the number of stop-time rows a trip has.
func (s *Snapshot) StopCountForTrip(tripID string) int {
	return len(s.stopTimesByTrip[tripID])
}

// StopTimeAt returns the stop-time row of a trip at a stop, if the trip
// calls there.
func (s *Snapshot) StopTimeAt(tripID, stopID string) (StopTime, bool) {
	for _, st := range s.stopTimesByTrip[tripID] {
		if st.StopID == stopID {
			return st, true
		}
	}
	return StopTime{}, false
}

// TripsForService returns the trips running under a service id.
func (s *Snapshot) TripsForService(serviceID string) []Trip {
	var out []Trip
	for _, t := range s.Trips {
		if t.ServiceID == serviceID {
			out = append(out, t)
		}
	}
	return out
}
