package gtfs

import "time"

const dateLayout = "20060102"

// ActiveService resolves the single service id active on the civil date of
// t, or ok=false when nothing runs. The instant is normalized to the
// operator timezone first: queries usually arrive as UTC wall-clock while
// the schedule is authored in local civil time.
//
// An "added" exception for the exact date wins outright. Otherwise the
// calendars are scanned in dataset order and the first one whose date range
// and weekday flag match, and which has no "removed" exception that day, is
// taken. First match wins; the dataset is assumed not to run overlapping
// services on one date.
func ActiveService(t time.Time, loc *time.Location, snap *Snapshot) (string, bool) {
	local := t.In(loc)
	date := local.Format(dateLayout)
	weekday := local.Weekday()

	for _, cd := range snap.CalendarDates {
		if cd.Date == date && cd.ExceptionType == ExceptionAdded {
			return cd.ServiceID, true
		}
	}

	for i := range snap.Calendars {
		cal := &snap.Calendars[i]
		if date < cal.StartDate || date > cal.EndDate {
			continue
		}
		if !cal.RunsOn(weekday) {
			continue
		}
		if removedOn(snap.CalendarDates, cal.ServiceID, date) {
			continue
		}
		return cal.ServiceID, true
	}
	return "", false
}

func removedOn(dates []CalendarDate, serviceID, date string) bool {
	for _, cd := range dates {
		if cd.ServiceID == serviceID && cd.Date == date && cd.ExceptionType == ExceptionRemoved {
			return true
		}
	}
	return false
}
