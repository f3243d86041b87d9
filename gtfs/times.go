package gtfs

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OperatorTimezone is the civil timezone the schedule is authored in.
const OperatorTimezone = "America/Los_Angeles"

// MaterializeClock turns a GTFS clock string (HH:MM:SS, hours may exceed 24
// for after-midnight service) into an absolute instant on the given service
// date. hour/24 days are added to the service date and the remainder is the
// hour of that civil day; time.Date then resolves that day's own UTC offset,
// so a 25:30:00 row on a DST-transition date lands on the following day's
// offset, not the service date's.
func MaterializeClock(clock string, serviceDate time.Time, loc *time.Location) (time.Time, error) {
	hour, minute, second, err := splitClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	dayOffset := hour / 24
	hourOfDay := hour % 24

	local := serviceDate.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+dayOffset,
		hourOfDay, minute, second, 0, loc), nil
}

func splitClock(clock string) (hour, minute, second int, err error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("malformed clock string %q", clock)
	}
	if hour, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, fmt.Errorf("malformed clock string %q", clock)
	}
	if minute, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, fmt.Errorf("malformed clock string %q", clock)
	}
	if second, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, 0, fmt.Errorf("malformed clock string %q", clock)
	}
	return hour, minute, second, nil
}
