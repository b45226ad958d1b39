package responder

import (
	"strconv"
	"strings"
	"time"

	"meridianit/inbox-project/pkgs/db"

	"github.com/juju/errors"
)

// IsOpen reports whether now falls inside the organization's business hours.
// The window per weekday is half-open: [start, end). A weekday with no
// schedule entry is closed. When the schedule is disabled entirely, business
// hours are always considered open.
func IsOpen(bh db.BusinessHours, now time.Time) (bool, error) {
	if !bh.Enabled {
		return true, nil
	}

	loc, err := time.LoadLocation(bh.Timezone)
	if err != nil {
		return false, errors.Annotatef(err, "invalid business hours timezone %q", bh.Timezone)
	}

	local := now.In(loc)
	day := strings.ToLower(local.Weekday().String())

	window, ok := bh.Schedule[day]
	if !ok || window.Start == "" || window.End == "" {
		return false, nil
	}

	start, err := minutesOfDay(window.Start)
	if err != nil {
		return false, errors.Trace(err)
	}
	end, err := minutesOfDay(window.End)
	if err != nil {
		return false, errors.Trace(err)
	}

	current := local.Hour()*60 + local.Minute()
	return current >= start && current < end, nil
}

func minutesOfDay(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, errors.Errorf("invalid time %q, want HH:MM", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, errors.Errorf("invalid hour in %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, errors.Errorf("invalid minute in %q", hhmm)
	}
	return h*60 + m, nil
}
