package reservation

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
)

// Hour is a whole hour of the day, used for slot starts and reservation bounds.
type Hour int

// The operating window: slots start every hour from 06:00 through 22:00.
const (
	FirstSlot Hour = 6
	LastSlot  Hour = 22
	SlotCount      = int(LastSlot-FirstSlot) + 1
)

const DateLayout = "2006-01-02"

func (h Hour) String() string {
	return fmt.Sprintf("%02d:00", int(h))
}

// OnGrid reports whether a slot may start at h.
func (h Hour) OnGrid() bool {
	return h >= FirstSlot && h <= LastSlot
}

// ParseHour parses "HH:00". Minutes other than 00 are rejected.
func ParseHour(s string) (Hour, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) != 2 || mm != "00" {
		return 0, fmt.Errorf("time %q is not of the form HH:00", s)
	}
	n, err := strconv.Atoi(hh)
	if err != nil || n < 0 || n > 23 {
		return 0, fmt.Errorf("time %q has an invalid hour", s)
	}
	return Hour(n), nil
}

// Slots returns the canonical grid in ascending order.
func Slots() []Hour {
	out := make([]Hour, 0, SlotCount)
	for h := FirstSlot; h <= LastSlot; h++ {
		out = append(out, h)
	}
	return out
}

// ParseDate parses a YYYY-MM-DD civil date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, apperror.Newf(ErrInvalidInput, "date %q must be YYYY-MM-DD", s)
	}
	return d, nil
}

// CivilDate truncates t to its calendar date in loc, expressed as midnight UTC.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeSelection validates a user's slot selection and returns it sorted.
// Checks run in order: non-empty, every time on the grid, one gap-free run.
// Repeated times count once.
func NormalizeSelection(times []string) ([]Hour, error) {
	if len(times) == 0 {
		return nil, apperror.Newf(ErrInvalidInput, "at least one time slot must be selected")
	}

	hours := make([]Hour, 0, len(times))
	for _, t := range times {
		h, err := ParseHour(t)
		if err != nil {
			return nil, apperror.Newf(ErrInvalidInput, "%v", err)
		}
		if !h.OnGrid() {
			return nil, apperror.Newf(ErrInvalidInput, "time %s is outside the %s-%s booking window", h, FirstSlot, LastSlot)
		}
		hours = append(hours, h)
	}

	slices.Sort(hours)
	hours = slices.Compact(hours)

	for i := 1; i < len(hours); i++ {
		if hours[i] != hours[i-1]+1 {
			return nil, apperror.Newf(ErrInvalidInput, "selected slots must be consecutive: gap after %s", hours[i-1])
		}
	}
	return hours, nil
}
