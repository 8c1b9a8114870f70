package visit

import (
	"strings"
	"time"
)

// Day is a day-of-week partition key. The wire form is the lower-case
// three-letter code.
type Day string

const (
	Monday    Day = "mon"
	Tuesday   Day = "tue"
	Wednesday Day = "wed"
	Thursday  Day = "thu"
	Friday    Day = "fri"
	Saturday  Day = "sat"
	Sunday    Day = "sun"
)

// Days lists every day in display order, Monday first.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayLabels = map[Day]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

func (d Day) Valid() bool {
	_, ok := dayLabels[d]
	return ok
}

func (d Day) Label() string {
	if l, ok := dayLabels[d]; ok {
		return l
	}
	return string(d)
}

func (d Day) String() string {
	return string(d)
}

// ParseDay accepts the three-letter code or the full English name, in any case.
func ParseDay(s string) (Day, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if len(v) > 3 {
		for d, label := range dayLabels {
			if strings.ToLower(label) == v {
				return d, nil
			}
		}
		return "", ErrInvalidDay
	}
	d := Day(v)
	if !d.Valid() {
		return "", ErrInvalidDay
	}
	return d, nil
}

// DayOf maps a point in time to its Day in t's location.
func DayOf(t time.Time) Day {
	// time.Weekday starts at Sunday = 0
	idx := int(t.Weekday()) - 1
	if idx < 0 {
		idx = 6
	}
	return Days[idx]
}
