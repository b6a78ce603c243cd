// Package timefmt renders show start times for display.
package timefmt

import "time"

type Mode string

const (
	Full   Mode = "full"
	Medium Mode = "medium"
)

const (
	fullLayout   = "Monday January, 2, 2006 at 3:04PM"
	mediumLayout = "Mon 01, 02, 2006 3:04PM"
)

type Formatter struct {
	Location *time.Location
}

func New(loc *time.Location) Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return Formatter{Location: loc}
}

// Format uses English month and day names. Unknown modes fall back to Medium.
func (f Formatter) Format(t time.Time, mode Mode) string {
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	if mode == Full {
		return t.Format(fullLayout)
	}
	return t.Format(mediumLayout)
}
