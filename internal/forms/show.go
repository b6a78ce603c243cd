package forms

import (
	"net/url"
	"strconv"
	"time"
)

const StartTimeLayout = "2006-01-02 15:04:05"

var startTimeLayouts = []string{
	StartTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

type ShowForm struct {
	ArtistID  string `form:"artist_id" json:"artist_id" validate:"required"`
	VenueID   string `form:"venue_id" json:"venue_id" validate:"required"`
	StartTime string `form:"start_time" json:"start_time" validate:"required"`
}

// ShowInput is a ShowForm whose fields parsed cleanly.
type ShowInput struct {
	ArtistID  int64
	VenueID   int64
	StartTime time.Time
}

func ShowFormFromValues(values url.Values) ShowForm {
	return ShowForm{
		ArtistID:  value(values, "artist_id"),
		VenueID:   value(values, "venue_id"),
		StartTime: value(values, "start_time"),
	}
}

// NewShowForm is the blank form, start time defaulting to now.
func NewShowForm(now time.Time, loc *time.Location) ShowForm {
	return ShowForm{StartTime: now.In(loc).Format(StartTimeLayout)}
}

// Parse validates f. Layouts without an offset are read in loc.
func (f ShowForm) Parse(loc *time.Location) (ShowInput, Errors) {
	errs := check(f)
	var in ShowInput

	if _, bad := errs["artist_id"]; !bad {
		id, err := parseID(f.ArtistID)
		if err != nil {
			errs.Add("artist_id", "Not a valid integer value.")
		}
		in.ArtistID = id
	}
	if _, bad := errs["venue_id"]; !bad {
		id, err := parseID(f.VenueID)
		if err != nil {
			errs.Add("venue_id", "Not a valid integer value.")
		}
		in.VenueID = id
	}
	if _, bad := errs["start_time"]; !bad {
		t, ok := parseStartTime(f.StartTime, loc)
		if !ok {
			errs.Add("start_time", "Not a valid datetime value.")
		}
		in.StartTime = t
	}
	return in, errs
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

func parseStartTime(raw string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
