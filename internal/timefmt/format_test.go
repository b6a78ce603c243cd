package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatModes(t *testing.T) {
	f := New(time.UTC)
	ts := time.Date(2019, time.May, 21, 21, 30, 0, 0, time.UTC)

	assert.Equal(t, "Tuesday May, 21, 2019 at 9:30PM", f.Format(ts, Full))
	assert.Equal(t, "Tue 05, 21, 2019 9:30PM", f.Format(ts, Medium))
	assert.Equal(t, "Tue 05, 21, 2019 9:30PM", f.Format(ts, Mode("short")))
}

func TestFormatConvertsToLocation(t *testing.T) {
	f := New(time.FixedZone("UTC+2", 2*60*60))
	ts := time.Date(2035, time.January, 1, 23, 15, 0, 0, time.UTC)

	assert.Equal(t, "Tue 01, 02, 2035 1:15AM", f.Format(ts, Medium))
}
