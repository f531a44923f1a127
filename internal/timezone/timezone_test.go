package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "America/Sao_Paulo", Location("America/Sao_Paulo").String())
}

func TestStartOfDay(t *testing.T) {
	loc := Location("America/New_York")
	in := time.Date(2026, 10, 19, 15, 45, 10, 0, loc)

	got := StartOfDay(in, loc)

	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, loc), got)
}
