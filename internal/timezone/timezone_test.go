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

func TestInShiftsWallClock(t *testing.T) {
	instant := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)

	berlin := In(instant, "Europe/Berlin")

	assert.Equal(t, "2025-03-11", berlin.Format("2006-01-02"))
	assert.Equal(t, "00:30", berlin.Format("15:04"))
}
