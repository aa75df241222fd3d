package simulation

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/greenhouse/greenhouse/internal/models"
	"github.com/greenhouse/greenhouse/internal/testutil"
	"github.com/greenhouse/greenhouse/internal/util"
)

// testClock is a manually advanced time source.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

// newTestController creates a controller with a discarded log and a day timer
// on a manual clock.
func newTestController(t *testing.T) (*Controller, *testClock) {
	t.Helper()

	clock := &testClock{now: time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)}
	timer := util.NewDayTimer(DayPeriod)
	timer.SetNowFunc(clock.Now)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewController(WithLogger(logger), WithDayTimer(timer)), clock
}

// romaine returns the default seeding variety.
func romaine() *models.Variety {
	return testutil.Romaine()
}
