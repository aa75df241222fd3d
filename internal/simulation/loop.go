package simulation

import (
	"context"
	"errors"
	"time"
)

// ErrTriggerCancelled is returned by Loop when its generation is no longer active.
var ErrTriggerCancelled = errors.New("periodic trigger cancelled")

// Loop delivers ticks from the channel to the controller under gen, on the
// calling goroutine. It returns when ctx is done, the channel closes, or the
// generation is superseded by a later Start or Reset.
func Loop(ctx context.Context, c *Controller, gen Generation, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			if !c.Tick(ctx, gen) {
				if err := ctx.Err(); err != nil {
					return err
				}
				return ErrTriggerCancelled
			}
		}
	}
}

// RunTicker starts the simulation and advances it once per period until ctx
// is done or the trigger is cancelled.
func RunTicker(ctx context.Context, c *Controller) error {
	gen := c.Start(ctx)

	ticker := time.NewTicker(c.Period())
	defer ticker.Stop()

	return Loop(ctx, c, gen, ticker.C)
}
