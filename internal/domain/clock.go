package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Now reads c in UTC. A nil clock reads real time, so callers can leave
// their clock option unset outside tests.
func Now(c clockwork.Clock) time.Time {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	return c.Now().UTC()
}
