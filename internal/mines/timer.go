package mines

import (
	"context"
	"time"
)

// Tick calls fn with the elapsed seconds every interval while s is in
// progress. It only reads the session. Tick returns after reporting the
// frozen time of a finished game, or when ctx is cancelled.
func Tick(ctx context.Context, s *Session, every time.Duration, fn func(elapsed int)) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.Done():
			fn(s.Elapsed())
			return
		case <-ticker.C:
			if s.Phase() == InProgress {
				fn(s.Elapsed())
			}
		}
	}
}
