package replay

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Autoplay paces.
const (
	FeaturedInterval = 700 * time.Millisecond
	RecentInterval   = 500 * time.Millisecond
)

// Autoplay drives a sequencer forward on a fixed interval until every move
// is applied, the context ends or Stop is called.
type Autoplay struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start applies the first move immediately and one more per interval.
// Refused moves are logged and skipped.
func Start(ctx context.Context, seq *Sequencer, interval time.Duration) *Autoplay {
	ctx, cancel := context.WithCancel(ctx)
	a := &Autoplay{cancel: cancel, done: make(chan struct{})}
	logger := zerolog.Ctx(ctx)

	go func() {
		defer close(a.done)
		defer cancel()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			err := seq.Forward()
			if errors.Is(err, ErrEnd) {
				return
			}
			if err != nil {
				logger.Debug().Err(err).Msg("skipping move")
			}
			if seq.Done() {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return a
}

// Stop halts the autoplay and waits for its goroutine to exit.
func (a *Autoplay) Stop() {
	a.once.Do(a.cancel)
	<-a.done
}

// Done is closed once the autoplay has finished or been stopped.
func (a *Autoplay) Done() <-chan struct{} { return a.done }
