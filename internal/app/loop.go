package app

import (
	"context"
	"runtime/debug"
	"time"
)

// Quitter is implemented by samplers that can report a quit request, such
// as the terminal on q or Ctrl-C.
type Quitter interface {
	Quit() bool
}

// Run calls Frame at the configured rate until ctx is cancelled, Quit is
// called or the sampler reports a quit request. Reloaded configurations
// from Options.Updates are applied between frames. A panic raised inside
// a frame is returned as a *RecoveredPanicError.
func (a *App) Run(ctx context.Context) (err error) {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
			a.log.Error("frame panicked: %v", r)
		}
	}()

	interval := a.cfg.FrameInterval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.log.Info("running at %v per frame", interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case cfg, ok := <-a.updates:
			if !ok {
				a.updates = nil
				continue
			}
			a.ApplyConfig(cfg)
			if next := a.cfg.FrameInterval(); next != interval {
				interval = next
				ticker.Reset(interval)
			}

		case now := <-ticker.C:
			if err := a.step(now, interval); err != nil {
				return err
			}
		}
	}
}

// Running reports whether Run is active.
func (a *App) Running() bool {
	return a.running.Load()
}

func (a *App) step(now time.Time, interval time.Duration) error {
	start := StartTimer()
	res := a.Frame(now)

	if a.draw != nil {
		render := StartTimer()
		a.draw(res)
		a.metrics.RecordRender(render.Elapsed())
	}
	if start.Elapsed() > interval {
		a.metrics.RecordDroppedFrame()
	}

	if q, ok := a.sampler.(Quitter); ok && q.Quit() {
		a.quit = true
	}
	if a.quit {
		a.quit = false
		return ErrQuit
	}
	return nil
}
