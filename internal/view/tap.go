package view

import (
	"github.com/dshills/touchstone/internal/gesture"
	"github.com/dshills/touchstone/internal/input"
)

// TapConfig configures a tap recognizer bound to a view.
type TapConfig struct {
	// HighlightOnSelect plays the click animation as the tap progresses.
	HighlightOnSelect bool
	UnsureSound       gesture.Sound
	FailedSound       gesture.Sound
	// EndSound is used with Respond. Without Respond, the A action's own
	// sound is played.
	EndSound gesture.Sound
	// Respond, when set, is called on a completed tap instead of the
	// view's A action.
	Respond func()
}

// DefaultTapConfig returns the configuration used by clickable views.
func DefaultTapConfig() TapConfig {
	return TapConfig{
		HighlightOnSelect: true,
		UnsureSound:       gesture.SoundFocusChange,
		FailedSound:       gesture.SoundTouchUnfocus,
		EndSound:          gesture.SoundClick,
	}
}

// AddTap attaches a tap recognizer to id that behaves like a click: it
// focuses the view while the tap is alive, animates the highlight and, when
// the tap completes, runs cfg.Respond or the view's A action.
func (t *Tree) AddTap(id ID, cfg TapConfig) *gesture.Tap {
	tap := gesture.NewTap(func(ev gesture.TapEvent) {
		t.onTap(id, cfg, ev)
	})
	t.AddGestureRecognizer(id, tap)
	return tap
}

func (t *Tree) onTap(id ID, cfg TapConfig, ev gesture.TapEvent) {
	if !ev.State.Cancelled() {
		t.GiveFocus(id)
	}

	if cfg.Respond != nil {
		t.tapFeedback(id, cfg, ev)
		if ev.State == gesture.StateEnd {
			*ev.Sound = cfg.EndSound
			cfg.Respond()
		}
		return
	}

	for _, a := range t.Actions(id) {
		if a.Button != input.ButtonA || a.Disabled {
			continue
		}
		t.tapFeedback(id, cfg, ev)
		if ev.State == gesture.StateEnd && a.Handler != nil && a.Handler(id) {
			*ev.Sound = a.Sound
		}
	}
}

func (t *Tree) tapFeedback(id ID, cfg TapConfig, ev gesture.TapEvent) {
	if cfg.HighlightOnSelect {
		t.PlayClickAnimation(id, ev.State != gesture.StateUnsure)
	}
	switch ev.State {
	case gesture.StateUnsure:
		*ev.Sound = cfg.UnsureSound
	case gesture.StateFailed, gesture.StateInterrupted:
		*ev.Sound = cfg.FailedSound
	}
}
