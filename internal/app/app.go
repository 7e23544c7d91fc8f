// Package app drives the per-frame input pipeline of a view tree.
//
// Each call to Frame samples the platform once, routes touches and the
// mouse through the gesture recognizers of the view under the pointer,
// dispatches controller buttons to actions and focus navigation, and
// advances every registered animation. Run calls Frame on a ticker.
package app

import (
	"sync/atomic"
	"time"

	"github.com/dshills/touchstone/internal/config"
	"github.com/dshills/touchstone/internal/event"
	"github.com/dshills/touchstone/internal/geom"
	"github.com/dshills/touchstone/internal/gesture"
	"github.com/dshills/touchstone/internal/input"
	"github.com/dshills/touchstone/internal/logging"
	"github.com/dshills/touchstone/internal/scroll"
	"github.com/dshills/touchstone/internal/view"
)

// Animated is advanced once per frame. Scroll and recycler frames
// implement it.
type Animated interface {
	Tick(frame input.Frame)
}

// Configurable accepts scroll configuration on reload.
type Configurable interface {
	SetConfig(cfg scroll.Config)
}

// FrameResult reports what a frame produced.
type FrameResult struct {
	// Sound is the first feedback sound requested this frame.
	Sound gesture.Sound
	// InputType is the device the user interacted with last.
	InputType input.InputType
	// Frame is the frame context passed to recognizers.
	Frame input.Frame
}

// Options configures an App.
type Options struct {
	Tree    *view.Tree
	Sampler input.Sampler
	Config  config.Config
	Log     *logging.Logger

	// Draw is called by Run after every frame.
	Draw func(FrameResult)

	// Updates delivers reloaded configurations to Run.
	Updates <-chan config.Config
}

// App owns the input state carried between frames.
type App struct {
	tree    *view.Tree
	sampler input.Sampler
	cfg     config.Config
	log     *logging.Logger
	draw    func(FrameResult)
	updates <-chan config.Config

	clock   *input.Clock
	touches *input.TouchTracker
	buttons *input.ButtonTracker

	// responders maps each tracked finger to the view it went down on.
	responders     map[int]view.ID
	mouse          input.MouseState
	mouseResponder view.ID

	inputType input.InputType
	animated  []Animated
	metrics   *Metrics

	running atomic.Bool
	quit    bool

	// InputTypeChanged fires when the user switches between touch and
	// gamepad input.
	InputTypeChanged event.Event[input.InputType]

	// SoundRequested fires for every feedback sound, in request order.
	SoundRequested event.Event[gesture.Sound]
}

// New creates an App.
func New(opts Options) (*App, error) {
	if opts.Tree == nil {
		return nil, ErrNoTree
	}
	if opts.Sampler == nil {
		return nil, ErrNoSampler
	}
	if opts.Log == nil {
		opts.Log = logging.Nop()
	}
	if opts.Config == (config.Config{}) {
		opts.Config = config.Default()
	}

	trigger, delay := opts.Config.RepeatTiming()
	return &App{
		tree:       opts.Tree,
		sampler:    opts.Sampler,
		cfg:        opts.Config,
		log:        opts.Log.WithComponent("app"),
		draw:       opts.Draw,
		updates:    opts.Updates,
		clock:      input.NewClock(),
		touches:    input.NewTouchTracker(),
		buttons:    input.NewButtonTracker(trigger, delay),
		responders: make(map[int]view.ID),
		inputType:  input.InputGamepad,
		metrics:    NewMetrics(),
	}, nil
}

// Tree returns the view tree.
func (a *App) Tree() *view.Tree {
	return a.tree
}

// Config returns the active configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

// Metrics returns the frame loop metrics.
func (a *App) Metrics() *Metrics {
	return a.metrics
}

// InputType returns the device the user interacted with last.
func (a *App) InputType() input.InputType {
	return a.inputType
}

// AddAnimated registers v to be ticked every frame. Values that also
// implement Configurable receive scroll configuration on reload.
func (a *App) AddAnimated(v Animated) {
	a.animated = append(a.animated, v)
	if c, ok := v.(Configurable); ok {
		c.SetConfig(a.cfg.ScrollConfig())
	}
}

// ApplyConfig switches to cfg. Button timings, scroll configuration and
// the log level take effect on the next frame.
func (a *App) ApplyConfig(cfg config.Config) {
	a.cfg = cfg
	a.buttons.SetTimings(cfg.RepeatTiming())
	a.log.SetLevel(cfg.LogLevel())
	for _, v := range a.animated {
		if c, ok := v.(Configurable); ok {
			c.SetConfig(cfg.ScrollConfig())
		}
	}
	a.log.Info("configuration applied")
}

// Quit asks Run to return ErrQuit after the current frame.
func (a *App) Quit() {
	a.quit = true
}

// Frame runs one frame at now.
func (a *App) Frame(now time.Time) FrameResult {
	timer := StartTimer()

	frame := a.clock.Tick(now)
	sample := a.sampler.Sample()

	var sounds soundList
	a.routeTouches(frame, sample.Touches, &sounds)
	a.routeMouse(frame, sample.Mouse, &sounds)

	controller := input.SwapButtons(sample.Controller, a.cfg.Input.SwapButtons)
	for _, press := range a.buttons.Update(controller, now) {
		sounds.add(a.pressButton(press))
	}
	a.metrics.RecordInput(timer.Elapsed())

	for _, v := range a.animated {
		v.Tick(frame)
	}

	for _, s := range sounds {
		a.metrics.RecordSound(s)
		a.SoundRequested.Fire(s)
	}
	a.metrics.RecordFrame(timer.Elapsed())

	return FrameResult{Sound: sounds.first(), InputType: a.inputType, Frame: frame}
}

func (a *App) routeTouches(frame input.Frame, raw []input.RawTouchState, sounds *soundList) {
	for _, touch := range a.touches.Update(raw) {
		if touch.Phase == input.PhaseNone {
			delete(a.responders, touch.FingerID)
			continue
		}

		responder := a.responders[touch.FingerID]
		if responder == view.None || touch.Phase == input.PhaseStart {
			a.setInputType(input.InputTouch)
			responder = a.hitTest(touch.Position)
			a.responders[touch.FingerID] = responder
		}

		if responder != view.None && a.tree.Exists(responder) {
			sounds.add(a.tree.RouteGesture(responder, frame, touch, input.MouseState{}))
		}
		if touch.Phase == input.PhaseEnd {
			delete(a.responders, touch.FingerID)
		}
	}
}

func (a *App) routeMouse(frame input.Frame, raw input.RawMouseState, sounds *soundList) {
	m := input.ComputeMouseState(raw, a.mouse)
	a.mouse = m

	if !m.IsIdle() {
		a.setInputType(input.InputTouch)
	}

	if !m.Engaged() {
		a.mouseResponder = view.None
		return
	}
	if a.mouseResponder == view.None || !a.tree.Exists(a.mouseResponder) {
		a.mouseResponder = a.hitTest(m.Position)
	}
	if a.mouseResponder != view.None {
		sounds.add(a.tree.RouteGesture(a.mouseResponder, frame, input.TouchState{}, m))
	}
}

func (a *App) hitTest(p geom.Point) view.ID {
	root := a.tree.Root()
	if root == view.None {
		return view.None
	}
	return a.tree.HitTest(root, p)
}

// pressButton dispatches a controller press: actions first, then
// directional navigation. A press that switches the app to gamepad input
// only reveals the focus.
func (a *App) pressButton(press input.ButtonPress) gesture.Sound {
	if press.Button == input.ButtonA && a.setInputType(input.InputGamepad) {
		return gesture.SoundNone
	}

	if handled, sound := a.tree.HandleAction(press.Button, press.Repeating); handled {
		a.setInputType(input.InputGamepad)
		return sound
	}

	dir, ok := direction(press.Button)
	if !ok {
		return gesture.SoundClickError
	}
	if a.setInputType(input.InputGamepad) {
		return gesture.SoundNone
	}
	_, sound := a.tree.Navigate(dir, press.Repeating)
	return sound
}

// setInputType records t and reports whether it changed.
func (a *App) setInputType(t input.InputType) bool {
	if t == a.inputType {
		return false
	}
	a.inputType = t
	a.metrics.RecordInputSwitch()
	a.log.Debug("input type %s", t)
	a.InputTypeChanged.Fire(t)
	return true
}

// DetachResponder interrupts and forgets every pointer routed to id. Call
// it before removing a view that may be under a finger or the mouse.
func (a *App) DetachResponder(id view.ID) {
	for finger, responder := range a.responders {
		if responder == id {
			a.tree.InterruptGestures(id, false)
			a.responders[finger] = view.None
		}
	}
	if a.mouseResponder == id {
		a.tree.InterruptGestures(id, false)
		a.mouseResponder = view.None
	}
}

// Responder returns the view the finger is routed to.
func (a *App) Responder(fingerID int) (view.ID, bool) {
	id, ok := a.responders[fingerID]
	return id, ok && id != view.None
}

// MouseResponder returns the view the mouse is routed to.
func (a *App) MouseResponder() view.ID {
	return a.mouseResponder
}

func direction(b input.Button) (view.Direction, bool) {
	switch b {
	case input.ButtonNavUp:
		return view.DirectionUp, true
	case input.ButtonNavDown:
		return view.DirectionDown, true
	case input.ButtonNavLeft:
		return view.DirectionLeft, true
	case input.ButtonNavRight:
		return view.DirectionRight, true
	}
	return 0, false
}

type soundList []gesture.Sound

func (l *soundList) add(s gesture.Sound) {
	if s != gesture.SoundNone {
		*l = append(*l, s)
	}
}

func (l soundList) first() gesture.Sound {
	if len(l) == 0 {
		return gesture.SoundNone
	}
	return l[0]
}
