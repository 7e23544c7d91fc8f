package scroll

import (
	"time"

	"github.com/dshills/touchstone/internal/event"
	"github.com/dshills/touchstone/internal/geom"
	"github.com/dshills/touchstone/internal/gesture"
	"github.com/dshills/touchstone/internal/input"
	"github.com/dshills/touchstone/internal/logging"
	"github.com/dshills/touchstone/internal/view"
)

// Scrolling defaults.
const (
	DefaultMinFlingDuration = 100 * time.Millisecond
	DefaultFocusAnimation   = 100 * time.Millisecond
)

// Config configures a scrolling frame.
type Config struct {
	// MinFlingDuration drops flings that would end sooner than this.
	MinFlingDuration time.Duration
	// FocusAnimation is the duration of animated ScrollToView calls.
	FocusAnimation time.Duration
	// Gesture configures the drag recognizer.
	Gesture gesture.Config
}

// DefaultConfig returns the default scrolling configuration.
func DefaultConfig() Config {
	return Config{
		MinFlingDuration: DefaultMinFlingDuration,
		FocusAnimation:   DefaultFocusAnimation,
		Gesture:          gesture.DefaultConfig(),
	}
}

// Frame is a vertically scrolling viewport over a content view.
//
// The frame owns two views: itself, sized to the viewport, and a content
// box child whose frame is shifted up by the content offset. Views added
// to the content box move with it.
type Frame struct {
	tree    *view.Tree
	id      view.ID
	content view.ID
	log     *logging.Logger
	cfg     Config

	contentHeight float64
	offset        float64
	startOffset   float64
	anim          Animation

	drag *gesture.Scroll
	tap  *gesture.Tap

	// OffsetChanged fires with the new offset whenever it changes.
	OffsetChanged event.Event[float64]
}

// New creates a scrolling frame in tree. The frame view is created from
// opts; it is focusable so that dragging can take focus.
func New(tree *view.Tree, opts view.Options, cfg Config, log *logging.Logger) *Frame {
	if log == nil {
		log = logging.Nop()
	}
	if cfg.MinFlingDuration <= 0 {
		cfg.MinFlingDuration = DefaultMinFlingDuration
	}
	if cfg.FocusAnimation <= 0 {
		cfg.FocusAnimation = DefaultFocusAnimation
	}

	opts.Focusable = true
	opts.Axis = view.AxisColumn
	f := &Frame{
		tree: tree,
		id:   tree.Create(opts),
		log:  log.WithComponent("scroll"),
		cfg:  cfg,
	}
	f.content = tree.Create(view.Options{
		Name:  opts.Name + ".content",
		Frame: opts.Frame,
		Axis:  view.AxisColumn,
	})
	_ = tree.AddChild(f.id, f.content)

	f.drag = gesture.NewScrollWithConfig(gesture.AxisVertical, cfg.Gesture, f.onPan)
	tree.AddGestureRecognizer(f.id, f.drag)

	f.tap = gesture.NewTap(func(ev gesture.TapEvent) {
		if ev.State == gesture.StateUnsure {
			f.anim.Stop()
		}
	})
	tree.AddGestureRecognizer(f.id, f.tap)

	tree.SetDefaultFocus(f.id, f.DefaultFocus)
	tree.FocusChanged.Subscribe(f.onFocusChanged)

	return f
}

// ID returns the frame's view.
func (f *Frame) ID() view.ID {
	return f.id
}

// Content returns the content box view.
func (f *Frame) Content() view.ID {
	return f.content
}

// Tree returns the tree the frame lives in.
func (f *Frame) Tree() *view.Tree {
	return f.tree
}

// SetConfig replaces the configuration.
func (f *Frame) SetConfig(cfg Config) {
	if cfg.MinFlingDuration > 0 {
		f.cfg.MinFlingDuration = cfg.MinFlingDuration
	}
	if cfg.FocusAnimation > 0 {
		f.cfg.FocusAnimation = cfg.FocusAnimation
	}
	f.cfg.Gesture = cfg.Gesture
	f.drag.SetConfig(cfg.Gesture)
}

// Viewport returns the frame's rectangle in window coordinates.
func (f *Frame) Viewport() geom.Rect {
	return f.tree.Frame(f.id)
}

// SetViewport moves or resizes the frame. The content keeps its offset,
// clamped to the new size.
func (f *Frame) SetViewport(r geom.Rect) {
	f.tree.Translate(f.id, r.Origin.Sub(f.Viewport().Origin))
	f.tree.SetFrame(f.id, r)
	f.resizeContent()
	f.setOffset(f.offset)
}

// ContentHeight returns the scrollable height.
func (f *Frame) ContentHeight() float64 {
	return f.contentHeight
}

// SetContentHeight sets the scrollable height and re-clamps the offset.
func (f *Frame) SetContentHeight(h float64) {
	if h < 0 {
		h = 0
	}
	f.contentHeight = h
	f.resizeContent()
	f.setOffset(f.offset)
}

func (f *Frame) resizeContent() {
	vp := f.Viewport()
	content := f.tree.Frame(f.content)
	content.Size = geom.Size{Width: vp.Size.Width, Height: f.contentHeight}
	f.tree.SetFrame(f.content, content)
}

// Offset returns the content offset.
func (f *Frame) Offset() float64 {
	return f.offset
}

// MaxOffset returns the largest offset: the content height minus the
// viewport height, or zero when the content fits.
func (f *Frame) MaxOffset() float64 {
	m := f.contentHeight - f.Viewport().Size.Height
	if m < 0 {
		return 0
	}
	return m
}

func (f *Frame) clamp(y float64) float64 {
	if y > f.MaxOffset() {
		y = f.MaxOffset()
	}
	if y < 0 {
		y = 0
	}
	return y
}

// SetOffset scrolls to y, clamped. With animated set the offset eases
// there over the focus animation duration.
func (f *Frame) SetOffset(y float64, animated bool) {
	if animated {
		f.AnimateTo(y, f.cfg.FocusAnimation)
		return
	}
	f.anim.Stop()
	f.setOffset(y)
}

// AnimateTo eases the offset to y over d.
func (f *Frame) AnimateTo(y float64, d time.Duration) {
	f.anim.Stop()
	y = f.clamp(y)
	if y == f.offset {
		return
	}
	f.anim.Start(f.offset, y, d, QuadraticOut)
}

// Animating reports whether an offset animation is running.
func (f *Frame) Animating() bool {
	return f.anim.Running()
}

// StopAnimation halts a running offset animation.
func (f *Frame) StopAnimation() {
	f.anim.Stop()
}

// Tick advances a running animation by one frame.
func (f *Frame) Tick(frame input.Frame) {
	if !f.anim.Running() {
		return
	}
	y, _ := f.anim.Tick(frame.Delta)
	f.setOffset(y)
}

func (f *Frame) setOffset(y float64) {
	y = f.clamp(y)

	// The content origin always sits at viewport origin minus offset.
	want := f.Viewport().Origin.Sub(geom.Pt(0, y))
	f.tree.Translate(f.content, want.Sub(f.tree.Frame(f.content).Origin))

	if y == f.offset {
		return
	}
	f.offset = y
	f.OffsetChanged.Fire(y)
}

// ScrollToView scrolls the least amount needed to bring id fully inside
// the viewport.
func (f *Frame) ScrollToView(id view.ID, animated bool) {
	r := f.tree.Frame(id)
	vp := f.Viewport()

	target := f.offset
	switch {
	case r.MinY() < vp.MinY():
		target -= vp.MinY() - r.MinY()
	case r.MaxY() > vp.MaxY():
		target += r.MaxY() - vp.MaxY()
	default:
		return
	}
	f.SetOffset(target, animated)
}

func (f *Frame) onFocusChanged(c view.FocusChange) {
	if c.New == f.id || !f.tree.IsAncestor(f.id, c.New) {
		return
	}
	f.ScrollToView(c.New, true)
}

// DefaultFocus prefers the content's default focus while it is visible,
// then the first focusable view inside the viewport, then the frame.
func (f *Frame) DefaultFocus() view.ID {
	vp := f.Viewport()
	if focus := f.tree.DefaultFocus(f.content); focus != view.None && f.tree.Frame(focus).Inscribed(vp) {
		return focus
	}
	for _, c := range f.tree.Children(f.content) {
		if focus := f.tree.DefaultFocus(c); focus != view.None && f.tree.Frame(focus).Inscribed(vp) {
			return focus
		}
	}
	return f.id
}

func (f *Frame) onPan(ev gesture.PanEvent) {
	switch ev.State {
	case gesture.StateFailed, gesture.StateUnsure, gesture.StateInterrupted:
		return
	}

	if ev.DeltaOnly {
		f.SetOffset(f.offset-ev.Delta.Y, false)
		return
	}

	if ev.State == gesture.StateStart {
		f.tree.GiveFocus(f.id)
		f.startOffset = f.offset
	}

	if ev.State != gesture.StateEnd {
		f.SetOffset(f.startOffset-(ev.Position.Y-ev.StartPosition.Y), false)
		return
	}

	d := time.Duration(ev.Acceleration.Time.Y * float64(time.Second))
	target := f.offset + ev.Acceleration.Distance.Y
	if target == f.offset || d < f.cfg.MinFlingDuration {
		return
	}
	f.log.Debug("fling to %.1f over %v", target, d)
	f.AnimateTo(target, d)
}
