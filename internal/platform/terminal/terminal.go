package terminal

import (
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/touchstone/internal/geom"
	"github.com/dshills/touchstone/internal/input"
	"github.com/dshills/touchstone/internal/logging"
)

// Metrics converts between points and character cells.
type Metrics struct {
	CellWidth  float64
	CellHeight float64
	// WheelLines is the number of text lines one wheel notch scrolls.
	WheelLines float64
}

// DefaultMetrics returns metrics that make a 44 point row two lines tall.
func DefaultMetrics() Metrics {
	return Metrics{CellWidth: 8, CellHeight: 22, WheelLines: 2}
}

// ToPoint returns the center of the character cell at column x, row y.
func (m Metrics) ToPoint(x, y int) geom.Point {
	return geom.Pt((float64(x)+0.5)*m.CellWidth, (float64(y)+0.5)*m.CellHeight)
}

// ToCell returns the character cell containing p.
func (m Metrics) ToCell(p geom.Point) (x, y int) {
	return int(math.Floor(p.X / m.CellWidth)), int(math.Floor(p.Y / m.CellHeight))
}

// Size returns the size in points of a w by h cell area.
func (m Metrics) Size(w, h int) geom.Size {
	return geom.Size{Width: float64(w) * m.CellWidth, Height: float64(h) * m.CellHeight}
}

// Terminal is an input.Sampler over a tcell screen.
type Terminal struct {
	screen  tcell.Screen
	metrics Metrics
	keys    KeyMap
	log     *logging.Logger

	mu      sync.Mutex
	pending []tcell.Event
	done    chan struct{}
	started bool

	mouse     input.RawMouseState
	haveMouse bool
	lastPos   geom.Point
	quit      bool
	size      geom.Size
	resized   bool
}

// New creates a terminal on the process's tty.
func New(metrics Metrics, log *logging.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewWithScreen(screen, metrics, log), nil
}

// NewWithScreen creates a terminal over screen, which must not be
// initialized yet.
func NewWithScreen(screen tcell.Screen, metrics Metrics, log *logging.Logger) *Terminal {
	if log == nil {
		log = logging.Nop()
	}
	if metrics.CellWidth <= 0 || metrics.CellHeight <= 0 {
		metrics = DefaultMetrics()
	}
	return &Terminal{
		screen:  screen,
		metrics: metrics,
		keys:    DefaultKeyMap(),
		log:     log.WithComponent("terminal"),
	}
}

// Start initializes the screen and begins collecting events.
func (t *Terminal) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	t.screen.EnableMouse()
	t.screen.HideCursor()
	t.screen.Clear()

	w, h := t.screen.Size()
	t.size = t.metrics.Size(w, h)
	t.done = make(chan struct{})
	t.started = true

	go t.poll(t.done)
	return nil
}

// Stop restores the terminal. It is safe to call more than once.
func (t *Terminal) Stop() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.started = false
	done := t.done
	t.mu.Unlock()

	t.screen.Fini()
	<-done
}

func (t *Terminal) poll(done chan struct{}) {
	defer close(done)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		t.mu.Lock()
		t.pending = append(t.pending, ev)
		t.mu.Unlock()
	}
}

// Screen returns the underlying screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Metrics returns the point to cell mapping.
func (t *Terminal) Metrics() Metrics {
	return t.metrics
}

// SetKeyMap replaces the key bindings.
func (t *Terminal) SetKeyMap(m KeyMap) {
	t.keys = m
}

// Pending returns the number of events waiting for the next Sample.
func (t *Terminal) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// Sample drains the events received since the last frame.
func (t *Terminal) Sample() input.Sample {
	t.mu.Lock()
	events := t.pending
	t.pending = nil
	t.mu.Unlock()

	var controller input.ControllerState
	t.mouse.Scroll = geom.Point{}
	for _, ev := range events {
		t.handle(ev, &controller)
	}

	raw := t.mouse
	if t.haveMouse {
		raw.Offset = raw.Position.Sub(t.lastPos)
	}
	t.lastPos = raw.Position

	return input.Sample{Mouse: raw, Controller: controller}
}

func (t *Terminal) handle(ev tcell.Event, controller *input.ControllerState) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if isQuit(e) {
			t.quit = true
			return
		}
		if b, ok := t.keys.Lookup(e); ok {
			*controller = controller.Press(b)
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		t.mouse.Position = t.metrics.ToPoint(x, y)
		t.haveMouse = true

		buttons := e.Buttons()
		t.mouse.Left = buttons&tcell.Button1 != 0
		t.mouse.Right = buttons&tcell.Button2 != 0
		t.mouse.Middle = buttons&tcell.Button3 != 0

		step := t.metrics.WheelLines * t.metrics.CellHeight
		switch {
		case buttons&tcell.WheelUp != 0:
			t.mouse.Scroll.Y += step
		case buttons&tcell.WheelDown != 0:
			t.mouse.Scroll.Y -= step
		}
		switch {
		case buttons&tcell.WheelLeft != 0:
			t.mouse.Scroll.X += step
		case buttons&tcell.WheelRight != 0:
			t.mouse.Scroll.X -= step
		}

	case *tcell.EventResize:
		w, h := e.Size()
		t.size = t.metrics.Size(w, h)
		t.resized = true
		t.log.Debug("resized to %dx%d", w, h)
	}
}

// Quit reports whether the user asked to quit.
func (t *Terminal) Quit() bool {
	return t.quit
}

// Size returns the screen size in points.
func (t *Terminal) Size() geom.Size {
	return t.size
}

// Resized reports whether the screen size changed since the last call.
func (t *Terminal) Resized() bool {
	r := t.resized
	t.resized = false
	return r
}

// Beep rings the terminal bell.
func (t *Terminal) Beep() {
	_ = t.screen.Beep() // best-effort
}
