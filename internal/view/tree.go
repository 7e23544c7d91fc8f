package view

import (
	"fmt"
	"slices"

	"github.com/dshills/touchstone/internal/event"
	"github.com/dshills/touchstone/internal/geom"
	"github.com/dshills/touchstone/internal/gesture"
	"github.com/dshills/touchstone/internal/logging"
)

// ID is a stable handle to a view in a Tree.
type ID uint32

// None is the zero ID; it never names a view.
const None ID = 0

// Axis is the direction a container lays out its children.
type Axis uint8

const (
	// AxisColumn stacks children top to bottom; UP and DOWN traverse them.
	AxisColumn Axis = iota
	// AxisRow places children left to right; LEFT and RIGHT traverse them.
	AxisRow
)

// Options describes a view at creation time.
type Options struct {
	// Name is used in logs.
	Name      string
	Frame     geom.Rect
	Focusable bool
	Axis      Axis
}

// NavigateFunc replaces box traversal for a container. It receives the
// direction and the child focus is leaving and returns the next focus, or
// None when there is none.
type NavigateFunc func(dir Direction, from ID) ID

// DefaultFocusFunc replaces default-focus resolution for a view.
type DefaultFocusFunc func() ID

type node struct {
	id       ID
	name     string
	parent   ID
	children []ID

	frame     geom.Rect
	focusable bool
	hidden    bool
	axis      Axis

	navigate     NavigateFunc
	defaultFocus DefaultFocusFunc
	onFocus      []func(gained bool)

	recognizers []gesture.Recognizer
	actions     []*Action
}

// Tree is an arena of views.
//
// Tree is not safe for concurrent use.
type Tree struct {
	nodes  map[ID]*node
	nextID ID
	focus  ID
	root   ID
	log    *logging.Logger

	// FocusChanged fires after focus moves.
	FocusChanged event.Event[FocusChange]

	// Shaken fires when navigation hits a dead end.
	Shaken event.Event[Shake]

	// Clicked fires when a view plays its click animation.
	Clicked event.Event[Click]
}

// FocusChange describes a focus transition.
type FocusChange struct {
	Old ID
	New ID
}

// Shake describes a failed navigation from a view.
type Shake struct {
	View      ID
	Direction Direction
}

// Click describes a click animation request. Highlight is false for the
// half-played animation shown while a tap is still UNSURE.
type Click struct {
	View      ID
	Highlight bool
}

// NewTree creates an empty tree. A nil logger discards output.
func NewTree(log *logging.Logger) *Tree {
	if log == nil {
		log = logging.Nop()
	}
	return &Tree{
		nodes: make(map[ID]*node),
		log:   log.WithComponent("view"),
	}
}

// Create adds a detached view and returns its handle.
func (t *Tree) Create(opts Options) ID {
	t.nextID++
	id := t.nextID
	t.nodes[id] = &node{
		id:        id,
		name:      opts.Name,
		frame:     opts.Frame,
		focusable: opts.Focusable,
		axis:      opts.Axis,
	}
	return id
}

// Exists reports whether id names a live view.
func (t *Tree) Exists(id ID) bool {
	_, ok := t.nodes[id]
	return ok
}

// Len returns the number of live views.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// AddChild appends child to parent's children.
func (t *Tree) AddChild(parent, child ID) error {
	return t.InsertChild(parent, child, -1)
}

// InsertChild inserts child at index in parent's children. A negative or
// out-of-range index appends.
func (t *Tree) InsertChild(parent, child ID, index int) error {
	p, ok := t.nodes[parent]
	if !ok {
		return fmt.Errorf("insert into %d: %w", parent, ErrUnknownView)
	}
	c, ok := t.nodes[child]
	if !ok {
		return fmt.Errorf("insert %d: %w", child, ErrUnknownView)
	}
	if c.parent != None {
		return fmt.Errorf("insert %d into %d: %w", child, parent, ErrHasParent)
	}
	if child == parent || t.IsAncestor(child, parent) {
		return fmt.Errorf("insert %d into %d: %w", child, parent, ErrCycle)
	}

	if index < 0 || index > len(p.children) {
		index = len(p.children)
	}
	p.children = slices.Insert(p.children, index, child)
	c.parent = parent
	return nil
}

// RemoveChild detaches child from parent without destroying it. If focus
// was inside child it moves to parent.
func (t *Tree) RemoveChild(parent, child ID) error {
	p, ok := t.nodes[parent]
	if !ok {
		return fmt.Errorf("remove from %d: %w", parent, ErrUnknownView)
	}
	i := slices.Index(p.children, child)
	if i < 0 {
		return fmt.Errorf("remove %d from %d: %w", child, parent, ErrNotChild)
	}

	focusInside := t.focus != None && t.IsAncestorOrSelf(child, t.focus)

	p.children = slices.Delete(p.children, i, i+1)
	t.nodes[child].parent = None

	if focusInside {
		t.recoverFocus(parent)
	}
	return nil
}

// Destroy removes id and its whole subtree from the arena. If focus was
// inside the subtree it moves to the former parent.
func (t *Tree) Destroy(id ID) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("destroy %d: %w", id, ErrUnknownView)
	}

	parent := n.parent
	if parent != None {
		if err := t.RemoveChild(parent, id); err != nil {
			return err
		}
	}

	focusInside := t.focus != None && t.IsAncestorOrSelf(id, t.focus)
	t.walk(id, func(n *node) {
		delete(t.nodes, n.id)
	})
	if t.root == id {
		t.root = None
	}
	if focusInside {
		t.recoverFocus(parent)
	}
	return nil
}

// Parent returns the parent of id, or None.
func (t *Tree) Parent(id ID) ID {
	if n, ok := t.nodes[id]; ok {
		return n.parent
	}
	return None
}

// Children returns a copy of id's children in order.
func (t *Tree) Children(id ID) []ID {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	return slices.Clone(n.children)
}

// IndexOf returns the position of child among its parent's children, or -1.
func (t *Tree) IndexOf(child ID) int {
	c, ok := t.nodes[child]
	if !ok || c.parent == None {
		return -1
	}
	return slices.Index(t.nodes[c.parent].children, child)
}

// IsAncestor reports whether ancestor is a strict ancestor of id.
func (t *Tree) IsAncestor(ancestor, id ID) bool {
	for p := t.Parent(id); p != None; p = t.Parent(p) {
		if p == ancestor {
			return true
		}
	}
	return false
}

// IsAncestorOrSelf reports whether ancestor is id or one of its ancestors.
func (t *Tree) IsAncestorOrSelf(ancestor, id ID) bool {
	return ancestor == id || t.IsAncestor(ancestor, id)
}

// Name returns the view's name.
func (t *Tree) Name(id ID) string {
	if n, ok := t.nodes[id]; ok {
		return n.name
	}
	return ""
}

// Describe returns a short label for logs.
func (t *Tree) Describe(id ID) string {
	name := t.Name(id)
	if name == "" {
		name = "view"
	}
	return fmt.Sprintf("%s#%d", name, id)
}

// Frame returns the view's frame in window coordinates.
func (t *Tree) Frame(id ID) geom.Rect {
	if n, ok := t.nodes[id]; ok {
		return n.frame
	}
	return geom.Rect{}
}

// SetFrame sets the view's frame without touching its children.
func (t *Tree) SetFrame(id ID, frame geom.Rect) {
	if n, ok := t.nodes[id]; ok {
		n.frame = frame
	}
}

// Translate moves id and its whole subtree by d.
func (t *Tree) Translate(id ID, d geom.Point) {
	if d.IsZero() {
		return
	}
	t.walk(id, func(n *node) {
		n.frame = n.frame.Offset(d)
	})
}

// Focusable reports whether the view itself can take focus.
func (t *Tree) Focusable(id ID) bool {
	n, ok := t.nodes[id]
	return ok && n.focusable
}

// SetFocusable sets whether the view itself can take focus.
func (t *Tree) SetFocusable(id ID, focusable bool) {
	if n, ok := t.nodes[id]; ok {
		n.focusable = focusable
	}
}

// Hidden reports whether the view is hidden.
func (t *Tree) Hidden(id ID) bool {
	n, ok := t.nodes[id]
	return ok && n.hidden
}

// SetHidden hides or shows the view. Hidden views are skipped by focus
// resolution and hit testing.
func (t *Tree) SetHidden(id ID, hidden bool) {
	if n, ok := t.nodes[id]; ok {
		n.hidden = hidden
	}
}

// SetAxis sets the container's traversal axis.
func (t *Tree) SetAxis(id ID, axis Axis) {
	if n, ok := t.nodes[id]; ok {
		n.axis = axis
	}
}

// SetNavigator replaces box traversal for the container id. A nil func
// restores the default.
func (t *Tree) SetNavigator(id ID, fn NavigateFunc) {
	if n, ok := t.nodes[id]; ok {
		n.navigate = fn
	}
}

// SetDefaultFocus replaces default-focus resolution for id. A nil func
// restores the default.
func (t *Tree) SetDefaultFocus(id ID, fn DefaultFocusFunc) {
	if n, ok := t.nodes[id]; ok {
		n.defaultFocus = fn
	}
}

// OnFocus registers a hook called when id gains or loses focus.
func (t *Tree) OnFocus(id ID, fn func(gained bool)) {
	if n, ok := t.nodes[id]; ok && fn != nil {
		n.onFocus = append(n.onFocus, fn)
	}
}

// PlayClickAnimation asks renderers to animate a click on id.
func (t *Tree) PlayClickAnimation(id ID, highlight bool) {
	if t.Exists(id) {
		t.Clicked.Fire(Click{View: id, Highlight: highlight})
	}
}

func (t *Tree) walk(id ID, fn func(n *node)) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	fn(n)
	for _, c := range slices.Clone(n.children) {
		t.walk(c, fn)
	}
}
