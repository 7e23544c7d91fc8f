package recycler

import (
	"github.com/dshills/touchstone/internal/geom"
	"github.com/dshills/touchstone/internal/gesture"
	"github.com/dshills/touchstone/internal/input"
	"github.com/dshills/touchstone/internal/logging"
	"github.com/dshills/touchstone/internal/scroll"
	"github.com/dshills/touchstone/internal/view"
)

// Recycler defaults.
const (
	DefaultEstimatedRowHeight = 44

	// HeaderIdentifier is the reuse identifier of the built-in header cell.
	HeaderIdentifier = "Header"

	// maxLayoutPasses bounds the re-layouts caused by auto-measured rows
	// changing the geometry of the window they were placed in.
	maxLayoutPasses = 4
)

// Options configures a recycler frame.
type Options struct {
	// EstimatedRowHeight is used for auto-height rows until a cell
	// measures them.
	EstimatedRowHeight float64
	// Strict panics on data source contract violations instead of logging
	// them and clamping.
	Strict bool
	Scroll scroll.Config
}

// DefaultOptions returns the default recycler options.
func DefaultOptions() Options {
	return Options{
		EstimatedRowHeight: DefaultEstimatedRowHeight,
		Scroll:             scroll.DefaultConfig(),
	}
}

// Padding insets the rows from the content box edges.
type Padding struct {
	Top, Right, Bottom, Left float64
}

type entry struct {
	path   IndexPath
	offset float64
	height float64
	auto   bool
}

// Frame is a scrolling list that keeps only the rows inside the viewport
// alive, reusing cells through a pool as rows enter and leave.
//
// Focus never rests on a cell outside the window: navigation past the
// last live cell scrolls the next row in before handing it focus, and a
// focused cell that scrolls out gives focus back to the frame.
type Frame struct {
	*scroll.Frame

	tree *view.Tree
	log  *logging.Logger
	opts Options

	ds        DataSource
	pool      *Pool
	padding   Padding
	entries   []entry
	rowCounts []int
	height    float64
	width     float64

	live       map[int]Cell
	visibleMin int
	visibleMax int
	wired      map[view.ID]bool

	defaultCell    IndexPath
	hasDefaultCell bool
	pendingFocus   *IndexPath

	laying bool
}

// New creates a recycler frame in tree.
func New(tree *view.Tree, viewOpts view.Options, opts Options, log *logging.Logger) *Frame {
	if log == nil {
		log = logging.Nop()
	}
	if opts.EstimatedRowHeight <= 0 {
		opts.EstimatedRowHeight = DefaultEstimatedRowHeight
	}

	r := &Frame{
		Frame:      scroll.New(tree, viewOpts, opts.Scroll, log),
		tree:       tree,
		log:        log.WithComponent("recycler"),
		opts:       opts,
		pool:       NewPool(),
		width:      viewOpts.Frame.Size.Width,
		live:       make(map[int]Cell),
		visibleMin: -1,
		visibleMax: -1,
		wired:      make(map[view.ID]bool),
	}
	r.pool.Register(HeaderIdentifier, func() Cell { return NewHeaderCell(tree) })

	tree.SetNavigator(r.Content(), r.NextCellFocus)
	tree.SetDefaultFocus(r.ID(), r.DefaultFocus)
	r.OffsetChanged.Subscribe(func(float64) { r.layoutCells() })

	return r
}

// Options returns the frame options.
func (r *Frame) Options() Options {
	return r.opts
}

// Pool returns the cell pool.
func (r *Frame) Pool() *Pool {
	return r.pool
}

// DataSource returns the data source, or nil.
func (r *Frame) DataSource() DataSource {
	return r.ds
}

// SetDataSource replaces the data source and reloads.
func (r *Frame) SetDataSource(ds DataSource) {
	r.ds = ds
	r.ReloadData()
}

// RegisterCell installs the factory for a reuse identifier.
func (r *Frame) RegisterCell(identifier string, factory CellFactory) {
	r.pool.Register(identifier, factory)
}

// DequeueReusableCell returns a spare cell for identifier or a new one
// from its factory. Data sources call it from CellForRow.
func (r *Frame) DequeueReusableCell(identifier string) (Cell, error) {
	return r.pool.Dequeue(identifier)
}

// Padding returns the content padding.
func (r *Frame) Padding() Padding {
	return r.padding
}

// SetPadding changes the content padding and rebuilds the geometry.
func (r *Frame) SetPadding(p Padding) {
	r.padding = p
	r.ReloadData()
}

// SetViewport moves or resizes the frame. A width change invalidates the
// geometry since auto-measured heights may depend on it.
func (r *Frame) SetViewport(rect geom.Rect) {
	widthChanged := rect.Size.Width != r.width
	r.Frame.SetViewport(rect)
	if widthChanged {
		r.ReloadData()
		return
	}
	r.layoutCells()
}

// ReloadData drops every live cell, rebuilds the geometry from the data
// source and lays out the visible window again. Focus on a reloaded row
// returns to the same index path when it still exists.
func (r *Frame) ReloadData() {
	if f := r.tree.Focus(); f != view.None {
		for _, c := range r.live {
			if path, ok := c.IndexPath(); ok && r.tree.IsAncestorOrSelf(c.View(), f) {
				r.pendingFocus = &path
				break
			}
		}
	}

	r.recycleAll()
	r.width = r.Viewport().Size.Width
	r.buildCache()
	r.SetContentHeight(r.height)
	r.layoutCells()
	r.pendingFocus = nil

	r.log.Debug("reloaded %d entries, content height %.1f", len(r.entries), r.height)
}

// Len returns the number of cached entries, headers included.
func (r *Frame) Len() int {
	return len(r.entries)
}

// VisibleRange returns the entry indices of the first and last live
// cells, or -1, -1 when nothing is visible.
func (r *Frame) VisibleRange() (first, last int) {
	return r.visibleMin, r.visibleMax
}

// LiveCells returns the live cells in index order.
func (r *Frame) LiveCells() []Cell {
	if r.visibleMin < 0 {
		return nil
	}
	cells := make([]Cell, 0, len(r.live))
	for i := r.visibleMin; i <= r.visibleMax; i++ {
		if c, ok := r.live[i]; ok {
			cells = append(cells, c)
		}
	}
	return cells
}

// CellAt returns the live cell bound to path.
func (r *Frame) CellAt(path IndexPath) (Cell, bool) {
	i := r.indexOf(path)
	if i < 0 {
		return nil, false
	}
	c, ok := r.live[i]
	return c, ok
}

// RowRect returns the rectangle of path relative to the content box.
func (r *Frame) RowRect(path IndexPath) (geom.Rect, bool) {
	i := r.indexOf(path)
	if i < 0 {
		return geom.Rect{}, false
	}
	e := r.entries[i]
	return geom.R(r.padding.Left, e.offset, r.cellWidth(), e.height), true
}

// SelectRowAt scrolls path to the top of the viewport and gives it focus,
// immediately when the row is live or once it is laid out.
func (r *Frame) SelectRowAt(path IndexPath, animated bool) error {
	i := r.indexOf(path)
	if i < 0 {
		return &ContractError{Op: "selectRowAt", Path: path, Detail: "unknown index path", Err: ErrUnknownIndexPath}
	}

	r.pendingFocus = &path
	if c, ok := r.live[i]; ok {
		r.pendingFocus = nil
		r.tree.GiveFocus(c.View())
	}
	r.SetOffset(r.entries[i].offset, animated)
	r.layoutCells()
	return nil
}

// DefaultCellFocus returns the index path preferred when the frame gains
// focus.
func (r *Frame) DefaultCellFocus() (IndexPath, bool) {
	return r.defaultCell, r.hasDefaultCell
}

// SetDefaultCellFocus sets the index path preferred when the frame gains
// focus.
func (r *Frame) SetDefaultCellFocus(path IndexPath) {
	r.defaultCell = path
	r.hasDefaultCell = true
}

// DefaultFocus resolves the frame's focus: the default cell while it is
// live and fully visible, then the first fully visible focusable cell,
// then the frame itself.
func (r *Frame) DefaultFocus() view.ID {
	if r.hasDefaultCell {
		if c, ok := r.CellAt(r.defaultCell); ok {
			f := r.tree.DefaultFocus(c.View())
			if f != view.None && r.tree.Frame(f).Inscribed(r.Viewport()) {
				return f
			}
		}
	}
	return r.Frame.DefaultFocus()
}

// Destroy removes the frame and every cell it created from the tree.
func (r *Frame) Destroy() {
	r.recycleAll()
	for _, c := range r.pool.Drain() {
		_ = r.tree.Destroy(c.View())
	}
	_ = r.tree.Destroy(r.ID())
}

func (r *Frame) cellWidth() float64 {
	w := r.Viewport().Size.Width - r.padding.Left - r.padding.Right
	if w < 0 {
		return 0
	}
	return w
}

func (r *Frame) violate(op string, path IndexPath, detail string, err error) *ContractError {
	e := &ContractError{Op: op, Path: path, Detail: detail, Err: err}
	if r.opts.Strict {
		panic(e)
	}
	r.log.Warn("%v", e)
	return e
}

func (r *Frame) wire(c Cell) {
	if r.wired[c.View()] {
		return
	}
	r.wired[c.View()] = true
	if path, _ := c.IndexPath(); path.IsHeader() {
		return
	}

	r.tree.RegisterAction(c.View(), view.Action{
		Button: input.ButtonA,
		Hint:   "Select",
		Sound:  gesture.SoundClick,
		Handler: func(view.ID) bool {
			path, ok := c.IndexPath()
			if !ok || r.ds == nil {
				return false
			}
			r.ds.DidSelectRowAt(r, path)
			return true
		},
	})
	r.tree.AddTap(c.View(), view.DefaultTapConfig())
}
