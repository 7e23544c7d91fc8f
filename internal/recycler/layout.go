package recycler

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"sort"

	"github.com/dshills/touchstone/internal/geom"
	"github.com/dshills/touchstone/internal/view"
)

// buildCache asks the data source for every count and height once and
// stores the resulting geometry.
func (r *Frame) buildCache() {
	r.entries = r.entries[:0]
	r.rowCounts = r.rowCounts[:0]
	y := r.padding.Top
	if r.ds == nil {
		r.height = y + r.padding.Bottom
		return
	}

	sections := r.ds.NumberOfSections(r)
	if sections < 0 {
		r.violate("numberOfSections", IndexPath{}, fmt.Sprintf("negative count %d", sections), nil)
		sections = 0
	}

	for s := 0; s < sections; s++ {
		if h, ok := r.headerHeight(s); ok {
			height, auto := r.resolveHeight(HeaderPath(s), h)
			r.entries = append(r.entries, entry{path: HeaderPath(s), offset: y, height: height, auto: auto})
			y += height
		}

		rows := r.ds.NumberOfRows(r, s)
		if rows < 0 {
			r.violate("numberOfRows", HeaderPath(s), fmt.Sprintf("negative count %d", rows), nil)
			rows = 0
		}
		r.rowCounts = append(r.rowCounts, rows)

		for row := 0; row < rows; row++ {
			p := Path(s, row)
			height, auto := r.resolveHeight(p, r.ds.HeightForRow(r, p))
			r.entries = append(r.entries, entry{path: p, offset: y, height: height, auto: auto})
			y += height
		}
	}
	r.height = y + r.padding.Bottom
}

func (r *Frame) headerHeight(section int) (float64, bool) {
	var h float64
	switch ds := r.ds.(type) {
	case HeaderHeightSource:
		h = ds.HeightForHeader(r, section)
	default:
		if r.headerTitle(section) == "" {
			return 0, false
		}
		h = AutoHeight
	}
	return h, h != 0
}

func (r *Frame) headerTitle(section int) string {
	if ts, ok := r.ds.(HeaderTitleSource); ok {
		return ts.TitleForHeader(r, section)
	}
	return ""
}

func (r *Frame) resolveHeight(p IndexPath, h float64) (height float64, auto bool) {
	switch {
	case h == AutoHeight:
		return r.opts.EstimatedRowHeight, true
	case validHeight(h):
		return h, false
	default:
		r.violate("heightForRow", p, fmt.Sprintf("invalid height %v", h), nil)
		return 0, false
	}
}

func validHeight(h float64) bool {
	return h >= 0 && !math.IsInf(h, 0) && !math.IsNaN(h)
}

// reflow recomputes offsets after measured heights changed.
func (r *Frame) reflow() {
	y := r.padding.Top
	for i := range r.entries {
		r.entries[i].offset = y
		y += r.entries[i].height
	}
	r.height = y + r.padding.Bottom
}

// window returns the entries intersecting the viewport, or -1, -1.
func (r *Frame) window() (first, last int) {
	top := r.Offset()
	bottom := top + r.Viewport().Size.Height

	first = sort.Search(len(r.entries), func(i int) bool {
		return r.entries[i].offset+r.entries[i].height > top
	})
	end := sort.Search(len(r.entries), func(i int) bool {
		return r.entries[i].offset >= bottom
	})
	if first >= end {
		return -1, -1
	}
	return first, end - 1
}

func (r *Frame) indexOf(p IndexPath) int {
	i := sort.Search(len(r.entries), func(i int) bool {
		return !r.entries[i].path.less(p)
	})
	if i < len(r.entries) && samePath(r.entries[i].path, p) {
		return i
	}
	return -1
}

func samePath(a, b IndexPath) bool {
	return a.Section == b.Section && a.Row == b.Row
}

// layoutCells brings the live set in line with the visible window.
func (r *Frame) layoutCells() {
	if r.laying {
		return
	}
	r.laying = true
	defer func() { r.laying = false }()

	for pass := 0; pass < maxLayoutPasses; pass++ {
		if !r.layoutPass() {
			return
		}
		r.reflow()
		for i, c := range r.live {
			r.positionCell(i, c)
		}
		r.SetContentHeight(r.height)
	}
	r.log.Debug("layout did not settle after %d passes", maxLayoutPasses)
}

// layoutPass recycles cells that left the window and places the ones
// that entered it. It reports whether a measurement changed the geometry.
func (r *Frame) layoutPass() (resized bool) {
	first, last := r.window()
	for _, i := range slices.Sorted(maps.Keys(r.live)) {
		if first < 0 || i < first || i > last {
			r.recycle(i)
		}
	}
	r.visibleMin, r.visibleMax = first, last
	if first < 0 {
		return false
	}

	for i := first; i <= last; i++ {
		if _, ok := r.live[i]; ok {
			continue
		}
		if r.place(i) {
			resized = true
		}
	}
	return resized
}

func (r *Frame) place(i int) (resized bool) {
	e := r.entries[i]
	if !e.path.IsHeader() {
		n := r.ds.NumberOfRows(r, e.path.Section)
		if n != r.rowCounts[e.path.Section] {
			r.violate("numberOfRows", e.path, fmt.Sprintf("section has %d rows, cached %d", n, r.rowCounts[e.path.Section]), nil)
			if e.path.Row >= n {
				return false
			}
		}
	}

	c := r.cellFor(e.path)
	if c == nil {
		r.violate("cellForRow", e.path, "no cell returned", nil)
		return false
	}
	if err := r.pool.Adopt(c); err != nil {
		r.violate("cellForRow", e.path, err.Error(), ErrOwnership)
		return false
	}

	c.Bind(e.path)
	r.wire(c)

	if e.auto {
		if m, ok := c.(Measurer); ok {
			r.entries[i].auto = false
			if h := m.MeasureHeight(r.cellWidth()); validHeight(h) && h != e.height {
				r.entries[i].height = h
				resized = true
			}
		}
	}

	pos := 0
	for j := range r.live {
		if j < i {
			pos++
		}
	}
	if err := r.tree.InsertChild(r.Content(), c.View(), pos); err != nil {
		r.violate("cellForRow", e.path, err.Error(), ErrOwnership)
		_ = r.pool.Enqueue(c)
		return false
	}
	r.live[i] = c
	r.positionCell(i, c)

	if r.pendingFocus != nil && samePath(*r.pendingFocus, e.path) {
		r.pendingFocus = nil
		r.tree.GiveFocus(c.View())
	}
	return resized
}

func (r *Frame) cellFor(p IndexPath) Cell {
	if !p.IsHeader() {
		return r.ds.CellForRow(r, p)
	}
	if hs, ok := r.ds.(HeaderCellSource); ok {
		return hs.CellForHeader(r, p.Section)
	}
	c, err := r.DequeueReusableCell(HeaderIdentifier)
	if err != nil {
		r.log.Warn("dequeue header: %v", err)
		return nil
	}
	if h, ok := c.(*HeaderCell); ok {
		h.SetTitle(r.headerTitle(p.Section))
	}
	return c
}

func (r *Frame) positionCell(i int, c Cell) {
	e := r.entries[i]
	content := r.tree.Frame(r.Content())
	want := geom.R(content.MinX()+r.padding.Left, content.MinY()+e.offset, r.cellWidth(), e.height)
	r.tree.Translate(c.View(), want.Origin.Sub(r.tree.Frame(c.View()).Origin))
	r.tree.SetFrame(c.View(), want)
}

// recycle returns the cell at entry i to the pool. Focus inside the cell
// moves to the frame first.
func (r *Frame) recycle(i int) {
	c, ok := r.live[i]
	if !ok {
		return
	}
	delete(r.live, i)

	if f := r.tree.Focus(); f != view.None && r.tree.IsAncestorOrSelf(c.View(), f) {
		r.tree.SetFocus(r.ID())
	}
	_ = r.tree.RemoveChild(r.Content(), c.View())

	path, _ := c.IndexPath()
	if err := r.pool.Enqueue(c); err != nil {
		r.violate("recycle", path, err.Error(), ErrOwnership)
	}
}

func (r *Frame) recycleAll() {
	for _, i := range slices.Sorted(maps.Keys(r.live)) {
		r.recycle(i)
	}
	r.visibleMin, r.visibleMax = -1, -1
}
