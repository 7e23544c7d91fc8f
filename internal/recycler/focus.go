package recycler

import "github.com/dshills/touchstone/internal/view"

// NextCellFocus is the content box navigator. Along the list it steps to
// the adjacent entry, scrolling it in first when it is not live so that
// focus only ever lands on materialized cells. Entries with nothing
// focusable are skipped. Across the list, or past either end, the frame's
// parent decides.
func (r *Frame) NextCellFocus(dir view.Direction, from view.ID) view.ID {
	if !view.AxisColumn.Traverses(dir) {
		return r.tree.NextFocus(dir, r.ID())
	}

	i := r.liveIndexOf(from)
	if i < 0 {
		return r.tree.NextFocus(dir, r.ID())
	}

	saved := r.Offset()
	for j := i + dir.Step(); j >= 0 && j < len(r.entries); j += dir.Step() {
		c := r.materialize(j)
		if c == nil {
			continue
		}
		if f := r.tree.DefaultFocus(c.View()); f != view.None {
			return f
		}
	}

	if r.Offset() != saved {
		r.SetOffset(saved, false)
	}
	return r.tree.NextFocus(dir, r.ID())
}

func (r *Frame) liveIndexOf(id view.ID) int {
	for i, c := range r.live {
		if c.View() == id {
			return i
		}
	}
	return -1
}

// materialize returns the live cell of entry i, scrolling the least
// amount needed to bring it into the window when it is not live.
func (r *Frame) materialize(i int) Cell {
	if c, ok := r.live[i]; ok {
		return c
	}

	e := r.entries[i]
	target := r.Offset()
	vp := r.Viewport().Size.Height
	switch {
	case e.offset < target:
		target = e.offset
	case e.offset+e.height > target+vp:
		target = e.offset + e.height - vp
	}
	r.SetOffset(target, false)
	r.layoutCells()
	return r.live[i]
}
