package main

import (
	"fmt"

	"github.com/dshills/touchstone/internal/recycler"
)

const (
	demoCell       = "demo"
	demoSectionLen = 100
)

// demoSource lists numbered rows in sections of a hundred. Selecting a row
// toggles a mark on it.
type demoSource struct {
	rows   int
	marked map[recycler.IndexPath]bool
}

func newDemoSource(rows int) *demoSource {
	return &demoSource{rows: max(0, rows), marked: make(map[recycler.IndexPath]bool)}
}

// Attach registers the row cell type and installs the source.
func (d *demoSource) Attach(r *recycler.Frame) {
	tree := r.Tree()
	r.RegisterCell(demoCell, func() recycler.Cell { return recycler.NewTextCell(tree) })
	r.SetDataSource(d)
}

func (d *demoSource) NumberOfSections(*recycler.Frame) int {
	return (d.rows + demoSectionLen - 1) / demoSectionLen
}

func (d *demoSource) NumberOfRows(_ *recycler.Frame, section int) int {
	return min(demoSectionLen, d.rows-section*demoSectionLen)
}

func (d *demoSource) HeightForRow(*recycler.Frame, recycler.IndexPath) float64 {
	return recycler.AutoHeight
}

func (d *demoSource) CellForRow(r *recycler.Frame, p recycler.IndexPath) recycler.Cell {
	c, err := r.DequeueReusableCell(demoCell)
	if err != nil {
		return nil
	}
	cell := c.(*recycler.TextCell)
	cell.SetTitle(fmt.Sprintf("Row %d", p.Section*demoSectionLen+p.Row))
	if d.marked[p] {
		cell.SetDetail("*")
	}
	return cell
}

func (d *demoSource) DidSelectRowAt(r *recycler.Frame, p recycler.IndexPath) {
	d.marked[p] = !d.marked[p]
	c, ok := r.CellAt(p)
	if !ok {
		return
	}
	if cell, ok := c.(*recycler.TextCell); ok {
		if d.marked[p] {
			cell.SetDetail("*")
		} else {
			cell.SetDetail("")
		}
	}
}

func (d *demoSource) TitleForHeader(_ *recycler.Frame, section int) string {
	first := section * demoSectionLen
	last := min(d.rows, first+demoSectionLen) - 1
	return fmt.Sprintf("Rows %d-%d", first, last)
}
