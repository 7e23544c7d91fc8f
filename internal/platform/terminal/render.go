package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/touchstone/internal/recycler"
	"github.com/dshills/touchstone/internal/view"
)

// Styles are the colors used by Renderer.
type Styles struct {
	Row     tcell.Style
	Detail  tcell.Style
	Header  tcell.Style
	Focused tcell.Style
	Flash   tcell.Style
	Status  tcell.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Row:     tcell.StyleDefault,
		Detail:  tcell.StyleDefault.Dim(true),
		Header:  tcell.StyleDefault.Bold(true).Underline(true),
		Focused: tcell.StyleDefault.Reverse(true),
		Flash:   tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack),
		Status:  tcell.StyleDefault.Reverse(true).Dim(true),
	}
}

// flashFrames is how long a click highlight stays on screen.
const flashFrames = 6

// Renderer draws recycler frames onto a screen.
type Renderer struct {
	screen  tcell.Screen
	metrics Metrics
	styles  Styles
	tree    *view.Tree
	flashes map[view.ID]int
}

// NewRenderer creates a renderer for views of tree.
func NewRenderer(screen tcell.Screen, metrics Metrics, tree *view.Tree) *Renderer {
	r := &Renderer{
		screen:  screen,
		metrics: metrics,
		styles:  DefaultStyles(),
		tree:    tree,
		flashes: make(map[view.ID]int),
	}
	tree.Clicked.Subscribe(func(c view.Click) {
		if c.Highlight {
			r.flashes[c.View] = flashFrames
		}
	})
	return r
}

// SetStyles replaces the palette.
func (r *Renderer) SetStyles(s Styles) {
	r.styles = s
}

// Draw clears the screen, draws every list and the status line, and shows
// the result.
func (r *Renderer) Draw(status string, lists ...*recycler.Frame) {
	r.screen.Clear()
	for _, l := range lists {
		r.drawList(l)
	}
	if status != "" {
		_, h := r.screen.Size()
		r.drawStatus(h-1, status)
	}
	r.screen.Show()

	for id, n := range r.flashes {
		if n <= 1 {
			delete(r.flashes, id)
			continue
		}
		r.flashes[id] = n - 1
	}
}

func (r *Renderer) drawList(l *recycler.Frame) {
	vp := r.tree.Frame(l.ID())
	top, bottom := int(vp.MinY()/r.metrics.CellHeight), int(vp.MaxY()/r.metrics.CellHeight)
	focus := r.tree.Focus()

	for _, c := range l.LiveCells() {
		f := r.tree.Frame(c.View())
		x0, y0 := r.metrics.ToCell(f.Origin)
		width := int(f.Size.Width / r.metrics.CellWidth)
		lines := max(1, int(f.Size.Height/r.metrics.CellHeight))

		style := r.styles.Row
		switch {
		case r.flashes[c.View()] > 0:
			style = r.styles.Flash
		case focus != view.None && r.tree.IsAncestorOrSelf(c.View(), focus):
			style = r.styles.Focused
		}

		for dy := range lines {
			y := y0 + dy
			if y < top || y >= bottom {
				continue
			}
			r.fill(x0, y, width, style)
		}

		// The text sits on the first line of the cell that is on screen.
		y := max(y0, top)
		if y >= bottom || y >= y0+lines {
			continue
		}
		switch cell := c.(type) {
		case *recycler.HeaderCell:
			r.drawText(x0, y, width, cell.Title(), r.styles.Header)
		case *recycler.TextCell:
			used := r.drawText(x0+1, y, width-1, cell.Title(), style)
			if d := cell.Detail(); d != "" {
				dw := uniseg.StringWidth(d)
				if x := x0 + width - dw - 1; x > x0+used+2 {
					r.drawText(x, y, dw, d, style.Dim(true))
				}
			}
		case recycler.Titled:
			r.drawText(x0+1, y, width-1, cell.Title(), style)
		}
	}
}

func (r *Renderer) drawStatus(y int, text string) {
	w, _ := r.screen.Size()
	r.fill(0, y, w, r.styles.Status)
	r.drawText(1, y, w-2, text, r.styles.Status)
}

func (r *Renderer) fill(x, y, width int, style tcell.Style) {
	for i := range width {
		r.screen.SetContent(x+i, y, ' ', nil, style)
	}
}

// drawText writes text at x, y, clipped to width columns, and returns the
// number of columns used. Grapheme clusters are never split.
func (r *Renderer) drawText(x, y, width int, text string, style tcell.Style) int {
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if used+w > width {
			break
		}
		runes := g.Runes()
		r.screen.SetContent(x+used, y, runes[0], runes[1:], style)
		used += w
	}
	return used
}
