package recycler

import "github.com/dshills/touchstone/internal/view"

// Cell is a reusable row view.
type Cell interface {
	// View returns the cell's root view.
	View() view.ID

	// ReuseIdentifier returns the pool key the cell returns to.
	ReuseIdentifier() string

	// SetReuseIdentifier changes the pool key.
	SetReuseIdentifier(id string)

	// IndexPath returns the entry the cell is bound to. The second result
	// is false while the cell is not placed.
	IndexPath() (IndexPath, bool)

	// Bind assigns the cell to an entry. Only the recycler calls it.
	Bind(path IndexPath)

	// Unbind clears the entry. Only the recycler calls it.
	Unbind()

	// PrepareForReuse clears cell-specific state before the cell is
	// pooled.
	PrepareForReuse()
}

// Measurer is implemented by cells that size themselves. It is consulted
// for entries whose height was left to auto-measurement.
type Measurer interface {
	MeasureHeight(width float64) float64
}

// Titled is implemented by cells with a text title.
type Titled interface {
	Title() string
}

// CellFactory constructs a new cell.
type CellFactory func() Cell

// BaseCell implements the bookkeeping part of Cell. Concrete cells embed
// it and override PrepareForReuse.
type BaseCell struct {
	id      view.ID
	reuseID string
	path    IndexPath
	bound   bool
}

// NewBaseCell creates the cell's view in tree.
func NewBaseCell(tree *view.Tree, name string, focusable bool) *BaseCell {
	return &BaseCell{
		id: tree.Create(view.Options{Name: name, Focusable: focusable}),
	}
}

// View returns the cell's view.
func (c *BaseCell) View() view.ID {
	return c.id
}

// ReuseIdentifier returns the pool key.
func (c *BaseCell) ReuseIdentifier() string {
	return c.reuseID
}

// SetReuseIdentifier changes the pool key.
func (c *BaseCell) SetReuseIdentifier(id string) {
	c.reuseID = id
}

// IndexPath returns the bound entry.
func (c *BaseCell) IndexPath() (IndexPath, bool) {
	return c.path, c.bound
}

// Bind assigns the cell to path.
func (c *BaseCell) Bind(path IndexPath) {
	c.path = path
	c.bound = true
}

// Unbind clears the bound entry.
func (c *BaseCell) Unbind() {
	c.path = IndexPath{}
	c.bound = false
}

// PrepareForReuse does nothing.
func (c *BaseCell) PrepareForReuse() {}

// TextCell is a focusable cell showing a title and an optional detail.
type TextCell struct {
	*BaseCell
	title  string
	detail string
}

// NewTextCell creates a text cell in tree.
func NewTextCell(tree *view.Tree) *TextCell {
	return &TextCell{BaseCell: NewBaseCell(tree, "cell", true)}
}

// Title returns the title.
func (c *TextCell) Title() string { return c.title }

// Detail returns the detail text.
func (c *TextCell) Detail() string { return c.detail }

// SetTitle sets the title.
func (c *TextCell) SetTitle(s string) { c.title = s }

// SetDetail sets the detail text.
func (c *TextCell) SetDetail(s string) { c.detail = s }

// PrepareForReuse clears the texts.
func (c *TextCell) PrepareForReuse() {
	c.title = ""
	c.detail = ""
}

// HeaderCell is the non-focusable cell used for section headers.
type HeaderCell struct {
	*BaseCell
	title    string
	subtitle string
}

// NewHeaderCell creates a header cell in tree.
func NewHeaderCell(tree *view.Tree) *HeaderCell {
	return &HeaderCell{BaseCell: NewBaseCell(tree, "header", false)}
}

// Title returns the header title.
func (c *HeaderCell) Title() string { return c.title }

// Subtitle returns the header subtitle.
func (c *HeaderCell) Subtitle() string { return c.subtitle }

// SetTitle sets the header title.
func (c *HeaderCell) SetTitle(s string) { c.title = s }

// SetSubtitle sets the header subtitle.
func (c *HeaderCell) SetSubtitle(s string) { c.subtitle = s }

// PrepareForReuse clears the texts.
func (c *HeaderCell) PrepareForReuse() {
	c.title = ""
	c.subtitle = ""
}
