package recycler

// AutoHeight asks the recycler to measure an entry.
const AutoHeight = -1

// DataSource supplies the recycler's rows.
type DataSource interface {
	NumberOfSections(r *Frame) int
	NumberOfRows(r *Frame, section int) int
	// CellForRow returns a cell for path, normally obtained with
	// r.DequeueReusableCell.
	CellForRow(r *Frame, path IndexPath) Cell
	// HeightForRow returns the row height, or AutoHeight.
	HeightForRow(r *Frame, path IndexPath) float64
	DidSelectRowAt(r *Frame, path IndexPath)
}

// HeaderTitleSource is implemented by data sources with section titles.
// With no HeaderCellSource the title is shown in a "Header" cell.
type HeaderTitleSource interface {
	TitleForHeader(r *Frame, section int) string
}

// HeaderCellSource is implemented by data sources that build their own
// section header cells.
type HeaderCellSource interface {
	CellForHeader(r *Frame, section int) Cell
}

// HeaderHeightSource is implemented by data sources that size their
// section headers. Without it a header is hidden when its title is empty
// and auto-measured otherwise.
type HeaderHeightSource interface {
	HeightForHeader(r *Frame, section int) float64
}

// BaseDataSource provides default answers: one empty section with
// auto-measured rows. Embed it and override what is needed.
type BaseDataSource struct{}

// NumberOfSections returns 1.
func (BaseDataSource) NumberOfSections(*Frame) int { return 1 }

// NumberOfRows returns 0.
func (BaseDataSource) NumberOfRows(*Frame, int) int { return 0 }

// CellForRow returns nil.
func (BaseDataSource) CellForRow(*Frame, IndexPath) Cell { return nil }

// HeightForRow returns AutoHeight.
func (BaseDataSource) HeightForRow(*Frame, IndexPath) float64 { return AutoHeight }

// DidSelectRowAt does nothing.
func (BaseDataSource) DidSelectRowAt(*Frame, IndexPath) {}
