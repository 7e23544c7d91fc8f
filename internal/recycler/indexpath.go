package recycler

import "fmt"

// HeaderRow is the row of a section header entry.
const HeaderRow = -1

// IndexPath identifies an entry of the recycler. Item equals Row unless
// the row is itemized.
type IndexPath struct {
	Section int
	Row     int
	Item    int
}

// Path returns the index path of a row, with Item defaulting to Row.
func Path(section, row int) IndexPath {
	return IndexPath{Section: section, Row: row, Item: row}
}

// HeaderPath returns the index path of a section header.
func HeaderPath(section int) IndexPath {
	return Path(section, HeaderRow)
}

// IsHeader reports whether p names a section header.
func (p IndexPath) IsHeader() bool {
	return p.Row == HeaderRow
}

// String returns a string representation of the index path.
func (p IndexPath) String() string {
	if p.IsHeader() {
		return fmt.Sprintf("[%d:header]", p.Section)
	}
	if p.Item != p.Row {
		return fmt.Sprintf("[%d:%d:%d]", p.Section, p.Row, p.Item)
	}
	return fmt.Sprintf("[%d:%d]", p.Section, p.Row)
}

// less orders paths by section, then row.
func (p IndexPath) less(o IndexPath) bool {
	if p.Section != o.Section {
		return p.Section < o.Section
	}
	return p.Row < o.Row
}
