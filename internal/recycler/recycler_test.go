package recycler

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/touchstone/internal/geom"
	"github.com/dshills/touchstone/internal/gesture"
	"github.com/dshills/touchstone/internal/input"
	"github.com/dshills/touchstone/internal/view"
)

type numbered struct {
	BaseDataSource
	rows     int
	height   float64
	selected []IndexPath
}

func (d *numbered) NumberOfRows(*Frame, int) int { return d.rows }

func (d *numbered) HeightForRow(*Frame, IndexPath) float64 { return d.height }

func (d *numbered) CellForRow(r *Frame, p IndexPath) Cell {
	c, err := r.DequeueReusableCell("text")
	if err != nil {
		return nil
	}
	c.(*TextCell).SetTitle(fmt.Sprintf("row %d", p.Row))
	return c
}

func (d *numbered) DidSelectRowAt(_ *Frame, p IndexPath) {
	d.selected = append(d.selected, p)
}

type sectioned struct {
	numbered
	sections int
	titles   []string
}

func (d *sectioned) NumberOfSections(*Frame) int { return d.sections }

func (d *sectioned) TitleForHeader(_ *Frame, s int) string { return d.titles[s] }

type testList struct {
	tree    *view.Tree
	frame   *Frame
	created int
}

func newTestList(t *testing.T, ds DataSource, opts Options) *testList {
	t.Helper()
	l := &testList{tree: view.NewTree(nil)}
	l.frame = New(l.tree, view.Options{Name: "list", Frame: geom.R(0, 0, 320, 440)}, opts, nil)
	l.frame.RegisterCell("text", func() Cell {
		l.created++
		return NewTextCell(l.tree)
	})
	l.frame.SetDataSource(ds)
	return l
}

func livePaths(r *Frame) []IndexPath {
	var paths []IndexPath
	for _, c := range r.LiveCells() {
		p, _ := c.IndexPath()
		paths = append(paths, p)
	}
	return paths
}

func rowPaths(from, to int) []IndexPath {
	var paths []IndexPath
	for i := from; i <= to; i++ {
		paths = append(paths, Path(0, i))
	}
	return paths
}

func TestIndexPathString(t *testing.T) {
	tests := []struct {
		path IndexPath
		want string
	}{
		{Path(0, 3), "[0:3]"},
		{HeaderPath(2), "[2:header]"},
		{IndexPath{Section: 1, Row: 2, Item: 5}, "[1:2:5]"},
	}
	for _, tt := range tests {
		if got := tt.path.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPoolOwnership(t *testing.T) {
	tree := view.NewTree(nil)
	p := NewPool()
	p.Register("a", func() Cell { return NewTextCell(tree) })
	p.Register("b", func() Cell { return NewTextCell(tree) })

	c1, err := p.Dequeue("a")
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if c1.ReuseIdentifier() != "a" {
		t.Errorf("ReuseIdentifier() = %q, want %q", c1.ReuseIdentifier(), "a")
	}
	if err := p.Adopt(c1); err != nil {
		t.Fatalf("Adopt: %v", err)
	}
	if err := p.Adopt(c1); !errors.Is(err, ErrOwnership) {
		t.Errorf("Adopt twice error = %v, want ErrOwnership", err)
	}
	if err := p.Enqueue(c1); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := p.Enqueue(c1); !errors.Is(err, ErrOwnership) {
		t.Errorf("Enqueue twice error = %v, want ErrOwnership", err)
	}
	if err := p.Adopt(c1); !errors.Is(err, ErrOwnership) {
		t.Errorf("Adopt spare error = %v, want ErrOwnership", err)
	}
	if p.Spare("a") != 1 {
		t.Errorf("Spare(a) = %d, want 1", p.Spare("a"))
	}

	b, _ := p.Dequeue("b")
	if b == c1 {
		t.Error("Dequeue(b) returned a cell of identifier a")
	}
	again, _ := p.Dequeue("a")
	if again != c1 {
		t.Error("Dequeue(a) did not reuse the spare cell")
	}
	if p.Created() != 2 {
		t.Errorf("Created() = %d, want 2", p.Created())
	}

	if _, err := p.Dequeue("missing"); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("Dequeue(missing) error = %v, want ErrNotRegistered", err)
	}
}

func TestVisibleWindow(t *testing.T) {
	ds := &numbered{rows: 100, height: 44}
	l := newTestList(t, ds, DefaultOptions())
	r := l.frame

	if diff := cmp.Diff(rowPaths(0, 9), livePaths(r)); diff != "" {
		t.Errorf("live paths at offset 0 mismatch (-want +got):\n%s", diff)
	}
	if got := r.ContentHeight(); got != 4400 {
		t.Errorf("ContentHeight() = %v, want 4400", got)
	}
	for i, c := range r.LiveCells() {
		want := geom.R(0, float64(i)*44, 320, 44)
		if got := l.tree.Frame(c.View()); got != want {
			t.Errorf("cell %d frame = %v, want %v", i, got, want)
		}
		if got := c.(*TextCell).Title(); got != fmt.Sprintf("row %d", i) {
			t.Errorf("cell %d title = %q", i, got)
		}
	}

	r.SetOffset(4400, false)
	if r.Offset() != 3960 {
		t.Errorf("Offset() = %v, want 3960", r.Offset())
	}
	if diff := cmp.Diff(rowPaths(90, 99), livePaths(r)); diff != "" {
		t.Errorf("live paths at the end mismatch (-want +got):\n%s", diff)
	}
	first, last := r.VisibleRange()
	if first != 90 || last != 99 {
		t.Errorf("VisibleRange() = %d, %d, want 90, 99", first, last)
	}
	if got := l.tree.Frame(r.LiveCells()[0].View()).MinY(); got != 0 {
		t.Errorf("first live cell y = %v, want 0", got)
	}
	if got := len(l.tree.Children(r.Content())); got != 10 {
		t.Errorf("content children = %d, want 10", got)
	}
	if l.created != 10 {
		t.Errorf("cells created = %d, want 10", l.created)
	}
}

func TestBoundedWorkingSet(t *testing.T) {
	ds := &numbered{rows: 10000, height: 44}
	l := newTestList(t, ds, DefaultOptions())
	r := l.frame

	check := func(offset float64) {
		t.Helper()
		first, last := r.VisibleRange()
		live := len(r.LiveCells())
		if live != last-first+1 {
			t.Fatalf("offset %v: %d live cells for window %d..%d", offset, live, first, last)
		}
		if l.created > 11 {
			t.Fatalf("offset %v: created %d cells, want at most 11", offset, l.created)
		}
	}

	for y := 0.0; y <= r.MaxOffset(); y += 37 {
		r.SetOffset(y, false)
		check(y)
	}
	for _, y := range []float64{0, 200000, 5, 439999, 123457, 22} {
		r.SetOffset(y, false)
		check(y)
	}
}

func TestRecycledCellHasNoIndexPath(t *testing.T) {
	ds := &numbered{rows: 100, height: 44}
	l := newTestList(t, ds, DefaultOptions())
	r := l.frame

	r.SetOffset(22, false)
	if diff := cmp.Diff(rowPaths(0, 10), livePaths(r)); diff != "" {
		t.Fatalf("live paths mismatch (-want +got):\n%s", diff)
	}
	first := r.LiveCells()[0]

	r.SetOffset(44, false)
	if !r.Pool().Owned(first) {
		t.Fatal("row 0 cell was not returned to the pool")
	}
	if p, ok := first.IndexPath(); ok {
		t.Errorf("recycled cell IndexPath() = %v, want unbound", p)
	}
	if got := first.(*TextCell).Title(); got != "" {
		t.Errorf("recycled cell title = %q, want empty", got)
	}

	c, err := r.DequeueReusableCell("text")
	if err != nil {
		t.Fatalf("DequeueReusableCell: %v", err)
	}
	if c != first {
		t.Fatal("dequeue did not return the spare cell")
	}
	if p, ok := c.IndexPath(); ok {
		t.Errorf("dequeued cell IndexPath() = %v, want unbound", p)
	}
}

func TestReusedCellIsRebound(t *testing.T) {
	ds := &numbered{rows: 100, height: 44}
	l := newTestList(t, ds, DefaultOptions())
	r := l.frame

	first := r.LiveCells()[0]
	r.SetOffset(44, false)

	p, ok := first.IndexPath()
	if !ok || p != Path(0, 10) {
		t.Errorf("reused cell IndexPath() = %v, %v, want %v", p, ok, Path(0, 10))
	}
	if got := first.(*TextCell).Title(); got != "row 10" {
		t.Errorf("reused cell title = %q, want %q", got, "row 10")
	}
	if l.created != 10 {
		t.Errorf("cells created = %d, want 10", l.created)
	}
}

func TestFocusedCellRecycled(t *testing.T) {
	ds := &numbered{rows: 100, height: 44}
	l := newTestList(t, ds, DefaultOptions())
	r := l.frame

	cell := r.LiveCells()[0]
	l.tree.GiveFocus(cell.View())
	if l.tree.Focus() != cell.View() {
		t.Fatalf("Focus() = %v, want row 0", l.tree.Focus())
	}

	r.SetOffset(88, false)
	if l.tree.Focus() != r.ID() {
		t.Errorf("Focus() = %v, want the frame %v", l.tree.Focus(), r.ID())
	}
}

func TestNavigateMaterializesNextRow(t *testing.T) {
	ds := &numbered{rows: 100, height: 44}
	l := newTestList(t, ds, DefaultOptions())
	r := l.frame

	last, _ := r.CellAt(Path(0, 9))
	l.tree.GiveFocus(last.View())

	moved, sound := l.tree.Navigate(view.DirectionDown, false)
	if !moved || sound != gesture.SoundFocusChange {
		t.Fatalf("Navigate(down) = %v, %v, want true, FocusChange", moved, sound)
	}
	next, ok := r.CellAt(Path(0, 10))
	if !ok {
		t.Fatal("row 10 is not live")
	}
	if l.tree.Focus() != next.View() {
		t.Errorf("Focus() = %v, want row 10", l.tree.Focus())
	}
	if r.Offset() != 44 {
		t.Errorf("Offset() = %v, want 44", r.Offset())
	}
	if diff := cmp.Diff(rowPaths(1, 10), livePaths(r)); diff != "" {
		t.Errorf("live paths mismatch (-want +got):\n%s", diff)
	}

	top, _ := r.CellAt(Path(0, 1))
	l.tree.GiveFocus(top.View())
	if moved, _ := l.tree.Navigate(view.DirectionUp, false); !moved {
		t.Fatal("Navigate(up) did not move")
	}
	zero, ok := r.CellAt(Path(0, 0))
	if !ok || l.tree.Focus() != zero.View() {
		t.Errorf("Focus() = %v, want row 0", l.tree.Focus())
	}
	if r.Offset() != 0 {
		t.Errorf("Offset() = %v, want 0", r.Offset())
	}

	var shaken []view.Shake
	l.tree.Shaken.Subscribe(func(s view.Shake) { shaken = append(shaken, s) })
	moved, sound = l.tree.Navigate(view.DirectionUp, false)
	if moved || sound != gesture.SoundFocusError {
		t.Errorf("Navigate(up) at the top = %v, %v, want false, FocusError", moved, sound)
	}
	if len(shaken) != 1 {
		t.Errorf("shakes = %d, want 1", len(shaken))
	}
}

func TestNavigateToLastRow(t *testing.T) {
	ds := &numbered{rows: 30, height: 44}
	l := newTestList(t, ds, DefaultOptions())
	r := l.frame

	first, _ := r.CellAt(Path(0, 0))
	l.tree.GiveFocus(first.View())
	for i := 1; i < 30; i++ {
		if moved, _ := l.tree.Navigate(view.DirectionDown, false); !moved {
			t.Fatalf("Navigate(down) to row %d did not move", i)
		}
		c, ok := r.CellAt(Path(0, i))
		if !ok || l.tree.Focus() != c.View() {
			t.Fatalf("row %d not focused", i)
		}
		if !l.tree.Frame(c.View()).Inscribed(r.Viewport()) {
			t.Fatalf("row %d focused outside the viewport", i)
		}
	}
	if moved, _ := l.tree.Navigate(view.DirectionDown, false); moved {
		t.Error("Navigate(down) past the last row moved")
	}
	if r.Offset() != r.MaxOffset() {
		t.Errorf("Offset() = %v, want %v", r.Offset(), r.MaxOffset())
	}
}

func TestHeaders(t *testing.T) {
	ds := &sectioned{
		numbered: numbered{rows: 3, height: 44},
		sections: 3,
		titles:   []string{"First", "Second", ""},
	}
	l := newTestList(t, ds, DefaultOptions())
	r := l.frame

	if r.Len() != 11 {
		t.Fatalf("Len() = %d, want 11", r.Len())
	}
	want := []IndexPath{
		HeaderPath(0), Path(0, 0), Path(0, 1), Path(0, 2),
		HeaderPath(1), Path(1, 0), Path(1, 1), Path(1, 2),
		Path(2, 0), Path(2, 1),
	}
	if diff := cmp.Diff(want, livePaths(r)); diff != "" {
		t.Errorf("live paths mismatch (-want +got):\n%s", diff)
	}

	header, ok := r.LiveCells()[4].(*HeaderCell)
	if !ok {
		t.Fatalf("entry 4 is %T, want *HeaderCell", r.LiveCells()[4])
	}
	if header.Title() != "Second" {
		t.Errorf("header title = %q, want %q", header.Title(), "Second")
	}
	if header.ReuseIdentifier() != HeaderIdentifier {
		t.Errorf("header ReuseIdentifier() = %q, want %q", header.ReuseIdentifier(), HeaderIdentifier)
	}

	c, _ := r.CellAt(Path(0, 2))
	l.tree.GiveFocus(c.View())
	l.tree.Navigate(view.DirectionDown, false)
	next, _ := r.CellAt(Path(1, 0))
	if l.tree.Focus() != next.View() {
		t.Errorf("Focus() = %v, want row [1:0] past the header", l.tree.Focus())
	}
}

type badCounts struct {
	numbered
}

func (d *badCounts) NumberOfRows(*Frame, int) int { return -3 }

type badHeights struct {
	numbered
}

func (d *badHeights) HeightForRow(_ *Frame, p IndexPath) float64 {
	if p.Row == 1 {
		return -5
	}
	return 44
}

func TestContractViolationStrict(t *testing.T) {
	opts := DefaultOptions()
	opts.Strict = true

	defer func() {
		v := recover()
		err, ok := v.(*ContractError)
		if !ok {
			t.Fatalf("recover() = %v, want *ContractError", v)
		}
		if !errors.Is(err, ErrDataSourceContract) {
			t.Errorf("error %v does not wrap ErrDataSourceContract", err)
		}
	}()
	newTestList(t, &badCounts{}, opts)
	t.Fatal("expected panic")
}

func TestContractViolationLenient(t *testing.T) {
	l := newTestList(t, &badCounts{}, DefaultOptions())
	if l.frame.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.frame.Len())
	}

	l = newTestList(t, &badHeights{numbered{rows: 3}}, DefaultOptions())
	rect, ok := l.frame.RowRect(Path(0, 1))
	if !ok || rect.Size.Height != 0 {
		t.Errorf("RowRect(row 1) = %v, %v, want height 0", rect, ok)
	}
	if got := l.frame.ContentHeight(); got != 88 {
		t.Errorf("ContentHeight() = %v, want 88", got)
	}
}

func TestRowCountChangedWithoutReload(t *testing.T) {
	ds := &numbered{rows: 100, height: 44}
	l := newTestList(t, ds, DefaultOptions())
	r := l.frame

	ds.rows = 5
	r.SetOffset(4400, false)
	if n := len(r.LiveCells()); n != 0 {
		t.Errorf("live cells = %d, want 0 for rows beyond the new count", n)
	}

	r.ReloadData()
	if diff := cmp.Diff(rowPaths(0, 4), livePaths(r)); diff != "" {
		t.Errorf("live paths after reload mismatch (-want +got):\n%s", diff)
	}
}

type tallCell struct {
	*TextCell
}

func (c *tallCell) MeasureHeight(float64) float64 { return 88 }

type measured struct {
	numbered
}

func (d *measured) CellForRow(r *Frame, _ IndexPath) Cell {
	c, _ := r.DequeueReusableCell("tall")
	return c
}

func TestAutoHeightMeasured(t *testing.T) {
	ds := &measured{numbered{rows: 100, height: AutoHeight}}
	tree := view.NewTree(nil)
	r := New(tree, view.Options{Name: "list", Frame: geom.R(0, 0, 320, 440)}, DefaultOptions(), nil)
	r.RegisterCell("tall", func() Cell { return &tallCell{NewTextCell(tree)} })
	r.SetDataSource(ds)

	if diff := cmp.Diff(rowPaths(0, 4), livePaths(r)); diff != "" {
		t.Errorf("live paths mismatch (-want +got):\n%s", diff)
	}
	rect, _ := r.RowRect(Path(0, 1))
	if rect.MinY() != 88 || rect.Size.Height != 88 {
		t.Errorf("RowRect(row 1) = %v, want y 88 height 88", rect)
	}
	if got := r.ContentHeight(); got != 10*88+90*44 {
		t.Errorf("ContentHeight() = %v, want %v", got, 10*88+90*44)
	}
}

func TestSelectRowAt(t *testing.T) {
	ds := &numbered{rows: 100, height: 44}
	l := newTestList(t, ds, DefaultOptions())
	r := l.frame

	if err := r.SelectRowAt(Path(0, 50), false); err != nil {
		t.Fatalf("SelectRowAt: %v", err)
	}
	if r.Offset() != 2200 {
		t.Errorf("Offset() = %v, want 2200", r.Offset())
	}
	c, ok := r.CellAt(Path(0, 50))
	if !ok || l.tree.Focus() != c.View() {
		t.Errorf("Focus() = %v, want row 50", l.tree.Focus())
	}

	if err := r.SelectRowAt(Path(0, 52), true); err != nil {
		t.Fatalf("SelectRowAt animated: %v", err)
	}
	c, _ = r.CellAt(Path(0, 52))
	if l.tree.Focus() != c.View() {
		t.Errorf("Focus() = %v, want row 52", l.tree.Focus())
	}
	if !r.Animating() {
		t.Fatal("Animating() = false, want true")
	}
	for i := 0; i < 3; i++ {
		r.Tick(input.Frame{Delta: 50 * time.Millisecond, FPS: 20})
	}
	if r.Offset() != 2288 {
		t.Errorf("Offset() = %v, want 2288", r.Offset())
	}

	err := r.SelectRowAt(Path(3, 0), false)
	if !errors.Is(err, ErrUnknownIndexPath) {
		t.Errorf("SelectRowAt(unknown) error = %v, want ErrUnknownIndexPath", err)
	}
}

func TestSelectionThroughActionAndTap(t *testing.T) {
	ds := &numbered{rows: 100, height: 44}
	l := newTestList(t, ds, DefaultOptions())
	r := l.frame

	c, _ := r.CellAt(Path(0, 2))
	l.tree.GiveFocus(c.View())
	handled, sound := l.tree.HandleAction(input.ButtonA, false)
	if !handled || sound != gesture.SoundClick {
		t.Errorf("HandleAction(A) = %v, %v, want true, Click", handled, sound)
	}

	c, _ = r.CellAt(Path(0, 4))
	frame := input.Frame{FPS: 60}
	at := geom.Pt(10, 4*44+10)
	l.tree.RouteGesture(c.View(), frame, input.TouchState{FingerID: 1, Phase: input.PhaseStart, Position: at}, input.MouseState{})
	l.tree.RouteGesture(c.View(), frame, input.TouchState{FingerID: 1, Phase: input.PhaseEnd, Position: at}, input.MouseState{})

	want := []IndexPath{Path(0, 2), Path(0, 4)}
	if diff := cmp.Diff(want, ds.selected); diff != "" {
		t.Errorf("selected mismatch (-want +got):\n%s", diff)
	}
	if l.tree.Focus() != c.View() {
		t.Errorf("Focus() = %v, want the tapped row", l.tree.Focus())
	}
}

func TestDefaultCellFocus(t *testing.T) {
	ds := &numbered{rows: 100, height: 44}
	l := newTestList(t, ds, DefaultOptions())
	r := l.frame

	first, _ := r.CellAt(Path(0, 0))
	if got := r.DefaultFocus(); got != first.View() {
		t.Errorf("DefaultFocus() = %v, want row 0", got)
	}

	r.SetDefaultCellFocus(Path(0, 3))
	l.tree.GiveFocus(r.ID())
	c, _ := r.CellAt(Path(0, 3))
	if l.tree.Focus() != c.View() {
		t.Errorf("Focus() = %v, want row 3", l.tree.Focus())
	}

	r.SetDefaultCellFocus(Path(0, 80))
	if got := r.DefaultFocus(); got != first.View() {
		t.Errorf("DefaultFocus() with an off-screen default = %v, want row 0", got)
	}
}

func TestReloadKeepsFocusedRow(t *testing.T) {
	ds := &numbered{rows: 100, height: 44}
	l := newTestList(t, ds, DefaultOptions())
	r := l.frame

	c, _ := r.CellAt(Path(0, 2))
	l.tree.GiveFocus(c.View())
	r.ReloadData()

	c, ok := r.CellAt(Path(0, 2))
	if !ok || l.tree.Focus() != c.View() {
		t.Errorf("Focus() = %v, want row 2 after reload", l.tree.Focus())
	}
}

func TestPaddingAndWidth(t *testing.T) {
	ds := &numbered{rows: 100, height: 44}
	l := newTestList(t, ds, DefaultOptions())
	r := l.frame

	r.SetPadding(Padding{Top: 10, Right: 5, Bottom: 10, Left: 5})
	if got := r.ContentHeight(); got != 4420 {
		t.Errorf("ContentHeight() = %v, want 4420", got)
	}
	c, _ := r.CellAt(Path(0, 0))
	if got, want := l.tree.Frame(c.View()), geom.R(5, 10, 310, 44); got != want {
		t.Errorf("row 0 frame = %v, want %v", got, want)
	}

	r.SetViewport(geom.R(0, 0, 200, 440))
	c, _ = r.CellAt(Path(0, 0))
	if got := l.tree.Frame(c.View()).Size.Width; got != 190 {
		t.Errorf("row 0 width = %v, want 190", got)
	}
}

func TestDestroy(t *testing.T) {
	ds := &numbered{rows: 100, height: 44}
	l := newTestList(t, ds, DefaultOptions())
	l.frame.Destroy()
	if n := l.tree.Len(); n != 0 {
		t.Errorf("tree Len() = %d, want 0", n)
	}
}
