package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/touchstone/internal/logging"
	"github.com/dshills/touchstone/internal/recycler"
)

// DefaultCallTimeout bounds each call into the script.
const DefaultCallTimeout = 50 * time.Millisecond

// CellIdentifier is the reuse identifier of the cells the script fills.
const CellIdentifier = "script.text"

// Errors returned when loading scripts.
var (
	// ErrMissingFunction indicates the script does not define rows().
	ErrMissingFunction = errors.New("script does not define rows()")

	// ErrClosed indicates the data source was used after Close.
	ErrClosed = errors.New("script closed")
)

// DataSource is a recycler data source backed by a Lua script.
//
// The script defines global functions; sections and rows are numbered
// from zero:
//
//	sections()          number of sections (default 1)
//	rows(section)       number of rows (required)
//	title(section, row) a string, or a table {title = ..., detail = ...}
//	height(section, row) row height; nil or -1 auto-sizes
//	header(section)     section header title; nil or "" hides it
//	select(section, row) called when a row is chosen
//
// A failing call is logged and answered with an empty result.
//
// DataSource is not safe for concurrent use.
type DataSource struct {
	L       *lua.LState
	name    string
	timeout time.Duration
	log     *logging.Logger

	lastErr error
	closed  bool
}

// Option configures a DataSource.
type Option func(*DataSource)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(ds *DataSource) {
		if d > 0 {
			ds.timeout = d
		}
	}
}

// WithLogger sets the logger for script failures and log() output.
func WithLogger(log *logging.Logger) Option {
	return func(ds *DataSource) {
		if log != nil {
			ds.log = log
		}
	}
}

// LoadFile loads a script from path.
func LoadFile(path string, opts ...Option) (*DataSource, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return LoadString(path, string(code), opts...)
}

// LoadString loads a script from source. name is used in messages.
func LoadString(name, code string, opts ...Option) (*DataSource, error) {
	ds := &DataSource{
		L:       newSandbox(),
		name:    name,
		timeout: DefaultCallTimeout,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(ds)
	}
	ds.log = ds.log.WithComponent("script")
	ds.installAPI()

	fn, err := ds.L.LoadString(code)
	if err != nil {
		ds.L.Close()
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	if err := ds.protectedCall(fn, 0); err != nil {
		ds.L.Close()
		return nil, fmt.Errorf("running %s: %w", name, err)
	}
	if ds.L.GetGlobal("rows").Type() != lua.LTFunction {
		ds.L.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrMissingFunction)
	}
	return ds, nil
}

// Attach registers the script's cell type on r and makes the script its
// data source.
func (ds *DataSource) Attach(r *recycler.Frame) {
	tree := r.Tree()
	r.RegisterCell(CellIdentifier, func() recycler.Cell { return recycler.NewTextCell(tree) })
	r.SetDataSource(ds)
}

// LastError returns the most recent call failure, or nil.
func (ds *DataSource) LastError() error {
	return ds.lastErr
}

// Close releases the Lua state.
func (ds *DataSource) Close() {
	if ds.closed {
		return
	}
	ds.closed = true
	ds.L.Close()
}

// NumberOfSections implements recycler.DataSource.
func (ds *DataSource) NumberOfSections(*recycler.Frame) int {
	v, ok := ds.call("sections", 1)
	if !ok || v[0] == lua.LNil {
		return 1
	}
	return toInt(v[0])
}

// NumberOfRows implements recycler.DataSource.
func (ds *DataSource) NumberOfRows(_ *recycler.Frame, section int) int {
	v, ok := ds.call("rows", 1, lua.LNumber(section))
	if !ok {
		return 0
	}
	return toInt(v[0])
}

// HeightForRow implements recycler.DataSource.
func (ds *DataSource) HeightForRow(_ *recycler.Frame, p recycler.IndexPath) float64 {
	v, ok := ds.call("height", 1, lua.LNumber(p.Section), lua.LNumber(p.Row))
	if !ok || v[0] == lua.LNil {
		return recycler.AutoHeight
	}
	n, isNum := v[0].(lua.LNumber)
	if !isNum {
		return recycler.AutoHeight
	}
	return float64(n)
}

// CellForRow implements recycler.DataSource.
func (ds *DataSource) CellForRow(r *recycler.Frame, p recycler.IndexPath) recycler.Cell {
	c, err := r.DequeueReusableCell(CellIdentifier)
	if err != nil {
		ds.log.Error("%s: %v", ds.name, err)
		return nil
	}
	cell, ok := c.(*recycler.TextCell)
	if !ok {
		return c
	}

	v, ok := ds.call("title", 1, lua.LNumber(p.Section), lua.LNumber(p.Row))
	if !ok {
		return cell
	}
	switch t := v[0].(type) {
	case lua.LString:
		cell.SetTitle(string(t))
	case *lua.LTable:
		cell.SetTitle(lua.LVAsString(t.RawGetString("title")))
		cell.SetDetail(lua.LVAsString(t.RawGetString("detail")))
	case lua.LNumber:
		cell.SetTitle(t.String())
	}
	return cell
}

// DidSelectRowAt implements recycler.DataSource.
func (ds *DataSource) DidSelectRowAt(_ *recycler.Frame, p recycler.IndexPath) {
	ds.call("select", 0, lua.LNumber(p.Section), lua.LNumber(p.Row))
}

// TitleForHeader implements recycler.HeaderTitleSource.
func (ds *DataSource) TitleForHeader(_ *recycler.Frame, section int) string {
	v, ok := ds.call("header", 1, lua.LNumber(section))
	if !ok || v[0] == lua.LNil {
		return ""
	}
	return lua.LVAsString(v[0])
}

// call invokes the global function name. It reports false when the
// function is missing or fails.
func (ds *DataSource) call(name string, nret int, args ...lua.LValue) ([]lua.LValue, bool) {
	if ds.closed {
		ds.lastErr = ErrClosed
		return nil, false
	}
	fn, ok := ds.L.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return nil, false
	}

	if err := ds.protectedCall(fn, nret, args...); err != nil {
		ds.lastErr = fmt.Errorf("%s(): %w", name, err)
		ds.log.Warn("%s: %v", ds.name, ds.lastErr)
		return nil, false
	}

	rets := make([]lua.LValue, nret)
	for i := range rets {
		rets[i] = ds.L.Get(i - nret)
	}
	ds.L.Pop(nret)
	return rets, true
}

func (ds *DataSource) protectedCall(fn *lua.LFunction, nret int, args ...lua.LValue) error {
	ctx, cancel := context.WithTimeout(context.Background(), ds.timeout)
	defer cancel()
	ds.L.SetContext(ctx)
	defer ds.L.RemoveContext()

	return ds.L.CallByParam(lua.P{Fn: fn, NRet: nret, Protect: true}, args...)
}

func toInt(v lua.LValue) int {
	n, ok := v.(lua.LNumber)
	if !ok {
		return 0
	}
	return int(n)
}
