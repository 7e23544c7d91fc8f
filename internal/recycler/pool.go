package recycler

import (
	"fmt"

	"github.com/dshills/touchstone/internal/view"
)

type owner uint8

const (
	ownerNone owner = iota
	ownerPool
	ownerCaller
	ownerContent
)

func (o owner) String() string {
	switch o {
	case ownerPool:
		return "pool"
	case ownerCaller:
		return "caller"
	case ownerContent:
		return "content"
	default:
		return "none"
	}
}

// Pool keeps spare cells by reuse identifier and tracks who owns every
// cell it has handed out.
//
// A cell is owned by exactly one of: the pool (spare), the caller (just
// dequeued), or the content box (placed). Transfers that do not start from
// the expected owner fail with ErrOwnership.
type Pool struct {
	factories map[string]CellFactory
	spare     map[string][]Cell
	owners    map[view.ID]owner
	created   int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{
		factories: make(map[string]CellFactory),
		spare:     make(map[string][]Cell),
		owners:    make(map[view.ID]owner),
	}
}

// Register installs the factory for identifier, replacing any previous one.
func (p *Pool) Register(identifier string, factory CellFactory) {
	p.factories[identifier] = factory
}

// Registered reports whether identifier has a factory.
func (p *Pool) Registered(identifier string) bool {
	_, ok := p.factories[identifier]
	return ok
}

// Dequeue returns a spare cell for identifier, or a new one from its
// factory. The caller owns the returned cell.
func (p *Pool) Dequeue(identifier string) (Cell, error) {
	if spares := p.spare[identifier]; len(spares) > 0 {
		c := spares[len(spares)-1]
		p.spare[identifier] = spares[:len(spares)-1]
		p.owners[c.View()] = ownerCaller
		return c, nil
	}

	factory, ok := p.factories[identifier]
	if !ok {
		return nil, fmt.Errorf("dequeue %q: %w", identifier, ErrNotRegistered)
	}
	c := factory()
	if c == nil {
		return nil, fmt.Errorf("dequeue %q: factory returned nil: %w", identifier, ErrDataSourceContract)
	}
	c.SetReuseIdentifier(identifier)
	c.Unbind()
	p.created++
	p.owners[c.View()] = ownerCaller
	return c, nil
}

// Adopt moves a cell from the caller to the content box. Cells the pool
// has never seen are accepted as freshly built.
func (p *Pool) Adopt(c Cell) error {
	if o := p.owners[c.View()]; o != ownerCaller && o != ownerNone {
		return fmt.Errorf("adopt cell %d owned by %s: %w", c.View(), o, ErrOwnership)
	}
	p.owners[c.View()] = ownerContent
	return nil
}

// Enqueue prepares c for reuse, clears its index path and stores it as a
// spare under its current reuse identifier.
func (p *Pool) Enqueue(c Cell) error {
	if o := p.owners[c.View()]; o == ownerPool {
		return fmt.Errorf("enqueue cell %d owned by %s: %w", c.View(), o, ErrOwnership)
	}
	c.PrepareForReuse()
	c.Unbind()
	p.spare[c.ReuseIdentifier()] = append(p.spare[c.ReuseIdentifier()], c)
	p.owners[c.View()] = ownerPool
	return nil
}

// Spare returns the number of spare cells for identifier.
func (p *Pool) Spare(identifier string) int {
	return len(p.spare[identifier])
}

// Created returns how many cells the factories have built.
func (p *Pool) Created() int {
	return p.created
}

// Drain empties the pool and returns its spare cells.
func (p *Pool) Drain() []Cell {
	var cells []Cell
	for id, spares := range p.spare {
		for _, c := range spares {
			delete(p.owners, c.View())
		}
		cells = append(cells, spares...)
		delete(p.spare, id)
	}
	return cells
}

// Owned reports whether the pool currently holds c as a spare.
func (p *Pool) Owned(c Cell) bool {
	return p.owners[c.View()] == ownerPool
}
