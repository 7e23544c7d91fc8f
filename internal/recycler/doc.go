// Package recycler implements a virtualized list view.
//
// A Frame presents any number of rows while keeping only the cells that
// intersect its viewport alive. Rows are described by a DataSource; cells
// are built by factories registered per reuse identifier and are recycled
// through a Pool as they scroll out of view.
//
// # Geometry
//
// ReloadData asks the data source for every section count, row count and
// row height in one pass and caches the resulting offsets. Rows with
// AutoHeight use Options.EstimatedRowHeight until a cell implementing
// Measurer is laid out for them. The cache is rebuilt on ReloadData, on
// SetPadding and when the viewport width changes.
//
// # Window
//
// The visible window is the contiguous range of cached entries whose
// rectangles intersect the viewport, found by binary search over the
// offsets. Each layout pass first returns cells that left the window to
// the pool and then binds cells for entries that entered it, inserting
// them into the content box in index order.
//
// # Focus
//
// The content box navigator, NextCellFocus, only answers with live cells:
// stepping past the edge of the window scrolls the next entry in before
// focus moves. A focused cell that scrolls out hands focus to the frame.
//
// # Ownership
//
// Every cell is owned by exactly one of the pool, the data source that
// dequeued it, or the content box. Transfers are checked; a violation is
// reported as a ContractError wrapping ErrOwnership.
//
// # Contract Violations
//
// Counts or heights that are negative, or row counts that change without
// ReloadData, are data source contract violations. With Options.Strict the
// frame panics with a *ContractError; otherwise it logs a warning and
// clamps.
package recycler
