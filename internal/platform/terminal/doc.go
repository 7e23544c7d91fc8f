// Package terminal runs the focus engine in a terminal using tcell.
//
// Terminal samples the keyboard and mouse once per frame and maps them
// onto the unified input model: arrow keys become navigation buttons,
// Enter and Space press A, Escape and Backspace press B, and the mouse
// reports its position, buttons and wheel. Terminals do not report key
// releases, so a key counts as held for the frame its event arrived in.
//
// Renderer draws the live cells of recycler frames, highlighting the
// focused row. Points are mapped to character cells through Metrics.
package terminal
