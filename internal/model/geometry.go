package model

import "fmt"

// Size is a screen size, either detected for the current display or
// configured for a known one. It is value-comparable so it can key lookups
// independent of position.
type Size struct {
	Width  int
	Height int
}

// String returns the size formatted the way display profiles print it
func (s Size) String() string {
	return fmt.Sprintf("%d X %d", s.Width, s.Height)
}

// Extent is a size plus a position on the screen, used as the target
// rectangle for a viewer window.
type Extent struct {
	Size
	X int
	Y int
}

// String returns the extent with its origin
func (e Extent) String() string {
	return fmt.Sprintf("%s at (%d, %d)", e.Size, e.X, e.Y)
}

// Display is a configured screen profile: the monitor dimensions it matches
// and the target extent to place the viewer window at.
type Display struct {
	Name   string
	Size
	Target Extent
}

// String returns the display size with its profile name
func (d Display) String() string {
	return fmt.Sprintf("%s (%s)", d.Size, d.Name)
}
