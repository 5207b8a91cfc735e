package models

import (
	"fmt"
	"image/color"
)

// Channel identifies one of the color-separated planes of a source image.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// String returns the display label for the channel.
func (c Channel) String() string {
	switch c {
	case Red:
		return "Red"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// Color returns the plotting color conventionally assigned to the channel.
func (c Channel) Color() color.RGBA {
	switch c {
	case Red:
		return color.RGBA{R: 255, A: 255}
	case Green:
		return color.RGBA{G: 255, A: 255}
	case Blue:
		return color.RGBA{B: 255, A: 255}
	}
	return color.RGBA{A: 255}
}

// Plane is a single 8-bit grayscale intensity plane with fixed dimensions.
// Pixel samples are stored in row-major order. A plane is treated as
// immutable once it has been handed to the analysis engine.
type Plane struct {
	// Pix holds the intensity samples, one byte per pixel, row by row.
	Pix []uint8

	// Width and Height are the plane dimensions in pixels.
	Width, Height int
}

// NewPlane allocates a zeroed plane of the given dimensions.
func NewPlane(width, height int) *Plane {
	return &Plane{
		Pix:    make([]uint8, width*height),
		Width:  width,
		Height: height,
	}
}

// At returns the intensity sample at (x, y).
func (p *Plane) At(x, y int) uint8 {
	return p.Pix[y*p.Width+x]
}

// Set stores an intensity sample at (x, y).
func (p *Plane) Set(x, y int, v uint8) {
	p.Pix[y*p.Width+x] = v
}

// SameSize reports whether two planes share width and height.
func (p *Plane) SameSize(q *Plane) bool {
	return p.Width == q.Width && p.Height == q.Height
}

// Stack is an ordered sequence of same-sized planes, one per slice of a
// z-stack or time series. The engine only reads a stack; the caller owns it.
type Stack struct {
	// Title identifies the source image in reports.
	Title string

	// Path is the location the stack was loaded from, empty for derived
	// stacks such as a colocalization mask.
	Path string

	// Planes holds the slices in their original order.
	Planes []*Plane
}

// Len returns the number of slices in the stack.
func (s *Stack) Len() int {
	return len(s.Planes)
}
