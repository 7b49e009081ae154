// Package sample is a small API surface for provider tests.
package sample

// MaxDepth bounds traversal depth.
const MaxDepth = 8

// Version reports the sample release.
var Version = "1.0"

// Base is the root of the sample hierarchy.
type Base struct {
	ID int
}

// Name returns the base name.
func (b *Base) Name() string { return "" }

// Shape is a drawable element.
type Shape struct {
	Base
	Label  string
	hidden int
}

// Area computes the shape's area.
func (s Shape) Area(scale float64) float64 { return 0 * scale }

func (s *Shape) secret() { _ = s.hidden }

// New constructs a shape.
func New(label string, opts ...int) *Shape { return &Shape{Label: label} }

// Alias re-exports Shape under another name.
type Alias = Shape
