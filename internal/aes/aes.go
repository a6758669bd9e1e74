// Package aes enumerates the visual channels a layer can bind data to.
package aes

import "fmt"

// Aes is a visual channel (position, color, size, ...).
type Aes int

const (
	X Aes = iota
	Y
	Z
	XMin
	XMax
	YMin
	YMax
	XEnd
	YEnd
	Lower
	Middle
	Upper
	Intercept
	Slope
	Color
	Fill
	Alpha
	Shape
	LineType
	Size
	Width
	Height
	Weight
	Label
	MapID
	Frame
)

var names = map[Aes]string{
	X:         "x",
	Y:         "y",
	Z:         "z",
	XMin:      "xmin",
	XMax:      "xmax",
	YMin:      "ymin",
	YMax:      "ymax",
	XEnd:      "xend",
	YEnd:      "yend",
	Lower:     "lower",
	Middle:    "middle",
	Upper:     "upper",
	Intercept: "intercept",
	Slope:     "slope",
	Color:     "color",
	Fill:      "fill",
	Alpha:     "alpha",
	Shape:     "shape",
	LineType:  "linetype",
	Size:      "size",
	Width:     "width",
	Height:    "height",
	Weight:    "weight",
	Label:     "label",
	MapID:     "map_id",
	Frame:     "frame",
}

// Values returns every aesthetic in declaration order.
func Values() []Aes {
	result := make([]Aes, 0, len(names))
	for a := X; a <= Frame; a++ {
		result = append(result, a)
	}
	return result
}

// String returns the option name of the aesthetic.
func (a Aes) String() string {
	if name, ok := names[a]; ok {
		return name
	}
	return fmt.Sprintf("unknown_aes(%d)", int(a))
}

// Parse resolves an option name (case-sensitive, "colour" accepted) to an Aes.
func Parse(name string) (Aes, error) {
	if name == "colour" {
		return Color, nil
	}
	for a, n := range names {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown aesthetic: %q", name)
}

// IsPositionalX reports whether a belongs to the horizontal position family.
func IsPositionalX(a Aes) bool {
	switch a {
	case X, XMin, XMax, XEnd:
		return true
	}
	return false
}

// IsPositionalY reports whether a belongs to the vertical position family.
func IsPositionalY(a Aes) bool {
	switch a {
	case Y, YMin, YMax, YEnd, Lower, Middle, Upper, Intercept:
		return true
	}
	return false
}

// IsPositional reports whether a maps to a position on either axis.
func IsPositional(a Aes) bool {
	return IsPositionalX(a) || IsPositionalY(a)
}
