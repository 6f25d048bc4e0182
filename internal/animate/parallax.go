package animate

import (
	"fmt"
	"strconv"

	"github.com/nivar/journey/internal/scroll"
)

// Direction selects what a parallax layer moves.
type Direction string

const (
	Vertical   Direction = "vertical"
	Horizontal Direction = "horizontal"
	Rotation   Direction = "rotation"
	ScaleAxis  Direction = "scale"
)

// DefaultParallaxSpeed applies when a layer declares no usable speed.
const DefaultParallaxSpeed = 0.2

// ParseDirection maps a data-parallax-direction value.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "":
		return Vertical, nil
	case Vertical, Horizontal, Rotation, ScaleAxis:
		return Direction(s), nil
	default:
		return Vertical, fmt.Errorf("unknown parallax direction %q", s)
	}
}

// ParseSpeed parses a data-parallax value, falling back to the default
// speed for empty, zero or malformed input.
func ParseSpeed(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v == 0 {
		return DefaultParallaxSpeed
	}
	return v
}

// Layer is one element inside a parallax container.
type Layer struct {
	Element   Element
	Speed     float64
	Direction Direction
}

// CenterDistance is how far the container's centre sits from the viewport
// centre, in viewport heights.
func CenterDistance(container scroll.Rect, viewportHeight float64) float64 {
	if viewportHeight <= 0 {
		return 0
	}
	center := container.Top + container.Height/2
	return (center - viewportHeight/2) / viewportHeight
}

// LayerStyle returns the style of a layer at the given centre distance.
func LayerStyle(speed float64, dir Direction, distance float64) Style {
	var tr Transform
	switch dir {
	case Horizontal:
		tr.TranslateX = px(distance * 100 * speed)
	case Rotation:
		tr.Rotate = deg(distance * 15 * speed)
	case ScaleAxis:
		s := 1 + distance*0.2*speed
		if s < 0.5 {
			s = 0.5
		}
		if s > 1.5 {
			s = 1.5
		}
		tr.Scale = floatPtr(s)
	default:
		tr.TranslateY = px(distance * 100 * speed)
	}
	return Style{"transform": tr.String()}
}

// Parallax moves layers relative to their container's viewport position.
type Parallax struct {
	Layers []Layer
}

// Update applies every layer's style for the container bounds. It reports
// false when there are no layers.
func (p Parallax) Update(container scroll.Rect, viewportHeight float64) bool {
	if len(p.Layers) == 0 {
		return false
	}
	d := CenterDistance(container, viewportHeight)
	for _, l := range p.Layers {
		LayerStyle(l.Speed, l.Direction, d).Apply(l.Element)
	}
	return true
}
