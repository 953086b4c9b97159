package layout

import "math"

// ArrowProperties describes the straight connector between two positions:
// a horizontal segment of Length pixels, rotated by Angle degrees around
// its left-center anchor, starting at the first position.
type ArrowProperties struct {
	Length float64 `json:"length" bson:"length"`
	Angle  float64 `json:"angle" bson:"angle"`
}

// Arrow computes the length and rotation angle of the connector from one
// position to another. Angle is in degrees, measured clockwise from the
// positive x axis in screen coordinates (y grows downward), so a connector
// pointing straight down has an angle of 90.
//
// Arrow is a pure trigonometric function of its inputs. Given the finite
// positions the layout engine produces, the result is always finite.
func Arrow(from, to Position) ArrowProperties {
	dx := to.Left - from.Left
	dy := to.Top - from.Top
	return ArrowProperties{
		Length: math.Hypot(dx, dy),
		Angle:  math.Atan2(dy, dx) * 180 / math.Pi,
	}
}

// Center returns the center point of a node box anchored at p.
func (c Config) Center(p Position) Position {
	return Position{Left: p.Left + c.NodeWidth/2, Top: p.Top + c.NodeHeight/2}
}

// BottomCenter returns the midpoint of a node box's bottom edge. Connectors
// leave a parent here.
func (c Config) BottomCenter(p Position) Position {
	return Position{Left: p.Left + c.NodeWidth/2, Top: p.Top + c.NodeHeight}
}

// TopCenter returns the midpoint of a node box's top edge. Connectors
// arrive at a child here.
func (c Config) TopCenter(p Position) Position {
	return Position{Left: p.Left + c.NodeWidth/2, Top: p.Top}
}
