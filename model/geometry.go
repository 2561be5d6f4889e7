package model

import "encoding/json"

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// MarshalJSON encodes the point as an [x, y] pair.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// UnmarshalJSON decodes an [x, y] pair.
func (p *Point) UnmarshalJSON(data []byte) error {
	var xy [2]float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return err
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// Coordinates locates an element on its page
type Coordinates struct {
	Points       []Point `json:"points"`
	System       string  `json:"system,omitempty"`
	LayoutWidth  float64 `json:"layout_width,omitempty"`
	LayoutHeight float64 `json:"layout_height,omitempty"`
}

// Clone returns a deep copy of the coordinates.
func (c *Coordinates) Clone() *Coordinates {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Points = append([]Point(nil), c.Points...)
	return &clone
}
