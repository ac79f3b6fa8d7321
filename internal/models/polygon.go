package models

import (
	"errors"
	"fmt"
)

// ErrInvalidLayer is returned for an unknown polygon layer name
var ErrInvalidLayer = errors.New("invalid layer")

// Layer names a polygon dataset
type Layer string

// Layer constants
const (
	LayerLand  Layer = "land"
	LayerWater Layer = "water"
)

// ParseLayer parses a layer name
func ParseLayer(s string) (Layer, error) {
	switch Layer(s) {
	case LayerLand:
		return LayerLand, nil
	case LayerWater:
		return LayerWater, nil
	}
	return "", fmt.Errorf("%w: %q (want land or water)", ErrInvalidLayer, s)
}

// Polygon is a closed outer ring followed by zero or more hole rings
type Polygon struct {
	Rings [][]Coordinate `json:"rings"`
}
