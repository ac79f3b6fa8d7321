package spatial

import "github.com/jengzang/swimrun-backend-go/internal/models"

// Classifier tags segments by testing their endpoints against land and water
type Classifier struct {
	land  Region
	water Region
}

// NewClassifier creates a classifier. A nil region contains nothing.
func NewClassifier(land, water Region) *Classifier {
	if land == nil {
		land = NewPolygonSet(nil)
	}
	if water == nil {
		water = NewPolygonSet(nil)
	}
	return &Classifier{land: land, water: water}
}

// IsInLand reports whether c lies inside any land polygon
func (c *Classifier) IsInLand(p models.Coordinate) bool {
	return c.land.Contains(p)
}

// IsInWater reports whether c lies inside any water polygon
func (c *Classifier) IsInWater(p models.Coordinate) bool {
	return c.water.Contains(p)
}

// ClassifySegment tags the segment a->b. Land is tested first, so a point
// covered by both datasets yields run.
func (c *Classifier) ClassifySegment(a, b models.Coordinate) models.SegmentType {
	if c.IsInLand(a) && c.IsInLand(b) {
		return models.SegmentRun
	}
	if c.IsInWater(a) && c.IsInWater(b) {
		return models.SegmentSwim
	}
	return models.SegmentUnknown
}
