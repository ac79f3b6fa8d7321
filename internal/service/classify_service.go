package service

import (
	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/jengzang/swimrun-backend-go/internal/spatial"
)

// PointClass reports which datasets contain a coordinate
type PointClass struct {
	Coordinate models.Coordinate `json:"coordinate"`
	Land       bool              `json:"land"`
	Water      bool              `json:"water"`
}

// SegmentClass is the classification and length of a segment
type SegmentClass struct {
	From       models.Coordinate  `json:"from"`
	To         models.Coordinate  `json:"to"`
	Type       models.SegmentType `json:"type"`
	DistanceKm float64            `json:"distance_km"`
}

// ClassifyService answers land/water queries against the loaded datasets
type ClassifyService struct {
	classifier *spatial.Classifier
	counts     map[models.Layer]int
}

// NewClassifyService creates a classify service. counts is the number of
// polygons loaded per layer.
func NewClassifyService(classifier *spatial.Classifier, counts map[models.Layer]int) *ClassifyService {
	return &ClassifyService{classifier: classifier, counts: counts}
}

// ClassifyPoint reports whether c lies on land and on water
func (s *ClassifyService) ClassifyPoint(c models.Coordinate) (*PointClass, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &PointClass{
		Coordinate: c,
		Land:       s.classifier.IsInLand(c),
		Water:      s.classifier.IsInWater(c),
	}, nil
}

// ClassifySegment classifies the segment a->b and measures it
func (s *ClassifyService) ClassifySegment(a, b models.Coordinate) (*SegmentClass, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &SegmentClass{
		From:       a,
		To:         b,
		Type:       s.classifier.ClassifySegment(a, b),
		DistanceKm: spatial.HaversineKm(a, b),
	}, nil
}

// PolygonCounts returns the number of polygons loaded per layer
func (s *ClassifyService) PolygonCounts() map[models.Layer]int {
	out := make(map[models.Layer]int, len(s.counts))
	for layer, n := range s.counts {
		out[layer] = n
	}
	return out
}
