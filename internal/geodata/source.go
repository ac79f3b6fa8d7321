package geodata

import (
	"context"
	"fmt"
	"log"

	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/paulmach/orb"
)

// LayerStore provides stored polygon layers
type LayerStore interface {
	LoadLayer(ctx context.Context, layer models.Layer) ([]orb.Polygon, error)
}

// LoadLayer loads a polygon layer from a GeoJSON file when path is set,
// otherwise from the store. With neither, the layer is empty.
func LoadLayer(ctx context.Context, layer models.Layer, path string, store LayerStore) ([]models.Polygon, error) {
	if path != "" {
		polygons, err := LoadGeoJSONFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s layer: %w", layer, err)
		}
		log.Printf("[GeoData] Loaded %d %s polygons from %s", len(polygons), layer, path)
		return FromOrbPolygons(polygons), nil
	}

	if store == nil {
		log.Printf("[GeoData] No source for %s layer, nothing will be classified as %s", layer, layer)
		return nil, nil
	}

	polygons, err := store.LoadLayer(ctx, layer)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s layer from store: %w", layer, err)
	}
	log.Printf("[GeoData] Loaded %d %s polygons from store", len(polygons), layer)
	return FromOrbPolygons(polygons), nil
}
