package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/swimrun-backend-go/internal/database"
	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// PolygonRepository handles database operations for land and water polygons
type PolygonRepository struct {
	db *sql.DB
}

// NewPolygonRepository creates a new polygon repository
func NewPolygonRepository(db *sql.DB) *PolygonRepository {
	return &PolygonRepository{db: db}
}

// LoadLayer retrieves every polygon stored for a layer
func (r *PolygonRepository) LoadLayer(ctx context.Context, layer models.Layer) ([]orb.Polygon, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, geometry FROM polygons WHERE layer = ? ORDER BY id", string(layer))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s polygons: %w", layer, err)
	}
	defer rows.Close()

	var polygons []orb.Polygon
	for rows.Next() {
		var id int64
		var raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan polygon: %w", err)
		}

		g, err := geojson.UnmarshalGeometry([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to decode polygon %d: %w", id, err)
		}
		polygon, ok := g.Geometry().(orb.Polygon)
		if !ok {
			return nil, fmt.Errorf("polygon %d: unexpected geometry type %s", id, g.Type)
		}
		polygons = append(polygons, polygon)
	}

	return polygons, rows.Err()
}

// ReplaceLayer deletes a layer's polygons and inserts the given ones in one
// transaction. It returns the number of polygons written.
func (r *PolygonRepository) ReplaceLayer(ctx context.Context, layer models.Layer, polygons []orb.Polygon, source string) (int, error) {
	err := database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM polygons WHERE layer = ?", string(layer)); err != nil {
			return fmt.Errorf("failed to clear %s layer: %w", layer, err)
		}

		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO polygons (layer, geometry, source) VALUES (?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, polygon := range polygons {
			raw, err := geojson.NewGeometry(polygon).MarshalJSON()
			if err != nil {
				return fmt.Errorf("failed to encode polygon %d: %w", i, err)
			}
			if _, err := stmt.ExecContext(ctx, string(layer), string(raw), source); err != nil {
				return fmt.Errorf("failed to insert polygon %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(polygons), nil
}

// CountByLayer returns the number of stored polygons per layer
func (r *PolygonRepository) CountByLayer(ctx context.Context) (map[models.Layer]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT layer, COUNT(*) FROM polygons GROUP BY layer")
	if err != nil {
		return nil, fmt.Errorf("failed to count polygons: %w", err)
	}
	defer rows.Close()

	counts := map[models.Layer]int{
		models.LayerLand:  0,
		models.LayerWater: 0,
	}
	for rows.Next() {
		var layer string
		var count int
		if err := rows.Scan(&layer, &count); err != nil {
			return nil, fmt.Errorf("failed to scan polygon count: %w", err)
		}
		counts[models.Layer(layer)] = count
	}

	return counts, rows.Err()
}
