// Command geoimport loads land or water polygons from a GeoJSON file into the
// geodata store, replacing the layer.
//
//	geoimport -layer water -db ./data/geodata/geodata.db lakes.geojson
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jengzang/swimrun-backend-go/internal/database"
	"github.com/jengzang/swimrun-backend-go/internal/geodata"
	"github.com/jengzang/swimrun-backend-go/internal/models"
	"github.com/jengzang/swimrun-backend-go/internal/repository"
)

func main() {
	layerName := flag.String("layer", "", "layer to replace: land or water")
	dbPath := flag.String("db", "./data/geodata/geodata.db", "SQLite database path")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s -layer land|water [-db path] file.geojson\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), *layerName, *dbPath, flag.Arg(0)); err != nil {
		log.Fatalf("[GeoImport] %v", err)
	}
}

func run(ctx context.Context, layerName, dbPath, file string) error {
	layer, err := models.ParseLayer(layerName)
	if err != nil {
		return err
	}

	polygons, err := geodata.LoadGeoJSONFile(file)
	if err != nil {
		return err
	}

	db, err := database.Open(database.Config{Path: dbPath})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.NewMigrationManager(db).RunMigrations(); err != nil {
		return err
	}

	n, err := repository.NewPolygonRepository(db).ReplaceLayer(ctx, layer, polygons, file)
	if err != nil {
		return err
	}

	log.Printf("[GeoImport] Replaced %s layer with %d polygons from %s", layer, n, file)
	return nil
}
