// Command importmovies loads a movie CSV export into the catalogue.
//
//	importmovies --file imdb_data_transformed.csv [--batch-size 500]
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/importer"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	file := pflag.StringP("file", "f", "imdb_data_transformed.csv", "CSV file to import")
	batchSize := pflag.Int("batch-size", 0, "movies per batch (max 500, default from IMPORT_BATCH_SIZE)")
	pflag.Parse()

	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *batchSize > 0 {
		config.Import.BatchSize = *batchSize
	}

	logger, err := utils.InitLogger(config.App.LogPath, "importmovies", config.App.Debug)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	if config.App.StoreDriver != utils.StoreDriverPostgres {
		logger.Fatal("Import needs STORE_DRIVER=postgres", zap.String("store", config.App.StoreDriver))
	}

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatal("Failed to open CSV file", zap.String("file", *file), zap.Error(err))
	}
	defer f.Close()

	db, err := database.InitDB(config.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	movies := repository.NewMovieRepository(db, logger)
	res, err := importer.New(movies, config.Import.BatchSize, logger).ImportCSV(ctx, f)
	if err != nil {
		logger.Error("Import failed", zap.Error(err))
		return
	}

	if res.Failed > 0 {
		logger.Warn("Import finished with failed batches",
			zap.Int("succeeded", res.Succeeded), zap.Int("failed", res.Failed))
	}
}
