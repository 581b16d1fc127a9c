package main

import (
	"log"

	"cinema-ticketing/cmd"
	"cinema-ticketing/internal/data/lock"
	"cinema-ticketing/internal/data/memstore"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/wire"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production defaults.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("store", config.App.StoreDriver),
		zap.String("commit_mode", config.Booking.CommitMode),
		zap.Bool("debug", config.App.Debug),
	)

	var repo *repository.Repository
	switch config.App.StoreDriver {
	case utils.StoreDriverMemory:
		logger.Warn("Using in-memory store; data is lost on restart")
		repo = memstore.NewRepository(memstore.New(), config.Booking.CommitMode, logger)
	default:
		db, err := database.InitDB(config.Database, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		logger.Info("Database connected successfully")

		repo = repository.NewRepository(db, config.Booking.CommitMode, logger)
	}

	locker := lock.NewNoopSeatLocker()
	rdb, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
		locker = lock.NewRedisSeatLocker(rdb, config.Booking.SeatLockTTL(), logger)
		logger.Info("Redis seat locks enabled", zap.String("addr", config.Redis.Addr))
	}

	app := wire.Wiring(repo, locker, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
