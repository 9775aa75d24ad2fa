// main.go
package main

import (
	"context"
	"log"
	"time"

	"activity-booking/cmd"
	"activity-booking/internal/data/repository"
	"activity-booking/internal/usecase"
	"activity-booking/internal/wire"
	"activity-booking/pkg/asaas"
	"activity-booking/pkg/clock"
	"activity-booking/pkg/database"
	"activity-booking/pkg/events"
	"activity-booking/pkg/lock"
	"activity-booking/pkg/mailer"
	"activity-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("store", config.Store.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	if config.Gateway.APIKey == "" || config.Gateway.CustomerID == "" {
		logger.Fatal("ASAAS_API_KEY and ASAAS_CUSTOMER_ID are required")
	}

	repos, closeStore := openStore(config, logger)
	defer closeStore()

	deps := usecase.Collaborators{
		Gateway: asaas.NewClient(config.Gateway.BaseURL, config.Gateway.APIKey, config.Timeouts.Gateway, logger),
		Locker:  lock.Noop{},
		Clock:   clock.NewSystem(),
	}

	// Capacity window lock
	if config.Redis.Addr != "" {
		redisClient, err := database.InitRedis(config.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()

		deps.Locker = lock.NewRedisLocker(redisClient, config.Redis.LockTTL, config.Redis.LockWait)
		logger.Info("Redis connected, capacity windows are locked")
	} else {
		logger.Warn("REDIS_ADDR not set, concurrent bookings may overfill a window")
	}

	// Confirmation email
	if config.Email.Host != "" {
		deps.Notifier = mailer.New(config.Email, logger)
	} else {
		logger.Warn("SMTP_HOST not set, confirmation emails are disabled")
	}

	// Payment events
	if config.AMQP.URL != "" {
		publisher, err := events.NewPublisher(config.AMQP.URL, config.AMQP.Queue, logger)
		if err != nil {
			logger.Fatal("Failed to connect to broker", zap.Error(err))
		}
		defer publisher.Close()

		deps.Events = publisher
		logger.Info("Broker connected", zap.String("queue", config.AMQP.Queue))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, deps, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}

// openStore connects the configured reservation store and prepares its schema.
func openStore(config *utils.Config, logger *zap.Logger) (*repository.Repository, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch config.Store.Driver {
	case "mongo":
		client, db, err := database.InitMongo(config.Mongo)
		if err != nil {
			logger.Fatal("Failed to connect to mongo", zap.Error(err))
		}
		if err := repository.EnsureReservationIndexes(ctx, db); err != nil {
			logger.Fatal("Failed to create mongo indexes", zap.Error(err))
		}

		logger.Info("Mongo connected successfully", zap.String("database", config.Mongo.Database))
		return repository.NewMongoRepository(db, logger), func() {
			_ = client.Disconnect(context.Background())
		}

	case "postgres", "":
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}

		logger.Info("Database connected successfully")
		return repository.NewRepository(db, logger), db.Close

	default:
		logger.Fatal("Unknown STORE_DRIVER", zap.String("driver", config.Store.Driver))
		return nil, nil
	}
}
