package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"tablepoll-service/internal/app/config"
	"tablepoll-service/internal/app/delivery/http/controllers"
	"tablepoll-service/internal/app/delivery/http/middlewares"
	"tablepoll-service/internal/app/delivery/http/routers"
	"tablepoll-service/internal/app/drivers/database"
	"tablepoll-service/internal/app/drivers/logger"
	"tablepoll-service/internal/app/drivers/messaging"
	"tablepoll-service/internal/app/drivers/storage"
	"tablepoll-service/internal/app/services/core/connections"
	"tablepoll-service/internal/app/services/core/documents"
	"tablepoll-service/internal/app/services/core/events"
	"tablepoll-service/internal/app/services/core/history"
	"tablepoll-service/internal/app/services/craft"
	"tablepoll-service/internal/app/services/shared/calendar"
	"tablepoll-service/internal/app/services/shared/locker"
	"tablepoll-service/internal/app/services/shared/publisher"
	"tablepoll-service/internal/app/services/shared/redis"
	"tablepoll-service/internal/app/services/shared/secrets"
	sharedStorage "tablepoll-service/internal/app/services/shared/storage"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	logrusLogger := logger.NewLogrusLogger(internalConfig)

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConn := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		MongoDB:        mongoClient.Database(internalConfig.MongoDB.DbName),
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQConn,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	bootstrapTheApp(bootstrap, minioClient)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrusLogger.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrus.Printf("Error while closing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(bootstrap config.Bootstrap, minioClient *minio.Client) {
	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)

	secretsService, err := secrets.NewSecretsService(bootstrap.InternalConfig.Secrets.MasterKey)
	if err != nil {
		log.Fatalf("Failed to initialize secrets service: %v", err)
	}

	eventPublisher, err := publisher.NewEventPublisher(bootstrap.RabbitMQ, bootstrap.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize event publisher: %v", err)
	}

	minioStorage := sharedStorage.NewMinioStorage(minioClient)
	calendarService := calendar.NewCalendarService()

	// Document-store clients
	requestsPerSecond := float64(bootstrap.InternalConfig.Craft.RequestsPerSecond)
	burst := bootstrap.InternalConfig.Craft.Burst
	blockClient := craft.NewBlockClient(requestsPerSecond, burst, bootstrap.Logger)
	documentClient := craft.NewDocumentClient(requestsPerSecond, burst, bootstrap.Logger)

	// History
	historyRepository := history.NewEventHistoryMongoRepository(bootstrap.MongoClient, bootstrap.InternalConfig.MongoDB.DbName)
	historyUsecase := history.NewEventHistoryUsecase(historyRepository, bootstrap.Logger)
	historyController := controllers.NewHistoryController(bootstrap.Logger, historyUsecase)

	// Connection
	connectionUsecase := connections.NewConnectionUsecase(secretsService, bootstrap.Logger)
	connectionController := controllers.NewConnectionController(bootstrap.Logger, connectionUsecase)

	// Document
	documentUsecase := documents.NewDocumentUsecase(secretsService, documentClient, bootstrap.Logger)
	documentController := controllers.NewDocumentController(bootstrap.Logger, documentUsecase)

	// Event
	eventUsecase := events.NewEventUsecase(
		secretsService,
		blockClient,
		redisRepository,
		lockerService,
		eventPublisher,
		minioStorage,
		calendarService,
		historyUsecase,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	eventController := controllers.NewEventController(bootstrap.Logger, eventUsecase)

	// Middlewares and routes
	appMiddlewares := middlewares.NewMiddlewares(bootstrap.InternalConfig, bootstrap.Logger)
	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		connectionController,
		documentController,
		eventController,
		historyController,
	)
}
