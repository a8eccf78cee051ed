package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prpradhan13/myBuddy-sub000/internal/api"
	"github.com/prpradhan13/myBuddy-sub000/internal/cache"
	"github.com/prpradhan13/myBuddy-sub000/internal/config"
	"github.com/prpradhan13/myBuddy-sub000/internal/logging"
	"github.com/prpradhan13/myBuddy-sub000/internal/metrics"
	"github.com/prpradhan13/myBuddy-sub000/internal/repository"
	"github.com/prpradhan13/myBuddy-sub000/internal/repository/memory"
	"github.com/prpradhan13/myBuddy-sub000/internal/repository/mongo"
	"github.com/prpradhan13/myBuddy-sub000/internal/service"
	"github.com/prpradhan13/myBuddy-sub000/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
)

// @title myBuddy API
// @version 1.0
// @description Workout plans, shares, achievement tracking, comments and reviews.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.FileName,
		LogToStdout:   cfg.Log.ToStdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Println("starting myBuddy server...")
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("auth.jwt_secret must be set")
	}

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager(cfg.Metrics.Namespace, cfg.Metrics.Subsystem, registry)

	// --- Repositories ---
	repos, closeDB, err := openRepositories(cfg.Database)
	if err != nil {
		log.Fatalf("could not open %s repositories: %v", cfg.Database.Driver, err)
	}
	defer closeDB()

	// --- Storage ---
	fileStorage, err := storage.NewS3Storage(context.Background(), cfg.S3)
	switch {
	case errors.Is(err, storage.ErrStorageDisabled):
		log.Warn("s3.bucket_name is empty, achievement export is disabled")
		fileStorage = nil
	case err != nil:
		log.Fatalf("failed to initialize S3 storage: %v", err)
	}

	// --- Services ---
	threadCache := cache.NewThreadCache(cfg.Cache.SizeMB, cfg.Cache.ThreadsTTL)
	services := api.Services{
		Plans: service.NewPlanService(repos.Plans, repos.Days, repos.Exercises, repos.Shares, repos.Achievements,
			repos.Comments, repos.Reviews, threadCache),
		Shares: service.NewShareService(repos.Plans, repos.Shares, repos.Achievements),
		Achievements: service.NewAchievementService(
			repos.Plans, repos.Days, repos.Exercises, repos.Shares, repos.Achievements,
			fileStorage,
			service.AchievementServiceConfig{
				DefaultPageSize: cfg.Pagination.DefaultPageSize,
				MaxPageSize:     cfg.Pagination.MaxPageSize,
				URLExpiry:       cfg.S3.URLExpiry,
			},
			metricsManager,
		),
		Comments: service.NewCommentService(repos.Plans, repos.Shares, repos.Comments, repos.Profiles, threadCache, metricsManager),
		Reviews:  service.NewReviewService(repos.Plans, repos.Shares, repos.Reviews),
		Profiles: service.NewProfileService(repos.Profiles),
	}

	// --- Gin Engine ---
	if cfg.Server.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	api.SetupRoutes(router, cfg.Auth.JWTSecret, services, metricsManager, registry)

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}
	log.Println("server exiting")
}

type repositories struct {
	Profiles     repository.ProfileRepository
	Plans        repository.PlanRepository
	Days         repository.DayRepository
	Exercises    repository.ExerciseRepository
	Shares       repository.ShareRepository
	Achievements repository.AchievementRepository
	Comments     repository.CommentRepository
	Reviews      repository.ReviewRepository
}

// openRepositories builds the repository set for the configured driver. The returned
// func releases the database connection.
func openRepositories(cfg config.DatabaseConfig) (*repositories, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory repositories, data is lost on restart")
		m := memory.New()
		return &repositories{
			Profiles:     m.Profiles,
			Plans:        m.Plans,
			Days:         m.Days,
			Exercises:    m.Exercises,
			Shares:       m.Shares,
			Achievements: m.Achievements,
			Comments:     m.Comments,
			Reviews:      m.Reviews,
		}, func() {}, nil
	case config.DriverMongo:
	default:
		return nil, nil, errors.New("unknown database driver " + cfg.Driver)
	}

	client, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(cfg.Name)
	log.Infof("connected to MongoDB database %q", cfg.Name)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, db)
		log.Println("index creation completed")
	}()

	repos := &repositories{
		Profiles:     mongo.NewMongoProfileRepository(db),
		Plans:        mongo.NewMongoPlanRepository(db),
		Days:         mongo.NewMongoDayRepository(db),
		Exercises:    mongo.NewMongoExerciseRepository(db),
		Shares:       mongo.NewMongoShareRepository(db),
		Achievements: mongo.NewMongoAchievementRepository(db),
		Comments:     mongo.NewMongoCommentRepository(db),
		Reviews:      mongo.NewMongoReviewRepository(db),
	}
	closeDB := func() {
		log.Println("disconnecting MongoDB...")
		if err := mongo.DisconnectDB(client); err != nil {
			log.Errorf("failed to disconnect MongoDB: %v", err)
		}
	}
	return repos, closeDB, nil
}
