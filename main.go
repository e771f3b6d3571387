package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"team-portal/config"
	"team-portal/controllers"
	"team-portal/repository"
	"team-portal/routes"
	"team-portal/services"
)

func main() {
	cfg, err := config.LoadConfig(".env", "config.yaml")
	if err != nil {
		log.Fatal("Gagal memuat konfigurasi:", err)
	}

	config.InitLogger(cfg)

	ctx := context.Background()

	var (
		users       repository.UserRepository
		projects    repository.ProjectRepository
		mongoClient *mongo.Client
		sqlDB       *sql.DB
	)
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		sqlDB, err = config.InitDB(ctx, cfg)
		if err != nil {
			config.Log.Fatal("Gagal menginisialisasi database (PostgreSQL): ", err)
		}
		if err := repository.EnsureSchema(ctx, sqlDB); err != nil {
			config.Log.Fatal(err)
		}
		users = repository.NewPostgresUserRepository(sqlDB)
		projects = repository.NewPostgresProjectRepository(sqlDB)
	default:
		var db *mongo.Database
		mongoClient, db, err = config.InitMongoDB(ctx, cfg)
		if err != nil {
			config.Log.Fatal("Gagal menginisialisasi database (MongoDB): ", err)
		}
		userRepo := repository.NewMongoUserRepository(db)
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			config.Log.Fatal(err)
		}
		users = userRepo
		projects = repository.NewMongoProjectRepository(db)
	}

	var storage services.ThumbnailStorage
	if cfg.StorageEnabled() {
		awsCfg, err := config.LoadAWSConfig(ctx, cfg)
		if err != nil {
			config.Log.Fatal("Gagal menginisialisasi AWS: ", err)
		}
		storage = services.NewS3ThumbnailStorage(s3.NewFromConfig(awsCfg), cfg.AWSBucketName, awsCfg.Region)
	} else {
		config.Log.Warn("AWS_BUCKET_NAME not set, thumbnail uploads are disabled")
	}

	tokens := services.NewTokenService([]byte(cfg.JWTSecret))
	presence := services.NewPresenceService(users)
	authService := services.NewAuthService(users, tokens, presence)
	userService := services.NewUserService(users, presence)
	projectService := services.NewProjectService(projects, storage)
	adminService := services.NewAdminService(users, projects, presence)

	if _, err := userService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminFullName); err != nil {
		config.Log.Fatal("Gagal membuat admin awal: ", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	trustedProxies := []string{"127.0.0.1", "::1"}
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		config.Log.Fatal("Gagal menetapkan proxy tepercaya: ", err)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler := controllers.NewHandler(authService, presence, userService, projectService, adminService)
	routes.SetupRoutes(r, handler, authService)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Log.Infof("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			config.Log.Fatal("Server failed to start: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	config.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Log.Error("Server shutdown error: ", err)
	}

	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			config.Log.Error("MongoDB shutdown error: ", err)
		}
	}
	if sqlDB != nil {
		if err := sqlDB.Close(); err != nil {
			config.Log.Error("Database shutdown error: ", err)
		}
	}
}
