package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/ai"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/config"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/handler"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/middleware"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/repository"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	// Generation is optional: without an API key the generation endpoints
	// report 503 and the rest of the API works normally.
	var gen handler.IconGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := ai.NewClient(context.Background(), ai.Config{
			APIKey:      cfg.GeminiAPIKey,
			ImageModel:  cfg.ImageModel,
			VisionModel: cfg.VisionModel,
			TTSModel:    cfg.TTSModel,
		})
		if err != nil {
			return nil, fmt.Errorf("❌ failed to create AI client: %w", err)
		}
		gen = client
	} else {
		log.Println("⚠️ GEMINI_API_KEY not set, generation endpoints disabled")
	}

	store := storage.NewService(cfg.StorageRoot)

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	iconRepo := repository.NewIconRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userRepo, cfg.JWTExpiry)
	boardHandler := handler.NewBoardHandler(boardRepo)
	iconHandler := handler.NewIconHandler(iconRepo, gen, store, profileRepo, userRepo, cfg.StorageBucketName)
	profileHandler := handler.NewProfileHandler(profileRepo)
	healthHandler := handler.NewHealthHandler(db)

	// Public routes
	r.GET("/health", healthHandler.Check)
	r.POST("/api/v1/auth/register", authHandler.Register)
	r.POST("/api/v1/auth/login", authHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/api/v1")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards", boardHandler.GetAll)
		authorized.GET("/boards/public", boardHandler.GetPublic)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		// Icon routes
		authorized.POST("/icons/generate-from-text", iconHandler.GenerateFromText)
		authorized.POST("/icons/generate-from-image", iconHandler.GenerateFromImage)
		authorized.POST("/icons/generate-audio-from-recording", iconHandler.GenerateAudioFromRecording)
		authorized.GET("/icons", iconHandler.List)
		authorized.GET("/icons/:id", iconHandler.GetByID)

		// Profile routes
		authorized.GET("/profile", profileHandler.Get)
		authorized.POST("/profile", profileHandler.Create)
		authorized.PUT("/profile", profileHandler.Replace)
		authorized.PATCH("/profile", profileHandler.Patch)
		authorized.DELETE("/profile", profileHandler.Delete)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
