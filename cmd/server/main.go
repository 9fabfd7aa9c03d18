package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nlpbridge/internal/compiler"
	"nlpbridge/internal/config"
	"nlpbridge/internal/handler"
	"nlpbridge/internal/repository"
	"nlpbridge/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("NLP.js Bridge")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("✅ Connected to PostgreSQL database")

	// Initialize engine client
	engineClient := service.NewEngineClient(&cfg.Engine)
	log.Printf("✅ Engine client initialized")
	log.Printf("   - Base URL: %s", cfg.Engine.BaseURL)
	log.Printf("   - Agent: %s", cfg.Engine.AgentID)
	log.Printf("   - Locale: %s", cfg.Engine.Locale)

	// Initialize services
	intentCompiler := compiler.New(compiler.NewTableResolver(compiler.DefaultNativeMappings()))
	trainer := service.NewTrainerService(intentCompiler, engineClient, repo, cfg.Engine.AgentID, cfg.Engine.Locale)

	log.Println("✅ Services initialized")

	// Optionally train from the bot definition file at startup
	if cfg.Bot.TrainOnStart && cfg.Bot.DefinitionPath != "" {
		def, err := service.LoadBotDefinition(cfg.Bot.DefinitionPath)
		if err != nil {
			log.Fatalf("Failed to load bot definition: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Engine.Timeout)*time.Second)
		report, err := trainer.TrainFromDefinition(ctx, def)
		cancel()
		if err != nil {
			log.Fatalf("Failed to train bot %q: %v", def.Name, err)
		}
		log.Printf("✅ Trained bot %q: %d intents, %d examples, %d synthesized entities (%d ms)",
			def.Name, report.IntentCount, report.ExampleCount, report.EntityCount, report.DurationMs)
	} else if cfg.Bot.DefinitionPath == "" {
		log.Println("⚠️  No bot definition file configured - training is API-driven only")
		log.Println("   Set BOT_DEFINITION_PATH and BOT_TRAIN_ON_START to train at startup")
	}

	// Initialize handlers
	trainHandler := handler.NewTrainHandler(trainer)
	parseHandler := handler.NewParseHandler(trainer)
	monitorHandler := handler.NewMonitorHandler(repo, 50, 500)
	embeddingHandler := handler.NewEmbeddingHandler(repo)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "nlpjs-bridge",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Training endpoints
		apiV1.POST("/train", trainHandler.Train)
		apiV1.GET("/train/status", trainHandler.Status)

		// Recognition endpoint
		apiV1.POST("/parse", parseHandler.Parse)

		// Monitoring endpoints
		apiV1.GET("/monitoring/logs", monitorHandler.Logs)
		apiV1.GET("/monitoring/builds", monitorHandler.Builds)
		apiV1.GET("/monitoring/analytics", monitorHandler.Analytics)

		// Example embedding endpoints
		apiV1.POST("/examples/embeddings", embeddingHandler.BatchUpdate)
		apiV1.POST("/examples/similar", embeddingHandler.Similar)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API Documentation: http://localhost:%d/api/v1", cfg.Server.Port)

	// Graceful shutdown
	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
