// api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"funnelboard/api/database"
	"funnelboard/api/handlers"
	"funnelboard/api/middleware"
	"funnelboard/api/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	source := store.SourceFromEnv()

	// Database clients are only dialed for the configured source kind;
	// the default CSV source needs neither.
	var chClient *database.ClickHouseClient
	var pgClient *database.DBClient
	var err error
	switch source.Kind {
	case store.SourceClickHouse:
		chClient, err = database.NewClickHouseDB()
		if err != nil {
			log.Fatalf("Failed to initialize ClickHouse snapshot source: %v", err)
		}
		defer chClient.Close()
	case store.SourcePostgres:
		pgClient, err = database.NewPostgresDB()
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL snapshot source: %v", err)
		}
		defer pgClient.Close()
	}

	snapshots := store.NewSnapshotStore(chClient, pgClient)

	// Warm the snapshot up front so the first dashboard request doesn't
	// pay the load and a broken source fails fast.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if _, err := snapshots.Load(warmCtx, source); err != nil {
		warmCancel()
		log.Fatalf("Failed to load snapshot from %s: %v", source.Key(), err)
	}
	warmCancel()

	dashboardHandlers := handlers.NewDashboardHandlers(snapshots, source)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		stats := api.Group("/stats")
		{
			stats.GET("/overview", dashboardHandlers.GetOverview)
			stats.GET("/funnel", dashboardHandlers.GetFunnel)
			stats.GET("/time-trends", dashboardHandlers.GetTimeTrends)
			stats.GET("/product-popularity", dashboardHandlers.GetProductPopularity)
			stats.GET("/category-analysis", dashboardHandlers.GetCategoryAnalysis)
			stats.GET("/user-segments", dashboardHandlers.GetUserSegments)
			stats.GET("/journey", dashboardHandlers.GetJourney)
			stats.GET("/browsing-depth", dashboardHandlers.GetBrowsingDepth)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Funnelboard API server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
