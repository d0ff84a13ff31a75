package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hsmgmt/schoolsys-gobackend/internal/db"
	"github.com/hsmgmt/schoolsys-gobackend/internal/handlers"
	"github.com/hsmgmt/schoolsys-gobackend/internal/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load .env
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn("error loading .env", zap.Error(err))
	}

	uri := os.Getenv("MONGOURI")
	if uri == "" {
		logger.Fatal("MONGOURI environment variable not set")
	}

	client, err := db.Connect(context.Background(), uri)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Error("error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	logger.Info("connected to MongoDB")

	dbName := os.Getenv("DBNAME")
	if dbName == "" {
		dbName = "schoolsysdb"
	}
	database := client.Database(dbName)

	announcementService := services.NewAnnouncementService(database, logger)
	teacherService := services.NewTeacherService(database)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService, teacherService, logger)

	router := handlers.NewRouter(announcementHandler, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Info("server running", zap.String("port", port))
	// no Fatal here: returning lets the deferred Mongo disconnect run
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", zap.Error(err))
	}
}
