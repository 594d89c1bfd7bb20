package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"sahayak/loader/service"
	"sahayak/store"
	"sahayak/types"

	"github.com/joho/godotenv"
)

func init() {
	mustLoadEnvVariables()
}

func main() {
	ctx := context.Background()
	port, _ := strconv.Atoi(os.Getenv("PG_PORT"))
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", os.Getenv("PG_HOST"), port, os.Getenv("PG_USER"), os.Getenv("PG_PASS"), os.Getenv("PG_DB_NAME"))
	pool, err := store.NewPostgresStore(ctx, connStr)
	if err != nil {
		log.Fatal("error to connect to Postgres database", err)
		return
	}

	if err := pool.Init(ctx); err != nil {
		log.Fatal("error to create tables", err)
		return
	}

	service.New(pool, loadConfig()).Run()

	log.Println("Closing database connection pool...")
	if err := pool.Close(); err != nil {
		log.Printf("error closing pool: %v\n", err)
	} else {
		log.Println("Database connection pool closed successfully")
	}
}

func loadConfig() types.Config {
	monitoring, err := strconv.Atoi(os.Getenv("LOADER_MONITORING_TIME"))
	if err != nil || monitoring <= 0 {
		monitoring = 5
	}

	return types.Config{
		MonitoringTime: time.Duration(monitoring) * time.Second,
		SourceDir:      os.Getenv("LOADER_SOURCE_DIR"),
		PacksDir:       os.Getenv("PACKS_DIR"),
		ArchiveDir:     os.Getenv("LOADER_ARCHIVE_DIR"),
		BadDir:         os.Getenv("LOADER_BAD_DIR"),
	}
}

func mustLoadEnvVariables() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}
