package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func init() {
	// Load env from .env
	godotenv.Load()
}

// ConnectDatabase opens a single connection pool and returns the handle.
// There is deliberately no package-level *gorm.DB here: every component
// holds the handle it was given, so a unit of work is always scoped to
// an explicit pool instead of hidden process-wide state.
func ConnectDatabase() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseDSN()), initConfig())
	if err != nil {
		return nil, fmt.Errorf("store unavailable: %w", err)
	}
	tunePool(db)
	return db, nil
}

// ConnectDatabaseWithRetry keeps trying with exponential backoff,
// capped at 30s between attempts. It never gives up; the process is
// useless without a store.
func ConnectDatabaseWithRetry() *gorm.DB {
	var attempt int
	for {
		attempt++
		db, err := ConnectDatabase()
		if err == nil {
			log.Printf("connected to database (attempt=%d)", attempt)
			return db
		}

		sleep := time.Second * time.Duration(1<<min(attempt, 5))
		if sleep > 30*time.Second {
			sleep = 30 * time.Second
		}
		log.Printf("failed to connect database (attempt=%d): %v; retrying in %s", attempt, err, sleep)
		time.Sleep(sleep)
	}
}

func databaseDSN() string {
	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		sslMode,
	)
}

func initConfig() *gorm.Config {
	logLevel := logger.Error
	if strings.EqualFold(os.Getenv("DB_LOG_QUERIES"), "true") {
		logLevel = logger.Info
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{},
	}
}

// Tune database/sql pool for production.
// Env overrides (optional):
// - DB_MAX_OPEN_CONNS (default 50)
// - DB_MAX_IDLE_CONNS (default 25)
// - DB_CONN_MAX_LIFETIME_SECONDS (default 300)
// - DB_CONN_MAX_IDLE_TIME_SECONDS (default 60)
func tunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil || sqlDB == nil {
		return
	}
	maxOpen := intFromEnv("DB_MAX_OPEN_CONNS", 50)
	maxIdle := intFromEnv("DB_MAX_IDLE_CONNS", 25)
	connMaxLife := time.Duration(intFromEnv("DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second
	connMaxIdle := time.Duration(intFromEnv("DB_CONN_MAX_IDLE_TIME_SECONDS", 60)) * time.Second

	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle >= 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	if connMaxLife > 0 {
		sqlDB.SetConnMaxLifetime(connMaxLife)
	}
	if connMaxIdle > 0 {
		sqlDB.SetConnMaxIdleTime(connMaxIdle)
	}
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
