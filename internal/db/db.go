package db

import (
	"fmt"
	"log"
	"strings"

	"blogicum/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init connects to the database named by databaseURL, migrates the schema and
// seeds reference data. The URL is either postgres://... or sqlite://<path>.
func Init(databaseURL string, verbose bool) {
	conn, err := Connect(databaseURL, verbose)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection established")

	if err := Migrate(conn); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if err := Seed(conn); err != nil {
		log.Printf("Failed to seed reference data: %v", err)
	}

	DB = conn
}

// Connect opens a gorm connection without touching the schema.
func Connect(databaseURL string, verbose bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	sqliteDB := false

	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		dialector = postgres.Open(databaseURL)
		log.Println("Connecting to PostgreSQL database...")
	case strings.HasPrefix(databaseURL, "sqlite://"):
		dsn := strings.TrimPrefix(databaseURL, "sqlite://")
		if !strings.Contains(dsn, "_pragma=foreign_keys") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_pragma=foreign_keys(1)"
		}
		dialector = sqlite.Open(dsn)
		sqliteDB = true
		log.Println("Connecting to SQLite database at", dsn)
	default:
		return nil, fmt.Errorf("invalid DATABASE_URL %q: must start with postgres:// or sqlite://", databaseURL)
	}

	level := logger.Warn
	if verbose {
		level = logger.Info
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if sqliteDB {
		// SQLite serializes writers; one connection also keeps :memory: databases alive.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}

	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Post{},
		&models.Comment{},
	)
}

// Seed creates starter categories and locations on an empty database.
func Seed(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Categories already seeded, skipping")
		return nil
	}

	categories := []models.Category{
		{Title: "Travel", Slug: "travel", Description: "Trips, hikes and journeys", IsPublished: true},
		{Title: "Cinema", Slug: "cinema", Description: "Notes on films and series", IsPublished: true},
		{Title: "Miscellaneous", Slug: "misc", Description: "Everything else", IsPublished: true},
	}
	for _, category := range categories {
		if err := conn.Create(&category).Error; err != nil {
			return fmt.Errorf("create category %s: %w", category.Slug, err)
		}
	}

	locations := []models.Location{
		{Name: "Planet Earth", IsPublished: true},
		{Name: "Desert Island", IsPublished: true},
	}
	for _, location := range locations {
		if err := conn.Create(&location).Error; err != nil {
			return fmt.Errorf("create location %s: %w", location.Name, err)
		}
	}

	log.Println("Initial categories and locations created successfully")
	return nil
}
