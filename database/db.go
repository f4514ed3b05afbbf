package database

import (
	"fmt"
	"log"
	"os"
	"strings"

	"firmanager-backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// TenantDB returns a new DB session with search_path set to the given tenant
// schema. Prefer RequestDB(c) inside handlers so an open request transaction
// is reused.
func TenantDB(schema string) (*gorm.DB, error) {
	schema = strings.TrimSpace(schema)
	if schema == "" {
		return nil, fmt.Errorf("empty schema name")
	}

	tenantDB := DB.Session(&gorm.Session{NewDB: true})
	if err := tenantDB.Exec(`SET search_path = "` + schema + `", public`).Error; err != nil {
		return nil, err
	}

	return tenantDB, nil
}

func Connect() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "db"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), port)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Println(err)
		panic("Could not connect to database")
	}
}

// AutoMigrate migrates the public (cross-tenant) tables.
func AutoMigrate() {
	DB.AutoMigrate(&models.User{}, &models.Organization{}, &models.License{})
}
