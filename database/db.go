package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shortlink/models"
)

var DB *gorm.DB

func Connect() {
	host := getEnv("DB_HOST", "127.0.0.1")
	user := getEnv("DB_USER", "shortlink")
	password := getEnv("DB_PASSWORD", "shortlink")
	dbname := getEnv("DB_NAME", "shortlink")
	port := getEnv("DB_PORT", "5432")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		host, user, password, dbname, port)

	var err error
	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		// TranslateError turns the driver's unique-violation into
		// gorm.ErrDuplicatedKey, which the slug allocator relies on.
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		log.Printf("Failed to connect to database (attempt %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(time.Second * 3)
	}

	if err != nil {
		log.Fatal("Failed to connect to database after multiple attempts:", err)
	}

	log.Println("Connected to database successfully")

	err = DB.AutoMigrate(&models.User{}, &models.ShortLink{}, &models.ClickEvent{})
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database migration completed")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
