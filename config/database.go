package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func ConnectDB() {
	// 1) Ambil URL dari env (Railway/Render biasanya pakai DATABASE_URL)
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DB_URL")
	}

	// 2) Fallback lokal
	if dbURL == "" {
		host := GetEnv("DB_HOST", "localhost")
		user := GetEnv("DB_USER", "postgres")
		password := GetEnv("DB_PASSWORD", "12345")
		dbname := GetEnv("DB_NAME", "sako")
		port := GetEnv("DB_PORT", "5432")
		dbURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host, user, password, dbname, port,
		)
	} else {
		// Hosting umumnya butuh sslmode=require; tambahkan kalau belum ada
		if !strings.Contains(dbURL, "sslmode=") {
			sep := "?"
			if strings.Contains(dbURL, "?") {
				sep = "&"
			}
			dbURL = dbURL + sep + "sslmode=require"
		}
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "[GORM] ", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatalf("gagal konek ke database: %v", err)
	}

	if err := db.Exec(`SET TIME ZONE 'UTC'`).Error; err != nil {
		log.Printf("gagal set timezone UTC: %v", err)
	}

	var dbName, currentUser string
	_ = db.Raw("SELECT current_database()").Scan(&dbName)
	_ = db.Raw("SELECT current_user").Scan(&currentUser)
	log.Printf("DB connected: db=%s user=%s", dbName, currentUser)

	DB = db
}

// GetEnv baca env dengan default.
func GetEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultVal
}
