package db

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectはPostgresへ接続して *gorm.DB を返す。
// DATABASE_URLがあればそれを使い、なければPOSTGRES_*から組み立てる。
func Connect() (*gorm.DB, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return gorm.Open(postgres.Open(url), &gorm.Config{})
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOr("POSTGRES_HOST", "localhost"),
		envOr("POSTGRES_PORT", "5432"),
		envOr("POSTGRES_USER", "postgres"),
		envOr("POSTGRES_PASSWORD", "postgres"),
		envOr("POSTGRES_DB", "pantry"),
		envOr("POSTGRES_SSLMODE", "disable"),
	)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
