package dsn

import (
	"fmt"
	"os"
)

// FromEnv builds a PostgreSQL connection string from DB_* variables.
// DATABASE_URL wins when set.
func FromEnv() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host, ok := os.LookupEnv("DB_HOST")
	if !ok {
		return ""
	}
	port := getenv("DB_PORT", "5432")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASS")
	dbname := os.Getenv("DB_NAME")
	sslmode := getenv("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=Asia/Seoul",
		host, port, user, pass, dbname, sslmode)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
