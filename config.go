package main

import (
	"os"
	"strings"

	"github.com/go-pg/pg/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

var dbEnvs = []string{"DB_ADDR", "DB_USER", "DB_PASS", "DB_NAME"}

type config struct {
	Port      string
	DB        *pg.Options
	JWTSecret string
}

func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return config{}, errors.Wrap(err, "load .env")
	}

	if onlySomeEnvsSet(dbEnvs...) {
		return config{}, errors.Errorf("either all or none of %s must be set", strings.Join(dbEnvs, ", "))
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return config{}, errors.New("JWT_SECRET must be set")
	}

	return config{
		Port: getEnv("PORT", "4000"),
		DB: &pg.Options{
			Addr:     getEnv("DB_ADDR", "localhost:8200"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASS", "password"),
			Database: getEnv("DB_NAME", "todos"),
		},
		JWTSecret: jwtSecret,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func onlySomeEnvsSet(keys ...string) bool {
	set := 0
	for _, key := range keys {
		if _, ok := os.LookupEnv(key); ok {
			set++
		}
	}
	return set > 0 && set < len(keys)
}

func noEnvsSet(keys ...string) bool {
	for _, key := range keys {
		if _, ok := os.LookupEnv(key); ok {
			return false
		}
	}
	return true
}
