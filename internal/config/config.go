package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort      string
	AppEnv       string
	StoreBackend string // memory | file | postgres | dynamo
	StorePath    string
	DBHost       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBPort       string
	DynamoTable  string
	JWTSecret    string
	AdminEmails  []string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:      getEnv("APP_PORT", "8080"),
		AppEnv:       getEnv("APP_ENV", "development"),
		StoreBackend: getEnv("STORE_BACKEND", "memory"),
		StorePath:    getEnv("STORE_PATH", "./data"),
		DBHost:       os.Getenv("DB_HOST"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBName:       os.Getenv("DB_NAME"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DynamoTable:  getEnv("DYNAMO_TABLE", "shopledger"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
	}

	if admins := os.Getenv("ADMIN_EMAILS"); admins != "" {
		for _, e := range strings.Split(admins, ",") {
			if e = strings.TrimSpace(e); e != "" {
				cfg.AdminEmails = append(cfg.AdminEmails, strings.ToLower(e))
			}
		}
	}

	if cfg.StoreBackend == "postgres" && cfg.DBHost == "" {
		log.Fatal("STORE_BACKEND=postgres requires DB_HOST to be set")
	}
	if cfg.JWTSecret == "" && cfg.AppEnv == "production" {
		log.Fatal("JWT_SECRET must be set in production")
	}

	return cfg
}

// IsAdminEmail reports whether the email is in the admin allowlist.
func (c *Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(email)
	for _, e := range c.AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
