package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	DBDriver      string
	DatabaseURL   string
	SQLitePath    string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	RunMigrations bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Single operator account for the toy login.
	AdminUsername     string
	AdminPasswordHash string

	CORSAllowedOrigins []string
	RateLimit          string
	RedisURL           string

	// OperationTimeout bounds every ledger mutation, including its transaction.
	OperationTimeout     time.Duration
	NumberingMaxAttempts int
	NumberingBackoff     time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DB_DRIVER", DriverPostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_PATH", "billing.db")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "billing-ledger")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("OPERATION_TIMEOUT", "10s")
	viper.SetDefault("NUMBERING_MAX_ATTEMPTS", 3)
	viper.SetDefault("NUMBERING_BACKOFF", "25ms")

	viper.AutomaticEnv()

	cfg := &Config{
		DBDriver:          strings.ToLower(viper.GetString("DB_DRIVER")),
		DatabaseURL:       viper.GetString("PGSQL_URL"),
		SQLitePath:        viper.GetString("SQLITE_PATH"),
		Port:              viper.GetString("PORT"),
		IsProduction:      viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:     viper.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:     viper.GetBool("RUN_MIGRATIONS"),
		JWTSecret:         viper.GetString("JWT_SECRET"),
		JWTIssuer:         viper.GetString("JWT_ISSUER"),
		AdminUsername:     viper.GetString("ADMIN_USERNAME"),
		AdminPasswordHash: viper.GetString("ADMIN_PASSWORD_HASH"),
		RateLimit:         viper.GetString("RATE_LIMIT"),
		RedisURL:          viper.GetString("REDIS_URL"),
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case DriverSQLite:
	default:
		log.Printf("Warning: unknown DB_DRIVER '%s'. Defaulting to %s.\n", cfg.DBDriver, DriverPostgres)
		cfg.DBDriver = DriverPostgres
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "billing-ledger"
	}
	if cfg.AdminPasswordHash == "" {
		log.Println("Warning: ADMIN_PASSWORD_HASH not set. Login is disabled.")
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.OperationTimeout = durationOrDefault("OPERATION_TIMEOUT", 10*time.Second)
	cfg.NumberingBackoff = durationOrDefault("NUMBERING_BACKOFF", 25*time.Millisecond)

	cfg.NumberingMaxAttempts = viper.GetInt("NUMBERING_MAX_ATTEMPTS")
	if cfg.NumberingMaxAttempts < 1 {
		log.Printf("Warning: Invalid value for NUMBERING_MAX_ATTEMPTS (%d). Defaulting to 3.\n", cfg.NumberingMaxAttempts)
		cfg.NumberingMaxAttempts = 3
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
