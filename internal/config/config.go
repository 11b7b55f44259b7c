package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port        string
	Env         string
	LogLevel    string
	StoreDriver string
	MongoURI    string
	DBName      string

	JWTSecret   string
	TokenExpiry time.Duration

	// AdminBootstrapName is "First Last"; that account is promoted to admin
	// when it registers or logs in.
	AdminBootstrapName string

	AllowedOrigins    []string
	SentryDSN         string
	ReconcileSchedule string
	UniqueCompletions bool
}

// LoadConfig reads .env (if present) and the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment")
	}

	return &Config{
		Port:               getenv("PORT", "8080"),
		Env:                getenv("ENV", "dev"),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		StoreDriver:        getenv("STORE_DRIVER", DriverMongo),
		MongoURI:           getenv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:             getenv("DB_NAME", "ff_points"),
		JWTSecret:          getenv("JWT_SECRET", "change-me"),
		TokenExpiry:        getDuration("TOKEN_EXPIRY", 72*time.Hour),
		AdminBootstrapName: os.Getenv("ADMIN_BOOTSTRAP_NAME"),
		AllowedOrigins:     splitList(getenv("ALLOWED_ORIGINS", "http://localhost:3000")),
		SentryDSN:          os.Getenv("SENTRY_DSN"),
		ReconcileSchedule:  getenv("RECONCILE_SCHEDULE", "@daily"),
		UniqueCompletions:  getBool("UNIQUE_COMPLETIONS", true),
	}
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.WithField("key", k).Warnf("Invalid duration %q, using %s", v, def)
		return def
	}
	return d
}

func getBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logrus.WithField("key", k).Warnf("Invalid bool %q, using %t", v, def)
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
