package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	commonerrors "github.com/realtyhub/backend/internal/common/errors"
)

type Config struct {
	HTTPPort       string
	DatabaseURL    string
	JWTSecret      string
	BcryptCost     int
	TokenTTL       time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// Load reads the environment once at startup. A .env file is honored when
// present; real environment variables win over it.
func Load() (Config, error) {
	_ = godotenv.Load()

	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return Config{}, err
	}
	if len(jwtSecret) < 32 {
		return Config{}, commonerrors.ErrInvalidJWTSecret.WithCause(
			fmt.Errorf("got %d bytes", len(jwtSecret)))
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	bcryptCostRaw, err := mustEnv("BCRYPT_COST")
	if err != nil {
		return Config{}, err
	}
	bcryptCost, err := strconv.Atoi(bcryptCostRaw)
	if err != nil {
		return Config{}, commonerrors.ErrInvalidBcryptCost.WithCause(err)
	}

	return Config{
		HTTPPort:       getEnv("PORT", "8080"),
		DatabaseURL:    databaseURL,
		JWTSecret:      jwtSecret,
		BcryptCost:     bcryptCost,
		TokenTTL:       getDurationEnv("TOKEN_TTL", 24*time.Hour),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 5*time.Second),
		CORSOrigins:    []string{getEnv("CORS_ORIGIN", "*")},
	}, nil
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("%s", key))
	}
	return v, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
