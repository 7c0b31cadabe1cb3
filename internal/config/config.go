package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Redis  RedisConfig
	Auth   AuthConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// StoreConfig selects the reservation persistence backend. "file" keeps the
// line-oriented files under DataDir; "postgres" uses the Postgres settings.
type StoreConfig struct {
	Backend  string
	DataDir  string
	Postgres PostgresConfig
}

type PostgresConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     int
	SSLMode  string
}

// RedisConfig is optional. An empty Addr disables the availability cache,
// idempotency store, rate limiter, and pubsub.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "localhost"
	}

	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080"
	}

	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT: %w", op, err)
	}

	serverCfg := ServerConfig{
		Host: serverHost,
		Port: serverPort,
	}

	storeBackend := os.Getenv("STORE_BACKEND")
	if storeBackend == "" {
		storeBackend = "file"
	}
	if storeBackend != "file" && storeBackend != "postgres" {
		return nil, fmt.Errorf("%s: invalid STORE_BACKEND %q", op, storeBackend)
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	storeCfg := StoreConfig{
		Backend: storeBackend,
		DataDir: dataDir,
	}

	if storeBackend == "postgres" {
		postgresHost := os.Getenv("POSTGRES_HOST")
		if postgresHost == "" {
			postgresHost = "localhost"
		}

		postgresPortStr := os.Getenv("POSTGRES_PORT")
		if postgresPortStr == "" {
			postgresPortStr = "5432"
		}

		postgresPort, err := strconv.Atoi(postgresPortStr)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid POSTGRES_PORT: %w", op, err)
		}

		postgresUser := os.Getenv("POSTGRES_USER")
		if postgresUser == "" {
			return nil, fmt.Errorf("%s: missing POSTGRES_USER", op)
		}

		postgresPassword := os.Getenv("POSTGRES_PASSWORD")
		if postgresPassword == "" {
			return nil, fmt.Errorf("%s: missing POSTGRES_PASSWORD", op)
		}

		postgresDB := os.Getenv("POSTGRES_DB")
		if postgresDB == "" {
			return nil, fmt.Errorf("%s: missing POSTGRES_DB", op)
		}

		postgresSSLMode := os.Getenv("POSTGRES_SSLMODE")
		if postgresSSLMode == "" {
			postgresSSLMode = "disable"
		}

		storeCfg.Postgres = PostgresConfig{
			User:     postgresUser,
			Password: postgresPassword,
			Name:     postgresDB,
			Host:     postgresHost,
			Port:     postgresPort,
			SSLMode:  postgresSSLMode,
		}
	}

	redisCfg := RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("%s: missing JWT_SECRET", op)
	}

	tokenTTL := 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		tokenTTL, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid TOKEN_TTL: %w", op, err)
		}
	}

	bcryptCost := 10
	if raw := os.Getenv("BCRYPT_COST"); raw != "" {
		bcryptCost, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid BCRYPT_COST: %w", op, err)
		}
	}

	authCfg := AuthConfig{
		JWTSecret:  jwtSecret,
		TokenTTL:   tokenTTL,
		BcryptCost: bcryptCost,
	}

	return &Config{
		Server: serverCfg,
		Store:  storeCfg,
		Redis:  redisCfg,
		Auth:   authCfg,
	}, nil
}
