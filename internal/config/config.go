package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

const SepoliaChainID = 11155111

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	URLExpiry       time.Duration
}

type LedgerConfig struct {
	Backend         string // "contract" or "local"
	RPCURL          string
	ContractAddress string
	SignerKey       string
	ChainID         int64
}

type Config struct {
	DB_URL       string
	Port         string
	JWTSecret    string
	Environment  string
	LogLevel     string
	ViewCache    bool
	ViewCacheTTL time.Duration
	CorsConfig   cors.Options
	Ledger       LedgerConfig
	BlobBackend  string // "gateway" or "r2"
	GatewayBase  string
	R2           R2Config
}

var Envs = initConfig()

func initConfig() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	// Missing env files are fine; the process environment still applies.
	_ = godotenv.Load(envFile)

	return Config{
		DB_URL:       getEnv("DB_URL", "sqlite:vault.db"),
		Port:         getEnv("PORT", "8080"),
		JWTSecret:    getEnv("JWT_SECRET", "not-so-secret-now-is-it?"),
		Environment:  getEnv("ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		ViewCache:    getEnv("VIEW_CACHE", "on") != "off",
		ViewCacheTTL: getEnvDuration("VIEW_CACHE_TTL", 15*time.Second),
		CorsConfig:   CorsConfig(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		Ledger: LedgerConfig{
			Backend:         getEnv("LEDGER_BACKEND", "local"),
			RPCURL:          getEnv("RPC_URL", ""),
			ContractAddress: getEnv("CONTRACT_ADDRESS", ""),
			SignerKey:       getEnv("SIGNER_KEY", ""),
			ChainID:         getEnvInt("CHAIN_ID", SepoliaChainID),
		},
		BlobBackend: getEnv("BLOB_BACKEND", "gateway"),
		GatewayBase: getEnv("GATEWAY_BASE_URL", "https://gateway.pinata.cloud/ipfs"),
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", ""),
			Region:          getEnv("R2_REGION", "auto"),
			URLExpiry:       time.Duration(getEnvInt("R2_URL_EXPIRY_MINUTES", 15)) * time.Minute,
		},
	}
}

// Validate reports settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Ledger.Backend {
	case "contract":
		if c.Ledger.RPCURL == "" {
			return errors.New("RPC_URL is required for the contract ledger")
		}
		if c.Ledger.ContractAddress == "" {
			return errors.New("CONTRACT_ADDRESS is required for the contract ledger")
		}
	case "local":
		if c.DB_URL == "" {
			return errors.New("DB_URL is required for the local ledger")
		}
	default:
		return fmt.Errorf("invalid LEDGER_BACKEND %q", c.Ledger.Backend)
	}

	switch c.BlobBackend {
	case "gateway":
	case "r2":
		if c.R2.AccountID == "" || c.R2.AccessKeyID == "" || c.R2.SecretAccessKey == "" || c.R2.BucketName == "" {
			return errors.New("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME are required for the r2 blob backend")
		}
	default:
		return fmt.Errorf("invalid BLOB_BACKEND %q", c.BlobBackend)
	}

	if c.Environment == "production" && c.JWTSecret == "not-so-secret-now-is-it?" {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func CorsConfig(origins string) cors.Options {
	return cors.Options{
		AllowedOrigins:   strings.Split(origins, ","),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
