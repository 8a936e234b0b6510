package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		DB_URL:      "sqlite:test.db",
		JWTSecret:   "secret",
		Environment: "development",
		Ledger:      LedgerConfig{Backend: "local", ChainID: SepoliaChainID},
		BlobBackend: "gateway",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "local defaults", mutate: func(c *Config) {}},
		{
			name:    "contract without rpc",
			mutate:  func(c *Config) { c.Ledger.Backend = "contract" },
			wantErr: "RPC_URL",
		},
		{
			name: "contract complete",
			mutate: func(c *Config) {
				c.Ledger = LedgerConfig{Backend: "contract", RPCURL: "http://localhost:8545", ContractAddress: "0x1"}
			},
		},
		{
			name:    "unknown ledger",
			mutate:  func(c *Config) { c.Ledger.Backend = "ipfs" },
			wantErr: "LEDGER_BACKEND",
		},
		{
			name:    "r2 without credentials",
			mutate:  func(c *Config) { c.BlobBackend = "r2" },
			wantErr: "R2_ACCOUNT_ID",
		},
		{
			name: "default secret in production",
			mutate: func(c *Config) {
				c.Environment = "production"
				c.JWTSecret = "not-so-secret-now-is-it?"
			},
			wantErr: "JWT_SECRET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("VAULT_TEST_INT", "42")
	t.Setenv("VAULT_TEST_BAD", "x")

	assert.Equal(t, int64(42), getEnvInt("VAULT_TEST_INT", 1))
	assert.Equal(t, int64(1), getEnvInt("VAULT_TEST_BAD", 1))
	assert.Equal(t, int64(7), getEnvInt("VAULT_TEST_MISSING", 7))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("VAULT_TEST_TTL", "45s")
	t.Setenv("VAULT_TEST_TTL_BAD", "soon")
	t.Setenv("VAULT_TEST_TTL_NEG", "-1s")

	assert.Equal(t, 45*time.Second, getEnvDuration("VAULT_TEST_TTL", time.Second))
	assert.Equal(t, time.Second, getEnvDuration("VAULT_TEST_TTL_BAD", time.Second))
	assert.Equal(t, time.Second, getEnvDuration("VAULT_TEST_TTL_NEG", time.Second))
	assert.Equal(t, time.Second, getEnvDuration("VAULT_TEST_TTL_UNSET", time.Second))
}

func TestCorsConfigSplitsOrigins(t *testing.T) {
	opts := CorsConfig("http://a.test,http://b.test")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, opts.AllowedOrigins)
	assert.True(t, opts.AllowCredentials)
}
