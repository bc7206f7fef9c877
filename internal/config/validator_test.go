package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEnv_MissingVersion(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("API_KEY", "")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestValidateEnv_PostgresNeedsDBVars(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("API_KEY", "key")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DB_HOST", "")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")

	t.Setenv("STORAGE_DRIVER", "memory")
	assert.NoError(t, ValidateEnv())
}

func TestValidateEnvWithWarnings_InsecureDefaults(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "API_KEY")
}

func TestValidate_StructRules(t *testing.T) {
	cfg := &Config{
		Port:                    8080,
		APIKey:                  "k",
		LogLevel:                "info",
		LogFormat:               "text",
		StorageDriver:           StorageMemory,
		DBMaxConns:              1,
		CheckoutProcessingDelay: DefaultCheckoutProcessingDelay,
		ConfirmationInterval:    DefaultConfirmationInterval,
		CommunityTickInterval:   DefaultCommunityTickInterval,
		ProfileCacheSize:        10,
		ProfileCacheTTL:         DefaultProfileCacheTTL,
	}
	require.NoError(t, Validate(cfg))

	cfg.ProfileCacheSize = 0
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ProfileCacheSize")
}
