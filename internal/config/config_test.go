package config_test

import (
	"testing"

	"github.com/acryfusion/storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.HTTPServerPortEnv, "8080")
	t.Setenv(config.MetricsServerPortEnv, "9090")
	t.Setenv(config.StoreBackendEnv, config.StoreBackendMemory)
	t.Setenv(config.AssetBackendEnv, config.AssetBackendFS)
	t.Setenv(config.UploadsDirEnv, "./uploads")
}

func TestLoadFromEnv(t *testing.T) {
	setBaseEnv(t)
	t.Setenv(config.DebugModeEnv, "true")
	t.Setenv(config.RedisAddrEnv, "localhost:6379")

	conf, err := config.LoadFromEnv()
	require.NoError(t, err, "loading config should not return error")

	assert.True(t, conf.DebugMode, "DebugMode should be true")
	assert.Equal(t, config.StoreBackendMemory, conf.Store.Backend)
	assert.Equal(t, config.AssetBackendFS, conf.Assets.Backend)
	assert.Equal(t, "./uploads", conf.Assets.UploadsDir)
	assert.Equal(t, "localhost:6379", conf.Redis.Addr)
	assert.Equal(t, "8080", conf.HTTPServer.Port, "HTTP Server Port should be '8080'")
	assert.Equal(t, "9090", conf.MetricsServer.Port, "Metrics Server Port should be '9090'")
}

func TestLoadFromEnv_PostgresBackend(t *testing.T) {
	setBaseEnv(t)
	t.Setenv(config.StoreBackendEnv, config.StoreBackendPostgres)
	t.Setenv(config.DBHostEnv, "localhost")
	t.Setenv(config.DBUserEnv, "user")
	t.Setenv(config.DBPassEnv, "pass")
	t.Setenv(config.DBNameEnv, "catalog")
	t.Setenv(config.DBPortEnv, "5432")

	conf, err := config.LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "localhost", conf.Database.Host)
	assert.Equal(t, "user", conf.Database.User)
	assert.Equal(t, "pass", conf.Database.Password)
	assert.Equal(t, "catalog", conf.Database.Name)
	assert.Equal(t, "5432", conf.Database.Port)
}

func TestLoadFromEnv_SheetsBackend(t *testing.T) {
	setBaseEnv(t)
	t.Setenv(config.StoreBackendEnv, config.StoreBackendSheets)

	t.Run("missing credentials fails", func(t *testing.T) {
		_, err := config.LoadFromEnv()
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrMissingConfig)
	})

	t.Run("complete sheets config loads", func(t *testing.T) {
		t.Setenv(config.GoogleCredentialsEnv, "/etc/storefront/sa.json")
		t.Setenv(config.SpreadsheetIDEnv, "spreadsheet-id")

		conf, err := config.LoadFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "spreadsheet-id", conf.Store.SpreadsheetID)
		assert.Equal(t, "/etc/storefront/sa.json", conf.Store.CredentialsFile)
	})
}

func TestLoadFromEnv_InvalidBackend(t *testing.T) {
	setBaseEnv(t)
	t.Setenv(config.StoreBackendEnv, "cassandra")

	_, err := config.LoadFromEnv()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidBackend)
}

func TestLoadFromEnv_QueueURLRequiresRegion(t *testing.T) {
	setBaseEnv(t)
	t.Setenv(config.SQSQueueURLEnv, "https://sqs.us-east-1.amazonaws.com/123/catalog-events")

	_, err := config.LoadFromEnv()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingConfig)

	t.Setenv(config.AWSRegionEnv, "us-east-1")
	conf, err := config.LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", conf.AWS.Region)
}

func TestGetEnvAsBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		want         bool
	}{
		{"GetEnvAsBool_True", "true", false, true},
		{"GetEnvAsBool_False", "false", true, false},
		{"GetEnvAsBool_Invalid", "invalid", true, true},
		{"GetEnvAsBool_Empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV", tt.envValue)
			got := config.GetEnvAsBool("TEST_ENV", tt.defaultValue)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetEnvWithDefault(t *testing.T) {
	t.Run("set value wins", func(t *testing.T) {
		t.Setenv("TEST_ENV", "value")
		assert.Equal(t, "value", config.GetEnvWithDefault("TEST_ENV", "fallback"))
	})

	t.Run("empty falls back", func(t *testing.T) {
		t.Setenv("TEST_ENV", "")
		assert.Equal(t, "fallback", config.GetEnvWithDefault("TEST_ENV", "fallback"))
	})
}

func TestAllNumbers(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]string
		wantErr bool
	}{
		{"AllNumbers_Valid", map[string]string{"key1": "123", "key2": "456", "key3": "789"}, false},
		{"AllNumbers_Invalid", map[string]string{"key1": "123", "key2": "abc", "key3": "789"}, true},
		{"AllNumbers_EmptyString", map[string]string{"key1": "123", "key2": "", "key3": "789"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.AllNumbers(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllNonEmpty(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]string
		wantErr bool
	}{
		{"AllNonEmpty_Valid", map[string]string{"key1": "host", "key2": "user", "key3": "pass"}, false},
		{"AllNonEmpty_EmptyString", map[string]string{"key1": "host", "key2": "", "key3": "pass"}, true},
		{"AllNonEmpty_AllEmpty", map[string]string{"key1": "", "key2": "", "key3": ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.AllNonEmpty(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
