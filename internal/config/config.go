package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// DebugModeEnv is the environment variable for debug mode.
	DebugModeEnv = "DEBUG_MODE"

	// StoreBackendEnv selects the catalog row store: sheets, postgres or memory.
	StoreBackendEnv = "STORE_BACKEND"

	// AssetBackendEnv selects the binary asset store: drive or fs.
	AssetBackendEnv = "ASSET_BACKEND"

	// GoogleCredentialsEnv is the environment variable for the Google
	// service-account credentials file, used by the sheets and drive backends.
	GoogleCredentialsEnv = "GOOGLE_CREDENTIALS_FILE"

	// SpreadsheetIDEnv is the environment variable for the catalog spreadsheet id.
	SpreadsheetIDEnv = "SPREADSHEET_ID"

	// DriveFolderIDEnv is the environment variable for the Drive folder holding uploads.
	DriveFolderIDEnv = "DRIVE_FOLDER_ID"

	// UploadsDirEnv is the environment variable for the local uploads directory (fs backend).
	UploadsDirEnv = "UPLOADS_DIR"

	// DBHostEnv is the environment variable for database host.
	DBHostEnv = "DB_HOST"

	// DBPortEnv is the environment variable for database port.
	DBPortEnv = "DB_PORT"

	// DBUserEnv is the environment variable for database user.
	DBUserEnv = "DB_USER"

	// DBPassEnv is the environment variable for database password.
	DBPassEnv = "DB_PASS"

	// DBNameEnv is the environment variable for database name.
	DBNameEnv = "DB_NAME"

	// RedisAddrEnv is the environment variable for the Redis cache address.
	// Empty disables the listing cache.
	RedisAddrEnv = "REDIS_ADDR"

	// HTTPServerPortEnv is the environment variable for HTTP server port.
	HTTPServerPortEnv = "HTTP_SERVER_PORT"

	// MetricsServerPortEnv is the environment variable for metrics server port.
	MetricsServerPortEnv = "METRICS_SERVER_PORT"

	// EnvFilePath is the environment variable for .env file path (only for local/test environment).
	EnvFilePath = "ENV_PATH"

	// DefaultEnvFilePath is the default path to the .env file.
	DefaultEnvFilePath = ".env"

	// AWSRegionEnv is the environment variable for AWS region.
	AWSRegionEnv = "AWS_REGION"

	// AWSEndpointEnv is the environment variable for AWS endpoint.
	AWSEndpointEnv = "AWS_ENDPOINT"

	// SQSQueueURLEnv is the environment variable for SQS queue URL. Empty
	// disables catalog change events.
	SQSQueueURLEnv = "SQS_QUEUE_URL"

	// StoreBackendSheets selects the Google Sheets row store.
	StoreBackendSheets = "sheets"
	// StoreBackendPostgres selects the Postgres row store.
	StoreBackendPostgres = "postgres"
	// StoreBackendMemory selects the in-memory row store.
	StoreBackendMemory = "memory"

	// AssetBackendDrive selects the Google Drive asset store.
	AssetBackendDrive = "drive"
	// AssetBackendFS selects the local filesystem asset store.
	AssetBackendFS = "fs"

	// DefaultUploadsDir is where the fs asset backend keeps files.
	DefaultUploadsDir = "./uploads"
)

var (
	// ErrMissingConfig is returned when required configuration values are missing.
	ErrMissingConfig = errors.New("missing config data")

	// ErrInvalidBackend is returned when a backend selector has an unknown value.
	ErrInvalidBackend = errors.New("invalid backend")
)

// Config represents the application configuration.
type Config struct {
	DebugMode     bool
	Store         StoreConfig
	Assets        AssetConfig
	Database      DB
	Redis         Redis
	HTTPServer    Server
	MetricsServer Server
	AWS           AWSConfig
}

// StoreConfig selects and parameterizes the catalog row store.
type StoreConfig struct {
	Backend         string
	CredentialsFile string
	SpreadsheetID   string
}

// AssetConfig selects and parameterizes the binary asset store.
type AssetConfig struct {
	Backend         string
	CredentialsFile string
	DriveFolderID   string
	UploadsDir      string
}

// AWSConfig represents AWS-specific configuration settings.
type AWSConfig struct {
	Region      string
	Endpoint    string
	SQSQueueURL string
}

// DB represents database configuration settings.
type DB struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

// Redis represents cache configuration settings.
type Redis struct {
	Addr string
}

// Server represents server configuration settings.
type Server struct {
	Port string
}

func allNonEmpty(keyValues map[string]string) error {
	for key, value := range keyValues {
		if value == "" {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("error", "value is empty"))
			return fmt.Errorf("%w for key: %s", ErrMissingConfig, key)
		}
	}
	return nil
}

func allNumbers(keyValues map[string]string) error {
	for key, value := range keyValues {
		_, err := strconv.Atoi(value)
		if err != nil {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("value", value), slog.String("error", err.Error()))
			return fmt.Errorf("invalid number for key %s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	// Validate server ports
	if err := allNonEmpty(map[string]string{
		HTTPServerPortEnv:    c.HTTPServer.Port,
		MetricsServerPortEnv: c.MetricsServer.Port,
	}); err != nil {
		return fmt.Errorf("server port configuration incomplete: %w", err)
	}
	if err := allNumbers(map[string]string{
		HTTPServerPortEnv:    c.HTTPServer.Port,
		MetricsServerPortEnv: c.MetricsServer.Port,
	}); err != nil {
		return fmt.Errorf("invalid port number: %w", err)
	}

	// Validate the selected row store backend
	switch c.Store.Backend {
	case StoreBackendSheets:
		if err := allNonEmpty(map[string]string{
			GoogleCredentialsEnv: c.Store.CredentialsFile,
			SpreadsheetIDEnv:     c.Store.SpreadsheetID,
		}); err != nil {
			return fmt.Errorf("sheets store configuration incomplete: %w", err)
		}
	case StoreBackendPostgres:
		if err := allNonEmpty(map[string]string{
			DBHostEnv: c.Database.Host,
			DBUserEnv: c.Database.User,
			DBNameEnv: c.Database.Name,
		}); err != nil {
			return fmt.Errorf("database configuration incomplete: %w", err)
		}
		if err := allNumbers(map[string]string{DBPortEnv: c.Database.Port}); err != nil {
			return fmt.Errorf("invalid database port: %w", err)
		}
	case StoreBackendMemory:
		// nothing to validate
	default:
		return fmt.Errorf("%w: %s=%q", ErrInvalidBackend, StoreBackendEnv, c.Store.Backend)
	}

	// Validate the selected asset backend
	switch c.Assets.Backend {
	case AssetBackendDrive:
		if err := allNonEmpty(map[string]string{
			GoogleCredentialsEnv: c.Assets.CredentialsFile,
			DriveFolderIDEnv:     c.Assets.DriveFolderID,
		}); err != nil {
			return fmt.Errorf("drive asset configuration incomplete: %w", err)
		}
	case AssetBackendFS:
		if err := allNonEmpty(map[string]string{UploadsDirEnv: c.Assets.UploadsDir}); err != nil {
			return fmt.Errorf("fs asset configuration incomplete: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s=%q", ErrInvalidBackend, AssetBackendEnv, c.Assets.Backend)
	}

	// The queue is optional, but a queue URL without a region is a misconfiguration.
	if c.AWS.SQSQueueURL != "" {
		if err := allNonEmpty(map[string]string{AWSRegionEnv: c.AWS.Region}); err != nil {
			return fmt.Errorf("AWS configuration incomplete: %w", err)
		}
	}

	return nil
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if val, err := strconv.ParseBool(os.Getenv(name)); err == nil {
		return val
	}
	return defaultValue
}

func getEnvWithDefault(name, defaultValue string) string {
	if val := os.Getenv(name); val != "" {
		return val
	}
	return defaultValue
}

// ApplyEnvFile loads environment variables from the specified .env files.
func ApplyEnvFile(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables and validates it.
func LoadFromEnv() (*Config, error) {
	envPath := os.Getenv(EnvFilePath)
	if envPath == "" {
		envPath = DefaultEnvFilePath
	}
	err := ApplyEnvFile(envPath)
	if err != nil {
		// just log the error, maybe all envs are set in another way
		slog.Info("failed to load from .env", slog.Any("err", err))
	}

	conf := &Config{
		DebugMode: getEnvAsBool(DebugModeEnv, false),
		Store: StoreConfig{
			Backend:         getEnvWithDefault(StoreBackendEnv, StoreBackendSheets),
			CredentialsFile: os.Getenv(GoogleCredentialsEnv),
			SpreadsheetID:   os.Getenv(SpreadsheetIDEnv),
		},
		Assets: AssetConfig{
			Backend:         getEnvWithDefault(AssetBackendEnv, AssetBackendDrive),
			CredentialsFile: os.Getenv(GoogleCredentialsEnv),
			DriveFolderID:   os.Getenv(DriveFolderIDEnv),
			UploadsDir:      getEnvWithDefault(UploadsDirEnv, DefaultUploadsDir),
		},
		Database: DB{
			Host:     os.Getenv(DBHostEnv),
			User:     os.Getenv(DBUserEnv),
			Password: os.Getenv(DBPassEnv),
			Name:     os.Getenv(DBNameEnv),
			Port:     os.Getenv(DBPortEnv),
		},
		Redis: Redis{
			Addr: os.Getenv(RedisAddrEnv),
		},
		HTTPServer: Server{
			Port: os.Getenv(HTTPServerPortEnv),
		},
		MetricsServer: Server{
			Port: os.Getenv(MetricsServerPortEnv),
		},
		AWS: AWSConfig{
			Region:      os.Getenv(AWSRegionEnv),
			Endpoint:    os.Getenv(AWSEndpointEnv),
			SQSQueueURL: os.Getenv(SQSQueueURLEnv),
		},
	}

	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return conf, nil
}
