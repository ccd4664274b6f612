package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned by Load when no model service credential is configured.
var ErrMissingAPIKey = errors.New("no API key configured for the model service (set DOCANALYZER_LLM_API_KEY)")

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Storage  StorageConfig
	LLM      LLMConfig
	Analysis AnalysisConfig
	Log      LogConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds relational store settings. Driver is "sqlite" or "postgres".
type DBConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the connection string for the configured driver.
func (d *DBConfig) DSN() string {
	if d.Driver == DriverPostgres {
		return fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s?sslmode=%s",
			d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
		)
	}
	return d.Path
}

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// StorageConfig holds upload storage settings.
type StorageConfig struct {
	UploadDir     string   `mapstructure:"upload_dir"`
	MaxFileSizeMB int64    `mapstructure:"max_file_size_mb"`
	S3            S3Config `mapstructure:"s3"`
}

// S3Config holds settings for the optional S3 archive of uploaded PDFs.
// The archive is disabled when Bucket is empty.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Enabled reports whether an archive bucket is configured.
func (s *S3Config) Enabled() bool {
	return s.Bucket != ""
}

// LLMConfig holds settings for the external language-model service.
type LLMConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// AnalysisConfig controls how stored analyses are served.
type AnalysisConfig struct {
	// ReanalyzeOnRead re-runs the gap analyzer on every fetch instead of
	// serving the persisted result.
	ReanalyzeOnRead bool `mapstructure:"reanalyze_on_read"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the DOCANALYZER_ prefix.
// It fails when no model service API key is available and creates the upload
// directory if it does not exist.
func Load() (*Config, error) {
	return load(true)
}

// LoadWithoutAPIKey is Load for tools that never call the model service,
// such as the migration command.
func LoadWithoutAPIKey() (*Config, error) {
	return load(false)
}

func load(requireAPIKey bool) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCANALYZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":5000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", "documents.db")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docanalyzer")
	v.SetDefault("db.password", "docanalyzer_secret")
	v.SetDefault("db.name", "docanalyzer_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Storage defaults
	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.max_file_size_mb", 16)
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.endpoint", "")

	// LLM defaults
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.default_model", "")
	v.SetDefault("llm.timeout_secs", 120)

	v.SetDefault("analysis.reanalyze_on_read", false)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "DOCANALYZER_SERVER_PORT",
		"server.read_timeout":        "DOCANALYZER_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "DOCANALYZER_SERVER_WRITE_TIMEOUT",
		"server.environment":         "DOCANALYZER_SERVER_ENVIRONMENT",
		"db.driver":                  "DOCANALYZER_DB_DRIVER",
		"db.path":                    "DOCANALYZER_DB_PATH",
		"db.host":                    "DOCANALYZER_DB_HOST",
		"db.port":                    "DOCANALYZER_DB_PORT",
		"db.user":                    "DOCANALYZER_DB_USER",
		"db.password":                "DOCANALYZER_DB_PASSWORD",
		"db.name":                    "DOCANALYZER_DB_NAME",
		"db.sslmode":                 "DOCANALYZER_DB_SSLMODE",
		"db.max_open":                "DOCANALYZER_DB_MAX_OPEN",
		"db.max_idle":                "DOCANALYZER_DB_MAX_IDLE",
		"storage.upload_dir":         "DOCANALYZER_STORAGE_UPLOAD_DIR",
		"storage.max_file_size_mb":   "DOCANALYZER_STORAGE_MAX_FILE_SIZE_MB",
		"storage.s3.region":          "DOCANALYZER_STORAGE_S3_REGION",
		"storage.s3.bucket":          "DOCANALYZER_STORAGE_S3_BUCKET",
		"storage.s3.endpoint":        "DOCANALYZER_STORAGE_S3_ENDPOINT",
		"storage.s3.access_key":      "DOCANALYZER_STORAGE_S3_ACCESS_KEY",
		"storage.s3.secret_key":      "DOCANALYZER_STORAGE_S3_SECRET_KEY",
		"llm.provider":               "DOCANALYZER_LLM_PROVIDER",
		"llm.api_key":                "DOCANALYZER_LLM_API_KEY",
		"llm.default_model":          "DOCANALYZER_LLM_DEFAULT_MODEL",
		"llm.timeout_secs":           "DOCANALYZER_LLM_TIMEOUT_SECS",
		"analysis.reanalyze_on_read": "DOCANALYZER_ANALYSIS_REANALYZE_ON_READ",
		"log.level":                  "DOCANALYZER_LOG_LEVEL",
		"log.format":                 "DOCANALYZER_LOG_FORMAT",
		"cors.allowed_origins":       "DOCANALYZER_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// PaaS platforms set a PORT env var. Use it if DOCANALYZER_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCANALYZER_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Driver:   strings.ToLower(v.GetString("db.driver")),
		Path:     v.GetString("db.path"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	if cfg.DB.Driver != DriverSQLite && cfg.DB.Driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported db driver %q (expected %s or %s)", cfg.DB.Driver, DriverSQLite, DriverPostgres)
	}

	cfg.Storage = StorageConfig{
		UploadDir:     v.GetString("storage.upload_dir"),
		MaxFileSizeMB: v.GetInt64("storage.max_file_size_mb"),
		S3: S3Config{
			Region:    v.GetString("storage.s3.region"),
			Bucket:    v.GetString("storage.s3.bucket"),
			Endpoint:  v.GetString("storage.s3.endpoint"),
			AccessKey: v.GetString("storage.s3.access_key"),
			SecretKey: v.GetString("storage.s3.secret_key"),
		},
	}

	cfg.LLM = LLMConfig{
		Provider:     strings.ToLower(v.GetString("llm.provider")),
		APIKey:       v.GetString("llm.api_key"),
		DefaultModel: v.GetString("llm.default_model"),
		TimeoutSecs:  v.GetInt("llm.timeout_secs"),
	}
	// Gemini deployments commonly carry the key in GOOGLE_API_KEY.
	if cfg.LLM.APIKey == "" && cfg.LLM.Provider == "gemini" {
		cfg.LLM.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if requireAPIKey && strings.TrimSpace(cfg.LLM.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	cfg.Analysis = AnalysisConfig{
		ReanalyzeOnRead: v.GetBool("analysis.reanalyze_on_read"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	if err := os.MkdirAll(cfg.Storage.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %s: %w", cfg.Storage.UploadDir, err)
	}

	return cfg, nil
}
