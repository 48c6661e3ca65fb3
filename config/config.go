// Package config - application configuration
package config

import (
	"fmt"
	"time"

	"github.com/alwitt/herbtrace/models"
	"github.com/apex/log"
	"github.com/spf13/viper"
)

// Supported document store backends
const (
	// StoreBackendCouchDB remote CouchDB server
	StoreBackendCouchDB = "couchdb"
	// StoreBackendEmbedded embedded SQLite file
	StoreBackendEmbedded = "embedded"
)

// StoreConfig document store settings
type StoreConfig struct {
	// Backend which document store to use
	Backend string `mapstructure:"backend" json:"backend" validate:"required,oneof=couchdb embedded"`
	// URL CouchDB server URL
	URL string `mapstructure:"url" json:"url" validate:"required_if=Backend couchdb,omitempty,url"`
	// Username CouchDB user
	Username string `mapstructure:"username" json:"username"`
	// Password CouchDB password
	Password string `mapstructure:"password" json:"-"`
	// Database the database holding the herb records
	Database string `mapstructure:"database" json:"database" validate:"required"`
	// Timeout bound on each document store call
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
	// EmbeddedFile SQLite file of the embedded backend
	EmbeddedFile string `mapstructure:"embedded_file" json:"embedded_file" validate:"required_if=Backend embedded"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	// Host listen address
	Host string `mapstructure:"host" json:"host" validate:"required"`
	// Port listen port
	Port int `mapstructure:"port" json:"port" validate:"gte=1,lte=65535"`
	// ReadTimeout bound on reading a request
	ReadTimeout time.Duration `mapstructure:"read_timeout" json:"read_timeout"`
	// WriteTimeout bound on writing a response
	WriteTimeout time.Duration `mapstructure:"write_timeout" json:"write_timeout"`
	// ShutdownTimeout bound on draining in-flight requests at shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout"`
	// RequestLogLevel level of the per request access log
	RequestLogLevel string `mapstructure:"request_log_level" json:"request_log_level" validate:"required,oneof=debug info warn"`
}

// LogConfig logging settings
type LogConfig struct {
	// Level log level
	Level string `mapstructure:"level" json:"level" validate:"required,oneof=debug info warn error fatal"`
}

// Config application configuration
type Config struct {
	// Store document store settings
	Store StoreConfig `mapstructure:"store" json:"store"`
	// Server HTTP server settings
	Server ServerConfig `mapstructure:"server" json:"server"`
	// PublicBaseURL base URL of the public product pages. When empty the QR codes carry
	// the herb record itself.
	PublicBaseURL string `mapstructure:"public_base_url" json:"public_base_url" validate:"omitempty,http_url"`
	// Log logging settings
	Log LogConfig `mapstructure:"log" json:"log"`
}

type configKey struct {
	key          string
	env          string
	defaultValue interface{}
}

var configKeys = []configKey{
	{key: "store.backend", env: "STORE_BACKEND", defaultValue: StoreBackendCouchDB},
	{key: "store.url", env: "COUCHDB_URL", defaultValue: "http://127.0.0.1:5984"},
	{key: "store.username", env: "COUCHDB_USER", defaultValue: "admin"},
	{key: "store.password", env: "COUCHDB_PASSWORD", defaultValue: ""},
	{key: "store.database", env: "COUCHDB_DATABASE", defaultValue: "herbs"},
	{key: "store.timeout", env: "STORE_TIMEOUT", defaultValue: "10s"},
	{key: "store.embedded_file", env: "EMBEDDED_DB_FILE", defaultValue: "herbtrace.db"},
	{key: "public_base_url", env: "PUBLIC_BASE_URL", defaultValue: ""},
	{key: "server.host", env: "HOST", defaultValue: "127.0.0.1"},
	{key: "server.port", env: "PORT", defaultValue: 3000},
	{key: "server.read_timeout", env: "SERVER_READ_TIMEOUT", defaultValue: "30s"},
	{key: "server.write_timeout", env: "SERVER_WRITE_TIMEOUT", defaultValue: "30s"},
	{key: "server.shutdown_timeout", env: "SERVER_SHUTDOWN_TIMEOUT", defaultValue: "15s"},
	{key: "server.request_log_level", env: "REQUEST_LOG_LEVEL", defaultValue: "debug"},
	{key: "log.level", env: "LOG_LEVEL", defaultValue: "info"},
}

/*
InstallDefaults install the configuration defaults and environment variable bindings

	@param v *viper.Viper - viper instance to prepare
*/
func InstallDefaults(v *viper.Viper) error {
	for _, oneKey := range configKeys {
		v.SetDefault(oneKey.key, oneKey.defaultValue)
		if err := v.BindEnv(oneKey.key, oneKey.env); err != nil {
			return fmt.Errorf("failed to bind '%s' to env '%s' [%w]", oneKey.key, oneKey.env, err)
		}
	}
	return nil
}

/*
Load build and validate the application configuration

	@param v *viper.Viper - viper instance with defaults installed
	@return application configuration
*/
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration [%w]", err)
	}

	validate, err := models.NewValidator()
	if err != nil {
		return Config{}, err
	}
	if err := validate.Struct(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration [%w]", err)
	}
	if cfg.Store.Timeout <= 0 {
		return Config{}, fmt.Errorf("store timeout must be positive, got %s", cfg.Store.Timeout)
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf(
			"server shutdown timeout must be positive, got %s", cfg.Server.ShutdownTimeout,
		)
	}

	log.
		WithField("backend", cfg.Store.Backend).
		WithField("database", cfg.Store.Database).
		WithField("listen", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Debug("Loaded configuration")
	return cfg, nil
}
