package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alwitt/herbtrace/config"
	"github.com/apex/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func loadConfig(t *testing.T) (config.Config, error) {
	v := viper.New()
	assert.Nil(t, config.InstallDefaults(v))
	return config.Load(v)
}

func TestConfigDefaults(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	cfg, err := loadConfig(t)
	assert.Nil(err)
	assert.Equal(config.StoreBackendCouchDB, cfg.Store.Backend)
	assert.Equal("http://127.0.0.1:5984", cfg.Store.URL)
	assert.Equal("admin", cfg.Store.Username)
	assert.Equal("herbs", cfg.Store.Database)
	assert.Equal(time.Second*10, cfg.Store.Timeout)
	assert.Equal("127.0.0.1", cfg.Server.Host)
	assert.Equal(3000, cfg.Server.Port)
	assert.Equal("debug", cfg.Server.RequestLogLevel)
	assert.Empty(cfg.PublicBaseURL)
	assert.Equal("info", cfg.Log.Level)
}

func TestConfigFromEnvironment(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	t.Setenv("COUCHDB_URL", "http://couch.internal:5984")
	t.Setenv("COUCHDB_PASSWORD", "secret")
	t.Setenv("COUCHDB_DATABASE", "herbs_prod")
	t.Setenv("STORE_TIMEOUT", "3s")
	t.Setenv("PUBLIC_BASE_URL", "https://trace.example.com")
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := loadConfig(t)
	assert.Nil(err)
	assert.Equal("http://couch.internal:5984", cfg.Store.URL)
	assert.Equal("secret", cfg.Store.Password)
	assert.Equal("herbs_prod", cfg.Store.Database)
	assert.Equal(time.Second*3, cfg.Store.Timeout)
	assert.Equal("https://trace.example.com", cfg.PublicBaseURL)
	assert.Equal(8080, cfg.Server.Port)
	assert.Equal("debug", cfg.Log.Level)
}

func TestConfigFromFile(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	cfgFile := filepath.Join(t.TempDir(), "herbtrace.yaml")
	assert.Nil(os.WriteFile(cfgFile, []byte(`
store:
  backend: embedded
  embedded_file: /tmp/herbs.db
server:
  port: 4000
`), 0o600))

	v := viper.New()
	assert.Nil(config.InstallDefaults(v))
	v.SetConfigFile(cfgFile)
	assert.Nil(v.ReadInConfig())

	cfg, err := config.Load(v)
	assert.Nil(err)
	assert.Equal(config.StoreBackendEmbedded, cfg.Store.Backend)
	assert.Equal("/tmp/herbs.db", cfg.Store.EmbeddedFile)
	assert.Equal(4000, cfg.Server.Port)
	assert.Equal("herbs", cfg.Store.Database)
}

func TestConfigValidation(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	type testCase struct {
		env   string
		value string
	}

	for _, oneTest := range []testCase{
		{env: "STORE_BACKEND", value: "mongodb"},
		{env: "COUCHDB_URL", value: "not a url"},
		{env: "PORT", value: "70000"},
		{env: "LOG_LEVEL", value: "chatty"},
		{env: "PUBLIC_BASE_URL", value: "trace.example.com"},
		{env: "PUBLIC_BASE_URL", value: "localhost:3000"},
		{env: "REQUEST_LOG_LEVEL", value: "trace"},
		{env: "STORE_TIMEOUT", value: "0s"},
	} {
		t.Run(oneTest.env, func(t *testing.T) {
			t.Setenv(oneTest.env, oneTest.value)
			_, err := loadConfig(t)
			assert.NotNil(err)
		})
	}
}
