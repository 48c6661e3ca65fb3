package herbtrace_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/herbtrace"
	"github.com/alwitt/herbtrace/api"
	"github.com/alwitt/herbtrace/config"
	"github.com/alwitt/herbtrace/models"
	"github.com/apex/log"
	"github.com/go-resty/resty/v2"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func freePort(t *testing.T) int {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.Nil(t, err)
	defer func() { _ = listener.Close() }()
	return listener.Addr().(*net.TCPAddr).Port
}

func TestHerbTraceEmbeddedEndToEnd(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	testDB := fmt.Sprintf("/tmp/herbtrace_e2e_%s.db", ulid.Make().String())
	t.Cleanup(func() { _ = os.Remove(testDB) })
	port := freePort(t)

	t.Setenv("STORE_BACKEND", config.StoreBackendEmbedded)
	t.Setenv("EMBEDDED_DB_FILE", testDB)
	t.Setenv("PORT", fmt.Sprintf("%d", port))
	t.Setenv("PUBLIC_BASE_URL", "http://trace.example.com/")

	v := viper.New()
	assert.Nil(config.InstallDefaults(v))
	cfg, err := config.Load(v)
	assert.Nil(err)

	utCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	herbs, err := herbtrace.NewHerbStore(utCtx, cfg)
	assert.Nil(err)
	metrics, err := goutils.GetNewMetricsCollector(log.Fields{"module": "e2e"}, nil)
	assert.Nil(err)
	server, err := herbtrace.NewAPIServer(cfg, herbs, metrics)
	assert.Nil(err)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- api.RunServer(utCtx, server, cfg.Server.ShutdownTimeout)
	}()

	client := resty.New().
		SetBaseURL(fmt.Sprintf("http://127.0.0.1:%d", port)).
		SetTimeout(time.Second * 5)

	// Wait for the server to come up
	assert.Eventually(func() bool {
		resp, err := client.R().Get("/health")
		return err == nil && resp.StatusCode() == http.StatusOK
	}, time.Second*5, time.Millisecond*50)

	// Create
	var created models.Herb
	resp, err := client.R().
		SetBody(map[string]string{"name": "Brahmi", "farmer": "Kiran", "location": "Kerala"}).
		SetResult(&created).
		Post("/addHerb")
	assert.Nil(err)
	assert.Equal(http.StatusCreated, resp.StatusCode())
	assert.Equal(models.HerbID("Brahmi", "Kiran"), created.ID)

	// The QR code carries the public page URL; scanning it finds the record
	var scanned models.Herb
	resp, err = client.R().
		SetBody(map[string]string{"data": "http://trace.example.com/p/" + created.ID}).
		SetResult(&scanned).
		Post("/scan")
	assert.Nil(err)
	assert.Equal(http.StatusOK, resp.StatusCode())
	assert.Equal(created.ID, scanned.ID)

	// Listing
	resp, err = client.R().Get("/listHerbs")
	assert.Nil(err)
	var listed []models.Herb
	assert.Nil(json.Unmarshal(resp.Body(), &listed))
	assert.Len(listed, 1)

	// Metrics
	resp, err = client.R().Get("/metrics")
	assert.Nil(err)
	assert.True(strings.Contains(resp.String(), `route="/addHerb"`))
	assert.True(strings.Contains(resp.String(), "http_request_total"))

	// Request IDs supplied by the caller are echoed back
	resp, err = client.R().SetHeader("X-Request-ID", "e2e-req-1").Get("/health")
	assert.Nil(err)
	assert.Equal("e2e-req-1", resp.Header().Get("X-Request-ID"))

	// Shutdown
	cancel()
	select {
	case err := <-serverDone:
		assert.Nil(err)
	case <-time.After(time.Second * 10):
		assert.Fail("server did not stop")
	}
}

func TestHerbTraceUnsupportedBackend(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	_, err := herbtrace.NewDocumentClient(config.Config{
		Store: config.StoreConfig{Backend: "mongodb", Database: "herbs"},
	})
	assert.NotNil(err)
}
