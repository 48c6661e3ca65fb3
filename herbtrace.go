// Package herbtrace - herb provenance tracking service
package herbtrace

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alwitt/goutils"
	"github.com/alwitt/herbtrace/api"
	"github.com/alwitt/herbtrace/config"
	"github.com/alwitt/herbtrace/db"
	"github.com/alwitt/herbtrace/qr"
	"github.com/alwitt/herbtrace/store"
	"github.com/apex/log"
	"gorm.io/gorm/logger"
)

/*
NewDocumentClient initialize the document store client selected by the configuration

	@param cfg config.Config - application configuration
	@returns document store client
*/
func NewDocumentClient(cfg config.Config) (db.Client, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendCouchDB:
		return db.NewCouchDBClient(db.CouchDBParams{
			BaseURL:  cfg.Store.URL,
			Username: cfg.Store.Username,
			Password: cfg.Store.Password,
			Database: cfg.Store.Database,
			Timeout:  cfg.Store.Timeout,
		})
	case config.StoreBackendEmbedded:
		sqlLogLevel := logger.Error
		if cfg.Log.Level == "debug" {
			sqlLogLevel = logger.Info
		}
		return db.NewEmbeddedClient(
			db.GetSqliteDialector(cfg.Store.EmbeddedFile),
			sqlLogLevel,
			cfg.Store.Database,
			cfg.Store.Timeout,
		)
	default:
		return nil, fmt.Errorf("unsupported document store backend '%s'", cfg.Store.Backend)
	}
}

/*
NewHerbStore initialize a herb record controller.

The record database is created when missing. A document store which can not be reached yet
is not fatal; the failure is logged and requests fail until it becomes reachable.

	@param ctx context.Context - execution context
	@param cfg config.Config - application configuration
	@returns new store instance
*/
func NewHerbStore(ctx context.Context, cfg config.Config) (store.HerbStore, error) {
	persistence, err := NewDocumentClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialized persistence client [%w]", err)
	}

	if err := persistence.CreateDatabase(ctx); err != nil {
		log.
			WithError(err).
			WithField("backend", cfg.Store.Backend).
			WithField("database", cfg.Store.Database).
			Warn("Unable to prepare herb database")
	}

	herbs, err := store.NewHerbStore(persistence, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialized herb store [%w]", err)
	}
	return herbs, nil
}

/*
NewAPIServer initialize the herb REST API server

	@param cfg config.Config - application configuration
	@param herbs store.HerbStore - herb record controller
	@param metrics goutils.MetricsCollector - metrics collector
	@returns HTTP server
*/
func NewAPIServer(
	cfg config.Config, herbs store.HerbStore, metrics goutils.MetricsCollector,
) (*http.Server, error) {
	handler := api.NewHerbHandler(
		herbs,
		qr.NewCodec(cfg.PublicBaseURL),
		goutils.HTTPRequestLogLevel(cfg.Server.RequestLogLevel),
		metrics,
	)
	router, err := api.BuildRouter(handler, metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to define REST API router [%w]", err)
	}
	return api.NewServer(api.ServerParams{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout * 2,
	}, router), nil
}
