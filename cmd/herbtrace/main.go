// Package main - herbtrace service entry point
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alwitt/goutils"
	"github.com/alwitt/herbtrace"
	"github.com/alwitt/herbtrace/api"
	"github.com/alwitt/herbtrace/config"
	"github.com/apex/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cliFlagBindings CLI flags and the configuration keys they override
var cliFlagBindings = map[string]string{
	"log-level":       "log.level",
	"backend":         "store.backend",
	"couchdb-url":     "store.url",
	"database":        "store.database",
	"embedded-file":   "store.embedded_file",
	"public-base-url": "public_base_url",
	"host":            "server.host",
	"port":            "server.port",
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "herbtrace",
		Short: "Herb provenance tracking service",
		Long: `herbtrace tracks herb provenance records in a document store and renders
scannable QR codes which resolve back to each record.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				v.SetConfigFile(configFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("failed to read config file '%s' [%w]", configFile, err)
				}
			}
			level, err := log.ParseLevel(v.GetString("log.level"))
			if err != nil {
				return fmt.Errorf("invalid log level [%w]", err)
			}
			log.SetLevel(level)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Optional YAML config file")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("backend", config.StoreBackendCouchDB, "Document store backend: couchdb, embedded")
	flags.String("couchdb-url", "http://127.0.0.1:5984", "CouchDB server URL")
	flags.String("database", "herbs", "Database holding the herb records")
	flags.String("embedded-file", "herbtrace.db", "SQLite file of the embedded backend")

	rootCmd.AddCommand(newServeCommand(v), newResetDBCommand(v))
	return rootCmd
}

func newServeCommand(v *viper.Viper) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the herb REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			herbs, err := herbtrace.NewHerbStore(runCtx, cfg)
			if err != nil {
				return err
			}

			metrics, err := goutils.GetNewMetricsCollector(
				log.Fields{"module": "main", "component": "metrics"}, nil,
			)
			if err != nil {
				return fmt.Errorf("failed to define metrics collector [%w]", err)
			}
			metrics.InstallApplicationMetrics()

			server, err := herbtrace.NewAPIServer(cfg, herbs, metrics)
			if err != nil {
				return err
			}
			return api.RunServer(runCtx, server, cfg.Server.ShutdownTimeout)
		},
	}

	flags := serveCmd.Flags()
	flags.String("public-base-url", "", "Base URL of the public product pages encoded in QR codes")
	flags.String("host", "127.0.0.1", "Listen address")
	flags.Int("port", 3000, "Listen port")
	return serveCmd
}

func newResetDBCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-db",
		Short: "Drop and re-create the herb database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			herbs, err := herbtrace.NewHerbStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if err := herbs.ResetStorage(cmd.Context()); err != nil {
				return fmt.Errorf("failed to reset database [%w]", err)
			}
			log.WithField("database", cfg.Store.Database).Info("Database reset successfully")
			return nil
		},
	}
}

/*
bindFlags bind the CLI flags of a command tree into the configuration. A flag only overrides
the configuration when it is set.

	@param v *viper.Viper - configuration
	@param root *cobra.Command - root of the command tree
*/
func bindFlags(v *viper.Viper, root *cobra.Command) error {
	commands := append([]*cobra.Command{root}, root.Commands()...)
	for _, cmd := range commands {
		for flagName, configKey := range cliFlagBindings {
			flag := cmd.PersistentFlags().Lookup(flagName)
			if flag == nil {
				flag = cmd.Flags().Lookup(flagName)
			}
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(configKey, flag); err != nil {
				return fmt.Errorf("failed to bind flag '%s' [%w]", flagName, err)
			}
		}
	}
	return nil
}

func main() {
	v := viper.New()
	if err := config.InstallDefaults(v); err != nil {
		log.WithError(err).Fatal("Failed to prepare configuration")
	}

	rootCmd := newRootCommand(v)
	if err := bindFlags(v, rootCmd); err != nil {
		log.WithError(err).Fatal("Failed to prepare CLI")
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.WithError(err).Error("herbtrace failed")
		os.Exit(1)
	}
}
