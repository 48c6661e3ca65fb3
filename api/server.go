package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/apex/log"
)

// ServerParams HTTP server parameters
type ServerParams struct {
	// Host listen address
	Host string
	// Port listen port
	Port int
	// ReadTimeout bound on reading a request
	ReadTimeout time.Duration
	// WriteTimeout bound on writing a response
	WriteTimeout time.Duration
	// IdleTimeout bound on an idle keep-alive connection
	IdleTimeout time.Duration
}

/*
NewServer define the HTTP server

	@param params ServerParams - server parameters
	@param handler http.Handler - request handler
	@return HTTP server
*/
func NewServer(params ServerParams, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         net.JoinHostPort(params.Host, strconv.Itoa(params.Port)),
		Handler:      handler,
		ReadTimeout:  params.ReadTimeout,
		WriteTimeout: params.WriteTimeout,
		IdleTimeout:  params.IdleTimeout,
	}
}

/*
RunServer serve requests until the context is cancelled, then drain in-flight requests

	@param ctx context.Context - execution context
	@param server *http.Server - the HTTP server
	@param shutdownTimeout time.Duration - bound on draining in-flight requests
*/
func RunServer(ctx context.Context, server *http.Server, shutdownTimeout time.Duration) error {
	logTags := log.Fields{"module": "api", "component": "http-server", "addr": server.Addr}

	serveResult := make(chan error, 1)
	go func() {
		log.WithFields(logTags).Info("Starting HTTP server")
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveResult <- err
	}()

	select {
	case err := <-serveResult:
		if err != nil {
			return fmt.Errorf("HTTP server failed [%w]", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.WithFields(logTags).Info("Stopping HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed [%w]", err)
	}
	return <-serveResult
}
