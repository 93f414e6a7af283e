package jsonrpc

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/musebox/musesummoner/internal/mylog"
)

// NewHandler wraps the RPC server in a panic-recovery layer so one bad muse
// turn cannot take the process down.
func NewHandler(logger *mylog.Logger, opts ...ServerOption) (http.Handler, error) {
	rpcServer, err := newRPCServer(logger, opts...)
	if err != nil {
		return nil, err
	}

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
		handlers.PrintRecoveryStack(true),
	)

	return recovery(rpcServer), nil
}

// NewHandlerWithHealth mounts the RPC endpoint at /rpc next to a plain
// /health endpoint.
func NewHandlerWithHealth(logger *mylog.Logger, opts ...ServerOption) (http.Handler, error) {
	mainHandler, err := NewHandler(logger, opts...)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	r.Handle("/rpc", mainHandler)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Warn("failed to write health response", "err", err)
		}
	})

	return r, nil
}
