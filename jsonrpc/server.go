package jsonrpc

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/musebox/musesummoner/errors"
	"github.com/musebox/musesummoner/internal/mylog"
)

type (
	StartTimeCtxKey string
)

var (
	startTimeCtxKey StartTimeCtxKey = "jsonrpc.startTime"
)

type ServerOption = func(server *rpc.Server) error

func newRPCServer(logger *mylog.Logger, opts ...ServerOption) (*rpc.Server, error) {
	server := rpc.NewServer()
	for _, opt := range opts {
		if err := opt(server); err != nil {
			return nil, err
		}
	}
	server.RegisterBeforeFunc(func(i *rpc.RequestInfo) {
		startTime := time.Now()
		ctx := context.WithValue(i.Request.Context(), startTimeCtxKey, startTime)
		req := i.Request.WithContext(ctx)
		i.Request = req
	})
	server.RegisterAfterFunc(func(i *rpc.RequestInfo) {
		logger := logger.WithGroup("jsonrpc")
		if startTime, ok := i.Request.Context().Value(startTimeCtxKey).(time.Time); ok {
			duration := time.Since(startTime)
			logger = logger.With(slog.Duration("duration", duration))
		}
		if i.Error != nil {
			logger = logger.With(mylog.Err(i.Error))
		}
		logger.Info("[JSON-RPC] call",
			slog.Int("statusCode", i.StatusCode),
			slog.String("method", i.Method),
			slog.Bool("error", i.Error != nil),
		)
	})
	server.RegisterCodec(json2.NewCustomCodecWithErrorMapper(
		rpc.DefaultEncoderSelector,
		func(err error) error {
			if err == nil {
				return nil
			}

			logger.Error("[JSON-RPC] error", mylog.Err(err))
			var e *json2.Error
			if errors.As(err, &e) {
				return e
			}

			e = &json2.Error{Message: err.Error()}

			if errors.Is(err, errors.ErrInvalidParams) {
				e.Code = json2.E_BAD_PARAMS
			} else if errors.Is(err, errors.ErrInternal) {
				e.Code = json2.E_INTERNAL
			} else if errors.Is(err, errors.ErrInvalidRequest) {
				e.Code = json2.E_INVALID_REQ
			} else if errors.Is(err, errors.ErrNotFound) || errors.Is(err, errors.ErrUnauthorized) {
				e.Code = json2.E_SERVER
			} else {
				e.Code = json2.E_INTERNAL
			}

			return e
		},
	), "application/json")

	return server, nil
}
