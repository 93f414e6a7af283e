package musesummoner

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/rpc/v2"
	"github.com/musebox/musesummoner/admin"
	"github.com/musebox/musesummoner/composer"
	"github.com/musebox/musesummoner/config"
	"github.com/musebox/musesummoner/internal/db"
	"github.com/musebox/musesummoner/internal/mylog"
	"github.com/musebox/musesummoner/jsonrpc"
	"github.com/musebox/musesummoner/memory"
	"github.com/musebox/musesummoner/muse"
	"github.com/musebox/musesummoner/summoner"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type (
	// MuseSummoner wires the whole system together: the muse registry, the
	// memory store, the response composer, the per-session orchestrator, and
	// the admin auth layer, all sharing one database handle.
	MuseSummoner struct {
		logger *slog.Logger
		db     *gorm.DB
		conf   *config.RuntimeConfig

		muses    muse.Manager
		memories memory.Store
		composer *composer.Composer
		summoner summoner.Summoner
		auth     admin.AuthManager
	}

	Option func(*MuseSummoner)
)

func WithLogger(logger *slog.Logger) Option {
	return func(m *MuseSummoner) {
		m.logger = logger
	}
}

func WithRuntimeConfig(conf *config.RuntimeConfig) Option {
	return func(m *MuseSummoner) {
		m.conf = conf
	}
}

func WithComposer(c *composer.Composer) Option {
	return func(m *MuseSummoner) {
		m.composer = c
	}
}

func NewMuseSummoner(ctx context.Context, optionFuncs ...Option) (*MuseSummoner, error) {
	m := &MuseSummoner{}
	for _, f := range optionFuncs {
		f(m)
	}

	if m.conf == nil {
		conf, err := config.NewRuntimeConfig(false)
		if err != nil {
			return nil, err
		}
		m.conf = conf
	}

	if m.logger == nil {
		m.logger = mylog.NewLogger(m.conf.LogLevel, m.conf.LogHandler)
	}

	gormDB, err := db.OpenDB(m.conf.DatabaseDSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database")
	}
	m.db = gormDB

	if err := db.AutoMigrate(ctx, m.db); err != nil {
		return nil, errors.Wrapf(err, "failed to migrate database")
	}

	m.muses = muse.NewManager(m.logger, m.db)
	m.memories = memory.NewStore(m.logger, m.db, m.conf)
	if m.composer == nil {
		m.composer = composer.NewComposer(m.logger, m.conf)
	}
	m.summoner = summoner.NewSummoner(m.logger, m.muses, m.memories, m.composer)
	m.auth = admin.NewAuthManager(m.logger, m.db, m.conf)

	// A fresh install always has the built-in muse.
	if _, err := m.muses.RegisterMuse(ctx, muse.SalvatoreConfig()); err != nil {
		return nil, errors.Wrapf(err, "failed to register built-in muse")
	}

	return m, nil
}

func (m *MuseSummoner) Close() error {
	return db.CloseDB(m.db)
}

func (m *MuseSummoner) Muses() muse.Manager {
	return m.muses
}

func (m *MuseSummoner) Memories() memory.Store {
	return m.memories
}

func (m *MuseSummoner) Summoner() summoner.Summoner {
	return m.summoner
}

// ProcessTurn is the inbound entry point for web and CLI callers.
func (m *MuseSummoner) ProcessTurn(ctx context.Context, sessionID, userInput string) (string, error) {
	return m.summoner.ProcessTurn(ctx, sessionID, userInput)
}

// RegisterMusesFromConfigs provisions additional muses, typically loaded
// from YAML definition files.
func (m *MuseSummoner) RegisterMusesFromConfigs(ctx context.Context, configs []config.MuseConfig) error {
	for _, mc := range configs {
		if _, err := m.muses.RegisterMuse(ctx, mc); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves the summoner and admin JSON-RPC services plus /health.
func (m *MuseSummoner) Handler() (http.Handler, error) {
	return jsonrpc.NewHandlerWithHealth(
		m.logger,
		func(server *rpc.Server) error {
			return summoner.RegisterJsonRpcService(server, m.summoner, m.muses, m.memories)
		},
		func(server *rpc.Server) error {
			return admin.RegisterJsonRpcService(server, m.auth, m.muses, m.memories, m.conf)
		},
	)
}
