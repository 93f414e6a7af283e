package admin

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/musebox/musesummoner/config"
	"github.com/musebox/musesummoner/entity"
	myerrors "github.com/musebox/musesummoner/errors"
	"github.com/musebox/musesummoner/internal/db"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type (
	// AuthManager issues and verifies the bearer API keys the admin API
	// runs on. Keys are persisted so they survive restarts.
	AuthManager interface {
		Authenticate(ctx context.Context, username, password string) (*entity.APIKey, error)
		Verify(ctx context.Context, token string) (*entity.APIKey, error)
		Revoke(ctx context.Context, token string) error
	}

	authManager struct {
		logger *slog.Logger
		db     *gorm.DB
		conf   *config.RuntimeConfig
	}
)

var (
	_ AuthManager = (*authManager)(nil)
)

func NewAuthManager(logger *slog.Logger, db *gorm.DB, conf *config.RuntimeConfig) AuthManager {
	return &authManager{
		logger: logger,
		db:     db,
		conf:   conf,
	}
}

func (s *authManager) Authenticate(ctx context.Context, username, password string) (*entity.APIKey, error) {
	passwordHash := config.HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.conf.AdminUsername)) != 1 ||
		subtle.ConstantTimeCompare([]byte(passwordHash), []byte(s.conf.AdminPasswordHash)) != 1 {
		return nil, errors.Wrapf(myerrors.ErrUnauthorized, "invalid username or password")
	}

	_, tx := db.OpenSession(ctx, s.db)

	key := entity.APIKey{
		Token:    newToken(),
		Username: username,
		Role:     "admin",
	}
	if err := tx.Create(&key).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to save api key")
	}

	s.logger.Info("api key issued", "username", username)

	return &key, nil
}

func (s *authManager) Verify(ctx context.Context, token string) (*entity.APIKey, error) {
	_, tx := db.OpenSession(ctx, s.db)

	var key entity.APIKey
	if r := tx.Find(&key, "token = ?", token); r.Error != nil {
		return nil, errors.Wrapf(r.Error, "failed to find api key")
	} else if r.RowsAffected == 0 {
		return nil, errors.Wrapf(myerrors.ErrUnauthorized, "invalid api key")
	}

	return &key, nil
}

func (s *authManager) Revoke(ctx context.Context, token string) error {
	_, tx := db.OpenSession(ctx, s.db)

	key := entity.APIKey{Token: token}
	if err := key.Delete(tx); err != nil {
		return errors.Wrapf(err, "failed to revoke api key")
	}

	return nil
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

// bearerToken extracts the token from an Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", errors.Wrapf(myerrors.ErrUnauthorized, "missing or invalid Authorization header")
	}
	return strings.TrimPrefix(header, "Bearer "), nil
}
