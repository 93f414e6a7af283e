package admin_test

import (
	"log/slog"
	"testing"

	"github.com/musebox/musesummoner/admin"
	"github.com/musebox/musesummoner/config"
	"github.com/musebox/musesummoner/errors"
	"github.com/musebox/musesummoner/internal/mytesting"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	mytesting.Suite

	auth admin.AuthManager
}

func (s *AuthTestSuite) SetupTest() {
	s.Suite.SetupTest()

	conf := &config.RuntimeConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: config.HashPassword("secret"),
	}
	s.auth = admin.NewAuthManager(slog.Default(), s.DB, conf)
}

func (s *AuthTestSuite) TestAuthenticate() {
	key, err := s.auth.Authenticate(s.Context, "admin", "secret")
	s.Require().NoError(err)

	s.Len(key.Token, 64)
	s.Equal("admin", key.Username)
	s.Equal("admin", key.Role)
}

func (s *AuthTestSuite) TestAuthenticateRejectsBadCredentials() {
	_, err := s.auth.Authenticate(s.Context, "admin", "wrong")
	s.Require().ErrorIs(err, errors.ErrUnauthorized)

	_, err = s.auth.Authenticate(s.Context, "intruder", "secret")
	s.Require().ErrorIs(err, errors.ErrUnauthorized)
}

func (s *AuthTestSuite) TestVerify() {
	key, err := s.auth.Authenticate(s.Context, "admin", "secret")
	s.Require().NoError(err)

	verified, err := s.auth.Verify(s.Context, key.Token)
	s.Require().NoError(err)
	s.Equal(key.Token, verified.Token)
	s.Equal("admin", verified.Username)

	_, err = s.auth.Verify(s.Context, "not-a-token")
	s.Require().ErrorIs(err, errors.ErrUnauthorized)
}

func (s *AuthTestSuite) TestRevoke() {
	key, err := s.auth.Authenticate(s.Context, "admin", "secret")
	s.Require().NoError(err)

	s.Require().NoError(s.auth.Revoke(s.Context, key.Token))

	_, err = s.auth.Verify(s.Context, key.Token)
	s.Require().ErrorIs(err, errors.ErrUnauthorized)
}

func TestAuth(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
