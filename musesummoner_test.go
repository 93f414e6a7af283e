package musesummoner_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/musebox/musesummoner"
	"github.com/musebox/musesummoner/config"
	"github.com/musebox/musesummoner/muse"
	"github.com/stretchr/testify/suite"
)

type MuseSummonerTestSuite struct {
	suite.Suite
	context.Context

	cancel context.CancelFunc
	ms     *musesummoner.MuseSummoner
}

func (s *MuseSummonerTestSuite) SetupTest() {
	s.Context, s.cancel = context.WithCancel(context.TODO())

	conf := &config.RuntimeConfig{
		LogConfig: config.LogConfig{
			LogLevel:   "debug",
			LogHandler: "default",
		},
		DatabaseDSN:                  fmt.Sprintf("file:e2e-%d?mode=memory&cache=shared", rand.Int64()),
		MaxMemoryEntries:             50,
		RelevanceThreshold:           0.1,
		SignatureQuestionProbability: 0.3,
		IncludeMemoryReferences:      true,
		AdminUsername:                "admin",
		AdminPasswordHash:            config.HashPassword("admin"),
	}

	ms, err := musesummoner.NewMuseSummoner(s.Context, musesummoner.WithRuntimeConfig(conf))
	s.Require().NoError(err)
	s.ms = ms
}

func (s *MuseSummonerTestSuite) TearDownTest() {
	if s.ms != nil {
		s.Require().NoError(s.ms.Close())
		s.ms = nil
	}
	s.cancel()
}

func (s *MuseSummonerTestSuite) TestBuiltInMuseIsRegistered() {
	m, err := s.ms.Muses().FindMuseByName(s.Context, muse.SalvatoreName)
	s.Require().NoError(err)
	s.Equal("Come into fashion", m.TriggerPhrase)
}

func (s *MuseSummonerTestSuite) TestProcessTurn() {
	response, err := s.ms.ProcessTurn(s.Context, "s1", "Come into fashion. Help me reflect on control.")
	s.Require().NoError(err)
	s.Contains(response, "Salvatore")

	recent, err := s.ms.Memories().Recent(s.Context, "salvatore_inverso", 1)
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
}

func (s *MuseSummonerTestSuite) TestRegisterMusesFromConfigs() {
	mc, err := config.LoadMuseFromFile("config/testdata/aria.yaml")
	s.Require().NoError(err)

	s.Require().NoError(s.ms.RegisterMusesFromConfigs(s.Context, []config.MuseConfig{mc}))

	response, err := s.ms.ProcessTurn(s.Context, "s1", "Sing to me. Help me finish this chorus.")
	s.Require().NoError(err)
	s.Contains(response, "I am Aria.")
}

func (s *MuseSummonerTestSuite) TestHandlerServesHealth() {
	handler, err := s.ms.Handler()
	s.Require().NoError(err)

	server := httptest.NewServer(handler)
	defer server.Close()

	resp, err := server.Client().Get(server.URL + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func TestMuseSummoner(t *testing.T) {
	suite.Run(t, new(MuseSummonerTestSuite))
}
