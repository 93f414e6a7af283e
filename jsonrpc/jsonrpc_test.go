package jsonrpc_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/musebox/musesummoner/admin"
	"github.com/musebox/musesummoner/composer"
	"github.com/musebox/musesummoner/config"
	"github.com/musebox/musesummoner/internal/mytesting"
	"github.com/musebox/musesummoner/jsonrpc"
	"github.com/musebox/musesummoner/memory"
	"github.com/musebox/musesummoner/muse"
	"github.com/musebox/musesummoner/summoner"
	"github.com/stretchr/testify/suite"
)

type JsonRpcTestSuite struct {
	mytesting.Suite

	server *httptest.Server
}

func (s *JsonRpcTestSuite) SetupTest() {
	s.Suite.SetupTest()

	conf := &config.RuntimeConfig{
		MaxMemoryEntries:             50,
		RelevanceThreshold:           0.1,
		SignatureQuestionProbability: 0.3,
		IncludeMemoryReferences:      true,
		AdminUsername:                "admin",
		AdminPasswordHash:            config.HashPassword("secret"),
	}

	logger := slog.Default()
	muses := muse.NewManager(logger, s.DB)
	memories := memory.NewStore(logger, s.DB, conf)
	comp := composer.NewComposer(logger, conf)
	sm := summoner.NewSummoner(logger, muses, memories, comp)
	auth := admin.NewAuthManager(logger, s.DB, conf)

	_, err := muses.RegisterMuse(s.Context, muse.SalvatoreConfig())
	s.Require().NoError(err)

	handler, err := jsonrpc.NewHandlerWithHealth(
		logger,
		func(server *rpc.Server) error {
			return summoner.RegisterJsonRpcService(server, sm, muses, memories)
		},
		func(server *rpc.Server) error {
			return admin.RegisterJsonRpcService(server, auth, muses, memories, conf)
		},
	)
	s.Require().NoError(err)

	s.server = httptest.NewServer(handler)
}

func (s *JsonRpcTestSuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
		s.server = nil
	}
	s.Suite.TearDownTest()
}

func (s *JsonRpcTestSuite) call(method string, args, reply any, token string) error {
	body, err := json2.EncodeClientRequest(method, args)
	s.Require().NoError(err)

	req, err := http.NewRequestWithContext(s.Context, http.MethodPost, s.server.URL+"/rpc", bytes.NewReader(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	return json2.DecodeClientResponse(resp.Body, reply)
}

func (s *JsonRpcTestSuite) authenticate() string {
	var reply admin.AuthenticateResponse
	s.Require().NoError(s.call("admin.Authenticate", &admin.AuthenticateRequest{
		Username: "admin",
		Password: "secret",
	}, &reply, ""))
	s.Require().NotEmpty(reply.ApiKey)
	return reply.ApiKey
}

func (s *JsonRpcTestSuite) TestHealth() {
	resp, err := s.server.Client().Get(s.server.URL + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Equal("OK", string(body))
}

func (s *JsonRpcTestSuite) TestProcessInput() {
	var reply summoner.ProcessInputResponse
	s.Require().NoError(s.call("summoner.ProcessInput", &summoner.ProcessInputRequest{
		Text: "hello there",
	}, &reply, ""))

	s.NotEmpty(reply.SessionId)
	s.Equal("System", reply.MuseName)
	s.Contains(reply.Response, "Muse Summoner system")

	// Same session again, this time summoning.
	var second summoner.ProcessInputResponse
	s.Require().NoError(s.call("summoner.ProcessInput", &summoner.ProcessInputRequest{
		SessionId: reply.SessionId,
		Text:      "Come into fashion. Help me reflect on control.",
	}, &second, ""))

	s.Equal(reply.SessionId, second.SessionId)
	s.Equal(muse.SalvatoreName, second.MuseName)
	s.Contains(second.Response, "Salvatore")
}

func (s *JsonRpcTestSuite) TestGetMuses() {
	var reply summoner.GetMusesResponse
	s.Require().NoError(s.call("summoner.GetMuses", &struct{}{}, &reply, ""))

	s.Require().Len(reply.Muses, 1)
	s.Equal(muse.SalvatoreName, reply.Muses[0].Name)
	s.Equal("Come into fashion", reply.Muses[0].TriggerPhrase)
}

func (s *JsonRpcTestSuite) TestGetHistoryWithoutActiveMuse() {
	var reply summoner.GetHistoryResponse
	err := s.call("summoner.GetHistory", &summoner.GetHistoryRequest{
		SessionId: "nobody-home",
	}, &reply, "")

	var jsonErr *json2.Error
	s.Require().ErrorAs(err, &jsonErr)
	s.Equal(json2.E_INVALID_REQ, jsonErr.Code)
}

func (s *JsonRpcTestSuite) TestAdminAuthenticateRejectsBadCredentials() {
	var reply admin.AuthenticateResponse
	err := s.call("admin.Authenticate", &admin.AuthenticateRequest{
		Username: "admin",
		Password: "wrong",
	}, &reply, "")

	var jsonErr *json2.Error
	s.Require().ErrorAs(err, &jsonErr)
	s.Equal(json2.E_SERVER, jsonErr.Code)
}

func (s *JsonRpcTestSuite) TestAdminRequiresToken() {
	var reply admin.Config
	err := s.call("admin.GetConfig", &struct{}{}, &reply, "")

	var jsonErr *json2.Error
	s.Require().ErrorAs(err, &jsonErr)
	s.Equal(json2.E_SERVER, jsonErr.Code)
}

func (s *JsonRpcTestSuite) TestAdminGetConfig() {
	token := s.authenticate()

	var reply admin.Config
	s.Require().NoError(s.call("admin.GetConfig", &struct{}{}, &reply, token))

	s.Equal(50, reply.MaxMemoryEntries)
	s.InDelta(0.1, reply.RelevanceThreshold, 1e-9)
	s.InDelta(0.3, reply.SignatureQuestionProbability, 1e-9)
	s.True(reply.IncludeMemoryReferences)
}

func (s *JsonRpcTestSuite) TestAdminSetConfig() {
	token := s.authenticate()

	maxEntries := 20
	prob := 0.5
	var reply admin.Config
	s.Require().NoError(s.call("admin.SetConfig", &admin.SetConfigRequest{
		MaxMemoryEntries:             &maxEntries,
		SignatureQuestionProbability: &prob,
	}, &reply, token))

	s.Equal(20, reply.MaxMemoryEntries)
	s.InDelta(0.5, reply.SignatureQuestionProbability, 1e-9)
	// Untouched fields keep their values.
	s.InDelta(0.1, reply.RelevanceThreshold, 1e-9)
}

func (s *JsonRpcTestSuite) TestAdminSetConfigValidation() {
	token := s.authenticate()

	bad := -3
	var reply admin.Config
	err := s.call("admin.SetConfig", &admin.SetConfigRequest{
		MaxMemoryEntries: &bad,
	}, &reply, token)

	var jsonErr *json2.Error
	s.Require().ErrorAs(err, &jsonErr)
	s.Equal(json2.E_BAD_PARAMS, jsonErr.Code)
}

func (s *JsonRpcTestSuite) TestAdminListMuses() {
	token := s.authenticate()

	var reply admin.ListMusesResponse
	s.Require().NoError(s.call("admin.ListMuses", &struct{}{}, &reply, token))

	s.Require().Len(reply.Muses, 1)
	s.Equal("salvatore_inverso", reply.Muses[0].Key)
}

func (s *JsonRpcTestSuite) TestAdminRevoke() {
	token := s.authenticate()

	var reply admin.RevokeResponse
	s.Require().NoError(s.call("admin.Revoke", &struct{}{}, &reply, token))

	var conf admin.Config
	err := s.call("admin.GetConfig", &struct{}{}, &conf, token)

	var jsonErr *json2.Error
	s.Require().ErrorAs(err, &jsonErr)
	s.Equal(json2.E_SERVER, jsonErr.Code)
}

func TestJsonRpc(t *testing.T) {
	suite.Run(t, new(JsonRpcTestSuite))
}
