package admin

import (
	"net/http"

	"github.com/gorilla/rpc/v2"
	"github.com/musebox/musesummoner/config"
	"github.com/musebox/musesummoner/entity"
	"github.com/musebox/musesummoner/errors"
	"github.com/musebox/musesummoner/memory"
	"github.com/musebox/musesummoner/muse"
	"github.com/samber/lo"
)

type (
	JsonRpcService struct {
		auth     AuthManager
		muses    muse.Manager
		memories memory.Store
		conf     *config.RuntimeConfig
	}

	AuthenticateRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	AuthenticateResponse struct {
		ApiKey   string `json:"api_key"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}

	RevokeResponse struct {
		Message string `json:"message"`
	}

	// Config is the admin-visible slice of RuntimeConfig; credentials never
	// leave the process.
	Config struct {
		MaxMemoryEntries             int     `json:"max_memory_entries"`
		RelevanceThreshold           float64 `json:"memory_relevance_threshold"`
		SignatureQuestionProbability float64 `json:"signature_question_probability"`
		IncludeMemoryReferences      bool    `json:"include_memory_references"`
		LogLevel                     string  `json:"log_level"`
	}

	SetConfigRequest struct {
		MaxMemoryEntries             *int     `json:"max_memory_entries,omitempty"`
		RelevanceThreshold           *float64 `json:"memory_relevance_threshold,omitempty"`
		SignatureQuestionProbability *float64 `json:"signature_question_probability,omitempty"`
		IncludeMemoryReferences      *bool    `json:"include_memory_references,omitempty"`
	}

	ListMusesResponse struct {
		Muses []MuseSummary `json:"muses"`
	}

	MuseSummary struct {
		Name          string `json:"name"`
		Key           string `json:"key"`
		TriggerPhrase string `json:"trigger_phrase"`
		Purpose       string `json:"purpose"`
	}

	ClearMuseMemoryRequest struct {
		MuseName string `json:"muse_name"`
	}

	ClearMuseMemoryResponse struct {
		Message string `json:"message"`
	}

	GetMuseHistoryRequest struct {
		MuseName string `json:"muse_name"`
		Count    uint32 `json:"count"`
	}

	GetMuseHistoryResponse struct {
		History []HistoryEntry `json:"history"`
	}

	HistoryEntry struct {
		UserInput    string `json:"user_input"`
		MuseResponse string `json:"muse_response"`
	}
)

// authorize guards every method except Authenticate.
func (s *JsonRpcService) authorize(r *http.Request) error {
	token, err := bearerToken(r)
	if err != nil {
		return err
	}
	_, err = s.auth.Verify(r.Context(), token)
	return err
}

func (s *JsonRpcService) Authenticate(r *http.Request, args *AuthenticateRequest, reply *AuthenticateResponse) error {
	if args.Username == "" || args.Password == "" {
		return errors.Wrapf(errors.ErrInvalidParams, "missing username or password")
	}

	key, err := s.auth.Authenticate(r.Context(), args.Username, args.Password)
	if err != nil {
		return err
	}

	reply.ApiKey = key.Token
	reply.Username = key.Username
	reply.Role = key.Role

	return nil
}

func (s *JsonRpcService) Revoke(r *http.Request, _ *struct{}, reply *RevokeResponse) error {
	token, err := bearerToken(r)
	if err != nil {
		return err
	}
	if _, err := s.auth.Verify(r.Context(), token); err != nil {
		return err
	}
	if err := s.auth.Revoke(r.Context(), token); err != nil {
		return err
	}

	reply.Message = "API key revoked successfully"

	return nil
}

func (s *JsonRpcService) GetConfig(r *http.Request, _ *struct{}, reply *Config) error {
	if err := s.authorize(r); err != nil {
		return err
	}

	knobs := s.conf.Knobs()
	reply.MaxMemoryEntries = knobs.MaxMemoryEntries
	reply.RelevanceThreshold = knobs.RelevanceThreshold
	reply.SignatureQuestionProbability = knobs.SignatureQuestionProbability
	reply.IncludeMemoryReferences = knobs.IncludeMemoryReferences
	reply.LogLevel = s.conf.LogLevel

	return nil
}

func (s *JsonRpcService) SetConfig(r *http.Request, args *SetConfigRequest, reply *Config) error {
	if err := s.authorize(r); err != nil {
		return err
	}

	// Turns may be in flight while an admin retunes the knobs, so all
	// writes go through the guarded update.
	err := s.conf.UpdateKnobs(func(knobs *config.Knobs) error {
		if args.MaxMemoryEntries != nil {
			if *args.MaxMemoryEntries <= 0 {
				return errors.Wrapf(errors.ErrInvalidParams, "max_memory_entries must be positive")
			}
			knobs.MaxMemoryEntries = *args.MaxMemoryEntries
		}
		if args.RelevanceThreshold != nil {
			knobs.RelevanceThreshold = *args.RelevanceThreshold
		}
		if args.SignatureQuestionProbability != nil {
			if *args.SignatureQuestionProbability < 0 || *args.SignatureQuestionProbability > 1 {
				return errors.Wrapf(errors.ErrInvalidParams, "signature_question_probability must be in [0, 1]")
			}
			knobs.SignatureQuestionProbability = *args.SignatureQuestionProbability
		}
		if args.IncludeMemoryReferences != nil {
			knobs.IncludeMemoryReferences = *args.IncludeMemoryReferences
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.GetConfig(r, nil, reply)
}

func (s *JsonRpcService) ListMuses(r *http.Request, _ *struct{}, reply *ListMusesResponse) error {
	if err := s.authorize(r); err != nil {
		return err
	}

	muses, err := s.muses.GetMuses(r.Context())
	if err != nil {
		return err
	}

	reply.Muses = lo.Map(muses, func(m entity.Muse, _ int) MuseSummary {
		return MuseSummary{
			Name:          m.Name,
			Key:           m.Key,
			TriggerPhrase: m.TriggerPhrase,
			Purpose:       m.Purpose,
		}
	})

	return nil
}

func (s *JsonRpcService) ClearMuseMemory(r *http.Request, args *ClearMuseMemoryRequest, reply *ClearMuseMemoryResponse) error {
	if err := s.authorize(r); err != nil {
		return err
	}

	m, err := s.muses.FindMuseByName(r.Context(), args.MuseName)
	if err != nil {
		return err
	}

	if err := s.memories.Clear(r.Context(), m.Key); err != nil {
		return err
	}

	reply.Message = "Memory for " + m.Name + " has been cleared."

	return nil
}

func (s *JsonRpcService) GetMuseHistory(r *http.Request, args *GetMuseHistoryRequest, reply *GetMuseHistoryResponse) error {
	if err := s.authorize(r); err != nil {
		return err
	}

	m, err := s.muses.FindMuseByName(r.Context(), args.MuseName)
	if err != nil {
		return err
	}

	count := int(args.Count)
	if count == 0 {
		count = 10
	}

	history, err := s.memories.Recent(r.Context(), m.Key, count)
	if err != nil {
		return err
	}

	reply.History = lo.Map(history, func(e memory.Entry, _ int) HistoryEntry {
		return HistoryEntry{
			UserInput:    e.UserInput,
			MuseResponse: e.MuseResponse,
		}
	})

	return nil
}

var (
	// Single token: the rpc dispatcher only resolves "service.method" pairs.
	servicePrefix = "admin"
)

func RegisterJsonRpcService(server *rpc.Server, auth AuthManager, muses muse.Manager, memories memory.Store, conf *config.RuntimeConfig) error {
	svc := &JsonRpcService{
		auth:     auth,
		muses:    muses,
		memories: memories,
		conf:     conf,
	}
	return errors.Wrapf(server.RegisterService(svc, servicePrefix), "failed to register jsonrpc service")
}
