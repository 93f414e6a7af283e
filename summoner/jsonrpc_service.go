package summoner

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/rpc/v2"
	"github.com/musebox/musesummoner/entity"
	"github.com/musebox/musesummoner/errors"
	"github.com/musebox/musesummoner/memory"
	"github.com/musebox/musesummoner/muse"
	"github.com/samber/lo"
)

type (
	JsonRpcService struct {
		summoner Summoner
		muses    muse.Manager
		memories memory.Store
	}

	ProcessInputRequest struct {
		SessionId string `json:"session_id"`
		Text      string `json:"text"`
	}

	ProcessInputResponse struct {
		SessionId string `json:"session_id"`
		Response  string `json:"response"`
		MuseName  string `json:"muse_name"`
	}

	Muse struct {
		Name          string `json:"name"`
		TriggerPhrase string `json:"trigger_phrase"`
		Purpose       string `json:"purpose"`
	}

	GetMusesResponse struct {
		Muses []Muse `json:"muses"`
	}

	GetHistoryRequest struct {
		SessionId string `json:"session_id"`
		Count     uint32 `json:"count"`
	}

	HistoryEntry struct {
		Timestamp    time.Time `json:"timestamp"`
		UserInput    string    `json:"user_input"`
		MuseResponse string    `json:"muse_response"`
	}

	GetHistoryResponse struct {
		MuseName string         `json:"muse_name"`
		History  []HistoryEntry `json:"history"`
	}

	ClearMemoryRequest struct {
		SessionId string `json:"session_id"`
	}

	ClearMemoryResponse struct {
		Message string `json:"message"`
	}

	ExitMuseRequest struct {
		SessionId string `json:"session_id"`
	}

	ExitMuseResponse struct {
		Message string `json:"message"`
	}
)

func (s *JsonRpcService) ProcessInput(r *http.Request, args *ProcessInputRequest, reply *ProcessInputResponse) error {
	sessionID := args.SessionId
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	response, err := s.summoner.ProcessTurn(r.Context(), sessionID, args.Text)
	if err != nil {
		return err
	}

	reply.SessionId = sessionID
	reply.Response = response
	reply.MuseName = s.summoner.ActiveMuseName(sessionID)
	if reply.MuseName == "" {
		reply.MuseName = "System"
	}

	return nil
}

func (s *JsonRpcService) GetMuses(r *http.Request, _ *struct{}, reply *GetMusesResponse) error {
	muses, err := s.muses.GetMuses(r.Context())
	if err != nil {
		return err
	}

	reply.Muses = lo.Map(muses, func(m entity.Muse, _ int) Muse {
		return Muse{
			Name:          m.Name,
			TriggerPhrase: m.TriggerPhrase,
			Purpose:       m.Purpose,
		}
	})

	return nil
}

func (s *JsonRpcService) GetHistory(r *http.Request, args *GetHistoryRequest, reply *GetHistoryResponse) error {
	museName := s.summoner.ActiveMuseName(args.SessionId)
	if museName == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "no muse is currently active")
	}

	count := int(args.Count)
	if count == 0 {
		count = 10
	}

	history, err := s.memories.Recent(r.Context(), entity.MuseKey(museName), count)
	if err != nil {
		return err
	}

	reply.MuseName = museName
	reply.History = lo.Map(history, func(e memory.Entry, _ int) HistoryEntry {
		return HistoryEntry{
			Timestamp:    e.Timestamp,
			UserInput:    e.UserInput,
			MuseResponse: e.MuseResponse,
		}
	})

	return nil
}

func (s *JsonRpcService) ClearMemory(r *http.Request, args *ClearMemoryRequest, reply *ClearMemoryResponse) error {
	museName := s.summoner.ActiveMuseName(args.SessionId)
	if museName == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "no muse is currently active")
	}

	if err := s.memories.Clear(r.Context(), entity.MuseKey(museName)); err != nil {
		return err
	}

	reply.Message = museName + "'s memory has been cleared."

	return nil
}

func (s *JsonRpcService) ExitMuse(r *http.Request, args *ExitMuseRequest, reply *ExitMuseResponse) error {
	message, err := s.summoner.ExitMuse(r.Context(), args.SessionId)
	if err != nil {
		return err
	}

	reply.Message = message

	return nil
}

var (
	// The rpc dispatcher splits request methods on "." into exactly
	// service and method, so the service name must be a single token.
	servicePrefix = "summoner"
)

func RegisterJsonRpcService(server *rpc.Server, summoner Summoner, muses muse.Manager, memories memory.Store) error {
	svc := &JsonRpcService{
		summoner: summoner,
		muses:    muses,
		memories: memories,
	}
	return errors.Wrapf(server.RegisterService(svc, servicePrefix), "failed to register jsonrpc service")
}
