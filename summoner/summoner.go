package summoner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/musebox/musesummoner/composer"
	"github.com/musebox/musesummoner/internal/sliceutils"
	"github.com/musebox/musesummoner/memory"
	"github.com/musebox/musesummoner/muse"
	"github.com/musebox/musesummoner/task"
	"github.com/musebox/musesummoner/trigger"
)

const (
	// conversationWindow is how many turns of the current conversation feed
	// the composer's context.
	conversationWindow = 3
	// recentMemoryCount is how many recent memories accompany the relevant
	// ones in the per-turn context.
	recentMemoryCount = 2
)

type (
	// Summoner is the per-turn orchestrator: it routes each incoming message
	// through trigger detection, classification, memory lookup, and
	// composition, and records the finished interaction. Activation state is
	// held per session id.
	Summoner interface {
		ProcessTurn(ctx context.Context, sessionID, userInput string) (string, error)
		ActiveMuseName(sessionID string) string
		ExitMuse(ctx context.Context, sessionID string) (string, error)
	}

	summoner struct {
		logger   *slog.Logger
		muses    muse.Manager
		memories memory.Store
		composer *composer.Composer

		mu       sync.Mutex
		sessions map[string]*session
	}

	// session holds the conversation-scoped state: the activation state
	// machine, the short window of the current conversation, and a creation
	// wizard when one is in flight.
	session struct {
		mu           sync.Mutex
		detector     *trigger.Detector
		conversation []memory.Entry
		creation     *creationFlow
	}
)

var (
	_ Summoner = (*summoner)(nil)
)

func NewSummoner(logger *slog.Logger, muses muse.Manager, memories memory.Store, comp *composer.Composer) Summoner {
	return &summoner{
		logger:   logger,
		muses:    muses,
		memories: memories,
		composer: comp,
		sessions: map[string]*session{},
	}
}

func (s *summoner) session(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{
			detector: trigger.NewDetector(s.logger),
		}
		s.sessions[sessionID] = sess
	}
	return sess
}

// ProcessTurn handles one user message to completion. The user always
// receives a textual response, even in degraded states; internal failures
// never surface on the conversational channel.
func (s *summoner) ProcessTurn(ctx context.Context, sessionID, userInput string) (string, error) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.creation != nil {
		return s.processCreationInput(ctx, sess, userInput), nil
	}

	if response, handled := s.checkSystemCommands(ctx, sess, userInput); handled {
		return response, nil
	}

	muses, err := s.muses.GetMuses(ctx)
	if err != nil {
		s.logger.Warn("failed to list muses for trigger detection", "err", err)
	}

	previous := sess.detector.ActiveMuse()
	if triggered := sess.detector.DetectTrigger(userInput, muses); triggered != nil {
		if previous == nil || previous.Key != triggered.Key {
			// A fresh summoning (or a switch) starts a new conversation.
			sess.conversation = nil
		}
	}

	if sess.detector.IsActive() {
		return s.respond(ctx, sess, userInput), nil
	}

	return systemMessage, nil
}

func (s *summoner) respond(ctx context.Context, sess *session, userInput string) string {
	m := sess.detector.ActiveMuse()

	taskText := sess.detector.ExtractTask()
	taskType := task.Classify(taskText, m)

	relevant, err := s.memories.Relevant(ctx, m.Key, userInput, 0)
	if err != nil {
		s.logger.Warn("failed to fetch relevant memories", "muse", m.Name, "err", err)
	}
	recent, err := s.memories.Recent(ctx, m.Key, recentMemoryCount)
	if err != nil {
		s.logger.Warn("failed to fetch recent memories", "muse", m.Name, "err", err)
	}

	convCtx := composer.Context{
		CurrentConversation: lastTurns(sess.conversation, conversationWindow),
		RelevantMemories:    relevant,
		RecentMemories:      recent,
	}

	response, _ := s.composer.Compose(m, taskType, taskText, convCtx)

	sess.conversation = append(sess.conversation, memory.Entry{
		Timestamp:    time.Now(),
		UserInput:    userInput,
		MuseResponse: response,
	})

	if err := s.memories.Append(ctx, m.Key, userInput, response); err != nil {
		// The in-memory conversation continues even when persistence fails.
		s.logger.Error("failed to persist interaction", "muse", m.Name, "err", err)
	}

	return response
}

func (s *summoner) ActiveMuseName(sessionID string) string {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if m := sess.detector.ActiveMuse(); m != nil {
		return m.Name
	}
	return ""
}

func (s *summoner) ExitMuse(_ context.Context, sessionID string) (string, error) {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	return s.deactivate(sess), nil
}

func lastTurns(conversation []memory.Entry, n int) []memory.Entry {
	return sliceutils.Cut(conversation, -n, len(conversation))
}

func (s *summoner) deactivate(sess *session) string {
	m := sess.detector.ActiveMuse()
	if m == nil {
		return "No muse is currently active."
	}

	sess.detector.Deactivate()
	sess.conversation = nil

	return m.Name + " has been deactivated. You are now speaking with the Muse Summoner system."
}
