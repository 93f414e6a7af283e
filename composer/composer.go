package composer

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/musebox/musesummoner/config"
	"github.com/musebox/musesummoner/entity"
	"github.com/musebox/musesummoner/memory"
	"github.com/musebox/musesummoner/task"
)

const memoryExcerptLen = 30

type (
	// Context is the ephemeral per-turn view the composer works from: the
	// short window of the current conversation plus memory-store lookups.
	Context struct {
		CurrentConversation []memory.Entry
		RelevantMemories    []memory.Entry
		RecentMemories      []memory.Entry
	}

	// Composer assembles the final muse response: greeting, body, optional
	// memory reference, optional signature question, in that fixed order.
	// Selection within each pool is uniformly random; the random source is
	// injectable so tests can pin it.
	Composer struct {
		logger *slog.Logger
		conf   *config.RuntimeConfig

		mu  sync.Mutex
		rng *rand.Rand
	}

	Option func(*Composer)
)

// HasPriorTurns reports whether the current conversation window shows any
// prior turns, which switches the composer to its continuing tone.
func (c Context) HasPriorTurns() bool {
	return len(c.CurrentConversation) > 0
}

func WithRandSource(src rand.Source) Option {
	return func(c *Composer) {
		c.rng = rand.New(src)
	}
}

func NewComposer(logger *slog.Logger, conf *config.RuntimeConfig, opts ...Option) *Composer {
	c := &Composer{
		logger: logger,
		conf:   conf,
		rng: rand.New(rand.NewPCG(
			uint64(time.Now().UnixNano()),
			uint64(time.Now().UnixNano()>>32),
		)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds a response for the active muse. A nil muse yields an empty
// response and name: "no active muse" is a defined outcome, not an error.
// The composer never persists; appending the turn to memory is the caller's
// job.
func (c *Composer) Compose(m *entity.Muse, taskType task.Type, taskText string, convCtx Context) (response, museName string) {
	if m == nil {
		return "", ""
	}

	hasContext := convCtx.HasPriorTurns()
	knobs := c.conf.Knobs()

	var sb strings.Builder
	sb.WriteString(c.greeting(m, hasContext))
	sb.WriteString("\n\n")
	sb.WriteString(c.body(m, taskType, taskText, hasContext))

	if knobs.IncludeMemoryReferences {
		if ref := c.memoryReference(m, convCtx); ref != "" {
			sb.WriteString("\n\n")
			sb.WriteString(ref)
		}
	}

	if m.SignatureQuestion != "" && c.chance(knobs.SignatureQuestionProbability) {
		sb.WriteString("\n\n")
		sb.WriteString(m.SignatureQuestion)
	}

	return sb.String(), m.Name
}

func (c *Composer) greeting(m *entity.Muse, hasContext bool) string {
	if m.Key == salvatoreKey {
		if hasContext {
			return c.pick(salvatoreContinuingGreetings)
		}
		return c.pick(salvatoreNewGreetings)
	}

	return fmt.Sprintf("I am %s.", m.Name)
}

func (c *Composer) body(m *entity.Muse, taskType task.Type, taskText string, hasContext bool) string {
	if m.Key == salvatoreKey {
		pool := salvatoreBodyPool(taskType, hasContext)
		return fmt.Sprintf(c.pick(pool), taskText)
	}

	return c.genericBody(m, taskType)
}

// memoryReference renders a templated nod to the most relevant past user
// input, truncated to a short excerpt. Returns "" when no relevant memories
// exist.
func (c *Composer) memoryReference(m *entity.Muse, convCtx Context) string {
	if len(convCtx.RelevantMemories) == 0 {
		return ""
	}

	excerpt := truncate(convCtx.RelevantMemories[0].UserInput, memoryExcerptLen)
	if m.Key == salvatoreKey {
		return fmt.Sprintf(c.pick(salvatoreMemoryReferences), excerpt)
	}

	return fmt.Sprintf("I remember we previously discussed %s...", excerpt)
}

func (c *Composer) pick(pool []string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pool[c.rng.IntN(len(pool))]
}

func (c *Composer) chance(p float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Float64() < p
}

func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
