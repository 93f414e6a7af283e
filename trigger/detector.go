package trigger

import (
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/musebox/musesummoner/entity"
)

var (
	leadingPunct    = regexp.MustCompile(`^[.,;:\s]+`)
	deactivationRe  = regexp.MustCompile(`(?i)\b(exit muse|leave muse|deactivate muse|pause summoner)\b`)
	triggerPatterns = patternCache{patterns: map[string]*regexp.Regexp{}}
)

type patternCache struct {
	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

func (c *patternCache) get(phrase string) *regexp.Regexp {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := strings.ToLower(phrase)
	if re, ok := c.patterns[key]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
	c.patterns[key] = re
	return re
}

// Detector is the per-session activation state machine: it tracks which muse
// (if any) is active, watches inputs for trigger phrases, and extracts the
// residual task from the latest input.
type Detector struct {
	logger *slog.Logger

	activeMuse *entity.Muse
	lastInput  string
}

func NewDetector(logger *slog.Logger) *Detector {
	return &Detector{logger: logger}
}

// DetectTrigger checks the input for any muse's trigger phrase, matched
// case-insensitively as a whole phrase (word-boundary delimited) so partial
// words never activate. The muses slice is scanned in registry order: when
// several phrases match, the first-registered muse wins. A new trigger
// overrides the current activation immediately. Returns nil when nothing
// matched; that is not an error.
func (d *Detector) DetectTrigger(input string, muses []entity.Muse) *entity.Muse {
	d.lastInput = input

	for i := range muses {
		m := &muses[i]
		if triggerPatterns.get(m.TriggerPhrase).MatchString(input) {
			d.activeMuse = m
			d.logger.Debug("muse triggered", "muse", m.Name)
			return m
		}
	}

	return nil
}

func (d *Detector) ActiveMuse() *entity.Muse {
	return d.activeMuse
}

func (d *Detector) IsActive() bool {
	return d.activeMuse != nil
}

func (d *Detector) Deactivate() {
	d.activeMuse = nil
}

// ExtractTask removes the first occurrence of the active muse's trigger
// phrase from the latest input, strips leading punctuation and whitespace,
// and returns the remainder. An input that was only the trigger phrase
// yields the empty string. Without an active muse there is no task.
func (d *Detector) ExtractTask() string {
	if d.activeMuse == nil || d.lastInput == "" {
		return ""
	}

	re := triggerPatterns.get(d.activeMuse.TriggerPhrase)
	loc := re.FindStringIndex(d.lastInput)
	task := d.lastInput
	if loc != nil {
		task = d.lastInput[:loc[0]] + d.lastInput[loc[1]:]
	}
	task = strings.TrimSpace(task)
	task = leadingPunct.ReplaceAllString(task, "")

	return task
}

// IsDeactivationCommand reports whether the input contains one of the fixed
// deactivation phrases, matched case-insensitively.
func IsDeactivationCommand(input string) bool {
	return deactivationRe.MatchString(input)
}
