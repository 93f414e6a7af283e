package config

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// RuntimeConfig carries every tunable the summoner exposes. The memory and
// response knobs default to the values the system has always shipped with;
// all of them can be overridden through the environment or, at runtime,
// through the admin API.
type RuntimeConfig struct {
	LogConfig

	Host        string `env:"HOST"`
	Port        int    `env:"PORT"`
	DatabaseDSN string `env:"DATABASE_DSN"`

	MaxMemoryEntries   int     `env:"MAX_MEMORY_ENTRIES"`
	RelevanceThreshold float64 `env:"MEMORY_RELEVANCE_THRESHOLD"`

	SignatureQuestionProbability float64 `env:"SIGNATURE_QUESTION_PROBABILITY"`
	IncludeMemoryReferences      bool    `env:"INCLUDE_MEMORY_REFERENCES"`

	AdminUsername     string `env:"ADMIN_USERNAME"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	mu sync.RWMutex
}

// Knobs holds the fields the admin API can change while turns are being
// processed. Readers take a copy through RuntimeConfig.Knobs instead of
// touching the struct fields directly.
type Knobs struct {
	MaxMemoryEntries             int
	RelevanceThreshold           float64
	SignatureQuestionProbability float64
	IncludeMemoryReferences      bool
}

func (c *RuntimeConfig) Knobs() Knobs {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Knobs{
		MaxMemoryEntries:             c.MaxMemoryEntries,
		RelevanceThreshold:           c.RelevanceThreshold,
		SignatureQuestionProbability: c.SignatureQuestionProbability,
		IncludeMemoryReferences:      c.IncludeMemoryReferences,
	}
}

// UpdateKnobs applies update to a copy of the current knobs and commits the
// copy only when update returns nil.
func (c *RuntimeConfig) UpdateKnobs(update func(*Knobs) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	knobs := Knobs{
		MaxMemoryEntries:             c.MaxMemoryEntries,
		RelevanceThreshold:           c.RelevanceThreshold,
		SignatureQuestionProbability: c.SignatureQuestionProbability,
		IncludeMemoryReferences:      c.IncludeMemoryReferences,
	}
	if err := update(&knobs); err != nil {
		return err
	}
	c.MaxMemoryEntries = knobs.MaxMemoryEntries
	c.RelevanceThreshold = knobs.RelevanceThreshold
	c.SignatureQuestionProbability = knobs.SignatureQuestionProbability
	c.IncludeMemoryReferences = knobs.IncludeMemoryReferences
	return nil
}

func NewRuntimeConfig(testing bool) (*RuntimeConfig, error) {
	conf := &RuntimeConfig{
		LogConfig: LogConfig{
			LogLevel:   "info",
			LogHandler: "default",
		},
		Host:                         "0.0.0.0",
		Port:                         5000,
		DatabaseDSN:                  "file:musesummoner.db",
		MaxMemoryEntries:             50,
		RelevanceThreshold:           0.1,
		SignatureQuestionProbability: 0.3,
		IncludeMemoryReferences:      true,
		AdminUsername:                "admin",
		AdminPasswordHash:            HashPassword("admin"),
	}

	if err := resolveConfig(conf, testing); err != nil {
		return nil, err
	}

	return conf, nil
}

func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
