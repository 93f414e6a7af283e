package entity

import (
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Muse struct {
	gorm.Model

	// Key is the storage key derived from Name: lowercased, spaces replaced
	// with underscores. Unique across the registry.
	Key  string `gorm:"uniqueIndex"`
	Name string `gorm:"uniqueIndex"`

	TriggerPhrase     string
	VoiceTone         string
	Purpose           string
	SignatureQuestion string
	RitualSystem      string

	TasksSupported datatypes.JSONSlice[string]
	Catchphrases   datatypes.JSONSlice[string]
	SampleTasks    datatypes.JSONSlice[string]

	// Capabilities is an open-ended capability map; new capability names can
	// appear without schema changes.
	Capabilities datatypes.JSONType[map[string]Capability]
}

type Capability struct {
	Description string   `json:"description"`
	Functions   []string `json:"functions,omitempty"`
}

// MuseKey derives the storage key for a muse name.
func MuseKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
