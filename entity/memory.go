package entity

import (
	"gorm.io/gorm"
)

// MemoryEntry is one persisted turn of a muse conversation. Entries are
// immutable once written; the store only ever appends and evicts.
type MemoryEntry struct {
	gorm.Model

	MuseKey      string `gorm:"index"`
	UserInput    string
	MuseResponse string
}
