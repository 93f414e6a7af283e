package task

import (
	"strings"

	"github.com/musebox/musesummoner/entity"
)

// Type categorizes what kind of assistance a task requests.
type Type string

const (
	TypeEmotionalReflection       Type = "emotional_reflection"
	TypeHeartbreakGriefProcessing Type = "heartbreak_grief_processing"
	TypeIdentityLegacyExploration Type = "identity_legacy_exploration"
	TypeCreativeCoWriting         Type = "creative_co_writing"
	TypeRitualCreation            Type = "ritual_creation"
	TypeGeneral                   Type = "general"
)

// categories are checked in this exact order. A task matching keywords from
// two categories classifies under whichever is checked first; the priority
// is part of the contract, not incidental.
var categories = []struct {
	taskType Type
	keywords []string
}{
	{TypeEmotionalReflection, []string{"reflect", "journal", "feeling", "emotion", "process"}},
	{TypeHeartbreakGriefProcessing, []string{"grief", "loss", "heartbreak", "closure", "heal"}},
	{TypeIdentityLegacyExploration, []string{"identity", "legacy", "self", "who am i", "purpose", "values"}},
	{TypeCreativeCoWriting, []string{"write", "poem", "letter", "essay", "story"}},
	{TypeRitualCreation, []string{"ritual", "mantra", "symbol", "practice", "let go"}},
}

// Classify maps a free-text task to its type by keyword substring matching
// on the lowercased text. The muse is accepted for future per-muse
// specialization but does not influence the result today. An empty or
// unmatched task is general.
func Classify(taskText string, _ *entity.Muse) Type {
	taskLower := strings.ToLower(taskText)

	for _, category := range categories {
		for _, keyword := range category.keywords {
			if strings.Contains(taskLower, keyword) {
				return category.taskType
			}
		}
	}

	return TypeGeneral
}

// DisplayName renders a task type for human-facing text.
func (t Type) DisplayName() string {
	return strings.ReplaceAll(string(t), "_", " ")
}
