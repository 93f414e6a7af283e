package summoner

import (
	"context"
	"fmt"
	"strings"

	"github.com/musebox/musesummoner/config"
)

// creationFlow walks a session through defining a new muse, one attribute
// per turn. The collected definition goes through the registry's validation
// on the final step; a rejected definition never enters the registry.
type creationFlow struct {
	step int
	data map[string]string
}

var creationSteps = []string{
	"name",
	"trigger_phrase",
	"voice_tone",
	"purpose",
	"tasks_supported",
	"catchphrases",
	"signature_question",
	"sample_tasks",
	"ritual_system",
}

var creationPrompts = map[string]string{
	"name":               "What name would you like to give your new muse?",
	"trigger_phrase":     "What trigger phrase should summon this muse? (e.g., 'Come into fashion' for Salvatore)",
	"voice_tone":         "Describe the voice and tone of this muse. How do they speak? What style do they use?",
	"purpose":            "What is the primary purpose of this muse? What emotional or creative needs will they address?",
	"tasks_supported":    "List the tasks this muse can help with (separate multiple tasks with semicolons or new lines):",
	"catchphrases":       "What are some signature catchphrases this muse might use? (separate with semicolons or new lines)",
	"signature_question": "What is a signature question this muse might ask to provoke thought?",
	"sample_tasks":       "Provide some example tasks users might ask this muse to help with (include the trigger phrase in examples, separate with semicolons or new lines):",
	"ritual_system":      "Does this muse have a ritual system or special approach? (optional, leave blank if none)",
}

func newCreationFlow() *creationFlow {
	return &creationFlow{
		data: map[string]string{},
	}
}

func (f *creationFlow) currentPrompt() string {
	return creationPrompts[creationSteps[f.step]]
}

func (s *summoner) processCreationInput(ctx context.Context, sess *session, userInput string) string {
	flow := sess.creation

	if cancelCreateRe.MatchString(strings.ToLower(strings.TrimSpace(userInput))) {
		sess.creation = nil
		return "Muse creation process has been cancelled."
	}

	flow.data[creationSteps[flow.step]] = strings.TrimSpace(userInput)
	flow.step++

	if flow.step < len(creationSteps) {
		return flow.currentPrompt()
	}

	sess.creation = nil

	mc := flow.museConfig()
	m, err := s.muses.RegisterMuse(ctx, mc)
	if err != nil {
		s.logger.Warn("muse creation rejected", "name", mc.Name, "err", err)
		return fmt.Sprintf("The muse could not be created: %v. Say \"Create a new muse\" to start over.", err)
	}

	return fmt.Sprintf("Muse '%s' has been successfully created! You can now summon them with the trigger phrase: '%s'", m.Name, m.TriggerPhrase)
}

func (f *creationFlow) museConfig() config.MuseConfig {
	return config.MuseConfig{
		Name:              f.data["name"],
		TriggerPhrase:     f.data["trigger_phrase"],
		VoiceTone:         f.data["voice_tone"],
		Purpose:           f.data["purpose"],
		TasksSupported:    splitList(f.data["tasks_supported"]),
		Catchphrases:      splitList(f.data["catchphrases"]),
		SignatureQuestion: f.data["signature_question"],
		SampleTasks:       splitList(f.data["sample_tasks"]),
		RitualSystem:      f.data["ritual_system"],
	}
}

// splitList splits a wizard answer on semicolons or newlines.
func splitList(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == '\n'
	})

	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
