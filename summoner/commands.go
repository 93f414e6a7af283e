package summoner

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/musebox/musesummoner/trigger"
)

const historyCount = 5

var (
	listMusesRe    = regexp.MustCompile(`\b(list muses|show muses|available muses)\b`)
	createMuseRe   = regexp.MustCompile(`\b(create (a )?new muse|add (a )?muse|new muse)\b`)
	cancelCreateRe = regexp.MustCompile(`\b(cancel creation|stop creating|abort creation)\b`)
	viewHistoryRe  = regexp.MustCompile(`\b(view history|show history|conversation history)\b`)
	clearMemoryRe  = regexp.MustCompile(`\b(clear memory|forget conversations|reset memory)\b`)
)

// checkSystemCommands intercepts commands addressed to the summoner itself
// rather than to a muse. Matching is case-insensitive on the trimmed input.
func (s *summoner) checkSystemCommands(ctx context.Context, sess *session, userInput string) (string, bool) {
	inputLower := strings.ToLower(strings.TrimSpace(userInput))

	if listMusesRe.MatchString(inputLower) {
		return s.museListFormatted(ctx), true
	}

	if createMuseRe.MatchString(inputLower) {
		sess.creation = newCreationFlow()
		return sess.creation.currentPrompt(), true
	}

	if trigger.IsDeactivationCommand(inputLower) {
		return s.deactivate(sess), true
	}

	if cancelCreateRe.MatchString(inputLower) {
		return "No muse creation process is currently active.", true
	}

	switch inputLower {
	case "help", "commands", "how to use":
		return helpMessage, true
	}

	if viewHistoryRe.MatchString(inputLower) {
		return s.historyFormatted(ctx, sess), true
	}

	if clearMemoryRe.MatchString(inputLower) {
		return s.clearActiveMuseMemory(ctx, sess), true
	}

	return "", false
}

func (s *summoner) museListFormatted(ctx context.Context) string {
	muses, err := s.muses.GetMuses(ctx)
	if err != nil {
		s.logger.Warn("failed to list muses", "err", err)
	}
	if len(muses) == 0 {
		return "No muses are currently available."
	}

	var sb strings.Builder
	sb.WriteString("Available Muses:\n\n")
	for i, m := range muses {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, m.Name)
		fmt.Fprintf(&sb, "   Trigger: %q\n", m.TriggerPhrase)
		fmt.Fprintf(&sb, "   Purpose: %s\n\n", m.Purpose)
	}

	return sb.String()
}

func (s *summoner) historyFormatted(ctx context.Context, sess *session) string {
	m := sess.detector.ActiveMuse()
	if m == nil {
		return "No muse is currently active. Summon a muse first to view conversation history."
	}

	history, err := s.memories.Recent(ctx, m.Key, historyCount)
	if err != nil {
		s.logger.Warn("failed to fetch history", "muse", m.Name, "err", err)
	}
	if len(history) == 0 {
		return fmt.Sprintf("No conversation history found with %s.", m.Name)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Recent conversations with %s:\n\n", m.Name)
	for i, entry := range history {
		fmt.Fprintf(&sb, "Conversation %d:\n", i+1)
		fmt.Fprintf(&sb, "You: %s\n", entry.UserInput)
		fmt.Fprintf(&sb, "%s: %s...\n\n", m.Name, excerpt(entry.MuseResponse, 100))
	}

	return sb.String()
}

func (s *summoner) clearActiveMuseMemory(ctx context.Context, sess *session) string {
	m := sess.detector.ActiveMuse()
	if m == nil {
		return "No muse is currently active. Summon a muse first to clear memory."
	}

	if err := s.memories.Clear(ctx, m.Key); err != nil {
		s.logger.Error("failed to clear memory", "muse", m.Name, "err", err)
		return fmt.Sprintf("Something went wrong clearing the memory for %s. Please try again.", m.Name)
	}

	return fmt.Sprintf("Memory for %s has been cleared. All past conversations have been forgotten.", m.Name)
}

func excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
