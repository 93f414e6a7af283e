package memory_test

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/musebox/musesummoner/config"
	"github.com/musebox/musesummoner/internal/mytesting"
	"github.com/musebox/musesummoner/memory"
	"github.com/stretchr/testify/suite"
)

const testMuseKey = "salvatore_inverso"

type StoreTestSuite struct {
	mytesting.Suite

	conf  *config.RuntimeConfig
	store memory.Store
}

func (s *StoreTestSuite) SetupTest() {
	s.Suite.SetupTest()

	s.conf = &config.RuntimeConfig{
		MaxMemoryEntries:   5,
		RelevanceThreshold: 0.1,
	}
	s.store = memory.NewStore(slog.Default(), s.DB, s.conf)
}

func (s *StoreTestSuite) TestAppendAndRecent() {
	for i := 1; i <= 3; i++ {
		s.Require().NoError(s.store.Append(s.Context, testMuseKey, fmt.Sprintf("input %d", i), fmt.Sprintf("response %d", i)))
	}

	recent, err := s.store.Recent(s.Context, testMuseKey, 2)
	s.Require().NoError(err)
	s.Require().Len(recent, 2)

	// Oldest of the selected window first.
	s.Equal("input 2", recent[0].UserInput)
	s.Equal("response 2", recent[0].MuseResponse)
	s.Equal("input 3", recent[1].UserInput)
}

func (s *StoreTestSuite) TestAppendDoesNotDuplicateInCache() {
	s.Require().NoError(s.store.Append(s.Context, testMuseKey, "first input", "first response"))

	recent, err := s.store.Recent(s.Context, testMuseKey, 10)
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Equal("first input", recent[0].UserInput)

	// An append through a cold cache must not count the row it just wrote a
	// second time when warming up from the durable log.
	fresh := memory.NewStore(slog.Default(), s.DB, s.conf)
	s.Require().NoError(fresh.Append(s.Context, testMuseKey, "second input", "second response"))

	recent, err = fresh.Recent(s.Context, testMuseKey, 10)
	s.Require().NoError(err)
	s.Require().Len(recent, 2)
	s.Equal("first input", recent[0].UserInput)
	s.Equal("second input", recent[1].UserInput)
}

func (s *StoreTestSuite) TestRecentZeroCount() {
	s.Require().NoError(s.store.Append(s.Context, testMuseKey, "input", "response"))

	recent, err := s.store.Recent(s.Context, testMuseKey, 0)
	s.Require().NoError(err)
	s.Empty(recent)
}

func (s *StoreTestSuite) TestAppendEvictsOldest() {
	for i := 1; i <= 8; i++ {
		s.Require().NoError(s.store.Append(s.Context, testMuseKey, fmt.Sprintf("input %d", i), fmt.Sprintf("response %d", i)))
	}

	recent, err := s.store.Recent(s.Context, testMuseKey, 100)
	s.Require().NoError(err)
	s.Require().Len(recent, s.conf.MaxMemoryEntries)

	s.Equal("input 4", recent[0].UserInput)
	s.Equal("input 8", recent[len(recent)-1].UserInput)

	// A fresh store reads back the same durable log as the cached one.
	fresh := memory.NewStore(slog.Default(), s.DB, s.conf)
	durable, err := fresh.Recent(s.Context, testMuseKey, 100)
	s.Require().NoError(err)
	s.Require().Equal(recent, durable)
}

func (s *StoreTestSuite) TestLogsAreIsolatedPerMuse() {
	s.Require().NoError(s.store.Append(s.Context, testMuseKey, "salvatore input", "salvatore response"))
	s.Require().NoError(s.store.Append(s.Context, "other_muse", "other input", "other response"))

	recent, err := s.store.Recent(s.Context, testMuseKey, 100)
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Equal("salvatore input", recent[0].UserInput)
}

func (s *StoreTestSuite) TestRelevantFiltersAndRanks() {
	inputs := []string{
		"alpha beta gamma delta",          // 1.0 against the query
		"alpha beta zeta eta",             // 2/6
		"completely unrelated words here", // 0, below threshold
		"alpha one two three four five",   // 1/9, just above 0.1
	}
	for _, input := range inputs {
		s.Require().NoError(s.store.Append(s.Context, testMuseKey, input, "response"))
	}

	relevant, err := s.store.Relevant(s.Context, testMuseKey, "alpha beta gamma delta", 0)
	s.Require().NoError(err)
	s.Require().Len(relevant, 3)

	s.Equal("alpha beta gamma delta", relevant[0].UserInput)
	s.Equal("alpha beta zeta eta", relevant[1].UserInput)
	s.Equal("alpha one two three four five", relevant[2].UserInput)

	relevant, err = s.store.Relevant(s.Context, testMuseKey, "alpha beta gamma delta", 1)
	s.Require().NoError(err)
	s.Require().Len(relevant, 1)
	s.Equal("alpha beta gamma delta", relevant[0].UserInput)
}

func (s *StoreTestSuite) TestRelevantEmptyLog() {
	relevant, err := s.store.Relevant(s.Context, testMuseKey, "anything at all", 0)
	s.Require().NoError(err)
	s.Empty(relevant)
}

func (s *StoreTestSuite) TestClear() {
	s.Require().NoError(s.store.Append(s.Context, testMuseKey, "input", "response"))
	s.Require().NoError(s.store.Clear(s.Context, testMuseKey))

	recent, err := s.store.Recent(s.Context, testMuseKey, 100)
	s.Require().NoError(err)
	s.Empty(recent)

	// Cleared durably, not only in the cache.
	fresh := memory.NewStore(slog.Default(), s.DB, s.conf)
	durable, err := fresh.Recent(s.Context, testMuseKey, 100)
	s.Require().NoError(err)
	s.Empty(durable)
}

func TestStore(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
