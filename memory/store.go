package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/musebox/musesummoner/config"
	"github.com/musebox/musesummoner/entity"
	"github.com/musebox/musesummoner/internal/db"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type (
	// Entry is one remembered turn: what the user said and what the muse
	// answered. Entries are ordered oldest-first everywhere they appear.
	Entry struct {
		Timestamp    time.Time `json:"timestamp"`
		UserInput    string    `json:"user_input"`
		MuseResponse string    `json:"muse_response"`
	}

	// Store is the per-muse conversation memory. The durable log is bounded
	// at MaxMemoryEntries; overflow drops the oldest entries first.
	Store interface {
		Append(ctx context.Context, museKey, userInput, museResponse string) error
		Recent(ctx context.Context, museKey string, count int) ([]Entry, error)
		Relevant(ctx context.Context, museKey, queryText string, maxResults int) ([]Entry, error)
		Clear(ctx context.Context, museKey string) error
	}

	store struct {
		logger *slog.Logger
		db     *gorm.DB
		conf   *config.RuntimeConfig

		mu    sync.Mutex
		locks map[string]*sync.Mutex

		cacheMu sync.RWMutex
		cache   map[string][]Entry
	}
)

var (
	_ Store = (*store)(nil)
)

const defaultMaxResults = 3

func NewStore(logger *slog.Logger, db *gorm.DB, conf *config.RuntimeConfig) Store {
	return &store{
		logger: logger,
		db:     db,
		conf:   conf,
		locks:  map[string]*sync.Mutex{},
		cache:  map[string][]Entry{},
	}
}

// keyLock returns the mutex serializing writes for one muse key. The lock is
// held only across the read-modify-write of the log, never across
// classification or composition.
func (s *store) keyLock(museKey string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[museKey]
	if !ok {
		l = &sync.Mutex{}
		s.locks[museKey] = l
	}
	return l
}

func (s *store) Append(ctx context.Context, museKey, userInput, museResponse string) error {
	l := s.keyLock(museKey)
	l.Lock()
	defer l.Unlock()

	// Warm the cache from the durable log before the insert; reading it back
	// afterwards would count the new row twice.
	entries := s.loadEntries(ctx, museKey)

	_, tx := db.OpenSession(ctx, s.db)

	row := entity.MemoryEntry{
		MuseKey:      museKey,
		UserInput:    userInput,
		MuseResponse: museResponse,
	}

	maxEntries := s.conf.Knobs().MaxMemoryEntries
	if err := tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return errors.Wrapf(err, "failed to save memory entry")
		}

		var count int64
		if err := tx.Model(&entity.MemoryEntry{}).Where("muse_key = ?", museKey).Count(&count).Error; err != nil {
			return errors.Wrapf(err, "failed to count memory entries")
		}

		if excess := count - int64(maxEntries); excess > 0 {
			oldest := tx.Model(&entity.MemoryEntry{}).
				Select("id").
				Where("muse_key = ?", museKey).
				Order("id ASC").
				Limit(int(excess))
			if err := tx.Unscoped().Where("id IN (?)", oldest).Delete(&entity.MemoryEntry{}).Error; err != nil {
				return errors.Wrapf(err, "failed to evict oldest memory entries")
			}
		}

		return nil
	}); err != nil {
		// Cache stays untouched on a failed write so the in-memory view
		// keeps matching the durable log.
		return err
	}

	entries = append(entries, Entry{
		Timestamp:    row.CreatedAt,
		UserInput:    userInput,
		MuseResponse: museResponse,
	})
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	s.setCache(museKey, entries)

	return nil
}

func (s *store) Recent(ctx context.Context, museKey string, count int) ([]Entry, error) {
	entries := s.loadEntries(ctx, museKey)
	if count <= 0 || len(entries) == 0 {
		return nil, nil
	}

	if count > len(entries) {
		count = len(entries)
	}
	// Oldest of the selected window first.
	out := make([]Entry, count)
	copy(out, entries[len(entries)-count:])

	return out, nil
}

func (s *store) Relevant(ctx context.Context, museKey, queryText string, maxResults int) ([]Entry, error) {
	entries := s.loadEntries(ctx, museKey)
	if len(entries) == 0 {
		return nil, nil
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	type scoredEntry struct {
		score float64
		entry Entry
	}

	minScore := s.conf.Knobs().RelevanceThreshold
	scored := make([]scoredEntry, 0, len(entries))
	for _, entry := range entries {
		score := Jaccard(queryText, entry.UserInput)
		if score <= minScore {
			continue
		}
		scored = append(scored, scoredEntry{score: score, entry: entry})
	}

	// Stable: entries with equal scores keep their storage order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}

	out := make([]Entry, 0, len(scored))
	for _, se := range scored {
		out = append(out, se.entry)
	}

	return out, nil
}

func (s *store) Clear(ctx context.Context, museKey string) error {
	l := s.keyLock(museKey)
	l.Lock()
	defer l.Unlock()

	_, tx := db.OpenSession(ctx, s.db)

	if err := tx.Unscoped().Where("muse_key = ?", museKey).Delete(&entity.MemoryEntry{}).Error; err != nil {
		return errors.Wrapf(err, "failed to clear memory entries")
	}

	s.cacheMu.Lock()
	delete(s.cache, museKey)
	s.cacheMu.Unlock()

	return nil
}

// loadEntries returns the full log for a muse, lazily loading the durable
// rows into the cache on first access. A failed read degrades to "no
// memories found" rather than surfacing an error to the conversation.
func (s *store) loadEntries(ctx context.Context, museKey string) []Entry {
	s.cacheMu.RLock()
	entries, ok := s.cache[museKey]
	s.cacheMu.RUnlock()
	if ok {
		return entries
	}

	_, tx := db.OpenSession(ctx, s.db)

	var rows []entity.MemoryEntry
	if err := tx.Where("muse_key = ?", museKey).Order("id ASC").Find(&rows).Error; err != nil {
		s.logger.Warn("failed to load memory entries, treating as empty", "muse_key", museKey, "err", err)
		return nil
	}

	entries = make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			Timestamp:    row.CreatedAt,
			UserInput:    row.UserInput,
			MuseResponse: row.MuseResponse,
		})
	}
	s.setCache(museKey, entries)

	return entries
}

func (s *store) setCache(museKey string, entries []Entry) {
	s.cacheMu.Lock()
	s.cache[museKey] = entries
	s.cacheMu.Unlock()
}
