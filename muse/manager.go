package muse

import (
	"context"
	"log/slog"
	"strings"

	"github.com/musebox/musesummoner/config"
	"github.com/musebox/musesummoner/entity"
	myerrors "github.com/musebox/musesummoner/errors"
	"github.com/musebox/musesummoner/internal/db"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	// Manager is the muse registry. Iteration order is registration order,
	// which makes the trigger tie-break deterministic: when two trigger
	// phrases both match one input, the first-registered muse wins.
	Manager interface {
		RegisterMuse(ctx context.Context, mc config.MuseConfig) (*entity.Muse, error)
		GetMuses(ctx context.Context) ([]entity.Muse, error)
		FindMuseByName(ctx context.Context, name string) (*entity.Muse, error)
		FindMuseByTrigger(ctx context.Context, triggerPhrase string) (*entity.Muse, error)
	}
	manager struct {
		logger *slog.Logger
		db     *gorm.DB
	}
)

var (
	_ Manager = (*manager)(nil)
)

func NewManager(logger *slog.Logger, db *gorm.DB) Manager {
	return &manager{
		logger: logger,
		db:     db,
	}
}

func (s *manager) RegisterMuse(ctx context.Context, mc config.MuseConfig) (m *entity.Muse, err error) {
	if err := validateMuseConfig(mc); err != nil {
		return nil, err
	}

	_, tx := db.OpenSession(ctx, s.db)

	var muse entity.Muse
	key := entity.MuseKey(mc.Name)
	if err := tx.Find(&muse, "key = ?", key).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to find muse")
	}

	muse.Key = key
	muse.Name = mc.Name
	muse.TriggerPhrase = mc.TriggerPhrase
	muse.VoiceTone = mc.VoiceTone
	muse.Purpose = mc.Purpose
	muse.SignatureQuestion = mc.SignatureQuestion
	muse.RitualSystem = mc.RitualSystem
	muse.TasksSupported = mc.TasksSupported
	muse.Catchphrases = mc.Catchphrases
	muse.SampleTasks = mc.SampleTasks

	capabilities := make(map[string]entity.Capability, len(mc.Capabilities))
	for name, cc := range mc.Capabilities {
		capabilities[name] = entity.Capability{
			Description: cc.Description,
			Functions:   cc.Functions,
		}
	}
	muse.Capabilities = datatypes.NewJSONType(capabilities)

	if err := tx.Save(&muse).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to save muse")
	}

	s.logger.Info("muse registered", "name", muse.Name, "trigger", muse.TriggerPhrase)

	return &muse, nil
}

func (s *manager) GetMuses(ctx context.Context) ([]entity.Muse, error) {
	_, tx := db.OpenSession(ctx, s.db)

	var muses []entity.Muse
	if err := tx.Order("id ASC").Find(&muses).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to find muses")
	}

	return muses, nil
}

func (s *manager) FindMuseByName(ctx context.Context, name string) (*entity.Muse, error) {
	_, tx := db.OpenSession(ctx, s.db)

	var muse entity.Muse
	if r := tx.Find(&muse, "key = ?", entity.MuseKey(name)); r.Error != nil {
		return nil, errors.Wrapf(r.Error, "failed to find muse")
	} else if r.RowsAffected == 0 {
		return nil, errors.Wrapf(myerrors.ErrNotFound, "no muse named %q", name)
	}

	return &muse, nil
}

func (s *manager) FindMuseByTrigger(ctx context.Context, triggerPhrase string) (*entity.Muse, error) {
	_, tx := db.OpenSession(ctx, s.db)

	var muse entity.Muse
	if r := tx.Find(&muse, "lower(trigger_phrase) = ?", strings.ToLower(triggerPhrase)); r.Error != nil {
		return nil, errors.Wrapf(r.Error, "failed to find muse")
	} else if r.RowsAffected == 0 {
		return nil, errors.Wrapf(myerrors.ErrNotFound, "no muse with trigger %q", triggerPhrase)
	}

	return &muse, nil
}

// validateMuseConfig is the provisioning boundary: a definition missing a
// required attribute never enters the registry in a partial state.
func validateMuseConfig(mc config.MuseConfig) error {
	switch {
	case strings.TrimSpace(mc.Name) == "":
		return errors.Wrapf(myerrors.ErrInvalidConfig, "muse name is required")
	case strings.TrimSpace(mc.TriggerPhrase) == "":
		return errors.Wrapf(myerrors.ErrInvalidConfig, "trigger phrase is required")
	case strings.TrimSpace(mc.VoiceTone) == "":
		return errors.Wrapf(myerrors.ErrInvalidConfig, "voice tone is required")
	case strings.TrimSpace(mc.Purpose) == "":
		return errors.Wrapf(myerrors.ErrInvalidConfig, "purpose is required")
	case strings.TrimSpace(mc.SignatureQuestion) == "":
		return errors.Wrapf(myerrors.ErrInvalidConfig, "signature question is required")
	case len(mc.TasksSupported) == 0:
		return errors.Wrapf(myerrors.ErrInvalidConfig, "at least one supported task is required")
	case len(mc.Catchphrases) == 0:
		return errors.Wrapf(myerrors.ErrInvalidConfig, "at least one catchphrase is required")
	}
	return nil
}
