package db

import (
	"context"

	"github.com/musebox/musesummoner/entity"
	"github.com/musebox/musesummoner/errors"
	"gorm.io/gorm"
)

func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	_, tx := OpenSession(ctx, db)

	return errors.WithStack(tx.AutoMigrate(
		&entity.Muse{},
		&entity.MemoryEntry{},
		&entity.APIKey{},
	))
}

func DropAll(ctx context.Context, db *gorm.DB) error {
	_, tx := OpenSession(ctx, db)
	return errors.WithStack(tx.Migrator().DropTable(
		&entity.APIKey{},
		&entity.MemoryEntry{},
		&entity.Muse{},
	))
}
