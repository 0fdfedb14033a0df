package repo

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"go.uber.org/fx"

	"github.com/DS-LIT/hrba-forms/internal/model"
)

// staged is a submission row that only lives while it is rendered and mailed.
type staged interface {
	SetCreatedAt(time.Time)
	SetDocumentID(string)
}

func stage(ctx context.Context, db bun.IDB, row staged) error {
	row.SetDocumentID(ulid.Make().String())
	row.SetCreatedAt(time.Now())

	_, err := db.NewInsert().
		Model(row).
		Exec(ctx)
	return err
}

func unstage(ctx context.Context, db bun.IDB, row staged) error {
	_, err := db.NewDelete().
		Model(row).
		WherePK().
		Exec(ctx)
	return err
}

// EnsureSchema creates the staging tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*model.TribunalReport)(nil),
		(*model.ReimbursementRequest)(nil),
	}
	for _, m := range models {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func Migrate(lc fx.Lifecycle, db *bun.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := EnsureSchema(ctx, db); err != nil {
				log.Error().
					Err(err).
					Str("evt.name", "repo.migrate.failed").
					Msg("failed to ensure submission tables")
				return err
			}
			return nil
		},
	})
}
