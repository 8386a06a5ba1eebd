package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/sdevrieze/urenloop/config"
	"github.com/sdevrieze/urenloop/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// CreateTables creates all tables in dependency order and seeds the
// singleton global-state row.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Kring)(nil),
		(*models.Group)(nil),
		(*models.Runner)(nil),
		(*models.Lap)(nil),
		(*models.QueueEntry)(nil),
		(*models.GlobalState)(nil),
		(*models.UndoLog)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	constraints := []string{
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'laps_runner_fk') THEN ALTER TABLE laps ADD CONSTRAINT laps_runner_fk FOREIGN KEY (runner_id) REFERENCES runners (id); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'queue_runner_fk') THEN ALTER TABLE queue ADD CONSTRAINT queue_runner_fk FOREIGN KEY (runner_id) REFERENCES runners (id); END IF; END $$`,
	}
	for _, stmt := range constraints {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Printf("constraint: %v", err)
		}
	}

	state := &models.GlobalState{ID: models.GlobalStateID}
	if _, err := db.NewInsert().Model(state).Ignore().Exec(ctx); err != nil {
		return fmt.Errorf("seeding global state: %w", err)
	}

	return nil
}
