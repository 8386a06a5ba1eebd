// cmd/importlegacy/main.go
// Imports registrations from the legacy MySQL desk database into the
// local PostgreSQL database. Safe to re-run: existing rows are skipped.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/urenloop?parseTime=true" \
//	go run ./cmd/importlegacy
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/sdevrieze/urenloop/config"
	bundb "github.com/sdevrieze/urenloop/db"
	"github.com/sdevrieze/urenloop/models"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.Load()

	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/urenloop?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"kringen", func() (int, error) { return importKringen(ctx, myDB, pgDB) }},
		{"groups", func() (int, error) { return importGroups(ctx, myDB, pgDB) }},
		{"runners", func() (int, error) { return importRunners(ctx, myDB, pgDB) }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			log.Fatalf("import %s: %v", s.name, err)
		}
		log.Printf("%-10s  %d rows imported", s.name, n)
	}

	log.Println("import complete")
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, pgDB *bun.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := pgDB.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}

func importKringen(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx, "SELECT id, name FROM kringen")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Kring
	total := 0
	for rows.Next() {
		var r models.Kring
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return total, err
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func importGroups(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		"SELECT id, groupNumber, groupName FROM `groups`")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Group
	total := 0
	for rows.Next() {
		var r models.Group
		if err := rows.Scan(&r.ID, &r.GroupNumber, &r.GroupName); err != nil {
			return total, err
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func importRunners(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		`SELECT id, firstName, lastName, identification, kringID,
		        groupNumber, registrationTime, testTime, firstYear
		 FROM runners`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Runner
	total := 0
	for rows.Next() {
		var (
			r        models.Runner
			regTime  time.Time
			testTime sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.FirstName, &r.LastName, &r.Identification,
			&r.KringID, &r.GroupNumber, &regTime, &testTime, &r.FirstYear); err != nil {
			return total, err
		}
		r.RegistrationTime = regTime
		if testTime.Valid {
			r.TestTime = testTime.String
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pgDB, batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}
