package race

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/sdevrieze/urenloop/models"
)

// Enqueue appends a runner to the back of the start queue and returns the
// created entry.
func Enqueue(ctx context.Context, db bun.IDB, runnerID int64) (*models.QueueEntry, error) {
	exists, err := db.NewSelect().Model((*models.Runner)(nil)).
		Where("id = ?", runnerID).
		Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRunnerNotFound
	}

	var maxPlace sql.NullInt64
	err = db.NewSelect().
		TableExpr("queue").
		ColumnExpr("MAX(queue_place)").
		Scan(ctx, &maxPlace)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	entry := &models.QueueEntry{
		RunnerID:   runnerID,
		QueuePlace: int(maxPlace.Int64) + 1,
	}
	if _, err := db.NewInsert().Model(entry).Exec(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}

// RemoveByPlace deletes the entry holding the given queue place. Remaining
// places are not renumbered; only a reorder makes them dense again.
func RemoveByPlace(ctx context.Context, db bun.IDB, place int) error {
	res, err := db.NewDelete().Model((*models.QueueEntry)(nil)).
		Where("queue_place = ?", place).
		Exec(ctx)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrQueueEntryNotFound
	}
	return nil
}

// Reorder assigns queue places from list position (1-based) in a single
// transaction. An unknown entry id aborts the whole reorder.
func Reorder(ctx context.Context, db *bun.DB, entryIDs []int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for i, id := range entryIDs {
		res, err := tx.NewUpdate().Model((*models.QueueEntry)(nil)).
			Set("queue_place = ?", i+1).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrQueueEntryNotFound
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	committed = true

	return nil
}

// front returns the entry with the smallest queue place, or nil when the
// queue is empty.
func front(ctx context.Context, db bun.IDB) (*models.QueueEntry, error) {
	entry := &models.QueueEntry{}
	err := db.NewSelect().Model(entry).
		OrderExpr("queue_place ASC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// frontPlace computes the place for a runner pushed back to the head of
// the queue: one below the current minimum, or 1 for an empty queue. The
// result may be zero or negative; ordering only ever compares places.
func frontPlace(ctx context.Context, db bun.IDB) (int, error) {
	first, err := front(ctx, db)
	if err != nil {
		return 0, err
	}
	if first == nil {
		return 1, nil
	}
	return first.QueuePlace - 1, nil
}
