package race

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/sdevrieze/urenloop/models"
	"github.com/sdevrieze/urenloop/timefmt"
)

// StartByIdentification opens a lap for the runner carrying the scanned
// identification code. The lap creation, the removal of the runner's
// queue entry (if any) and the undo-log write happen in one transaction.
func StartByIdentification(ctx context.Context, db *bun.DB, identification string) (*models.Lap, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	runner := &models.Runner{}
	err = tx.NewSelect().Model(runner).
		Where("identification = ?", identification).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunnerNotFound
	}
	if err != nil {
		return nil, err
	}

	lap, err := startRunner(ctx, tx, runner.ID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return lap, nil
}

// StartNext dequeues the front of the queue and opens a lap for that
// runner, atomically. Returns ErrQueueEmpty when nobody is waiting.
func StartNext(ctx context.Context, db *bun.DB) (*models.Lap, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	entry, err := front(ctx, tx)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrQueueEmpty
	}

	lap, err := startRunner(ctx, tx, entry.RunnerID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return lap, nil
}

// startRunner creates the open lap for a runner, consuming their queue
// entry and recording the action in the undo log. Caller owns the
// transaction.
func startRunner(ctx context.Context, tx bun.Tx, runnerID int64) (*models.Lap, error) {
	open, err := tx.NewSelect().Model((*models.Lap)(nil)).
		Where("runner_id = ?", runnerID).
		Where("time = ?", models.PendingTime).
		Exists(ctx)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrAlreadyRunning
	}

	// Snapshot raining and the active competition onto the lap.
	state := &models.GlobalState{}
	err = tx.NewSelect().Model(state).
		Where("id = ?", models.GlobalStateID).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	lap := &models.Lap{
		RunnerID:    runnerID,
		Competition: state.Competition,
		StartTime:   nowFunc(),
		Time:        models.PendingTime,
		Raining:     state.Raining,
	}
	if _, err := tx.NewInsert().Model(lap).Exec(ctx); err != nil {
		return nil, err
	}

	var consumedPlace *int
	entry := &models.QueueEntry{}
	err = tx.NewSelect().Model(entry).
		Where("runner_id = ?", runnerID).
		OrderExpr("queue_place ASC").
		Limit(1).
		Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Started outside the queue; nothing to consume.
	case err != nil:
		return nil, err
	default:
		place := entry.QueuePlace
		consumedPlace = &place
		if _, err := tx.NewDelete().Model((*models.QueueEntry)(nil)).
			Where("id = ?", entry.ID).
			Exec(ctx); err != nil {
			return nil, err
		}
	}

	undo := &models.UndoLog{
		ID:         models.UndoLogID,
		LapID:      lap.ID,
		RunnerID:   runnerID,
		QueuePlace: consumedPlace,
		CreatedAt:  nowFunc(),
	}
	_, err = tx.NewInsert().Model(undo).
		On("CONFLICT (id) DO UPDATE").
		Set("lap_id = EXCLUDED.lap_id").
		Set("runner_id = EXCLUDED.runner_id").
		Set("queue_place = EXCLUDED.queue_place").
		Set("created_at = EXCLUDED.created_at").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return lap, nil
}

// StopByIdentification closes the runner's open lap, writing the elapsed
// time in the canonical format, and returns the finished lap.
func StopByIdentification(ctx context.Context, db bun.IDB, identification string) (*models.Lap, error) {
	runner := &models.Runner{}
	err := db.NewSelect().Model(runner).
		Where("identification = ?", identification).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunnerNotFound
	}
	if err != nil {
		return nil, err
	}

	lap := &models.Lap{}
	err = db.NewSelect().Model(lap).
		Where("runner_id = ?", runner.ID).
		Where("time = ?", models.PendingTime).
		OrderExpr("start_time DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoOpenLap
	}
	if err != nil {
		return nil, err
	}

	lap.Time = timefmt.FormatDuration(nowFunc().Sub(lap.StartTime))
	if _, err := db.NewUpdate().Model(lap).
		Column("time").
		WherePK().
		Exec(ctx); err != nil {
		return nil, err
	}
	return lap, nil
}

// UndoLastStart reverses exactly the start recorded in the undo log:
// deletes its lap, restores the runner to the front of the queue and
// clears the log, in one transaction. A start whose lap has since been
// stopped can no longer be undone.
func UndoLastStart(ctx context.Context, db *bun.DB) (*models.QueueEntry, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	undo := &models.UndoLog{}
	err = tx.NewSelect().Model(undo).
		Where("id = ?", models.UndoLogID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNothingToUndo
	}
	if err != nil {
		return nil, err
	}

	lap := &models.Lap{}
	err = tx.NewSelect().Model(lap).
		Where("id = ?", undo.LapID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNothingToUndo
	}
	if err != nil {
		return nil, err
	}
	if lap.Finished() {
		return nil, ErrNothingToUndo
	}

	if _, err := tx.NewDelete().Model((*models.Lap)(nil)).
		Where("id = ?", lap.ID).
		Exec(ctx); err != nil {
		return nil, err
	}

	place, err := frontPlace(ctx, tx)
	if err != nil {
		return nil, err
	}
	entry := &models.QueueEntry{
		RunnerID:   undo.RunnerID,
		QueuePlace: place,
	}
	if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
		return nil, err
	}

	if _, err := tx.NewDelete().Model((*models.UndoLog)(nil)).
		Where("id = ?", models.UndoLogID).
		Exec(ctx); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return entry, nil
}
