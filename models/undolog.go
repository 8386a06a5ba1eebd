package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UndoLogID is the fixed primary key of the single undo-log row.
const UndoLogID = 1

// UndoLog records the most recent start so it can be reversed exactly.
// Depth is one: every start overwrites the row, undo clears it.
// QueuePlace is the place the start consumed, nil when the runner was
// started without a queue entry.
type UndoLog struct {
	bun.BaseModel `bun:"table:undo_log,alias:ul"`

	ID         int64     `bun:"id,pk" json:"id"`
	LapID      int64     `bun:"lap_id,notnull" json:"lapId"`
	RunnerID   int64     `bun:"runner_id,notnull" json:"runnerId"`
	QueuePlace *int      `bun:"queue_place" json:"queuePlace,omitempty"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"createdAt"`
}
