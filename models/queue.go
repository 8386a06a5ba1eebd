package models

import "github.com/uptrace/bun"

// QueueEntry holds a runner waiting to start. QueuePlace defines start
// order; places are allowed to go sparse after removals and may drop to
// zero or below when a runner is pushed back to the front by an undo.
type QueueEntry struct {
	bun.BaseModel `bun:"table:queue,alias:q"`

	ID         int64 `bun:"id,pk,autoincrement" json:"id"`
	RunnerID   int64 `bun:"runner_id,notnull" json:"runnerId"`
	QueuePlace int   `bun:"queue_place,notnull" json:"queuePlace"`

	Runner *Runner `bun:"rel:belongs-to,join:runner_id=id" json:"runner,omitempty"`
}
