package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PendingTime marks a lap whose runner is still out on the track.
// The value is the literal string "null", inherited from the data the
// registration frontend already stores and displays.
const PendingTime = "null"

// Lap is one timed run. Time holds the canonical "M:SS.mmm" elapsed
// string once the runner finishes, PendingTime while the lap is open.
type Lap struct {
	bun.BaseModel `bun:"table:laps,alias:l"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	RunnerID    int64     `bun:"runner_id,notnull" json:"runnerId"`
	Competition int       `bun:"competition,notnull,default:0" json:"competition"`
	StartTime   time.Time `bun:"start_time,notnull" json:"startTime"`
	Time        string    `bun:"time,notnull,default:'null'" json:"time"`
	Raining     bool      `bun:"raining,notnull,default:false" json:"raining"`

	Runner *Runner `bun:"rel:belongs-to,join:runner_id=id" json:"runner,omitempty"`
}

// Finished reports whether the lap has a recorded elapsed time.
func (l *Lap) Finished() bool { return l.Time != PendingTime }
