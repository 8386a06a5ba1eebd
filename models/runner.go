package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Runner is a registered participant. Records are immutable after
// registration; laps and queue entries reference them by id.
type Runner struct {
	bun.BaseModel `bun:"table:runners,alias:ru"`

	ID               int64     `bun:"id,pk,autoincrement" json:"id"`
	FirstName        string    `bun:"first_name,notnull" json:"firstName"`
	LastName         string    `bun:"last_name,notnull" json:"lastName"`
	Identification   string    `bun:"identification,notnull,unique" json:"identification"`
	KringID          int64     `bun:"kring_id,notnull" json:"kringId"`
	GroupNumber      int       `bun:"group_number,notnull" json:"groupNumber"`
	RegistrationTime time.Time `bun:"registration_time,notnull" json:"registrationTime"`
	TestTime         string    `bun:"test_time" json:"testTime"`
	FirstYear        bool      `bun:"first_year,notnull,default:false" json:"firstYear"`

	Laps []*Lap `bun:"rel:has-many,join:id=runner_id" json:"laps,omitempty"`
}
