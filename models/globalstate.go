package models

import "github.com/uptrace/bun"

// GlobalStateID is the fixed primary key of the singleton state row.
const GlobalStateID = 1

// GlobalState is the single row of cross-cutting event state read by
// every dashboard: the raining flag and the active competition selector.
type GlobalState struct {
	bun.BaseModel `bun:"table:global_state,alias:gs"`

	ID          int64 `bun:"id,pk" json:"id"`
	Raining     bool  `bun:"raining,notnull,default:false" json:"raining"`
	Competition int   `bun:"competition,notnull,default:0" json:"competition"`
}
