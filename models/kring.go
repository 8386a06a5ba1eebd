package models

import "github.com/uptrace/bun"

// Kring is a student society; the grouping key for the inter-society
// competition. Logo assets are keyed by Name.
type Kring struct {
	bun.BaseModel `bun:"table:kringen,alias:k"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull,unique" json:"name"`
}
