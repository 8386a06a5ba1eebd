package models

import "github.com/uptrace/bun"

// Group buckets runners for the group competition.
type Group struct {
	bun.BaseModel `bun:"table:groups,alias:g"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id"`
	GroupNumber int    `bun:"group_number,notnull,unique" json:"groupNumber"`
	GroupName   string `bun:"group_name,notnull" json:"groupName"`
}
