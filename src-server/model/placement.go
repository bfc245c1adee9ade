package model

import (
	"github.com/uptrace/bun"
)

// Placement pins an event onto one user's schedule. An auto-scheduled
// event gets one row per participant; a manually created one gets a
// single row for its owner.
type Placement struct {
	bun.BaseModel `bun:"table:placements"`

	OwnerID string `bun:"owner_id,notnull"` // required
	EventID string `bun:"event_id,notnull"` // required

	Owner *User  `bun:"rel:belongs-to,join:owner_id=id"`
	Event *Event `bun:"rel:belongs-to,join:event_id=id"`
}
