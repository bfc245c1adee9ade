package model

import (
	"github.com/uptrace/bun"
)

// Attendee is one row per invitee on an event; the host is included
// by convention.
type Attendee struct {
	bun.BaseModel `bun:"table:attendees"`

	EventID string `bun:"event_id,notnull"` // required
	UserID  string `bun:"user_id,notnull"`  // required

	Event *Event `bun:"rel:belongs-to,join:event_id=id"`
}
