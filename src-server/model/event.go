package model

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
)

type EventIDCtxKeyType string

const EventIDCtxKey EventIDCtxKeyType = "event-id"

// Event is the persisted form of a placed calendar event. One row per
// event; which schedules it sits on lives in the placements table.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID       string `bun:"id,pk"`         // required
	Name     string `bun:"name,notnull"`  // required
	Location string `bun:"location"`
	IsOnline bool   `bun:"is_online"`
	HostID   string `bun:"host_id,notnull"` // required

	StartDateUnixUTC int64 `bun:"start_date,notnull"` // required
	EndDateUnixUTC   int64 `bun:"end_date,notnull"`   // required

	CreatedAt int64 `bun:"created_at,notnull"`
	UpdatedAt int64 `bun:"updated_at"`

	Attendees  []*Attendee  `bun:"rel:has-many,join:id=event_id"`
	Placements []*Placement `bun:"rel:has-many,join:id=event_id"`
}

func (e *Event) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case e.ID == "":
		return fmt.Errorf("(*Event).Upsert: event id is blank")
	case e.Name == "":
		return fmt.Errorf("(*Event).Upsert: name is blank")
	case e.HostID == "":
		return fmt.Errorf("(*Event).Upsert: host id is blank")
	case e.StartDateUnixUTC == 0:
		return fmt.Errorf("(*Event).Upsert: start date is blank")
	case e.EndDateUnixUTC == 0:
		return fmt.Errorf("(*Event).Upsert: end date is blank")
	case e.StartDateUnixUTC >= e.EndDateUnixUTC:
		return fmt.Errorf("(*Event).Upsert: start date must be before end date")
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().UTC().Unix()
	}

	exists, err := db.NewSelect().
		Model((*Event)(nil)).
		Where("id = ?", e.ID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("(*Event).Upsert: %w", err)
	}

	switch exists {
	case true:
		e.UpdatedAt = time.Now().UTC().Unix()
		if _, err := db.NewUpdate().
			Model(e).
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	case false:
		if _, err := db.NewInsert().
			Model(e).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).Upsert: %w", err)
		}
	}

	return nil
}

var _ bun.AfterDeleteHook = (*Event)(nil)

// Cleanup attendees and placements of the deleted event. The caller
// must inject the deleted event id into the context under
// EventIDCtxKey.
func (e *Event) AfterDelete(ctx context.Context, query *bun.DeleteQuery) error {
	if query.DB() == nil {
		return fmt.Errorf("(*Event).AfterDelete: db is nil")
	}

	switch eventID := ctx.Value(EventIDCtxKey).(type) {
	case string:
		if eventID == "" {
			return fmt.Errorf("(*Event).AfterDelete: event id is blank")
		}
		if _, err := query.DB().NewDelete().
			Model((*Attendee)(nil)).
			Where("event_id = ?", eventID).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).AfterDelete: can't delete attendees: %w", err)
		}
		if _, err := query.DB().NewDelete().
			Model((*Placement)(nil)).
			Where("event_id = ?", eventID).
			Exec(ctx); err != nil {
			return fmt.Errorf("(*Event).AfterDelete: can't delete placements: %w", err)
		}
	case nil:
		slog.Warn("(*Event).AfterDelete: no event id in context, attendees and placements kept")
	default:
		return fmt.Errorf("(*Event).AfterDelete: wrong event id type | type=%T", eventID)
	}

	return nil
}
