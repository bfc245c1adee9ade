package model

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"huddle/src-server/planner"

	"github.com/uptrace/bun"
)

// Store bridges the in-memory planner and SQLite. The planner is the
// source of truth while the process runs; the store replays it from
// disk at startup and records every successful mutation.
type Store struct {
	db  *bun.DB
	loc *time.Location
}

func NewStore(db *bun.DB, loc *time.Location) *Store {
	return &Store{db: db, loc: loc}
}

func (s *Store) SaveUser(ctx context.Context, u *planner.User) error {
	userModel := User{
		ID:   u.ID(),
		Name: u.Name(),
	}
	if err := userModel.Upsert(ctx, s.db); err != nil {
		return fmt.Errorf("(*Store).SaveUser: %w", err)
	}
	return nil
}

// SaveEvent upserts the event row, replaces its attendee rows and
// makes sure a placement row exists for every owner.
func (s *Store) SaveEvent(ctx context.Context, e *planner.Event, ownerIDs []string) error {
	if !e.Placed() {
		return fmt.Errorf("(*Store).SaveEvent: event %q has no time", e.ID)
	}
	if err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		eventModel := Event{
			ID:               e.ID,
			Name:             e.Name,
			Location:         e.Location,
			IsOnline:         e.IsOnline,
			HostID:           e.HostID,
			StartDateUnixUTC: e.Start.UTC().Unix(),
			EndDateUnixUTC:   e.End.UTC().Unix(),
		}
		if err := eventModel.Upsert(ctx, tx); err != nil {
			return err
		}

		if _, err := tx.NewDelete().
			Model((*Attendee)(nil)).
			Where("event_id = ?", e.ID).
			Exec(ctx); err != nil {
			return err
		}
		for _, inviteeID := range e.Invitees {
			attendeeModel := Attendee{
				EventID: e.ID,
				UserID:  inviteeID,
			}
			if _, err := tx.NewInsert().
				Model(&attendeeModel).
				Exec(ctx); err != nil {
				return err
			}
		}

		for _, ownerID := range ownerIDs {
			exists, err := tx.NewSelect().
				Model((*Placement)(nil)).
				Where("owner_id = ?", ownerID).
				Where("event_id = ?", e.ID).
				Exists(ctx)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			placementModel := Placement{
				OwnerID: ownerID,
				EventID: e.ID,
			}
			if _, err := tx.NewInsert().
				Model(&placementModel).
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("(*Store).SaveEvent: %w", err)
	}
	return nil
}

// RemoveEvent drops the owner's placement; the event row and its
// attendees go with it once no placement references it anymore. Not
// transactional: the AfterDelete hook cleans up through the outer
// pool, which a held transaction would lock out.
func (s *Store) RemoveEvent(ctx context.Context, ownerID string, eventID string) error {
	if _, err := s.db.NewDelete().
		Model((*Placement)(nil)).
		Where("owner_id = ?", ownerID).
		Where("event_id = ?", eventID).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Store).RemoveEvent: can't delete placement: %w", err)
	}

	remaining, err := s.db.NewSelect().
		Model((*Placement)(nil)).
		Where("event_id = ?", eventID).
		Count(ctx)
	if err != nil {
		return fmt.Errorf("(*Store).RemoveEvent: %w", err)
	}
	if remaining > 0 {
		return nil
	}

	if _, err := s.db.NewDelete().
		Model((*Event)(nil)).
		Where("id = ?", eventID).
		Exec(context.WithValue(ctx, EventIDCtxKey, eventID)); err != nil {
		return fmt.Errorf("(*Store).RemoveEvent: can't delete event: %w", err)
	}
	return nil
}

// LoadPlanner rebuilds the in-memory planner from disk. Events are
// appended without conflict checks, matching bulk-import semantics: a
// database written by an older build may legally hold overlaps.
func (s *Store) LoadPlanner(ctx context.Context, weekStart time.Weekday) (*planner.Planner, error) {
	p := planner.New(weekStart)

	userModels := make([]User, 0)
	if err := s.db.NewSelect().
		Model(&userModels).
		Order("created_at ASC", "id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Store).LoadPlanner: can't load users: %w", err)
	}
	for _, userModel := range userModels {
		u, err := planner.NewUser(userModel.ID, userModel.Name)
		if err != nil {
			return nil, fmt.Errorf("(*Store).LoadPlanner: %w", err)
		}
		if err := p.AddUser(u); err != nil {
			return nil, fmt.Errorf("(*Store).LoadPlanner: %w", err)
		}
	}

	eventModels := make([]Event, 0)
	if err := s.db.NewSelect().
		Model(&eventModels).
		Relation("Attendees").
		Relation("Placements").
		Order("start_date ASC", "id ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("(*Store).LoadPlanner: can't load events: %w", err)
	}

	for _, eventModel := range eventModels {
		invitees := make([]string, 0, len(eventModel.Attendees))
		for _, attendeeModel := range eventModel.Attendees {
			invitees = append(invitees, attendeeModel.UserID)
		}
		e := &planner.Event{
			ID:       eventModel.ID,
			Name:     eventModel.Name,
			Start:    time.Unix(eventModel.StartDateUnixUTC, 0).In(s.loc),
			End:      time.Unix(eventModel.EndDateUnixUTC, 0).In(s.loc),
			Location: eventModel.Location,
			IsOnline: eventModel.IsOnline,
			Invitees: invitees,
			HostID:   eventModel.HostID,
		}
		for _, placementModel := range eventModel.Placements {
			owner, ok := p.GetUser(placementModel.OwnerID)
			if !ok {
				return nil, fmt.Errorf("(*Store).LoadPlanner: placement owner %q unknown", placementModel.OwnerID)
			}
			owner.Schedule().AddEvent(e)
		}
	}

	return p, nil
}
