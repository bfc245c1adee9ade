package model_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"huddle/src-server/model"
	"huddle/src-server/planner"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// each pooled connection would get its own empty in-memory db
	db.SetMaxOpenConns(1)
	bundb := bun.NewDB(db, sqlitedialect.New())
	if err := model.CreateSchema(bundb); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { bundb.Close() })
	return bundb
}

func TestStoreRoundTrip(t *testing.T) {
	bundb := newTestDB(t)
	store := model.NewStore(bundb, time.UTC)
	ctx := context.Background()

	// build an in-memory planner with two users and one shared event
	p := planner.New(time.Sunday)
	for _, id := range []string{"alice", "bob"} {
		u, err := planner.NewUser(id, "User "+id)
		if err != nil {
			t.Fatal(err)
		}
		if err := p.AddUser(u); err != nil {
			t.Fatal(err)
		}
		if err := store.SaveUser(ctx, u); err != nil {
			t.Fatal(err)
		}
	}

	start := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	e, err := planner.NewEvent("sync", start, start.Add(time.Hour), "Churchill Hall 101", false, []string{"bob"}, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveEvent(ctx, e, []string{"alice", "bob"}); err != nil {
		t.Fatal(err)
	}

	// case: reload rebuilds users, schedules and invitee lists
	func() {
		loaded, err := store.LoadPlanner(ctx, time.Sunday)
		if err != nil {
			t.Fatal(err)
		}
		users := loaded.Users()
		if len(users) != 2 {
			t.Fatal("expected two users, got", len(users))
		}
		for _, id := range []string{"alice", "bob"} {
			u, ok := loaded.GetUser(id)
			if !ok {
				t.Fatal("user missing after reload:", id)
			}
			events := u.Schedule().Events()
			if len(events) != 1 {
				t.Fatal("expected one event for", id, "got", len(events))
			}
			got := events[0]
			if got.ID != e.ID || got.Name != "sync" || !got.Start.Equal(start) || !got.End.Equal(start.Add(time.Hour)) {
				t.Error("event fields lost in round trip", got)
			}
			if len(got.Invitees) != 2 || got.Invitees[0] != "alice" || got.Invitees[1] != "bob" {
				t.Error("invitee list lost in round trip", got.Invitees)
			}
		}
	}()

	// case: same event id across two schedules is one row plus two placements
	func() {
		count, err := bundb.NewSelect().
			Model((*model.Event)(nil)).
			Count(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if count != 1 {
			t.Error("expected one event row, got", count)
		}
		placements, err := bundb.NewSelect().
			Model((*model.Placement)(nil)).
			Where("event_id = ?", e.ID).
			Count(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if placements != 2 {
			t.Error("expected two placements, got", placements)
		}
	}()
}

func TestStoreSaveEventIdempotentPlacements(t *testing.T) {
	bundb := newTestDB(t)
	store := model.NewStore(bundb, time.UTC)
	ctx := context.Background()

	u, err := planner.NewUser("alice", "Alice")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveUser(ctx, u); err != nil {
		t.Fatal(err)
	}

	start := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	e, err := planner.NewEvent("sync", start, start.Add(time.Hour), "", true, nil, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveEvent(ctx, e, []string{"alice"}); err != nil {
		t.Fatal(err)
	}
	// saving again (a modify) must not duplicate placements
	if err := store.SaveEvent(ctx, e, []string{"alice"}); err != nil {
		t.Fatal(err)
	}

	placements, err := bundb.NewSelect().
		Model((*model.Placement)(nil)).
		Where("event_id = ?", e.ID).
		Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if placements != 1 {
		t.Error("expected one placement, got", placements)
	}
}

func TestStoreRemoveEvent(t *testing.T) {
	bundb := newTestDB(t)
	store := model.NewStore(bundb, time.UTC)
	ctx := context.Background()

	for _, id := range []string{"alice", "bob"} {
		u, err := planner.NewUser(id, "User "+id)
		if err != nil {
			t.Fatal(err)
		}
		if err := store.SaveUser(ctx, u); err != nil {
			t.Fatal(err)
		}
	}

	start := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	e, err := planner.NewEvent("sync", start, start.Add(time.Hour), "", true, []string{"bob"}, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveEvent(ctx, e, []string{"alice", "bob"}); err != nil {
		t.Fatal(err)
	}

	// case: removing one placement keeps the event row
	func() {
		if err := store.RemoveEvent(ctx, "alice", e.ID); err != nil {
			t.Fatal(err)
		}
		exists, err := bundb.NewSelect().
			Model((*model.Event)(nil)).
			Where("id = ?", e.ID).
			Exists(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if !exists {
			t.Error("event row should survive while a placement remains")
		}
	}()

	// case: removing the last placement deletes the event and attendees
	func() {
		if err := store.RemoveEvent(ctx, "bob", e.ID); err != nil {
			t.Fatal(err)
		}
		exists, err := bundb.NewSelect().
			Model((*model.Event)(nil)).
			Where("id = ?", e.ID).
			Exists(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if exists {
			t.Error("event row should be gone with its last placement")
		}
		attendees, err := bundb.NewSelect().
			Model((*model.Attendee)(nil)).
			Where("event_id = ?", e.ID).
			Count(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if attendees != 0 {
			t.Error("attendee rows should be gone, got", attendees)
		}
	}()
}
