package model

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID   string `bun:"id,pk,notnull,unique"`
	Name string `bun:"name,notnull"`

	CreatedAt int64 `bun:"created_at,notnull"`
}

func (u *User) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case u.ID == "":
		return fmt.Errorf("(*User).Upsert: user id is blank")
	case u.Name == "":
		return fmt.Errorf("(*User).Upsert: user name is blank")
	}
	if u.CreatedAt == 0 {
		u.CreatedAt = time.Now().UTC().Unix()
	}

	if _, err := db.
		NewInsert().
		Model(u).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Exec(ctx); err != nil {
		return fmt.Errorf("(*User).Upsert: %w", err)
	}

	return nil
}
