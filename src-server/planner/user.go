package planner

import "fmt"

// User owns exactly one schedule; the schedule is created empty with
// the user and lives as long as the user does.
type User struct {
	id       string
	name     string
	schedule *Schedule
}

func NewUser(id, name string) (*User, error) {
	switch {
	case id == "":
		return nil, fmt.Errorf("planner.NewUser: id is blank: %w", ErrInvalidArgument)
	case name == "":
		return nil, fmt.Errorf("planner.NewUser: name is blank: %w", ErrInvalidArgument)
	}
	return &User{
		id:       id,
		name:     name,
		schedule: NewSchedule(),
	}, nil
}

func (u *User) ID() string {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Schedule() *Schedule {
	return u.schedule
}
