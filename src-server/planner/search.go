package planner

import "time"

// SearchStep is the fixed stride between candidate slots.
const SearchStep = 30 * time.Minute

// searchResult carries what a successful search found and touched.
type searchResult struct {
	start   time.Time
	end     time.Time
	scanned int
	// every schedule owner the event was written to, host first
	owners []string
}

// search walks [windowStart, windowEnd) in step increments and places
// the event at the first slot where the host and every invitee are
// simultaneously free. An invitee id that doesn't resolve counts as
// unavailable for that slot. Nothing is written until a slot has been
// confirmed for everyone, so a failed search mutates nothing.
func search(e *Event, host *User, resolve func(string) (*User, bool), windowStart, windowEnd time.Time, step time.Duration) (searchResult, error) {
	res := searchResult{}
	for cursor := windowStart; cursor.Before(windowEnd); cursor = cursor.Add(step) {
		res.scanned++
		candidateEnd := cursor.Add(e.Duration())
		if !host.Schedule().IsAvailable(cursor, candidateEnd) {
			continue
		}
		free := true
		for _, inviteeID := range e.Invitees {
			invitee, ok := resolve(inviteeID)
			if !ok || !invitee.Schedule().IsAvailable(cursor, candidateEnd) {
				free = false
				break
			}
		}
		if !free {
			continue
		}

		e.SetTime(cursor)
		host.Schedule().AddEvent(e)
		res.owners = append(res.owners, host.ID())
		for _, inviteeID := range e.Invitees {
			if inviteeID == host.ID() {
				continue
			}
			invitee, _ := resolve(inviteeID)
			invitee.Schedule().AddEvent(e)
			res.owners = append(res.owners, invitee.ID())
		}
		res.start = cursor
		res.end = candidateEnd
		return res, nil
	}
	return res, ErrNoSlotFound
}
