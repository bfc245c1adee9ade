// Package ical converts between planner events and iCalendar
// payloads. Import produces fully-formed placed events and performs no
// conflict validation; a file may legally contain overlaps, the
// schedule loads it anyway.
package ical

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"huddle/src-server/planner"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const onlineProperty = "X-HUDDLE-ONLINE"

// FromIcal parses an ICS payload into placed planner events.
// Malformed VEVENTs are logged and skipped; the rest of the file still
// loads.
func FromIcal(body []byte, loc *time.Location) ([]*planner.Event, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("ical.FromIcal: empty payload")
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ical.FromIcal: %w", err)
	}

	events := make([]*planner.Event, 0)
	for _, ve := range cal.Events() {
		e, err := fromVEvent(ve, loc)
		if err != nil {
			slog.Warn("ical: skipping vevent", "error", err)
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func fromVEvent(ve *ics.VEvent, loc *time.Location) (*planner.Event, error) {
	id := ""
	if p := ve.GetProperty(ics.ComponentPropertyUniqueId); p != nil {
		id = p.Value
	}
	if id == "" {
		id = uuid.NewString()
	}

	name := ""
	if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil {
		name = p.Value
	}
	location := ""
	if p := ve.GetProperty(ics.ComponentPropertyLocation); p != nil {
		location = p.Value
	}

	hostID := ""
	if p := ve.GetProperty(ics.ComponentPropertyOrganizer); p != nil {
		hostID = strings.TrimPrefix(p.Value, "mailto:")
	}

	invitees := make([]string, 0)
	for _, p := range ve.Properties {
		if p.IANAToken == string(ics.ComponentPropertyAttendee) {
			invitees = append(invitees, strings.TrimPrefix(p.Value, "mailto:"))
		}
	}

	isOnline := false
	if p := ve.GetProperty(ics.ComponentProperty(onlineProperty)); p != nil {
		isOnline = strings.EqualFold(p.Value, "TRUE")
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("vevent %q: no start: %w", id, err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return nil, fmt.Errorf("vevent %q: no end: %w", id, err)
	}

	e, err := planner.NewEvent(name, start.In(loc), end.In(loc), location, isOnline, invitees, hostID)
	if err != nil {
		return nil, fmt.Errorf("vevent %q: %w", id, err)
	}
	e.ID = id
	return e, nil
}

// ToIcal serializes a schedule's events into an ICS payload. The
// caller hands in the defensive copy from Schedule.Events.
func ToIcal(events []*planner.Event, calendarName string) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//huddle//calendar//EN")
	if calendarName != "" {
		cal.SetXWRCalName(calendarName)
	}

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetSummary(e.Name)
		ve.SetStartAt(e.Start.UTC())
		ve.SetEndAt(e.End.UTC())
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.HostID != "" {
			ve.SetOrganizer("mailto:" + e.HostID)
		}
		for _, inviteeID := range e.Invitees {
			ve.AddAttendee(inviteeID)
		}
		if e.IsOnline {
			ve.AddProperty(ics.ComponentProperty(onlineProperty), "TRUE")
		}
		ve.SetDtStampTime(time.Now().UTC())
	}

	return cal.Serialize()
}
