package calendar

import (
	"fmt"
	"tablepoll-service/internal/app/contracts"
	"tablepoll-service/internal/pkg/exceptions"
	"time"

	ical "github.com/arran4/golang-ical"
)

type calendarService struct{}

func NewCalendarService() contracts.CalendarService {
	return &calendarService{}
}

// BuildSlotInvite renders a single-event VCALENDAR for a chosen slot.
// Instants are UTC; consuming calendar apps localize on import.
func (c *calendarService) BuildSlotInvite(invite *contracts.SlotInvite) ([]byte, error) {
	if invite == nil {
		return nil, exceptions.ErrCalendarExport(fmt.Errorf("invite must not be nil"))
	}
	if !invite.End.After(invite.Start) {
		return nil, exceptions.ErrCalendarExport(fmt.Errorf("slot end %s is not after start %s", invite.End, invite.Start))
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//tablepoll//EN")

	event := cal.AddEvent(invite.UID)
	event.SetCreatedTime(time.Now().UTC())
	event.SetDtStampTime(time.Now().UTC())
	event.SetStartAt(invite.Start.UTC())
	event.SetEndAt(invite.End.UTC())
	event.SetSummary(invite.Summary)
	if invite.Description != "" {
		event.SetDescription(invite.Description)
	}
	if invite.Location != "" {
		event.SetLocation(invite.Location)
	}
	for _, participant := range invite.Participants {
		event.AddAttendee(participant, ical.ParticipationStatusAccepted)
	}

	return []byte(cal.Serialize()), nil
}
