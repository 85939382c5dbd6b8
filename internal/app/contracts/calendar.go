package contracts

import "time"

type SlotInvite struct {
	UID          string
	Summary      string
	Description  string
	Location     string
	Start        time.Time
	End          time.Time
	Participants []string
}

type CalendarService interface {
	BuildSlotInvite(invite *SlotInvite) ([]byte, error)
}
