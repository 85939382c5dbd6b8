package requests

type EventSlot struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Hour int    `json:"hour" validate:"gte=0,lte=23"`
}

type CreateEvent struct {
	Blob        string      `json:"blob" validate:"required"`
	DocumentID  string      `json:"documentId" validate:"required"`
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Timezone    string      `json:"timezone" validate:"required"`
	Slots       []EventSlot `json:"slots" validate:"required,min=1,dive"`
}

type SubmitVote struct {
	Blob            string       `json:"blob" validate:"required"`
	ParticipantName string       `json:"participantName" validate:"required"`
	Votes           map[int]bool `json:"votes" validate:"required"`
}
