package responses

import "time"

type TimeSlot struct {
	Index        int       `json:"index"`
	Date         time.Time `json:"date"`
	Hour         int       `json:"hour"`
	DayLabel     string    `json:"dayLabel"`
	HourRange    string    `json:"hourRange"`
	Participants []string  `json:"participants"`
}

type Event struct {
	BlockID   string     `json:"blockId"`
	Timezone  string     `json:"timezone"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

type CreateEvent struct {
	BlockID      string `json:"blockId"`
	VoteURL      string `json:"voteUrl"`
	ResultsURL   string `json:"resultsUrl"`
	VoteToken    string `json:"voteToken"`
	ResultsToken string `json:"resultsToken"`
}

type Vote struct {
	BlockID   string `json:"blockId"`
	Markdown  string `json:"markdown"`
	SlotCount int    `json:"slotCount"`
}

type SlotResult struct {
	Index        int       `json:"index"`
	Date         time.Time `json:"date"`
	DayLabel     string    `json:"dayLabel"`
	HourRange    string    `json:"hourRange"`
	Participants []string  `json:"participants"`
	Count        int       `json:"count"`
}

type Results struct {
	BlockID           string       `json:"blockId"`
	Timezone          string       `json:"timezone"`
	TotalParticipants int          `json:"totalParticipants"`
	Slots             []SlotResult `json:"slots"`
	BestSlotIndex     int          `json:"bestSlotIndex"`
}

type Export struct {
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type HistoryEntry struct {
	BlockID       string    `json:"blockId"`
	Title         string    `json:"title"`
	DocumentTitle string    `json:"documentTitle,omitempty"`
	VoteURL       string    `json:"voteUrl"`
	ResultsURL    string    `json:"resultsUrl"`
	CreatedAt     time.Time `json:"createdAt"`
}
