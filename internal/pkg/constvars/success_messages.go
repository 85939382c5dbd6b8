package constvars

// Success messages for clients
const (
	ConnectionCreatedSuccess = "connection encrypted successfully"
	DocumentListSuccess      = "documents fetched successfully"
	EventCreatedSuccess      = "event created successfully"
	EventFetchedSuccess      = "event fetched successfully"
	VoteRecordedSuccess      = "vote recorded successfully"
	ResultsFetchedSuccess    = "results fetched successfully"
	ExportCreatedSuccess     = "calendar export created successfully"
	HistoryFetchedSuccess    = "event history fetched successfully"
)
