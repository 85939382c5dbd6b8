package requests

type ListDocuments struct {
	Blob string `json:"blob" validate:"required"`
}

type FindEventByBlockID struct {
	Blob    string `json:"blob" validate:"required"`
	BlockID string `json:"blockId" validate:"required"`
}

type FindResultsByBlockID struct {
	Blob    string `json:"blob" validate:"required"`
	BlockID string `json:"blockId" validate:"required"`
}

type ExportSlot struct {
	Blob      string `json:"blob" validate:"required"`
	BlockID   string `json:"blockId" validate:"required"`
	SlotIndex int    `json:"slotIndex" validate:"gte=0"`
}

type ListHistory struct {
	Blob string `json:"blob" validate:"required"`
}
