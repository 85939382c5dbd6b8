package responses

type Connection struct {
	Blob string `json:"blob"`
}

type Document struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	IsDeleted bool   `json:"isDeleted"`
}
