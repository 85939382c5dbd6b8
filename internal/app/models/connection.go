package models

// Connection is the plaintext payload sealed inside an encrypted blob. It
// exists only in memory for the duration of a request.
type Connection struct {
	ApiUrl string `json:"apiUrl"`
	ApiKey string `json:"apiKey,omitempty"`
}
