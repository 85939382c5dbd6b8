package requests

type CreateConnection struct {
	ApiUrl string `json:"apiUrl" validate:"required,min=4"`
	ApiKey string `json:"apiKey"`
}
