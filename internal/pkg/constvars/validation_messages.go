package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"url":      "must be a valid URL",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"dive":     "has an invalid element",
	"timezone": "must be a valid IANA timezone identifier",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min": true,
	"max": true,
	"gte": true,
	"lte": true,
}
