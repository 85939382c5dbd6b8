package constvars

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "unable to process request"
	ErrClientSomethingWrongWithApplication = "something went wrong with the application"
	ErrClientServerLongRespond             = "server took too long to respond"
	ErrClientInvalidTimezone               = "unknown timezone identifier"
	ErrClientDocumentAPIFailed             = "the document service rejected the request"
	ErrClientEventTableNotFound            = "no event table was found at this block"
	ErrClientUnknownTimeSlot               = "unknown time slot"
	ErrClientVoteInProgress                = "another vote is being recorded for this event, try again shortly"
	ErrClientInvalidShareToken             = "invalid or expired share link"
)

// Error messages for developers
const (
	ErrDevValidationFailed       = "request validation failed"
	ErrDevCannotParseJSON        = "failed to parse JSON request body"
	ErrDevCannotMarshalJSON      = "failed to marshal value to JSON"
	ErrDevBuildRequest           = "failed to build outbound HTTP request"
	ErrDevSendRequest            = "failed to send outbound HTTP request"
	ErrDevDecodeResponse         = "failed to decode %s response"
	ErrDevDocumentAPIStatus      = "document API returned status %d for %s"
	ErrDevInvalidTimezone        = "failed to load IANA timezone %q"
	ErrDevEventTableNotFound     = "block markdown holds no parseable table"
	ErrDevSlotIndexOutOfRange    = "slot index %d out of range"
	ErrDevVoteLockNotAcquired    = "vote lock for block is held by another request"
	ErrDevServerDeadlineExceeded = "request deadline exceeded"
	ErrDevRedisSetData           = "failed to set data to redis"
	ErrDevRedisGetData           = "failed to get data from redis"
	ErrDevRedisDeleteData        = "failed to delete data from redis"
	ErrDevRedisUnlock            = "failed to release redis lock"
	ErrDevDBFailedToFindDocument = "failed to find document in database"
	ErrDevDBFailedToInsertDoc    = "failed to insert document into database"
	ErrDevDBFailedToIterateDocs  = "failed to iterate documents from database"
	ErrDevDBFailedToDeleteDoc    = "failed to delete document from database"
	ErrDevRabbitMQOpenChannel    = "failed to open rabbitmq channel"
	ErrDevRabbitMQPublish        = "failed to publish message to rabbitmq"
	ErrDevMinioCreateObject      = "failed to store object in bucket %s"
	ErrDevMinioPresignedURL      = "failed to create presigned URL for bucket %s"
	ErrDevSecretsEncrypt         = "failed to encrypt connection secrets"
	ErrDevSecretsDecrypt         = "failed to decrypt connection secrets blob"
	ErrDevShareTokenSign         = "failed to sign share token"
	ErrDevShareTokenInvalid      = "share token is invalid or expired"
	ErrDevCalendarExportFailed   = "failed to serialize calendar export"
	ErrDevMasterKeyMissing       = "MASTER_KEY is not configured"
	ErrDevMissingRequestID       = "request ID missing from context"
)
