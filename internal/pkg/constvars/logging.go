package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingBlockIDKey            = "block_id"
	LoggingDocumentIDKey         = "document_id"
	LoggingTimezoneKey           = "timezone"
	LoggingParticipantKey        = "participant"
	LoggingSlotCountKey          = "slot_count"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingBucketKey             = "bucket"
	LoggingObjectNameKey         = "object_name"
	LoggingRoutingKeyKey         = "routing_key"
	LoggingFingerprintKey        = "fingerprint"
)
