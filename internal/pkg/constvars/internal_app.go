package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	ResourceConnections = "connections"
	ResourceDocuments   = "documents"
	ResourceEvents      = "events"
	ResourceBlocks      = "blocks"
	ResourceHistory     = "history"
)

const (
	ResponseUnknown = "unknown"
)

const (
	MongoCollectionEventHistory = "event_history"
)

const (
	URLParamBlockID = "blockID"
	QueryParamBlob  = "blob"
	QueryParamSlot  = "slot"
)

const (
	CraftBlockTypeText = "text"
	CraftTextStylePage = "page"
)

const (
	RoutingKeyEventCreated  = "event.created"
	RoutingKeyVoteSubmitted = "vote.submitted"
)

const (
	DayLabelLayout = "Mon, 02 Jan"
)

const (
	RedisKeyVoteLockFormat   = "tablepoll:vote-lock:%s"
	RedisKeyBlockCacheFormat = "tablepoll:block:%s"
)

const (
	EventHistoryLimit = 8
)

// Max lengths for user-provided free text embedded into markdown. Policy
// constants, not protocol requirements.
const (
	MaxLengthTitle           = 200
	MaxLengthDescription     = 500
	MaxLengthLocation        = 300
	MaxLengthParticipantName = 100
)

const (
	DefaultTimezone = "UTC"
)
