package events

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"tablepoll-service/internal/app/config"
	"tablepoll-service/internal/app/contracts"
	"tablepoll-service/internal/app/models"
	"tablepoll-service/internal/pkg/constvars"
	"tablepoll-service/internal/pkg/dto/requests"
	"tablepoll-service/internal/pkg/dto/responses"
	"tablepoll-service/internal/pkg/exceptions"
	"tablepoll-service/internal/pkg/mdtable"
	"tablepoll-service/internal/pkg/utils"
	"time"

	"tablepoll-service/internal/pkg/craft_dto"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type eventUsecase struct {
	SecretsService  contracts.SecretsService
	BlockClient     contracts.CraftBlockClient
	RedisRepository contracts.RedisRepository
	LockerService   contracts.LockerService
	Publisher       contracts.MessagePublisher
	Storage         contracts.Storage
	CalendarService contracts.CalendarService
	HistoryUsecase  contracts.EventHistoryUsecase
	InternalConfig  *config.InternalConfig
	Log             *zap.Logger
}

var (
	eventUsecaseInstance contracts.EventUsecase
	onceEventUsecase     sync.Once
)

func NewEventUsecase(
	secretsService contracts.SecretsService,
	blockClient contracts.CraftBlockClient,
	redisRepository contracts.RedisRepository,
	lockerService contracts.LockerService,
	publisher contracts.MessagePublisher,
	storage contracts.Storage,
	calendarService contracts.CalendarService,
	historyUsecase contracts.EventHistoryUsecase,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.EventUsecase {
	onceEventUsecase.Do(func() {
		eventUsecaseInstance = &eventUsecase{
			SecretsService:  secretsService,
			BlockClient:     blockClient,
			RedisRepository: redisRepository,
			LockerService:   lockerService,
			Publisher:       publisher,
			Storage:         storage,
			CalendarService: calendarService,
			HistoryUsecase:  historyUsecase,
			InternalConfig:  internalConfig,
			Log:             logger,
		}
	})
	return eventUsecaseInstance
}

// cachedBlock is the redis representation of one fetched event block.
type cachedBlock struct {
	Markdown string `json:"markdown"`
	Timezone string `json:"timezone"`
}

func (uc *eventUsecase) openConnection(blob string) (*models.Connection, error) {
	plaintext, err := uc.SecretsService.Open(blob)
	if err != nil {
		return nil, err
	}

	connection := new(models.Connection)
	if err := json.Unmarshal(plaintext, connection); err != nil {
		return nil, exceptions.ErrSecretsDecrypt(err)
	}
	return connection, nil
}

func (uc *eventUsecase) CreateEvent(ctx context.Context, request *requests.CreateEvent) (*responses.CreateEvent, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("eventUsecase.CreateEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDocumentIDKey, request.DocumentID),
		zap.String(constvars.LoggingTimezoneKey, request.Timezone),
		zap.Int(constvars.LoggingSlotCountKey, len(request.Slots)),
	)

	connection, err := uc.openConnection(request.Blob)
	if err != nil {
		return nil, err
	}

	if _, err := mdtable.LoadTimezone(request.Timezone); err != nil {
		return nil, err
	}

	title := mdtable.SanitizeInput(request.Title, constvars.MaxLengthTitle)
	description := mdtable.SanitizeInput(request.Description, constvars.MaxLengthDescription)
	location := mdtable.SanitizeInput(request.Location, constvars.MaxLengthLocation)

	instants, err := uc.resolveSlotInstants(request.Slots, request.Timezone)
	if err != nil {
		return nil, err
	}

	pageID, err := uc.insertPageBlock(ctx, connection, request.DocumentID, title)
	if err != nil {
		return nil, err
	}

	if err := uc.insertMetadataBlocks(ctx, connection, pageID, description, location, request.Timezone); err != nil {
		return nil, err
	}

	blockID, err := uc.insertTableBlock(ctx, connection, pageID, instants, request.Timezone)
	if err != nil {
		return nil, err
	}

	voteURL := fmt.Sprintf("%s/event/%s", uc.InternalConfig.App.BaseUrl, blockID)
	resultsURL := fmt.Sprintf("%s/event/%s/results", uc.InternalConfig.App.BaseUrl, blockID)

	voteToken, err := utils.GenerateShareJWT(blockID, utils.ShareScopeVote, uc.InternalConfig.JWT.Secret, uc.InternalConfig.JWT.ExpTimeInHour)
	if err != nil {
		return nil, exceptions.ErrShareTokenSign(err)
	}
	resultsToken, err := utils.GenerateShareJWT(blockID, utils.ShareScopeResults, uc.InternalConfig.JWT.Secret, uc.InternalConfig.JWT.ExpTimeInHour)
	if err != nil {
		return nil, exceptions.ErrShareTokenSign(err)
	}

	historyEntry := &models.EventHistory{
		Fingerprint: utils.ConnectionFingerprint(request.Blob),
		BlockID:     blockID,
		Title:       title,
		VoteURL:     voteURL,
		ResultsURL:  resultsURL,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.HistoryUsecase.RecordEvent(ctx, historyEntry); err != nil {
		// History is a convenience, never a reason to fail creation.
		uc.Log.Warn("eventUsecase.CreateEvent error recording history",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	if err := uc.Publisher.Publish(ctx, constvars.RoutingKeyEventCreated, map[string]interface{}{
		"block_id":    blockID,
		"document_id": request.DocumentID,
		"title":       title,
		"slot_count":  len(instants),
	}); err != nil {
		uc.Log.Warn("eventUsecase.CreateEvent error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.Log.Info("eventUsecase.CreateEvent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlockIDKey, blockID),
	)
	return &responses.CreateEvent{
		BlockID:      blockID,
		VoteURL:      voteURL,
		ResultsURL:   resultsURL,
		VoteToken:    voteToken,
		ResultsToken: resultsToken,
	}, nil
}

func (uc *eventUsecase) resolveSlotInstants(slots []requests.EventSlot, timezone string) ([]time.Time, error) {
	instants := make([]time.Time, 0, len(slots))
	for _, slot := range slots {
		day, err := time.Parse("2006-01-02", slot.Date)
		if err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		instant, err := mdtable.ResolveWallClock(day.Year(), day.Month(), day.Day(), slot.Hour, 0, timezone)
		if err != nil {
			return nil, err
		}
		instants = append(instants, instant)
	}
	return instants, nil
}

func (uc *eventUsecase) insertPageBlock(ctx context.Context, connection *models.Connection, documentID, title string) (string, error) {
	pageBlock := craft_dto.Block{
		Type:      constvars.CraftBlockTypeText,
		TextStyle: constvars.CraftTextStylePage,
		Markdown:  title + " – Scheduling",
	}
	response, err := uc.BlockClient.InsertBlocks(ctx, connection.ApiUrl, connection.ApiKey, documentID, []craft_dto.Block{pageBlock})
	if err != nil {
		return "", err
	}
	if len(response.Items) == 0 || response.Items[0].ID == "" {
		return "", exceptions.ErrDocumentAPIStatus(fmt.Errorf("no page block returned"), constvars.StatusOK, constvars.ResourceBlocks)
	}
	return response.Items[0].ID, nil
}

func (uc *eventUsecase) insertMetadataBlocks(ctx context.Context, connection *models.Connection, pageID, description, location, timezone string) error {
	var blocks []craft_dto.Block
	if description != "" {
		blocks = append(blocks, craft_dto.Block{Type: constvars.CraftBlockTypeText, Markdown: description})
	}
	if location != "" {
		blocks = append(blocks, craft_dto.Block{Type: constvars.CraftBlockTypeText, Markdown: location})
	}
	blocks = append(blocks, craft_dto.Block{Type: constvars.CraftBlockTypeText, Markdown: "---"})
	// The timezone marker precedes the table so viewers decode slot headers
	// in the creator's timezone, not their own.
	blocks = append(blocks, craft_dto.Block{Type: constvars.CraftBlockTypeText, Markdown: mdtable.TimezoneMarker(timezone)})

	_, err := uc.BlockClient.InsertBlocks(ctx, connection.ApiUrl, connection.ApiKey, pageID, blocks)
	return err
}

func (uc *eventUsecase) insertTableBlock(ctx context.Context, connection *models.Connection, pageID string, instants []time.Time, timezone string) (string, error) {
	headers, err := mdtable.SlotHeaders(instants, timezone)
	if err != nil {
		return "", err
	}

	organiserRow := mdtable.Row{Cells: make([]mdtable.Cell, 0, len(headers))}
	organiserRow.Cells = append(organiserRow.Cells, mdtable.Cell{Value: "Organiser"})
	for range headers[1:] {
		organiserRow.Cells = append(organiserRow.Cells, mdtable.Cell{Value: mdtable.PresenceMarker})
	}

	table := &mdtable.Table{
		Headers: headers,
		Rows:    []mdtable.Row{organiserRow},
	}

	response, err := uc.BlockClient.InsertBlocks(ctx, connection.ApiUrl, connection.ApiKey, pageID, []craft_dto.Block{
		{Type: constvars.CraftBlockTypeText, Markdown: table.Markdown()},
	})
	if err != nil {
		return "", err
	}
	if len(response.Items) == 0 || response.Items[0].ID == "" {
		return "", exceptions.ErrDocumentAPIStatus(fmt.Errorf("no table block returned"), constvars.StatusOK, constvars.ResourceBlocks)
	}
	return response.Items[0].ID, nil
}

// loadEventTable fetches (or reads from cache) the block behind blockID and
// returns its parsed table together with the event timezone.
func (uc *eventUsecase) loadEventTable(ctx context.Context, connection *models.Connection, blockID string) (*mdtable.Table, string, error) {
	cacheKey := fmt.Sprintf(constvars.RedisKeyBlockCacheFormat, blockID)

	if cached, err := uc.RedisRepository.Get(ctx, cacheKey); err == nil && cached != "" {
		var entry cachedBlock
		if err := json.Unmarshal([]byte(cached), &entry); err == nil {
			if table := mdtable.ParseTable(entry.Markdown); table != nil {
				return table, entry.Timezone, nil
			}
		}
	}

	block, err := uc.BlockClient.FindBlockByID(ctx, connection.ApiUrl, connection.ApiKey, blockID, 1)
	if err != nil {
		return nil, "", err
	}

	markdown := craft_dto.ExtractMarkdown(block)
	if markdown == "" {
		return nil, "", exceptions.ErrEventTableNotFound()
	}

	timezone := ""
	for _, candidate := range craft_dto.CollectMarkdown(block) {
		if tz := mdtable.ExtractTimezone(candidate); tz != "" {
			timezone = tz
			break
		}
	}
	if timezone == "" {
		timezone = constvars.DefaultTimezone
	}

	table := mdtable.ParseTable(markdown)
	if table == nil {
		return nil, "", exceptions.ErrEventTableNotFound()
	}

	cacheTTL := time.Duration(uc.InternalConfig.Redis.BlockCacheTTLInSeconds) * time.Second
	if err := uc.RedisRepository.Set(ctx, cacheKey, cachedBlock{Markdown: markdown, Timezone: timezone}, cacheTTL); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("eventUsecase.loadEventTable error caching block",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	return table, timezone, nil
}

func (uc *eventUsecase) buildTimeSlots(table *mdtable.Table, timezone string) ([]responses.TimeSlot, error) {
	slots, err := mdtable.BuildTimeSlots(table, timezone, time.Now())
	if err != nil {
		return nil, err
	}

	result := make([]responses.TimeSlot, 0, len(slots))
	for i, slot := range slots {
		dayLabel, err := mdtable.FormatInstant(slot.Instant, timezone, constvars.DayLabelLayout)
		if err != nil {
			return nil, err
		}
		hourRange, err := mdtable.HourRangeLabel(slot.Instant, timezone)
		if err != nil {
			return nil, err
		}
		result = append(result, responses.TimeSlot{
			Index:        i,
			Date:         slot.Instant,
			Hour:         slot.Hour,
			DayLabel:     dayLabel,
			HourRange:    hourRange,
			Participants: slot.Participants,
		})
	}
	return result, nil
}

func (uc *eventUsecase) FindEventByBlockID(ctx context.Context, request *requests.FindEventByBlockID) (*responses.Event, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("eventUsecase.FindEventByBlockID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlockIDKey, request.BlockID),
	)

	connection, err := uc.openConnection(request.Blob)
	if err != nil {
		return nil, err
	}

	table, timezone, err := uc.loadEventTable(ctx, connection, request.BlockID)
	if err != nil {
		return nil, err
	}

	slots, err := uc.buildTimeSlots(table, timezone)
	if err != nil {
		return nil, err
	}

	return &responses.Event{
		BlockID:   request.BlockID,
		Timezone:  timezone,
		TimeSlots: slots,
	}, nil
}

func (uc *eventUsecase) SubmitVote(ctx context.Context, blockID string, request *requests.SubmitVote) (*responses.Vote, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("eventUsecase.SubmitVote called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlockIDKey, blockID),
	)

	connection, err := uc.openConnection(request.Blob)
	if err != nil {
		return nil, err
	}

	participantName := mdtable.SanitizeInput(request.ParticipantName, constvars.MaxLengthParticipantName)
	if participantName == "" {
		return nil, exceptions.ErrInputValidation(fmt.Errorf("participant name is empty after sanitization"))
	}

	lockKey := fmt.Sprintf(constvars.RedisKeyVoteLockFormat, blockID)
	lockTTL := time.Duration(uc.InternalConfig.Redis.VoteLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrVoteLockNotAcquired()
	}
	defer func() {
		if err := uc.LockerService.Unlock(ctx, lockKey, lockValue); err != nil {
			uc.Log.Error("eventUsecase.SubmitVote error releasing vote lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}()

	block, err := uc.BlockClient.FindBlockByID(ctx, connection.ApiUrl, connection.ApiKey, blockID, 1)
	if err != nil {
		return nil, err
	}
	markdown := craft_dto.ExtractMarkdown(block)
	table := mdtable.ParseTable(markdown)
	if table == nil {
		return nil, exceptions.ErrEventTableNotFound()
	}

	slotCount := len(table.Headers) - 1
	for index := range request.Votes {
		if index < 0 || index >= slotCount {
			return nil, exceptions.ErrSlotIndexOutOfRange(index)
		}
	}

	merged := mdtable.MergeVote(table, participantName, request.Votes)
	mergedMarkdown := merged.Markdown()

	updateTarget := block.ID
	if updateTarget == "" {
		updateTarget = blockID
	}
	if _, err := uc.BlockClient.UpdateBlockMarkdown(ctx, connection.ApiUrl, connection.ApiKey, updateTarget, mergedMarkdown); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf(constvars.RedisKeyBlockCacheFormat, blockID)
	if err := uc.RedisRepository.Delete(ctx, cacheKey); err != nil {
		uc.Log.Warn("eventUsecase.SubmitVote error invalidating block cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	if err := uc.Publisher.Publish(ctx, constvars.RoutingKeyVoteSubmitted, map[string]interface{}{
		"block_id":    blockID,
		"participant": participantName,
		"slot_count":  slotCount,
	}); err != nil {
		uc.Log.Warn("eventUsecase.SubmitVote error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.Log.Info("eventUsecase.SubmitVote succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlockIDKey, blockID),
		zap.String(constvars.LoggingParticipantKey, participantName),
	)
	return &responses.Vote{
		BlockID:   blockID,
		Markdown:  mergedMarkdown,
		SlotCount: slotCount,
	}, nil
}

func (uc *eventUsecase) FindResultsByBlockID(ctx context.Context, request *requests.FindResultsByBlockID) (*responses.Results, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("eventUsecase.FindResultsByBlockID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlockIDKey, request.BlockID),
	)

	connection, err := uc.openConnection(request.Blob)
	if err != nil {
		return nil, err
	}

	table, timezone, err := uc.loadEventTable(ctx, connection, request.BlockID)
	if err != nil {
		return nil, err
	}

	slots, err := uc.buildTimeSlots(table, timezone)
	if err != nil {
		return nil, err
	}

	participants := map[string]struct{}{}
	for _, row := range table.Rows {
		if name := row.Name(); name != "" {
			participants[strings.ToLower(name)] = struct{}{}
		}
	}

	results := make([]responses.SlotResult, 0, len(slots))
	bestIndex := -1
	bestCount := -1
	for _, slot := range slots {
		count := len(slot.Participants)
		results = append(results, responses.SlotResult{
			Index:        slot.Index,
			Date:         slot.Date,
			DayLabel:     slot.DayLabel,
			HourRange:    slot.HourRange,
			Participants: slot.Participants,
			Count:        count,
		})
		// Ties resolve to the earliest slot.
		if count > bestCount {
			bestCount = count
			bestIndex = slot.Index
		}
	}

	return &responses.Results{
		BlockID:           request.BlockID,
		Timezone:          timezone,
		TotalParticipants: len(participants),
		Slots:             results,
		BestSlotIndex:     bestIndex,
	}, nil
}

func (uc *eventUsecase) ExportSlot(ctx context.Context, request *requests.ExportSlot) (*responses.Export, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("eventUsecase.ExportSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlockIDKey, request.BlockID),
		zap.Int(constvars.LoggingSlotCountKey, request.SlotIndex),
	)

	connection, err := uc.openConnection(request.Blob)
	if err != nil {
		return nil, err
	}

	table, timezone, err := uc.loadEventTable(ctx, connection, request.BlockID)
	if err != nil {
		return nil, err
	}

	slots, err := uc.buildTimeSlots(table, timezone)
	if err != nil {
		return nil, err
	}

	if request.SlotIndex < 0 || request.SlotIndex >= len(slots) {
		return nil, exceptions.ErrSlotIndexOutOfRange(request.SlotIndex)
	}
	slot := slots[request.SlotIndex]

	invite := &contracts.SlotInvite{
		UID:          fmt.Sprintf("%s-slot-%d@tablepoll", request.BlockID, slot.Index),
		Summary:      fmt.Sprintf("Scheduled meeting (%s %s)", slot.DayLabel, slot.HourRange),
		Description:  fmt.Sprintf("Confirmed via scheduling poll, %d participant(s)", len(slot.Participants)),
		Start:        slot.Date,
		End:          slot.Date.Add(time.Hour),
		Participants: slot.Participants,
	}
	ics, err := uc.CalendarService.BuildSlotInvite(invite)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("%s/slot-%d.ics", request.BlockID, slot.Index)
	bucket := uc.InternalConfig.Minio.BucketName
	if err := uc.Storage.UploadObject(ctx, bucket, objectName, ics, constvars.MIMETextCalendar); err != nil {
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.Minio.MinioPreSignedUrlObjectExpiryTimeInHours) * time.Hour
	downloadURL, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, bucket, objectName, expiry)
	if err != nil {
		return nil, err
	}

	return &responses.Export{
		DownloadURL: downloadURL,
		ExpiresAt:   time.Now().UTC().Add(expiry),
	}, nil
}
