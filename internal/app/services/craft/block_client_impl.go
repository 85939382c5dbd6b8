package craft

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"tablepoll-service/internal/app/contracts"
	"tablepoll-service/internal/pkg/constvars"
	"tablepoll-service/internal/pkg/craft_dto"
	"tablepoll-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	blockClientInstance contracts.CraftBlockClient
	onceBlockClient     sync.Once
)

type blockClient struct {
	apiClient
	Log *zap.Logger
}

func NewBlockClient(requestsPerSecond float64, burst int, logger *zap.Logger) contracts.CraftBlockClient {
	onceBlockClient.Do(func() {
		blockClientInstance = &blockClient{
			apiClient: newAPIClient(requestsPerSecond, burst),
			Log:       logger,
		}
	})
	return blockClientInstance
}

func (c *blockClient) FindBlockByID(ctx context.Context, apiURL, apiKey, blockID string, maxDepth int) (*craft_dto.Block, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("blockClient.FindBlockByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlockIDKey, blockID),
	)

	if err := c.wait(ctx); err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	endpoint := fmt.Sprintf("%s/blocks?id=%s&maxDepth=%s",
		apiURL, url.QueryEscape(blockID), strconv.Itoa(maxDepth))
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, endpoint, nil)
	if err != nil {
		c.Log.Error("blockClient.FindBlockByID error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	setHeaders(req, apiKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("blockClient.FindBlockByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrDocumentAPIStatus(nil, resp.StatusCode, constvars.ResourceBlocks)
	}

	// The endpoint may answer with the block itself or with a
	// {blocks:[...]} envelope. Decode once and unwrap.
	block := new(craft_dto.Block)
	if err := json.NewDecoder(resp.Body).Decode(block); err != nil {
		c.Log.Error("blockClient.FindBlockByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceBlocks)
	}
	if block.ID == "" && len(block.Blocks) > 0 {
		block = &block.Blocks[0]
	}

	c.Log.Info("blockClient.FindBlockByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlockIDKey, block.ID),
	)
	return block, nil
}

func (c *blockClient) InsertBlocks(ctx context.Context, apiURL, apiKey, documentID string, blocks []craft_dto.Block) (*craft_dto.InsertBlocksResponse, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("blockClient.InsertBlocks called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDocumentIDKey, documentID),
		zap.Int(constvars.LoggingSlotCountKey, len(blocks)),
	)

	requestJSON, err := json.Marshal(craft_dto.InsertBlocksRequest{
		Blocks: blocks,
		Position: craft_dto.InsertPosition{
			Position: "end",
			PageID:   documentID,
		},
	})
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	if err := c.wait(ctx); err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, apiURL+"/blocks", bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("blockClient.InsertBlocks error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	setHeaders(req, apiKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("blockClient.InsertBlocks error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		return nil, exceptions.ErrDocumentAPIStatus(nil, resp.StatusCode, constvars.ResourceBlocks)
	}

	result := new(craft_dto.InsertBlocksResponse)
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		c.Log.Error("blockClient.InsertBlocks error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceBlocks)
	}

	c.Log.Info("blockClient.InsertBlocks succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingSlotCountKey, len(result.Items)),
	)
	return result, nil
}

func (c *blockClient) UpdateBlockMarkdown(ctx context.Context, apiURL, apiKey, blockID, markdown string) (*craft_dto.Block, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("blockClient.UpdateBlockMarkdown called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBlockIDKey, blockID),
	)

	requestJSON, err := json.Marshal(craft_dto.UpdateBlocksRequest{
		Blocks: []craft_dto.Block{
			{ID: blockID, Markdown: markdown},
		},
	})
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	if err := c.wait(ctx); err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPut, apiURL+"/blocks", bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("blockClient.UpdateBlockMarkdown error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	setHeaders(req, apiKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("blockClient.UpdateBlockMarkdown error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrDocumentAPIStatus(nil, resp.StatusCode, constvars.ResourceBlocks)
	}

	result := new(craft_dto.InsertBlocksResponse)
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		c.Log.Error("blockClient.UpdateBlockMarkdown error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceBlocks)
	}

	if len(result.Items) > 0 {
		return &result.Items[0], nil
	}
	return &craft_dto.Block{ID: blockID, Markdown: markdown}, nil
}
