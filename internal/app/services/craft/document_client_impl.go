package craft

import (
	"context"
	"net/http"
	"sync"
	"tablepoll-service/internal/app/contracts"
	"tablepoll-service/internal/pkg/constvars"
	"tablepoll-service/internal/pkg/craft_dto"
	"tablepoll-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	documentClientInstance contracts.CraftDocumentClient
	onceDocumentClient     sync.Once
)

type documentClient struct {
	apiClient
	Log *zap.Logger
}

func NewDocumentClient(requestsPerSecond float64, burst int, logger *zap.Logger) contracts.CraftDocumentClient {
	onceDocumentClient.Do(func() {
		documentClientInstance = &documentClient{
			apiClient: newAPIClient(requestsPerSecond, burst),
			Log:       logger,
		}
	})
	return documentClientInstance
}

func (c *documentClient) FindAllDocuments(ctx context.Context, apiURL, apiKey string) ([]craft_dto.Document, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("documentClient.FindAllDocuments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := c.wait(ctx); err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, apiURL+"/documents", nil)
	if err != nil {
		c.Log.Error("documentClient.FindAllDocuments error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	setHeaders(req, apiKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("documentClient.FindAllDocuments error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrDocumentAPIStatus(nil, resp.StatusCode, constvars.ResourceDocuments)
	}

	result := new(craft_dto.DocumentsResponse)
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		c.Log.Error("documentClient.FindAllDocuments error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceDocuments)
	}

	c.Log.Info("documentClient.FindAllDocuments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingSlotCountKey, len(result.Items)),
	)
	return result.Items, nil
}
