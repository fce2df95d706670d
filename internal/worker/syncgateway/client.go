package syncgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"shifttrack.service/internal/core/model"
)

// Change is one reconciled mutation pushed to the cloud sync endpoint.
// Deletions carry no entry body, only the id.
type Change struct {
	EntryID string           `json:"entryId"`
	Deleted bool             `json:"deleted,omitempty"`
	Entry   *model.TimeEntry `json:"entry,omitempty"`
}

// GatewayClient contract for the cloud sync endpoint
type GatewayClient interface {
	PushChange(ctx context.Context, change Change) error
}

// HTTPClient gateway client using HTTP
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// NewHTTPClient new HTTPClient
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// PushChange sends the entry change to the cloud sync gateway
func (c *HTTPClient) PushChange(ctx context.Context, change Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to marshal sync payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create sync gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call sync gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sync gateway returned non-successful status code: %d", resp.StatusCode)
	}

	log.Ctx(ctx).Debug().Str("entry_id", change.EntryID).Msg("Pushed entry change to sync gateway")
	return nil
}
