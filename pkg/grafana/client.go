package grafana

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// RequestTimeout bounds a single renderer fetch. Rendering a panel can be
// slow, so the chat worker warns the user before this call starts.
const RequestTimeout = 60 * time.Second

// Client fetches rendered panel images from the Grafana image renderer.
type Client struct {
	httpClient *resty.Client
}

// NewClient creates a renderer client authenticated with the given API key.
// A render is a single shot: no retries, one fixed timeout.
func NewClient(apiKey string) *Client {
	client := resty.New()
	client.SetTimeout(RequestTimeout)
	client.SetAuthToken(apiKey)

	return &Client{httpClient: client}
}

// GetPNG fetches the rendered image for a composed request and returns the
// raw bytes. Transport failures and non-200 responses are logged here and
// returned as errors for the caller to surface to the user.
func (c *Client) GetPNG(ctx context.Context, req RenderRequest) ([]byte, error) {
	log.Debug().Str("url", req.URL).Interface("payload", req.Payload).Msg("Begin renderer GET")

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(req.Payload).
		Get(req.URL)

	if err != nil {
		log.Error().Err(err).Str("url", req.URL).Msg("An error occurred while accessing the renderer")
		return nil, fmt.Errorf("failed to reach renderer: %w", err)
	}

	if resp.StatusCode() != 200 {
		log.Error().Int("status", resp.StatusCode()).Str("url", req.URL).Msg("Renderer request failed")
		return nil, fmt.Errorf("renderer returned status %d", resp.StatusCode())
	}

	log.Debug().Int("status", resp.StatusCode()).Int("bytes", len(resp.Body())).Msg("Renderer request complete")
	return resp.Body(), nil
}
