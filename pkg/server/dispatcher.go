package server

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/sabio/grafana-chatops/pkg/chatops"
)

// webhookDispatcher implements chatops.Dispatcher over a chat platform's
// response_url webhook. Messages are Slack-shaped JSON payloads; platforms
// with richer APIs get their own Dispatcher implementation.
type webhookDispatcher struct {
	responseURL string
	userID      string
	publicURL   string
	images      *imageStore
	httpClient  *resty.Client
}

func newWebhookDispatcher(responseURL, userID, publicURL string, images *imageStore) *webhookDispatcher {
	client := resty.New()
	client.SetTimeout(15 * time.Second)

	return &webhookDispatcher{
		responseURL: responseURL,
		userID:      userID,
		publicURL:   publicURL,
		images:      images,
		httpClient:  client,
	}
}

func (d *webhookDispatcher) post(payload map[string]any) error {
	resp, err := d.httpClient.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(d.responseURL)
	if err != nil {
		return fmt.Errorf("failed to post to response url: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("response url returned status %d", resp.StatusCode())
	}
	return nil
}

func (d *webhookDispatcher) SendMarkdown(text string, ephemeral bool) error {
	responseType := "in_channel"
	if ephemeral {
		responseType = "ephemeral"
	}
	return d.post(map[string]any{"response_type": responseType, "text": text})
}

// SendBusyIndicator is a no-op: outgoing webhooks have no typing indicator.
// The standby markdown sent alongside it covers the user-facing need.
func (d *webhookDispatcher) SendBusyIndicator() error {
	return nil
}

func (d *webhookDispatcher) SendError(text string) error {
	return d.post(map[string]any{"response_type": "ephemeral", "text": text})
}

func (d *webhookDispatcher) SendImage(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", path, err)
	}

	name := filepath.Base(path)
	d.images.put(name, data)
	imageURL := fmt.Sprintf("%s/images/%s", d.publicURL, name)

	log.Debug().Str("image_url", imageURL).Msg("Delivering rendered panel")
	return d.post(map[string]any{
		"response_type": "in_channel",
		"blocks": []map[string]any{
			{"type": "image", "image_url": imageURL, "alt_text": name},
		},
	})
}

func (d *webhookDispatcher) SendHeader(header chatops.ResponseHeader) error {
	text := fmt.Sprintf("*%s*: /%s %s", header.Description, header.Command, header.Subcommand)
	for _, arg := range header.Args {
		text += fmt.Sprintf("\n> %s: %s", arg.Label, arg.Value)
	}

	block := map[string]any{
		"type": "section",
		"text": map[string]any{"type": "mrkdwn", "text": text},
	}
	if header.Logo.URL != "" {
		block["accessory"] = map[string]any{
			"type":      "image",
			"image_url": header.Logo.URL,
			"alt_text":  header.Logo.AltText,
		}
	}
	return d.post(map[string]any{
		"response_type": "in_channel",
		"blocks":        []map[string]any{block},
	})
}

func (d *webhookDispatcher) PromptFromMenu(actionID, helperText string, choices []chatops.Choice) error {
	options := make([]map[string]any, 0, len(choices))
	for _, choice := range choices {
		options = append(options, map[string]any{
			"text":  map[string]any{"type": "plain_text", "text": choice.Label},
			"value": choice.Value,
		})
	}

	return d.post(map[string]any{
		"response_type": "ephemeral",
		"blocks": []map[string]any{
			{
				"type": "section",
				"text": map[string]any{"type": "mrkdwn", "text": helperText},
				"accessory": map[string]any{
					"type":      "static_select",
					"action_id": actionID,
					"options":   options,
				},
			},
		},
	})
}

func (d *webhookDispatcher) UserMention() string {
	if d.userID == "" {
		return "there"
	}
	return fmt.Sprintf("<@%s>", d.userID)
}

func (d *webhookDispatcher) StaticURL(path string) string {
	return fmt.Sprintf("%s/static/%s", d.publicURL, path)
}
