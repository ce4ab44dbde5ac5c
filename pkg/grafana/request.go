package grafana

import (
	"fmt"
	"net/url"
	"time"

	"github.com/sabio/grafana-chatops/pkg/panels"
)

// RenderRequest is the fully composed renderer call: the d-solo URL plus its
// query payload. Construction is pure so it can be tested without a server.
type RenderRequest struct {
	URL     string
	Payload map[string]string
}

// BuildRenderRequest assembles the render URL and query payload from the
// invocation's settings, the target dashboard and panel, and the resolved
// variable values. The time window is [now-timespan, now]; from/to are
// omitted when the endpoints coincide, and width/height are omitted unless
// positive.
func BuildRenderRequest(settings *Settings, dashboard panels.Dashboard, panel panels.Panel, values map[string]string, now time.Time) RenderRequest {
	payload := map[string]string{
		"orgId":   fmt.Sprintf("%d", settings.OrgID),
		"panelId": fmt.Sprintf("%d", panel.PanelID),
		"tz":      url.QueryEscape(settings.Timezone),
		"theme":   settings.Theme,
	}

	from := fmt.Sprintf("%d", now.Add(-settings.Timespan).UnixMilli())
	to := fmt.Sprintf("%d", now.UnixMilli())
	if from != to {
		payload["from"] = from
		payload["to"] = to
	}
	if settings.Width > 0 {
		payload["width"] = fmt.Sprintf("%d", settings.Width)
	}
	if settings.Height > 0 {
		payload["height"] = fmt.Sprintf("%d", settings.Height)
	}

	for _, variable := range panel.Variables {
		if !variable.InURL() {
			continue
		}
		if value := values[variable.Name]; value != "" {
			payload["var-"+variable.Name] = value
		}
	}

	return RenderRequest{
		URL:     fmt.Sprintf("%s/render/d-solo/%s/%s", settings.URL, dashboard.UID, dashboard.Slug),
		Payload: payload,
	}
}
