package chatops

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sabio/grafana-chatops/pkg/grafana"
	"github.com/sabio/grafana-chatops/pkg/inventory"
	"github.com/sabio/grafana-chatops/pkg/panels"
)

const (
	logoPath = "grafana/grafana_icon.png"
	logoAlt  = "Grafana Logo"
)

// Worker runs one panel invocation end to end: parse the chat arguments,
// resolve variables against the inventory, apply display overrides, fetch
// the rendered image and hand it back to the chat.
type Worker struct {
	settings *grafana.Settings
	catalog  *panels.Catalog
	registry *inventory.Registry
	renderer *grafana.Client
}

// NewWorker wires the worker's collaborators. settings is the immutable
// service-wide default; every invocation works on its own clone.
func NewWorker(settings *grafana.Settings, catalog *panels.Catalog, registry *inventory.Registry, renderer *grafana.Client) *Worker {
	return &Worker{
		settings: settings,
		catalog:  catalog,
		registry: registry,
		renderer: renderer,
	}
}

// HandleSubcommand handles one chat invocation and reports pass or fail to
// the chat framework. Every error class is converted to a chat-visible
// message here; nothing propagates out to crash the worker pool.
func (w *Worker) HandleSubcommand(ctx context.Context, dispatcher Dispatcher, subcommand string, args []string) bool {
	dashboard, panel, found := w.catalog.Find(subcommand)
	if !found {
		_ = dispatcher.SendError(fmt.Sprintf("Command %s Not Found!", subcommand))
		return false
	}

	settings := w.settings.Clone()

	parsed, err := ParseArgs(panel, settings, args)
	if err != nil {
		_ = dispatcher.SendError(err.Error())
		return false
	}

	actionID := strings.TrimSpace(fmt.Sprintf("%s %s %s", SlashCommand, subcommand, strings.Join(args, " ")))
	values, err := ResolveVariables(ctx, dispatcher, w.registry, panel, parsed, actionID)
	if err != nil {
		var panelErr *PanelConfigError
		switch {
		case errors.Is(err, ErrNeedsUserChoice):
			// Not a failure: a menu was shown and the framework will
			// re-invoke with the selection.
		case errors.As(err, &panelErr):
			_ = dispatcher.SendError(fmt.Sprintf("Sorry, %s there was an error with the panel definition, %v", dispatcher.UserMention(), panelErr))
		default:
			_ = dispatcher.SendError(err.Error())
		}
		return false
	}

	if err := applyDefaultArgs(settings, parsed); err != nil {
		_ = dispatcher.SendError(err.Error())
		return false
	}

	return w.returnPanel(ctx, dispatcher, settings, dashboard, panel, parsed, values, subcommand)
}

// applyDefaultArgs applies the five default display parameters to the
// invocation's settings, each fully validated. The first failure aborts;
// parameters applied earlier in the pass stay applied, which is harmless
// here since the settings clone dies with the invocation.
func applyDefaultArgs(settings *grafana.Settings, parsed map[string]string) error {
	for _, param := range grafana.DefaultParams {
		if err := settings.Set(param, parsed[param]); err != nil {
			return &DefaultArgsError{Param: param, Value: parsed[param], Err: err}
		}
	}
	return nil
}

func (w *Worker) returnPanel(ctx context.Context, dispatcher Dispatcher, settings *grafana.Settings, dashboard panels.Dashboard, panel panels.Panel, parsed, values map[string]string, subcommand string) bool {
	_ = dispatcher.SendMarkdown(fmt.Sprintf(
		"Standby %s, I'm getting that result.\nPlease be patient as this can take up to %d seconds.",
		dispatcher.UserMention(), int(grafana.RequestTimeout.Seconds())), true)
	_ = dispatcher.SendBusyIndicator()

	now := time.Now().UTC()
	request := grafana.BuildRenderRequest(settings, dashboard, panel, values, now)

	png, err := w.renderer.GetPNG(ctx, request)
	if err != nil {
		_ = dispatcher.SendError("An error occurred while accessing Grafana")
		return false
	}

	var headerArgs []Choice
	for _, variable := range panel.Variables {
		if variable.InCmd() {
			headerArgs = append(headerArgs, Choice{Label: variable.Display(), Value: parsed[variable.Name]})
		}
	}
	if len(headerArgs) > 5 {
		headerArgs = headerArgs[:5]
	}
	_ = dispatcher.SendHeader(ResponseHeader{
		Command:     SlashCommand,
		Subcommand:  subcommand,
		Args:        headerArgs,
		Description: panel.FriendlyName,
		Logo:        ImageElement{URL: dispatcher.StaticURL(logoPath), AltText: logoAlt},
	})

	tempDir, err := os.MkdirTemp("", "grafana-chatops")
	if err != nil {
		log.Error().Err(err).Msg("Failed to create image temp dir")
		_ = dispatcher.SendError("An error occurred while processing the image")
		return false
	}
	defer os.RemoveAll(tempDir)

	imgPath := filepath.Join(tempDir, imageFilename(subcommand, settings.Timespan, now))
	if err := os.WriteFile(imgPath, png, 0o600); err != nil {
		log.Error().Err(err).Str("path", imgPath).Msg("Failed to write image file")
		_ = dispatcher.SendError("An error occurred while processing the image")
		return false
	}

	if err := dispatcher.SendImage(imgPath); err != nil {
		log.Error().Err(err).Msg("Failed to deliver image")
		return false
	}
	return true
}

// imageFilename stamps the image name with the rendered time window. Colons
// are avoided throughout: Microsoft Teams silently drops files with ":" in
// the name.
func imageFilename(subcommand string, timespan time.Duration, now time.Time) string {
	const stamp = "2006-01-02-15-04-05"

	timeStr := now.Format(stamp)
	if timespan != 0 {
		timeStr = fmt.Sprintf("%s-to-%s", now.Add(-timespan).Format(stamp), timeStr)
	}
	return fmt.Sprintf("%s_%s.png", subcommand, timeStr)
}
