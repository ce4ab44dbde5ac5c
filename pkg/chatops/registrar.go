package chatops

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/sabio/grafana-chatops/pkg/grafana"
	"github.com/sabio/grafana-chatops/pkg/panels"
)

// SlashCommand is the top-level chat command all panel subcommands hang off.
const SlashCommand = "grafana"

// Subcommand describes one registered panel command for the chat framework:
// its name, its parameter list and its help text.
type Subcommand struct {
	Name   string
	Params []string
	Doc    string
}

// Subcommands derives the chat subcommand set from the panel catalog: one
// get-{command} per panel, taking the panel's chat-visible variables plus
// the five default display parameters with their current defaults.
func Subcommands(catalog *panels.Catalog, settings *grafana.Settings) []Subcommand {
	defaults := lo.Map(grafana.DefaultParams[:], func(param string, _ int) string {
		return fmt.Sprintf("%s=%s", param, settings.Get(param))
	})

	var subcommands []Subcommand
	for _, dashboard := range catalog.Dashboards {
		for _, panel := range dashboard.Panels {
			variables := lo.FilterMap(panel.Variables, func(v panels.Variable, _ int) (string, bool) {
				return v.Name, v.InCmd()
			})
			subcommands = append(subcommands, Subcommand{
				Name:   panel.Subcommand(),
				Params: append(variables, defaults...),
				Doc:    panel.FriendlyName,
			})
		}
	}
	return subcommands
}
