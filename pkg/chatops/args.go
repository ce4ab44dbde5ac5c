package chatops

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/sabio/grafana-chatops/pkg/grafana"
	"github.com/sabio/grafana-chatops/pkg/panels"
)

// ParseArgs converts the raw chat tokens for one panel invocation into a
// flat argument map covering every panel variable plus the five default
// display parameters.
//
// Tokens starting with a default parameter name are treated as flags
// (width=300 becomes --width=300); everything else matches positionally, in
// declaration order, against the panel's chat-visible variables. Variables
// hidden from chat and unmatched positionals fall back to their configured
// response; absent default parameters fall back to the current settings.
func ParseArgs(panel panels.Panel, settings *grafana.Settings, tokens []string) (map[string]string, error) {
	fixed := lo.Map(tokens, func(token string, _ int) string {
		for _, param := range grafana.DefaultParams {
			if strings.HasPrefix(token, param) {
				return "--" + token
			}
		}
		return token
	})

	parsed := make(map[string]string)
	var positionals []string

	for _, token := range fixed {
		if !strings.HasPrefix(token, "--") {
			positionals = append(positionals, token)
			continue
		}

		name, value, found := strings.Cut(token[2:], "=")
		if !found {
			return nil, &ParseError{Token: token, Reason: "expected name=value"}
		}
		if !lo.Contains(grafana.DefaultParams[:], name) {
			return nil, &ParseError{Token: token, Reason: fmt.Sprintf("unknown parameter %q", name)}
		}
		parsed[name] = value
	}

	visible := lo.Filter(panel.Variables, func(v panels.Variable, _ int) bool {
		return v.InCmd()
	})
	if len(positionals) > len(visible) {
		return nil, &ParseError{
			Token:  positionals[len(visible)],
			Reason: fmt.Sprintf("panel %s takes at most %d arguments", panel.CommandName, len(visible)),
		}
	}

	for i, variable := range visible {
		if i < len(positionals) {
			parsed[variable.Name] = positionals[i]
		} else {
			parsed[variable.Name] = variable.Response
		}
	}

	// Hidden variables never match positionally; they always carry their
	// configured response.
	for _, variable := range panel.Variables {
		if !variable.InCmd() {
			parsed[variable.Name] = variable.Response
		}
	}

	for _, param := range grafana.DefaultParams {
		if _, ok := parsed[param]; !ok {
			parsed[param] = settings.Get(param)
		}
	}

	return parsed, nil
}
