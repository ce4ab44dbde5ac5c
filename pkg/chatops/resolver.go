package chatops

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/sabio/grafana-chatops/pkg/inventory"
	"github.com/sabio/grafana-chatops/pkg/panels"
)

// ResolveVariables validates each panel variable in declaration order and
// returns the final variable values for the render payload.
//
// Plain variables take the parsed argument as-is. Query variables are
// resolved against the inventory: fetch all objects of the entity type,
// filter down using the configured filter plus any user-supplied value, and
// require exactly one match. Anything else suspends the invocation with a
// disambiguation menu and returns ErrNeedsUserChoice.
//
// Filter values and value templates render against the variables already
// resolved in this pass, so later variables may depend on earlier ones.
// Resolution state is local to the call; the catalog is never mutated.
func ResolveVariables(ctx context.Context, dispatcher Dispatcher, registry *inventory.Registry, panel panels.Panel, parsed map[string]string, actionID string) (map[string]string, error) {
	validated := make(map[string]any)
	values := make(map[string]string)

	for _, variable := range panel.Variables {
		if variable.Query == "" {
			log.Debug().Str("variable", variable.Name).Str("input", parsed[variable.Name]).Msg("Validated variable")
			validated[variable.Name] = parsed[variable.Name]
		} else {
			record, err := resolveQueryVariable(ctx, dispatcher, registry, panel, variable, parsed, validated, actionID)
			if err != nil {
				return nil, err
			}
			validated[variable.Name] = record
		}

		value, err := renderValue(variable, validated)
		if err != nil {
			return nil, &PanelConfigError{
				Reason: fmt.Sprintf("I was unable to render the value for %s", variable.Name),
				Err:    err,
			}
		}
		values[variable.Name] = value
	}

	return values, nil
}

func resolveQueryVariable(ctx context.Context, dispatcher Dispatcher, registry *inventory.Registry, panel panels.Panel, variable panels.Variable, parsed map[string]string, validated map[string]any, actionID string) (map[string]string, error) {
	log.Debug().Str("variable", variable.Name).Str("input", parsed[variable.Name]).Msg("Validating variable")

	objects, err := fetchObjects(ctx, registry, variable)
	if err != nil {
		return nil, err
	}

	filter := make(map[string]string, len(variable.Filter)+1)
	for attr, value := range variable.Filter {
		filter[attr] = value
	}
	// A user-supplied value for this variable always wins over the static
	// filter entry for the same attribute.
	if parsed[variable.Name] != "" {
		filter[variable.ModelAttr] = parsed[variable.Name]
	}

	for attr, tmpl := range filter {
		rendered, err := renderTemplate(tmpl, validated)
		if err != nil {
			return nil, &PanelConfigError{
				Reason: fmt.Sprintf("I was unable to render the filter for %s", variable.Name),
				Err:    err,
			}
		}
		filter[attr] = rendered
	}

	filtered, err := objects.Filter(filter)
	if err != nil {
		log.Error().Err(err).Str("query", variable.Query).Interface("filter", filter).Msg("Unable to filter inventory objects")
		return nil, &PanelConfigError{
			Reason: fmt.Sprintf("I was unable to filter %s by %v", variable.Query, filter),
		}
	}

	// Exactly one match is required to proceed. Otherwise the user picks
	// from the filtered set, or from everything when the filter came up
	// empty, so there is always a choice to offer.
	if filtered.Count() != 1 {
		candidates := filtered
		if filtered.Count() == 0 {
			candidates = objects
		}
		choices := lo.Map(candidates.Records(), func(r inventory.Record, _ int) Choice {
			value, _ := r.Get(variable.ModelAttr)
			return Choice{Label: r.Name, Value: value}
		})

		helperText := panel.FriendlyName
		if variable.FriendlyName != "" {
			helperText = fmt.Sprintf("%s Requires %s", panel.FriendlyName, variable.FriendlyName)
		}
		if err := dispatcher.PromptFromMenu(actionID, helperText, choices); err != nil {
			return nil, fmt.Errorf("failed to prompt for %s: %w", variable.Name, err)
		}
		return nil, ErrNeedsUserChoice
	}

	log.Debug().Str("variable", variable.Name).Str("match", filtered.First().Name).Msg("Validated variable")
	return filtered.First().Fields(), nil
}

func fetchObjects(ctx context.Context, registry *inventory.Registry, variable panels.Variable) (inventory.ObjectSet, error) {
	objects, err := registry.FetchAll(ctx, variable.Query)
	if err != nil {
		log.Error().Err(err).Str("query", variable.Query).Msg("Unable to fetch inventory objects")
		return inventory.ObjectSet{}, &PanelConfigError{
			Reason: fmt.Sprintf("I was unable to find inventory type %s", variable.Query),
			Err:    err,
		}
	}

	if variable.ModelAttr == "" {
		return inventory.ObjectSet{}, &PanelConfigError{
			Reason: "when specifying a query, a modelattr is also required",
		}
	}
	if objects.Count() < 1 {
		return inventory.ObjectSet{}, &PanelConfigError{
			Reason: fmt.Sprintf("%s returned %d items from the inventory", variable.Query, objects.Count()),
		}
	}
	return objects, nil
}

func renderValue(variable panels.Variable, validated map[string]any) (string, error) {
	if variable.Value == "" {
		return fmt.Sprintf("%v", validated[variable.Name]), nil
	}
	return renderTemplate(variable.Value, validated)
}

// renderTemplate substitutes accumulated variable values into a template
// string. Referencing a variable or field that does not exist is an error,
// surfaced to the operator as a panel definition problem.
func renderTemplate(tmpl string, data map[string]any) (string, error) {
	parsed, err := template.New("variable").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := parsed.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
