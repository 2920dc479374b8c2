package groups

import (
	"fmt"
	"strings"

	"github.com/gnames/gngenomes/pkg/taxonomy"
)

// Validate checks the configuration for errors and applies defaults.
func (c *GroupsConfig) Validate() error {
	if len(c.Groups) == 0 {
		return fmt.Errorf("no groups specified in configuration")
	}

	// Validate each group
	seen := make(map[string]bool, len(c.Groups))
	for i := range c.Groups {
		warnings, err := c.Groups[i].Validate()
		if err != nil {
			return fmt.Errorf("group %d: %w", i+1, err)
		}

		// Group names become file names, so they cannot repeat.
		name := strings.ToLower(c.Groups[i].Name)
		if seen[name] {
			return fmt.Errorf(
				"group %d: duplicate group name '%s'", i+1, c.Groups[i].Name,
			)
		}
		seen[name] = true

		c.Warnings = append(c.Warnings, warnings...)
	}

	return nil
}

// Validate checks a single group configuration and applies defaults.
// Returns a slice of warnings (non-fatal issues) and an error (fatal issues).
func (g *GroupConfig) Validate() ([]ValidationWarning, error) {
	var warnings []ValidationWarning

	// Name is required
	if g.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	// Label falls back to the lowercased name
	if g.Label == "" {
		g.Label = strings.ToLower(g.Name)
	}

	// Authority is required and must be one of the supported taxonomies
	if g.Authority == "" {
		return nil, fmt.Errorf("authority is required")
	}
	auth, ok := taxonomy.AuthorityFromString(string(g.Authority))
	if !ok {
		return nil, fmt.Errorf(
			"invalid authority '%s': must be 'wfo', 'col' or 'wikidata'",
			g.Authority,
		)
	}
	g.Authority = auth

	// Nomenclatural code defaults to zoological; unknown values generate
	// a warning instead of failing the whole configuration.
	switch strings.ToLower(g.Code) {
	case "":
		g.Code = "zoological"
	case "botanical", "zoological":
		g.Code = strings.ToLower(g.Code)
	default:
		warnings = append(warnings, ValidationWarning{
			Group:      g.Name,
			Field:      "code",
			Message:    fmt.Sprintf("unknown nomenclatural code '%s'", g.Code),
			Suggestion: "Set 'code: botanical' or 'code: zoological'; zoological is used for now",
		})
		g.Code = "zoological"
	}

	// Diversity baselines become denominators of coverage percentages,
	// so zero and negative values are fatal.
	if g.Diversity.Species <= 0 {
		return nil, fmt.Errorf(
			"diversity.species must be positive, got %d", g.Diversity.Species,
		)
	}
	if g.Diversity.Genera <= 0 {
		return nil, fmt.Errorf(
			"diversity.genera must be positive, got %d", g.Diversity.Genera,
		)
	}
	if g.Diversity.Subfamilies <= 0 {
		return nil, fmt.Errorf(
			"diversity.subfamilies must be positive, got %d", g.Diversity.Subfamilies,
		)
	}

	// Focus tribe is optional; an unusable one is dropped with a warning
	// so the rest of the group still works.
	if g.FocusTribe != nil {
		ftValid := true
		var ftIssue string
		var ftSuggestion string

		if g.FocusTribe.Name == "" {
			ftValid = false
			ftIssue = "focus_tribe.name is required when focus_tribe is set"
			ftSuggestion = "Name the tribe to break out (e.g. 'name: Cocoseae'), or remove 'focus_tribe'"
		} else if g.FocusTribe.Subtribes <= 0 {
			ftValid = false
			ftIssue = fmt.Sprintf(
				"focus_tribe.subtribes must be positive, got %d",
				g.FocusTribe.Subtribes,
			)
			ftSuggestion = "Set 'subtribes' to the described number of subtribes in the tribe, or remove 'focus_tribe'"
		}

		if !ftValid {
			g.FocusTribe = nil
			warnings = append(warnings, ValidationWarning{
				Group:      g.Name,
				Field:      "focus_tribe",
				Message:    ftIssue,
				Suggestion: ftSuggestion,
			})
		}
	}

	return warnings, nil
}
