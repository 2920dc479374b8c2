// Package groups provides configuration and validation for taxon groups.
//
// This package defines the schema for groups.yaml, which users provide to
// specify which taxonomic groups to track: the group name that drives
// genome archive searches, the taxonomic authority used for enrichment,
// and the described-diversity baselines that become denominators of
// coverage statistics. It handles group validation, defaulting, and
// filtering by requested names.
package groups

import (
	"strings"

	"github.com/gnames/gngenomes/pkg/taxonomy"
	"github.com/gnames/gnlib/ent/nomcode"
)

type Groups interface {
	Load() (*GroupsConfig, error)
}

// GroupsConfig represents the complete groups.yaml configuration file.
type GroupsConfig struct {
	// Groups is the list of taxon groups to process.
	Groups []GroupConfig `yaml:"groups"`

	// Warnings holds non-fatal validation warnings (not serialized)
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Group      string // Name of the group
	Field      string // Field name that has the issue
	Message    string // Description of the issue
	Suggestion string // How to fix it
}

// GroupConfig represents configuration for a single taxon group.
//
// Two reference groups ship in the default groups.yaml:
//   - Arecaceae (palms), resolved against the WFO Plant List
//   - Curculionidae (weevils), resolved against the Catalogue of Life
//
// Custom groups follow the same schema.
type GroupConfig struct {
	// Name is the scientific name of the group, commonly a family
	// ("Arecaceae"). It drives archive searches and file naming. (required)
	Name string `yaml:"name"`

	// Label is a vernacular name used in reports ("palms").
	// Falls back to the lowercased Name.
	Label string `yaml:"label,omitempty"`

	// Code is the nomenclatural code governing names in the group:
	// "botanical" or "zoological". Unknown values fall back to
	// "zoological" with a warning.
	Code string `yaml:"code,omitempty"`

	// Authority picks the taxonomy used for enrichment:
	// "wfo", "col" or "wikidata". (required)
	Authority taxonomy.Authority `yaml:"authority"`

	// SearchHints are keywords that pick the right candidate when an
	// authority search returns several entities for one name. Only the
	// wikidata authority consults them.
	SearchHints []string `yaml:"search_hints,omitempty"`

	// FocusTribe optionally names one tribe of the group to break out
	// in statistics.
	FocusTribe *FocusTribeConfig `yaml:"focus_tribe,omitempty"`

	// Diversity holds described-diversity baselines. (required, positive)
	Diversity DiversityConfig `yaml:"diversity"`
}

// FocusTribeConfig singles out one tribe for a detailed statistics
// breakdown, the way tribe Cocoseae is broken out for palms.
type FocusTribeConfig struct {
	// Name of the tribe ("Cocoseae"). (required when focus_tribe is set)
	Name string `yaml:"name"`

	// Subtribes is the described number of subtribes in the tribe.
	Subtribes int `yaml:"subtribes"`
}

// DiversityConfig holds described-diversity estimates of a group. The
// numbers are approximate by nature; they only serve as denominators of
// coverage percentages, so each must be positive.
type DiversityConfig struct {
	Species     int `yaml:"species"`
	Genera      int `yaml:"genera"`
	Subfamilies int `yaml:"subfamilies"`
}

// NomCode maps the group's nomenclatural code string to the parser
// vocabulary. Anything but "botanical" maps to zoological; Validate has
// already warned about unknown values.
func (g *GroupConfig) NomCode() nomcode.Code {
	if strings.EqualFold(g.Code, "botanical") {
		return nomcode.Botanical
	}
	return nomcode.Zoological
}

// ResolveAuthority returns the authority enrichment uses for the
// group: the override when it names a known authority, the group's own
// setting otherwise.
func (g *GroupConfig) ResolveAuthority(override string) taxonomy.Authority {
	if a, ok := taxonomy.AuthorityFromString(override); ok {
		return a
	}
	return g.Authority
}

// Filter returns the groups matching the requested names or labels,
// preserving configuration order, together with the requested names that
// matched nothing. An empty request selects every group. Matching is
// case-insensitive.
func (c *GroupsConfig) Filter(names []string) ([]GroupConfig, []string) {
	if len(names) == 0 {
		return c.Groups, nil
	}

	matched := make(map[string]bool, len(names))
	for _, n := range names {
		matched[strings.ToLower(strings.TrimSpace(n))] = false
	}

	var res []GroupConfig
	for _, g := range c.Groups {
		name := strings.ToLower(g.Name)
		label := strings.ToLower(g.Label)
		_, byName := matched[name]
		_, byLabel := matched[label]
		if !byName && !byLabel {
			continue
		}
		res = append(res, g)
		if byName {
			matched[name] = true
		}
		if byLabel {
			matched[label] = true
		}
	}

	var unknown []string
	for _, n := range names {
		if !matched[strings.ToLower(strings.TrimSpace(n))] {
			unknown = append(unknown, n)
		}
	}
	return res, unknown
}
