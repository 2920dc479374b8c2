package groups_test

import (
	"testing"

	"github.com/gnames/gngenomes/pkg/groups"
	"github.com/gnames/gngenomes/pkg/taxonomy"
	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func palmsGroup() groups.GroupConfig {
	return groups.GroupConfig{
		Name:      "Arecaceae",
		Label:     "palms",
		Code:      "botanical",
		Authority: taxonomy.WFO,
		FocusTribe: &groups.FocusTribeConfig{
			Name:      "Cocoseae",
			Subtribes: 4,
		},
		Diversity: groups.DiversityConfig{
			Species:     2600,
			Genera:      181,
			Subfamilies: 5,
		},
	}
}

func weevilsGroup() groups.GroupConfig {
	return groups.GroupConfig{
		Name:        "Curculionidae",
		Label:       "weevils",
		Code:        "zoological",
		Authority:   taxonomy.COL,
		SearchHints: []string{"species", "insect", "beetle", "weevil"},
		Diversity: groups.DiversityConfig{
			Species:     51000,
			Genera:      4600,
			Subfamilies: 8,
		},
	}
}

func TestGroupValidateDefaults(t *testing.T) {
	g := groups.GroupConfig{
		Name:      "Arecaceae",
		Authority: taxonomy.Authority("WFO"),
		Diversity: groups.DiversityConfig{
			Species:     2600,
			Genera:      181,
			Subfamilies: 5,
		},
	}

	warnings, err := g.Validate()
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "arecaceae", g.Label, "label falls back to lowercased name")
	assert.Equal(t, "zoological", g.Code, "code defaults to zoological")
	assert.Equal(t, taxonomy.WFO, g.Authority, "authority is normalized")
}

func TestGroupValidateFatal(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *groups.GroupConfig)
		errMsg string
	}{
		{
			name:   "missing name",
			mutate: func(g *groups.GroupConfig) { g.Name = "" },
			errMsg: "name is required",
		},
		{
			name:   "missing authority",
			mutate: func(g *groups.GroupConfig) { g.Authority = "" },
			errMsg: "authority is required",
		},
		{
			name:   "unknown authority",
			mutate: func(g *groups.GroupConfig) { g.Authority = "gbif" },
			errMsg: "invalid authority",
		},
		{
			name:   "zero species baseline",
			mutate: func(g *groups.GroupConfig) { g.Diversity.Species = 0 },
			errMsg: "diversity.species must be positive",
		},
		{
			name:   "negative genera baseline",
			mutate: func(g *groups.GroupConfig) { g.Diversity.Genera = -10 },
			errMsg: "diversity.genera must be positive",
		},
		{
			name:   "zero subfamilies baseline",
			mutate: func(g *groups.GroupConfig) { g.Diversity.Subfamilies = 0 },
			errMsg: "diversity.subfamilies must be positive",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := palmsGroup()
			tc.mutate(&g)
			_, err := g.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestGroupValidateCodeWarning(t *testing.T) {
	g := weevilsGroup()
	g.Code = "bacterial"

	warnings, err := g.Validate()
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Curculionidae", warnings[0].Group)
	assert.Equal(t, "code", warnings[0].Field)
	assert.Equal(t, "zoological", g.Code, "unknown code falls back to zoological")
}

func TestGroupValidateFocusTribe(t *testing.T) {
	t.Run("valid focus tribe is kept", func(t *testing.T) {
		g := palmsGroup()
		warnings, err := g.Validate()
		require.NoError(t, err)
		assert.Empty(t, warnings)
		require.NotNil(t, g.FocusTribe)
		assert.Equal(t, "Cocoseae", g.FocusTribe.Name)
	})

	t.Run("unnamed focus tribe is dropped", func(t *testing.T) {
		g := palmsGroup()
		g.FocusTribe = &groups.FocusTribeConfig{Subtribes: 4}
		warnings, err := g.Validate()
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, "focus_tribe", warnings[0].Field)
		assert.Nil(t, g.FocusTribe)
	})

	t.Run("focus tribe without subtribes baseline is dropped", func(t *testing.T) {
		g := palmsGroup()
		g.FocusTribe = &groups.FocusTribeConfig{Name: "Cocoseae"}
		warnings, err := g.Validate()
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0].Message, "subtribes")
		assert.Nil(t, g.FocusTribe)
	})
}

func TestGroupsConfigValidate(t *testing.T) {
	t.Run("reference configuration", func(t *testing.T) {
		cfg := &groups.GroupsConfig{
			Groups: []groups.GroupConfig{palmsGroup(), weevilsGroup()},
		}
		err := cfg.Validate()
		require.NoError(t, err)
		assert.Empty(t, cfg.Warnings)
	})

	t.Run("no groups", func(t *testing.T) {
		cfg := &groups.GroupsConfig{}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no groups specified")
	})

	t.Run("duplicate names are case-insensitive", func(t *testing.T) {
		dup := palmsGroup()
		dup.Name = "ARECACEAE"
		cfg := &groups.GroupsConfig{
			Groups: []groups.GroupConfig{palmsGroup(), dup},
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate group name")
	})

	t.Run("warnings are collected per group", func(t *testing.T) {
		g1 := palmsGroup()
		g1.Code = "cultivar"
		g2 := weevilsGroup()
		g2.FocusTribe = &groups.FocusTribeConfig{Name: "Sitophilini"}
		cfg := &groups.GroupsConfig{
			Groups: []groups.GroupConfig{g1, g2},
		}
		err := cfg.Validate()
		require.NoError(t, err)
		require.Len(t, cfg.Warnings, 2)
		assert.Equal(t, "Arecaceae", cfg.Warnings[0].Group)
		assert.Equal(t, "Curculionidae", cfg.Warnings[1].Group)
	})
}

func TestNomCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want nomcode.Code
	}{
		{"botanical", "botanical", nomcode.Botanical},
		{"botanical mixed case", "Botanical", nomcode.Botanical},
		{"zoological", "zoological", nomcode.Zoological},
		{"empty", "", nomcode.Zoological},
		{"unknown", "bacterial", nomcode.Zoological},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := groups.GroupConfig{Code: tc.code}
			assert.Equal(t, tc.want, g.NomCode())
		})
	}
}

func TestResolveAuthority(t *testing.T) {
	tests := []struct {
		name     string
		override string
		want     taxonomy.Authority
	}{
		{"no override keeps the group authority", "", taxonomy.WFO},
		{"override wins", "wikidata", taxonomy.Wikidata},
		{"override is case-insensitive", "COL", taxonomy.COL},
		{"unknown override is ignored", "gbif", taxonomy.WFO},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := palmsGroup()
			assert.Equal(t, tc.want, g.ResolveAuthority(tc.override))
		})
	}
}

func TestFilter(t *testing.T) {
	cfg := &groups.GroupsConfig{
		Groups: []groups.GroupConfig{palmsGroup(), weevilsGroup()},
	}

	t.Run("empty request selects all groups", func(t *testing.T) {
		res, unknown := cfg.Filter(nil)
		require.Len(t, res, 2)
		assert.Empty(t, unknown)
	})

	t.Run("by name", func(t *testing.T) {
		res, unknown := cfg.Filter([]string{"Curculionidae"})
		require.Len(t, res, 1)
		assert.Equal(t, "Curculionidae", res[0].Name)
		assert.Empty(t, unknown)
	})

	t.Run("by label, case-insensitive", func(t *testing.T) {
		res, unknown := cfg.Filter([]string{"PALMS"})
		require.Len(t, res, 1)
		assert.Equal(t, "Arecaceae", res[0].Name)
		assert.Empty(t, unknown)
	})

	t.Run("name and label of the same group select it once", func(t *testing.T) {
		res, unknown := cfg.Filter([]string{"palms", "arecaceae"})
		require.Len(t, res, 1)
		assert.Equal(t, "Arecaceae", res[0].Name)
		assert.Empty(t, unknown)
	})

	t.Run("configuration order is preserved", func(t *testing.T) {
		res, _ := cfg.Filter([]string{"weevils", "palms"})
		require.Len(t, res, 2)
		assert.Equal(t, "Arecaceae", res[0].Name)
		assert.Equal(t, "Curculionidae", res[1].Name)
	})

	t.Run("unknown names are reported", func(t *testing.T) {
		res, unknown := cfg.Filter([]string{"palms", "Formicidae"})
		require.Len(t, res, 1)
		assert.Equal(t, []string{"Formicidae"}, unknown)
	})
}
