// Package templates provides embedded default files and report templates.
package templates

import _ "embed"

// ConfigYAML contains the default config.yaml template for application
// configuration.
//
//go:embed config.yaml
var ConfigYAML string

// GroupsYAML contains the default groups.yaml template with the reference
// taxonomic groups.
//
//go:embed groups.yaml
var GroupsYAML string

// SummaryTmpl contains the text/template for the narrative statistics
// summary.
//
//go:embed summary.tmpl
var SummaryTmpl string
