package ioreport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

// RenderError creates an error for a failed summary rendering.
func RenderError(err error) error {
	msg := `Cannot render the statistics summary

<em>Reason:</em> %s`

	vars := []any{err.Error()}

	return &gn.Error{
		Code: errcode.ReportRenderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot render summary: %w", err),
	}
}

// WriteError creates an error for when a report file cannot be saved.
func WriteError(path string, err error) error {
	msg := `Cannot save report file

<em>File:</em> %s

<em>Possible causes:</em>
  - The data directory is not writable
  - The disk is full

<em>How to fix:</em>
  1. Check permissions of the directory
  2. Free up disk space and rerun`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ReportWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot save report %s: %w", path, err),
	}
}

// NoGroupsError creates an error for when no requested group has
// enriched records to report on.
func NoGroupsError(total int) error {
	msg := `None of the <em>%d</em> groups has enriched records

<em>How to fix:</em>
  1. Run <em>gngenomes fetch</em> to download assembly metadata
  2. Run <em>gngenomes enrich</em> to resolve species names
  3. Rerun <em>gngenomes stats</em>`

	vars := []any{total}

	return &gn.Error{
		Code: errcode.ReportNoGroupsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no enriched records in any of %d groups", total),
	}
}
