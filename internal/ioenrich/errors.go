package ioenrich

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

// InputError creates an error for when a group's assemblies file
// cannot be read for enrichment.
func InputError(group, path string, err error) error {
	msg := `Cannot read fetched assemblies for <em>%s</em>

<em>Assemblies file:</em> %s

<em>Possible causes:</em>
  - The group was never fetched
  - The file was moved or is not a valid CSV table

<em>How to fix:</em>
  1. Run <em>gngenomes fetch -g "%s"</em> first
  2. Check the file: <em>head %s</em>`

	vars := []any{group, path, group, path}

	return &gn.Error{
		Code: errcode.EnrichInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read assemblies of %s: %w", group, err),
	}
}

// OutputError creates an error for when enrichment results cannot be
// saved.
func OutputError(group, path string, err error) error {
	msg := `Cannot save enrichment results for <em>%s</em>

<em>Output file:</em> %s

<em>Possible causes:</em>
  - The data directory is not writable
  - The disk is full

<em>How to fix:</em>
  1. Check permissions of the directory
  2. Free up disk space and rerun`

	vars := []any{group, path}

	return &gn.Error{
		Code: errcode.EnrichOutputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot save enrichment of %s: %w", group, err),
	}
}

// AllGroupsFailedError creates an error for when every group fails to
// enrich.
func AllGroupsFailedError(count int) error {
	msg := `Failed number of groups: <em>%d</em>`

	vars := []any{count}

	plural := "s"
	if count == 1 {
		plural = ""
	}

	return &gn.Error{
		Code: errcode.EnrichAllGroupsFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%d group%s failed to enrich", count, plural),
	}
}
