package iogroups

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

// GroupsConfigError creates an error for when groups.yaml
// cannot be loaded.
func GroupsConfigError(path string, err error) error {
	msg := `Cannot load groups configuration

<em>Configuration file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - A group fails validation

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Delete the file; the default one is recreated on the next run`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.GroupsConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load groups config: %w", err),
	}
}

// GroupsNotFoundError creates an error for when requested group names
// match nothing in groups.yaml.
func GroupsNotFoundError(missing, available []string) error {
	msg := `Unknown group name(s): <em>%s</em>

<em>Configured groups:</em> %s

<em>How to fix:</em>
  1. Check the spelling of the <em>-g/--groups</em> flag
  2. Add the group to <em>groups.yaml</em> and rerun`

	vars := []any{strings.Join(missing, ", "), strings.Join(available, ", ")}

	return &gn.Error{
		Code: errcode.GroupsNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown groups: %s", strings.Join(missing, ", ")),
	}
}
