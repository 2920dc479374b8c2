package stats

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

// BaselineError creates an error for a non-positive diversity baseline.
// Baselines are denominators of coverage percentages, so they have to
// be positive before any statistics are reported.
func BaselineError(group, field string, value int) error {
	msg := `Diversity baseline is not usable

<em>Group:</em> %s
<em>Field:</em> %s
<em>Value:</em> %d

<em>How to fix:</em>
  1. Open groups.yaml and find the group
  2. Set <em>%s</em> to the described number for the group
     (a positive integer; estimates are fine)`

	vars := []any{group, field, value, field}

	return &gn.Error{
		Code: errcode.BaselineError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"non-positive baseline %s=%d for group %s", field, value, group),
	}
}
