package ioncbi

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

// SearchError creates an error for a failed NCBI assembly search.
func SearchError(taxon string, err error) error {
	msg := `Cannot search NCBI assemblies for <em>%s</em>

<em>Possible causes:</em>
  - No network connection
  - NCBI E-utilities are down or throttling
  - The search term is malformed

<em>How to fix:</em>
  1. Check the network connection
  2. Retry in a few minutes
  3. Set <em>fetch.api_key</em> in config.yaml to raise the rate limit`

	vars := []any{taxon}

	return &gn.Error{
		Code: errcode.FetchSearchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("esearch failed for %s: %w", taxon, err),
	}
}

// SummaryError creates an error for a summary download that yielded
// nothing.
func SummaryError(taxon string, err error) error {
	msg := `Cannot download assembly summaries for <em>%s</em>

<em>Possible causes:</em>
  - NCBI E-utilities are down or throttling
  - The connection dropped mid-download

<em>How to fix:</em>
  1. Retry in a few minutes
  2. Lower <em>fetch.batch_size</em> in config.yaml
  3. Set <em>fetch.api_key</em> to raise the rate limit`

	vars := []any{taxon}

	return &gn.Error{
		Code: errcode.FetchSummaryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("esummary failed for %s: %w", taxon, err),
	}
}

// AllGroupsFailedError creates an error for when every group fails to
// fetch.
func AllGroupsFailedError(count int) error {
	msg := `Failed number of groups: <em>%d</em>`

	vars := []any{count}

	plural := "s"
	if count == 1 {
		plural = ""
	}

	return &gn.Error{
		Code: errcode.FetchAllGroupsFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%d group%s failed to fetch", count, plural),
	}
}
