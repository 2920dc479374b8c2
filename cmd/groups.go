package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gngenomes/internal/iogroups"
	"github.com/gnames/gngenomes/pkg/groups"
)

// loadGroups reads groups.yaml and filters it down to the requested
// names or labels. An empty request selects every configured group.
func loadGroups(names []string) ([]groups.GroupConfig, error) {
	gr := iogroups.New(cfg)
	groupsConfig, err := gr.Load()
	if err != nil {
		return nil, err
	}

	selected, unknown := groupsConfig.Filter(names)
	if len(unknown) > 0 {
		available := make([]string, len(groupsConfig.Groups))
		for i, g := range groupsConfig.Groups {
			available[i] = g.Name
		}
		return nil, iogroups.GroupsNotFoundError(unknown, available)
	}

	grp := "groups"
	if len(selected) == 1 {
		grp = "group"
	}
	gn.Info("Processing %d %s", len(selected), grp)

	return selected, nil
}

// forEachGroup runs fn over the groups one by one, continuing past
// per-group failures so one broken group does not abort the rest. It
// returns how many groups succeeded and how many failed; err is only
// set on cancellation.
func forEachGroup(
	ctx context.Context,
	action string,
	grps []groups.GroupConfig,
	fn func(ctx context.Context, grp groups.GroupConfig) error,
) (success, failed int, err error) {
	start := time.Now()

	for i, grp := range grps {
		grpStart := time.Now()

		fmt.Println() // Blank line between groups
		fmt.Println(strings.Repeat("─", 60))
		gn.Info("Group [%d/%d]: %s (%s)",
			i+1, len(grps), grp.Name, grp.Label)
		fmt.Println(strings.Repeat("─", 60))

		slog.Info("Processing group",
			"action", action,
			"index", i+1,
			"total", len(grps),
			"group", grp.Name,
		)

		// Check context cancellation
		if err = ctx.Err(); err != nil {
			return success, failed, err
		}

		if err = fn(ctx, grp); err != nil {
			failed++
			slog.Error("Failed to process group",
				"action", action,
				"group", grp.Name,
				"error", err,
			)
			// Continue with next group instead of failing
			err = nil
			continue
		}

		success++
		grpDuration := time.Since(grpStart)
		slog.Info("Group processed successfully",
			"action", action,
			"group", grp.Name,
			"duration", gnfmt.TimeString(grpDuration.Seconds()),
		)

		gn.Info("Completed in %s",
			gnfmt.TimeString(grpDuration.Seconds()))
	}

	totalDuration := time.Since(start)
	slog.Info("Run complete",
		"action", action,
		"success", success,
		"errors", failed,
		"total", len(grps),
		"duration", gnfmt.TimeString(totalDuration.Seconds()),
	)
	gn.Info(`%s complete
Groups succeeded: %d, failed %d, total %d.
		Elapsed time: <em>%s</em>
`,
		action,
		success,
		failed,
		len(grps),
		gnfmt.TimeString(totalDuration.Seconds()),
	)

	if failed > 0 && success > 0 {
		slog.Warn("Some groups failed to process",
			"action", action, "failed", failed)
	}

	return success, failed, nil
}
