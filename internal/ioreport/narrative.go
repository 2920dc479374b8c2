package ioreport

import (
	"bytes"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gngenomes/pkg/groups"
	"github.com/gnames/gngenomes/pkg/stats"
	"github.com/gnames/gngenomes/pkg/templates"
)

// summaryData feeds the narrative summary template.
type summaryData struct {
	Title      string
	Groups     []groupSection
	Comparison *comparison
}

type groupSection struct {
	Name            string
	Heading         string
	Stats           stats.GroupStats
	Coverage        stats.Coverage
	Diversity       groups.DiversityConfig
	FocusTribe      *focusSection
	SubfamiliesText string
}

// focusSection joins the counted and the described subtribe numbers of
// a focus tribe, which live in different structs.
type focusSection struct {
	Name          string
	SubtribesSeen int
	SubtribesAll  int
	SubtribesPct  float64
	Genera        int
}

type comparison struct {
	AllBelowOnePct bool
	Best           groupShare
	Worst          groupShare
}

type groupShare struct {
	Name           string
	SubfamiliesPct float64
}

// renderSummary renders the narrative statistics summary of the
// reported groups.
func renderSummary(reps []groupReport) (string, error) {
	funcs := template.FuncMap{
		"dashes": func(s string) string {
			return strings.Repeat("-", utf8.RuneCountInString(s))
		},
		"comma": func(n int) string {
			return humanize.Comma(int64(n))
		},
	}
	tmpl, err := template.New("summary").
		Funcs(funcs).
		Parse(templates.SummaryTmpl)
	if err != nil {
		return "", RenderError(err)
	}

	var b bytes.Buffer
	if err = tmpl.Execute(&b, newSummaryData(reps)); err != nil {
		return "", RenderError(err)
	}
	return b.String(), nil
}

func newSummaryData(reps []groupReport) summaryData {
	res := summaryData{Title: title(reps)}
	for _, rep := range reps {
		res.Groups = append(res.Groups, newGroupSection(rep))
	}
	res.Comparison = newComparison(reps)
	return res
}

// title joins the group labels, "PALMS AND WEEVILS" style.
func title(reps []groupReport) string {
	labels := make([]string, len(reps))
	for i, rep := range reps {
		labels[i] = strings.ToUpper(rep.Group.Label)
	}
	if len(labels) > 1 {
		last := len(labels) - 1
		return strings.Join(labels[:last], ", ") + " AND " + labels[last]
	}
	return labels[0]
}

func newGroupSection(rep groupReport) groupSection {
	grp := rep.Group
	res := groupSection{
		Name:      grp.Name,
		Heading:   strings.ToUpper(grp.Name + " (" + grp.Label + ")"),
		Stats:     rep.Stats,
		Coverage:  rep.Coverage,
		Diversity: grp.Diversity,
	}

	if rep.Stats.FocusTribe != nil && rep.Coverage.FocusTribe != nil &&
		grp.FocusTribe != nil {
		res.FocusTribe = &focusSection{
			Name:          grp.FocusTribe.Name,
			SubtribesSeen: rep.Stats.FocusTribe.Subtribes,
			SubtribesAll:  grp.FocusTribe.Subtribes,
			SubtribesPct:  rep.Coverage.FocusTribe.SubtribesPct,
			Genera:        rep.Stats.FocusTribe.Genera,
		}
	}

	res.SubfamiliesText = "none"
	if len(rep.Stats.SubfamiliesList) > 0 {
		res.SubfamiliesText = strings.Join(rep.Stats.SubfamiliesList, ", ")
	}
	return res
}

// newComparison contrasts the groups with each other; with a single
// group there is nothing to contrast.
func newComparison(reps []groupReport) *comparison {
	if len(reps) < 2 {
		return nil
	}

	res := comparison{AllBelowOnePct: true}
	for i, rep := range reps {
		if rep.Coverage.SpeciesPct >= 1 {
			res.AllBelowOnePct = false
		}
		share := groupShare{
			Name:           rep.Group.Name,
			SubfamiliesPct: rep.Coverage.SubfamiliesPct,
		}
		if i == 0 || share.SubfamiliesPct > res.Best.SubfamiliesPct {
			res.Best = share
		}
		if i == 0 || share.SubfamiliesPct < res.Worst.SubfamiliesPct {
			res.Worst = share
		}
	}
	return &res
}
