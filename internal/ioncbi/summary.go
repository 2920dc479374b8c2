package ioncbi

import (
	"context"
	"encoding/xml"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/gngenomes/pkg/assembly"
	"github.com/gnames/gngenomes/pkg/groups"
	"golang.org/x/sync/errgroup"
)

// searchResult is the esearch.fcgi response.
type searchResult struct {
	Count int      `xml:"Count"`
	IDs   []string `xml:"IdList>Id"`
}

// summaryResult is the esummary.fcgi response for db=assembly.
type summaryResult struct {
	Summaries []docSummary `xml:"DocumentSummarySet>DocumentSummary"`
}

// docSummary maps the DocumentSummary fields the pipeline keeps. Meta
// arrives as an escaped markup blob and is parsed separately.
type docSummary struct {
	AssemblyAccession string    `xml:"AssemblyAccession"`
	AssemblyName      string    `xml:"AssemblyName"`
	Organism          string    `xml:"Organism"`
	SpeciesName       string    `xml:"SpeciesName"`
	AssemblyStatus    string    `xml:"AssemblyStatus"`
	Coverage          string    `xml:"Coverage"`
	SubmissionDate    string    `xml:"SubmissionDate"`
	Taxid             string    `xml:"Taxid"`
	BioSampleAccn     string    `xml:"BioSampleAccn"`
	Biosource         biosource `xml:"Biosource"`
	Meta              string    `xml:"Meta"`
}

type biosource struct {
	Infraspecies []infraspecie `xml:"InfraspeciesList>Infraspecie"`
}

type infraspecie struct {
	SubType  string `xml:"Sub_type"`
	SubValue string `xml:"Sub_value"`
}

func (b biosource) strain() string {
	for _, inf := range b.Infraspecies {
		if inf.SubType == "strain" {
			return inf.SubValue
		}
	}
	return ""
}

// metaRoot wraps the Meta blob's fragments for decoding.
type metaRoot struct {
	Stats []metaStat `xml:"Stats>Stat"`
}

type metaStat struct {
	Category string `xml:"category,attr"`
	Value    string `xml:",chardata"`
}

func recordFromSummary(doc docSummary) assembly.Record {
	rec := assembly.Record{
		Accession:     doc.AssemblyAccession,
		Organism:      doc.Organism,
		SpeciesName:   doc.SpeciesName,
		Strain:        doc.Biosource.strain(),
		AssemblyName:  doc.AssemblyName,
		AssemblyLevel: doc.AssemblyStatus,
		// the sequencing_tech column has always carried Coverage
		SequencingTech: doc.Coverage,
		SubmissionDate: doc.SubmissionDate,
		BioSample:      doc.BioSampleAccn,
		TaxID:          doc.Taxid,
	}
	rec.ScaffoldN50, rec.ContigN50 = metaStats(doc.Meta)
	return rec
}

// metaStats pulls scaffold and contig N50 out of the Meta blob. The blob
// holds several top-level fragments, so it is wrapped in a root element
// before decoding. Absent or malformed stats leave the fields empty.
func metaStats(meta string) (scaffoldN50, contigN50 string) {
	if meta == "" {
		return "", ""
	}

	var root metaRoot
	if err := xml.Unmarshal([]byte("<root>"+meta+"</root>"), &root); err != nil {
		return "", ""
	}

	for _, stat := range root.Stats {
		v := strings.TrimSpace(stat.Value)
		if _, err := strconv.Atoi(v); err != nil {
			continue
		}
		switch stat.Category {
		case "scaffold_n50":
			scaffoldN50 = v
		case "contig_n50":
			contigN50 = v
		}
	}
	return scaffoldN50, contigN50
}

// deriveBinomials fills empty SpeciesName fields from Organism under the
// group's nomenclatural code. Parsing is local CPU work, so it fans out
// to JobsNumber workers.
func (n *ioncbi) deriveBinomials(
	ctx context.Context, grp groups.GroupConfig, recs []assembly.Record,
) error {
	var missing int
	for i := range recs {
		if recs[i].SpeciesName == "" && recs[i].Organism != "" {
			missing++
		}
	}
	if missing == 0 {
		return nil
	}

	code := grp.NomCode()
	chIn := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	for range n.cfg.JobsNumber {
		g.Go(func() error {
			for idx := range chIn {
				recs[idx].SpeciesName = n.pool.Binomial(recs[idx].Organism, code)
			}
			return nil
		})
	}

	go func() {
		defer close(chIn)
		for i := range recs {
			if recs[i].SpeciesName != "" || recs[i].Organism == "" {
				continue
			}
			select {
			case <-ctx.Done():
				return
			case chIn <- i:
			}
		}
	}()

	if err := g.Wait(); err != nil {
		return err
	}

	var derived int
	for i := range recs {
		if recs[i].SpeciesName != "" {
			derived++
		}
	}
	slog.Debug("Derived species binomials from organism names",
		"group", grp.Name,
		"missing", missing,
		"stillMissing", len(recs)-derived,
	)
	return ctx.Err()
}

// logFetchSummary reports assembly level counts and the number of unique
// species after a download.
func logFetchSummary(grp groups.GroupConfig, recs []assembly.Record) {
	levels := make(map[string]int)
	species := make(map[string]bool)
	for _, rec := range recs {
		levels[rec.AssemblyLevel]++
		if rec.SpeciesName != "" {
			species[rec.SpeciesName] = true
		}
	}

	slog.Info("Fetched assembly metadata",
		"group", grp.Name,
		"count", len(recs),
		"uniqueSpecies", len(species),
	)
	for _, level := range slices.Sorted(maps.Keys(levels)) {
		slog.Info("Assembly level",
			"group", grp.Name,
			"level", level,
			"count", levels[level],
		)
	}
}
