// Package iocsv stores assembly records in CSV files.
//
// Reading is header-mapped: columns are found by name, extra columns
// are ignored and optional ones may be missing, so files from older
// runs and hand-edited files stay readable. Writing is deterministic:
// base columns in canonical order, then one placement column group per
// authority present, authorities in their fixed order.
package iocsv

import (
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/gnames/gngenomes/pkg/assembly"
	"github.com/gnames/gngenomes/pkg/taxonomy"
)

// baseColumns is the column order of the assembly archive.
var baseColumns = []string{
	"accession", "organism", "species_name", "strain",
	"assembly_name", "assembly_level", "scaffold_n50", "contig_n50",
	"submission_date", "sequencing_tech", "biosample", "taxid",
}

// placementColumns are suffixed with the authority, giving
// accepted_name_wfo, family_col and so on.
var placementColumns = []string{
	"accepted_name", "family", "subfamily", "tribe", "subtribe",
	"genus", "status", "record_id",
}

// requiredColumns must be present in any readable file.
var requiredColumns = []string{"accession", "organism"}

// ReadRecords loads assembly records from a CSV file. Placement
// columns are folded back under their authority; an authority whose
// column group is present counts as attempted even when a row's cells
// are empty. Cell values go through UTF-8 repair.
func ReadRecords(path string) ([]assembly.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, ReadError(path, err)
	}
	if len(rows) == 0 {
		return nil, HeaderError(path, fmt.Errorf("file is empty"))
	}

	idx, err := headerIndex(rows[0])
	if err != nil {
		return nil, HeaderError(path, err)
	}

	auths := headerAuthorities(idx)
	recs := make([]assembly.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		recs = append(recs, recordFromRow(idx, row, auths))
	}
	return recs, nil
}

// WriteRecords stores assembly records in a CSV file. The column set
// is derived from the records: placement columns appear for every
// authority attached to at least one record.
func WriteRecords(path string, recs []assembly.Record) error {
	auths := presentAuthorities(recs)

	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header(auths)); err != nil {
		return WriteError(path, err)
	}
	for _, rec := range recs {
		if err := w.Write(row(rec, auths)); err != nil {
			return WriteError(path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return WriteError(path, err)
	}
	return nil
}

func header(auths []taxonomy.Authority) []string {
	res := slices.Clone(baseColumns)
	for _, a := range auths {
		for _, col := range placementColumns {
			res = append(res, col+"_"+string(a))
		}
	}
	return res
}

func row(rec assembly.Record, auths []taxonomy.Authority) []string {
	res := []string{
		rec.Accession, rec.Organism, rec.SpeciesName, rec.Strain,
		rec.AssemblyName, rec.AssemblyLevel, rec.ScaffoldN50,
		rec.ContigN50, rec.SubmissionDate, rec.SequencingTech,
		rec.BioSample, rec.TaxID,
	}
	for _, a := range auths {
		pl := rec.Placements[a]
		res = append(res,
			pl.AcceptedName, pl.Family, pl.Subfamily, pl.Tribe,
			pl.Subtribe, pl.Genus, pl.Status, pl.RecordID,
		)
	}
	return res
}

// presentAuthorities lists the authorities attached to any record, in
// canonical order.
func presentAuthorities(recs []assembly.Record) []taxonomy.Authority {
	present := make(map[taxonomy.Authority]bool)
	for _, rec := range recs {
		for a := range rec.Placements {
			present[a] = true
		}
	}

	var res []taxonomy.Authority
	for _, a := range taxonomy.Authorities() {
		if present[a] {
			res = append(res, a)
		}
	}
	return res
}

// headerIndex maps column names to positions. The first cell may carry
// a byte-order mark, which spreadsheet exports like to add.
func headerIndex(cells []string) (map[string]int, error) {
	idx := make(map[string]int, len(cells))
	for i, cell := range cells {
		if i == 0 {
			cell = strings.TrimPrefix(cell, "\uFEFF")
		}
		idx[strings.ToLower(strings.TrimSpace(cell))] = i
	}

	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	return idx, nil
}

// headerAuthorities detects which authorities have a placement column
// group in the header.
func headerAuthorities(idx map[string]int) []taxonomy.Authority {
	var res []taxonomy.Authority
	for _, a := range taxonomy.Authorities() {
		if _, ok := idx["accepted_name_"+string(a)]; ok {
			res = append(res, a)
		}
	}
	return res
}

func recordFromRow(
	idx map[string]int, cells []string, auths []taxonomy.Authority,
) assembly.Record {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(cells) {
			return ""
		}
		return gnlib.FixUtf8(cells[i])
	}

	rec := assembly.Record{
		Accession:      get("accession"),
		Organism:       get("organism"),
		SpeciesName:    get("species_name"),
		Strain:         get("strain"),
		AssemblyName:   get("assembly_name"),
		AssemblyLevel:  get("assembly_level"),
		ScaffoldN50:    get("scaffold_n50"),
		ContigN50:      get("contig_n50"),
		SubmissionDate: get("submission_date"),
		SequencingTech: get("sequencing_tech"),
		BioSample:      get("biosample"),
		TaxID:          get("taxid"),
	}

	for _, a := range auths {
		suffix := "_" + string(a)
		rec.SetPlacement(a, taxonomy.Placement{
			AcceptedName: get("accepted_name" + suffix),
			Family:       get("family" + suffix),
			Subfamily:    get("subfamily" + suffix),
			Tribe:        get("tribe" + suffix),
			Subtribe:     get("subtribe" + suffix),
			Genus:        get("genus" + suffix),
			Status:       get("status" + suffix),
			RecordID:     get("record_id" + suffix),
		})
	}
	return rec
}
