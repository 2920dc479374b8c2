// subset-assemblies extracts a representative subset from large
// assembly CSV files.
//
// This tool creates smaller test fixtures that preserve:
//   - Edge cases (empty species names, missing or malformed N50 values)
//   - Every assembly level present in the source file
//   - A mix of high-quality and low-quality assemblies
//
// Uses the iocsv reader/writer, so placement columns and header
// handling survive the round trip exactly as the app sees them.
//
// Usage:
//
//	go run . <input> <output>
//
// Examples:
//
//	go run . ~/.local/share/gngenomes/arecaceae_assemblies.csv testdata/arecaceae-subset.csv
//	go run . ~/.local/share/gngenomes/curculionidae_enriched.csv testdata/curculionidae-subset.csv
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gnames/gngenomes/internal/iocsv"
	"github.com/gnames/gngenomes/pkg/assembly"
)

// Configuration constants
const (
	// Target number of assembly records in the subset
	targetRecords = 200

	// Minimum records to include from each edge case category
	minEdgeCaseRecords = 5
)

func main() {
	// Parse positional arguments
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <input> <output>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  input   Assembly CSV file written by fetch or enrich\n")
		fmt.Fprintf(os.Stderr, "  output  Path for the output subset CSV file\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s ~/.local/share/gngenomes/arecaceae_assemblies.csv testdata/arecaceae-subset.csv\n", os.Args[0])
		os.Exit(1)
	}

	inputPath := os.Args[1]
	outputPath := os.Args[2]

	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	logger.Info("starting assembly subset extraction",
		"input", inputPath,
		"target_size", targetRecords,
		"output", outputPath,
	)

	if err := createSubset(logger, inputPath, outputPath); err != nil {
		logger.Error("subset extraction failed", "error", err)
		os.Exit(1)
	}

	logger.Info("subset extraction complete", "output", outputPath)
}

// createSubset reads the source CSV, selects a representative subset
// and writes it to the output path.
func createSubset(logger *slog.Logger, inputPath, outputPath string) error {
	recs, err := iocsv.ReadRecords(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	logger.Info("input loaded", "records", len(recs))

	if len(recs) <= targetRecords {
		logger.Info("input already within target size, copying as is")
		if err := iocsv.WriteRecords(outputPath, recs); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	subset := pickSubset(logger, recs)

	if err := iocsv.WriteRecords(outputPath, subset); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.Info("subset written",
		"records", len(subset),
		"high_quality", countHighQuality(subset),
		"empty_species", countEmptySpecies(subset),
	)
	return nil
}

// pickSubset selects records index by index, so the subset keeps the
// original file order. Edge case categories are filled first, the rest
// of the budget is spread evenly across the whole file.
func pickSubset(logger *slog.Logger, recs []assembly.Record) []assembly.Record {
	selected := make(map[int]bool)

	// Records without a species binomial; enrichment skips these
	takeMatching(selected, recs, minEdgeCaseRecords, func(r assembly.Record) bool {
		return r.SpeciesName == ""
	})

	// Records with a missing or malformed scaffold N50
	takeMatching(selected, recs, minEdgeCaseRecords, func(r assembly.Record) bool {
		_, err := strconv.Atoi(strings.TrimSpace(r.ScaffoldN50))
		return err != nil
	})

	// A few records per assembly level so every level survives
	for _, level := range assemblyLevels(recs) {
		takeMatching(selected, recs, minEdgeCaseRecords, func(r assembly.Record) bool {
			return r.AssemblyLevel == level
		})
	}

	// Both sides of the quality split
	takeMatching(selected, recs, minEdgeCaseRecords, func(r assembly.Record) bool {
		return r.HighQuality()
	})
	takeMatching(selected, recs, minEdgeCaseRecords, func(r assembly.Record) bool {
		return !r.HighQuality()
	})

	logger.Info("edge case records selected", "count", len(selected))

	// Fill the remaining budget with an even stride over the file
	remaining := targetRecords - len(selected)
	if remaining > 0 {
		stride := len(recs) / remaining
		if stride < 1 {
			stride = 1
		}
		for i := 0; i < len(recs) && len(selected) < targetRecords; i += stride {
			selected[i] = true
		}
	}

	res := make([]assembly.Record, 0, len(selected))
	for i, rec := range recs {
		if selected[i] {
			res = append(res, rec)
		}
	}
	return res
}

// takeMatching marks up to limit records matching pred, skipping ones
// already selected.
func takeMatching(
	selected map[int]bool,
	recs []assembly.Record,
	limit int,
	pred func(assembly.Record) bool,
) {
	taken := 0
	for i, rec := range recs {
		if taken >= limit {
			return
		}
		if selected[i] || !pred(rec) {
			continue
		}
		selected[i] = true
		taken++
	}
}

// assemblyLevels returns the distinct assembly levels in file order.
func assemblyLevels(recs []assembly.Record) []string {
	seen := make(map[string]bool)
	var res []string
	for _, rec := range recs {
		if rec.AssemblyLevel == "" || seen[rec.AssemblyLevel] {
			continue
		}
		seen[rec.AssemblyLevel] = true
		res = append(res, rec.AssemblyLevel)
	}
	return res
}

func countHighQuality(recs []assembly.Record) int {
	var n int
	for _, rec := range recs {
		if rec.HighQuality() {
			n++
		}
	}
	return n
}

func countEmptySpecies(recs []assembly.Record) int {
	var n int
	for _, rec := range recs {
		if rec.SpeciesName == "" {
			n++
		}
	}
	return n
}
