// SPDX-License-Identifier: Apache-2.0

package study

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xataio/clinnorm/internal/tsv"
	"github.com/xataio/clinnorm/pkg/alterations"
	"github.com/xataio/clinnorm/pkg/clinical"
	loglib "github.com/xataio/clinnorm/pkg/log"
	"github.com/xataio/clinnorm/pkg/rules"
	"golang.org/x/exp/slices"
)

// SequencedSamplesFile is the name of the tagged mutation file.
const SequencedSamplesFile = "data_mutations_extended_seqsamples.txt"

const sequencedSamplesTag = "#sequenced_samples:"

var sourceCaseIDColumns = map[string]string{
	MutationsFile:       alterations.SampleColumn,
	ClinicalFile:        clinical.SampleIDAttribute,
	ClinicalPatientFile: clinical.SampleIDAttribute,
	ClinicalSampleFile:  clinical.SampleIDAttribute,
}

// SourceCaseIDColumn returns the column holding the sample ids of the source
// file, based on its name.
func SourceCaseIDColumn(sourceFile string) string {
	if column, found := sourceCaseIDColumns[filepath.Base(sourceFile)]; found {
		return column
	}
	return clinical.SampleIDAttribute
}

type TagResult struct {
	OutputFile string   `json:"output_file"`
	Samples    []string `json:"samples"`
}

func (r *TagResult) PrettyPrint() string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("Sequenced samples:\n - Output file: %s\n - Samples: %d", r.OutputFile, len(r.Samples))
}

// TagSequencedSamples writes a copy of the mutation file, without its comment
// lines, to the output directory, preceded by a sequenced samples tag listing
// the sorted unique sample ids of the source file.
func (p *Processor) TagSequencedSamples(ctx context.Context, sourceFile, mafFile, outputDirectory string) (*TagResult, error) {
	if info, err := os.Stat(outputDirectory); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrMissingDirectory, outputDirectory)
	}

	column := SourceCaseIDColumn(sourceFile)
	samples, err := readCaseIDs(sourceFile, column)
	if err != nil {
		return nil, err
	}

	maf, err := os.Open(mafFile)
	if err != nil {
		return nil, err
	}
	defer maf.Close()

	output := filepath.Join(outputDirectory, SequencedSamplesFile)
	w, err := tsv.NewFileWriter(output)
	if err != nil {
		return nil, err
	}
	defer w.Abort()

	if err := w.WriteLine(sequencedSamplesTag + " " + strings.Join(samples, " ")); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(maf)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		if err := w.WriteLine(line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading mutation file %s: %w", mafFile, err)
	}

	if err := w.Commit(); err != nil {
		return nil, err
	}

	p.logger.Info("mutation file with sequenced samples tag written", loglib.Fields{
		loglib.FileField: output,
		"samples":        len(samples),
		"case_id_column": column,
	})
	return &TagResult{OutputFile: output, Samples: samples}, nil
}

// readCaseIDs returns the sorted unique non NA values of the column.
func readCaseIDs(path, column string) ([]string, error) {
	table, err := tsv.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !table.HasColumn(column) {
		return nil, fmt.Errorf("%s: %w: %s", path, ErrMissingColumn, column)
	}

	ids := []string{}
	seen := map[string]struct{}{}
	for _, row := range table.Rows {
		raw, _ := table.Value(row, column)
		id := clinical.CleanDatum(raw)
		if _, found := seen[id]; found || id == rules.NA {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
