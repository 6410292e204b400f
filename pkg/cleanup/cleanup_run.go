// SPDX-License-Identifier: Apache-2.0

package cleanup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/xid"
	"github.com/xataio/clinnorm/internal/progress"
	"github.com/xataio/clinnorm/internal/tsv"
	"github.com/xataio/clinnorm/pkg/alterations"
	"github.com/xataio/clinnorm/pkg/clinical"
	loglib "github.com/xataio/clinnorm/pkg/log"
	"github.com/xataio/clinnorm/pkg/normalizer"
	normalizerinstrumentation "github.com/xataio/clinnorm/pkg/normalizer/instrumentation"
	"github.com/xataio/clinnorm/pkg/otel"
	"github.com/xataio/clinnorm/pkg/rules"

	"golang.org/x/sync/errgroup"
)

// Result summarises a cleanup run.
type Result struct {
	RunID          string        `json:"run_id"`
	OutputFile     string        `json:"output_file"`
	Header         []string      `json:"header"`
	Samples        int           `json:"samples"`
	FixedValues    int           `json:"fixed_values"`
	UnmappedValues int           `json:"unmapped_values"`
	Duration       time.Duration `json:"duration"`
}

type runner struct {
	clock  clockwork.Clock
	newBar func(total int) progress.Bar
}

type Option func(*runner)

// WithProgressBar reports the normalized samples on the bar returned by
// newBar, called once the number of samples is known.
func WithProgressBar(newBar func(total int) progress.Bar) Option {
	return func(r *runner) {
		r.newBar = newBar
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(r *runner) {
		r.clock = clock
	}
}

// Run cleans the clinical file, normalizes it when a mapping is configured
// and writes the result to the output directory. The output file is only
// created once every sample has been processed.
func Run(ctx context.Context, logger loglib.Logger, config *Config, instrumentation *otel.Instrumentation, opts ...Option) (*Result, error) {
	if err := config.IsValid(); err != nil {
		return nil, fmt.Errorf("incompatible configuration: %w", err)
	}

	r := &runner{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(r)
	}
	start := r.clock.Now()

	runID := xid.New().String()
	logger = loglib.NewLogger(logger).WithFields(loglib.Fields{loglib.RunIDField: runID})

	if err := checkFile(config.ClinicalFile, ErrMissingClinicalFile); err != nil {
		return nil, err
	}
	outputDir := config.outputDirectory()
	if info, err := os.Stat(outputDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrMissingOutputDir, outputDir)
	}
	outputFilename, err := renderOutputFilename(config.outputFilenameTemplate(), config.ClinicalFile, runID, start)
	if err != nil {
		return nil, err
	}

	var table *rules.Table
	if config.Mapping != nil {
		if table, err = loadRuleTable(logger, config.Mapping.MapFile); err != nil {
			return nil, err
		}
	}

	derivedColumn := genomicAlterationsColumn(logger, config, table)
	if derivedColumn != "" {
		if err := checkFile(config.mutationsFile(), ErrMissingMutationsFile); err != nil {
			return nil, err
		}
	}

	dataset, err := clinical.NewReader(clinical.WithLogger(logger)).ReadFile(config.ClinicalFile)
	if err != nil {
		return nil, err
	}

	if derivedColumn != "" {
		counts, err := alterations.NewCounter(alterations.WithLogger(logger)).CountFile(config.mutationsFile())
		if err != nil {
			return nil, err
		}
		for _, sample := range dataset.Samples {
			sample.Values[derivedColumn] = counts.Value(sample.ID)
		}
	}

	header := normalizer.NewHeaderComposer(table, normalizer.HeaderConfig{
		CaseIDAttributes:      config.CaseIDAttributes,
		FilterEmptyAttributes: config.FilterEmptyAttributes,
		DerivedColumn:         derivedColumn,
	}, normalizer.WithHeaderLogger(logger)).Compose(dataset.Header, dataset.AttributeCounts)

	var recordNormalizer normalizer.RecordNormalizer = normalizer.New(header, table, normalizer.WithLogger(logger))
	recordNormalizer, err = normalizerinstrumentation.NewNormalizer(recordNormalizer, instrumentation)
	if err != nil {
		return nil, err
	}

	records, err := r.normalize(ctx, recordNormalizer, dataset.Samples, config.workers())
	if err != nil {
		return nil, err
	}

	outputFile := filepath.Join(outputDir, outputFilename)
	if err := writeRecords(outputFile, header.Attributes, records); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:       runID,
		OutputFile:  outputFile,
		Header:      header.Attributes,
		Samples:     len(records),
		FixedValues: dataset.FixedValues,
		Duration:    r.clock.Since(start),
	}
	for _, record := range records {
		result.UnmappedValues += len(record.Unmapped)
	}

	logger.Info("clinical data written", loglib.Fields{
		loglib.FileField:  outputFile,
		"samples":         result.Samples,
		"attributes":      len(result.Header),
		"unmapped_values": result.UnmappedValues,
		"duration":        result.Duration,
	})
	return result, nil
}

func (r *Result) PrettyPrint() string {
	if r == nil {
		return ""
	}

	var prettyPrint strings.Builder
	prettyPrint.WriteString("Cleanup result:\n")
	prettyPrint.WriteString(fmt.Sprintf(" - Run: %s\n", r.RunID))
	prettyPrint.WriteString(fmt.Sprintf(" - Output file: %s\n", r.OutputFile))
	prettyPrint.WriteString(fmt.Sprintf(" - Samples: %d\n", r.Samples))
	prettyPrint.WriteString(fmt.Sprintf(" - Attributes: %d\n", len(r.Header)))
	prettyPrint.WriteString(fmt.Sprintf(" - Fixed values: %d\n", r.FixedValues))
	prettyPrint.WriteString(fmt.Sprintf(" - Unmapped values: %d\n", r.UnmappedValues))
	prettyPrint.WriteString(fmt.Sprintf(" - Duration: %s\n", r.Duration))

	// trim the last newline character
	return prettyPrint.String()[:len(prettyPrint.String())-1]
}

// normalize runs the record normalizer over the samples with up to workers
// goroutines. Records keep the sample order, the first error cancels the
// remaining samples.
func (r *runner) normalize(ctx context.Context, n normalizer.RecordNormalizer, samples []*clinical.Sample, workers int) ([]*normalizer.Record, error) {
	var bar progress.Bar
	if r.newBar != nil {
		bar = r.newBar(len(samples))
		defer bar.Close()
	}

	records := make([]*normalizer.Record, len(samples))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, sample := range samples {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			record, err := n.Normalize(egCtx, sample.Values)
			if err != nil {
				return fmt.Errorf("normalizing sample %s: %w", sample.ID, err)
			}
			records[i] = record
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// samples are skipped without error once the parent context is canceled
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func loadRuleTable(logger loglib.Logger, mapFile string) (*rules.Table, error) {
	if err := checkFile(mapFile, ErrMissingMapFile); err != nil {
		return nil, err
	}

	rows, err := rules.ReadFile(mapFile)
	if err != nil {
		return nil, err
	}
	table, err := rules.NewBuilder(rules.WithLogger(logger)).Build(rows)
	if err != nil {
		return nil, fmt.Errorf("building rule table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("validating rule table: %w", err)
	}
	return table, nil
}

// genomicAlterationsColumn returns the derived column name, or an empty string
// when genomic alterations are not counted.
func genomicAlterationsColumn(logger loglib.Logger, config *Config, table *rules.Table) string {
	var declared []string
	if table != nil {
		declared = table.DerivedAttributes()
	}
	if len(declared) > 1 {
		logger.Warn(nil, "more than one genomic alterations column declared, using the first one", loglib.Fields{
			"columns": declared,
		})
	}

	switch {
	case config.GenomicAlterations != nil && config.GenomicAlterations.Column != "":
		return config.GenomicAlterations.Column
	case len(declared) > 0:
		return declared[0]
	case config.GenomicAlterations != nil:
		return rules.DefaultGenomicAlterationsAttribute
	default:
		return ""
	}
}

func writeRecords(path string, header []string, records []*normalizer.Record) error {
	w, err := tsv.NewFileWriter(path)
	if err != nil {
		return err
	}
	defer w.Abort()

	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, record := range records {
		if err := w.Write(record.Values); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	return w.Commit()
}

func checkFile(path string, notFoundErr error) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s", notFoundErr, path)
	case err != nil:
		return err
	case info.IsDir():
		return fmt.Errorf("%w: %s is a directory", notFoundErr, path)
	default:
		return nil
	}
}
