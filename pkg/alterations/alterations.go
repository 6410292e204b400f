// SPDX-License-Identifier: Apache-2.0

package alterations

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xataio/clinnorm/internal/tsv"
	"github.com/xataio/clinnorm/pkg/clinical"
	loglib "github.com/xataio/clinnorm/pkg/log"
)

// SampleColumn identifies the sample of each mutation record.
const SampleColumn = "Tumor_Sample_Barcode"

var ErrMissingSampleColumn = errors.New("mutation file is missing the sample column")

// Counts holds the number of genomic alterations per sample.
type Counts map[string]int

// Value returns the count of the sample as a string, samples without any
// mutation record count 0.
func (c Counts) Value(sampleID string) string {
	return strconv.Itoa(c[sampleID])
}

type Counter struct {
	logger loglib.Logger
}

type Option func(*Counter)

func NewCounter(opts ...Option) *Counter {
	c := &Counter{
		logger: loglib.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithLogger(l loglib.Logger) Option {
	return func(c *Counter) {
		c.logger = loglib.ForModule(l, "alterations_counter")
	}
}

func (c *Counter) CountFile(path string) (Counts, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	counts, err := c.Count(f)
	if err != nil {
		return nil, fmt.Errorf("counting genomic alterations in %s: %w", path, err)
	}
	return counts, nil
}

// Count returns the number of mutation records per sample. Comment lines are
// skipped.
func (c *Counter) Count(r io.Reader) (Counts, error) {
	table, err := tsv.Read(r)
	if err != nil {
		return nil, err
	}
	if !table.HasColumn(SampleColumn) {
		return nil, fmt.Errorf("%w: %s", ErrMissingSampleColumn, SampleColumn)
	}

	counts := Counts{}
	for _, row := range table.Rows {
		raw, _ := table.Value(row, SampleColumn)
		counts[clinical.CleanDatum(raw)]++
	}

	c.logger.Info("counted genomic alterations", loglib.Fields{
		"samples":   len(counts),
		"mutations": len(table.Rows),
	})
	return counts, nil
}
