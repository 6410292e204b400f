// SPDX-License-Identifier: Apache-2.0

package clinical

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xataio/clinnorm/internal/tsv"
	loglib "github.com/xataio/clinnorm/pkg/log"
	"github.com/xataio/clinnorm/pkg/normalizer"
	"github.com/xataio/clinnorm/pkg/rules"
)

// SampleIDAttribute is the column every clinical file must provide.
const SampleIDAttribute = "SAMPLE_ID"

var ErrMissingCaseIDColumn = errors.New("clinical file is missing the case id column")

// Sample holds the cleaned values of one clinical file row, keyed by
// attribute. Every header attribute is present.
type Sample struct {
	ID     string
	Values map[string]string
}

// Dataset is a cleaned clinical file.
type Dataset struct {
	// Header is the trimmed header in file order.
	Header  []string
	Samples []*Sample
	// AttributeCounts holds the number of non NA values per attribute.
	AttributeCounts normalizer.AttributeCounts
	// FixedValues is the number of values changed by the datum cleanup.
	FixedValues int
}

type Reader struct {
	logger loglib.Logger
}

type Option func(*Reader)

func NewReader(opts ...Option) *Reader {
	r := &Reader{
		logger: loglib.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func WithLogger(l loglib.Logger) Option {
	return func(r *Reader) {
		r.logger = loglib.ForModule(l, "clinical_reader")
	}
}

func (r *Reader) ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := r.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading clinical file %s: %w", path, err)
	}
	return ds, nil
}

// Read loads and cleans the clinical rows. Samples keep the order of their
// first appearance, a repeated SAMPLE_ID replaces the values of the previous
// row.
func (r *Reader) Read(rd io.Reader) (*Dataset, error) {
	table, err := tsv.Read(rd)
	if err != nil {
		return nil, err
	}
	if !table.HasColumn(SampleIDAttribute) {
		return nil, fmt.Errorf("%w: %s", ErrMissingCaseIDColumn, SampleIDAttribute)
	}

	ds := &Dataset{
		Header:          table.Header,
		Samples:         make([]*Sample, 0, len(table.Rows)),
		AttributeCounts: normalizer.AttributeCounts{},
	}
	positions := make(map[string]int, len(table.Rows))
	for _, row := range table.Rows {
		sample := r.cleanRow(table, row, ds)
		if pos, found := positions[sample.ID]; found {
			r.logger.Warn(nil, "duplicated sample in clinical file, last row wins", loglib.Fields{
				loglib.SampleField: sample.ID,
			})
			ds.Samples[pos] = sample
			continue
		}
		positions[sample.ID] = len(ds.Samples)
		ds.Samples = append(ds.Samples, sample)
	}

	for _, sample := range ds.Samples {
		for attr, v := range sample.Values {
			if v != rules.NA {
				ds.AttributeCounts[attr]++
			}
		}
	}

	if ds.FixedValues == 0 {
		r.logger.Info("no values were fixed")
	} else {
		r.logger.Info("fixed clinical values", loglib.Fields{"fixed_values": ds.FixedValues})
	}
	return ds, nil
}

func (r *Reader) cleanRow(table *tsv.Table, row []string, ds *Dataset) *Sample {
	rawID, _ := table.Value(row, SampleIDAttribute)
	sample := &Sample{
		ID:     CleanDatum(rawID),
		Values: make(map[string]string, len(table.Header)),
	}
	for _, attr := range table.Header {
		raw, found := table.Value(row, attr)
		if !found {
			raw = rules.NA
		}
		v := CleanDatum(raw)
		if v != raw {
			ds.FixedValues++
			r.logger.Trace("value fixed", loglib.Fields{
				loglib.SampleField: sample.ID,
				"attribute":        attr,
				"original_value":   raw,
				"fixed_value":      v,
			})
		}
		sample.Values[attr] = v
	}
	return sample
}
