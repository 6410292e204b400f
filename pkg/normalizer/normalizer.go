// SPDX-License-Identifier: Apache-2.0

package normalizer

import (
	"context"
	"errors"

	loglib "github.com/xataio/clinnorm/pkg/log"
	"github.com/xataio/clinnorm/pkg/rules"
)

// RecordNormalizer turns the cleaned raw values of one sample into a row
// aligned with the output header.
type RecordNormalizer interface {
	Normalize(ctx context.Context, sample map[string]string) (*Record, error)
}

// Record is the normalized row of one sample.
type Record struct {
	Values   []string
	Unmapped []UnmappedValue
}

// UnmappedValue reports an original value without a mapping rule.
type UnmappedValue struct {
	Attribute      string
	ProcessingType rules.ProcessingType
	Original       string
}

// Normalizer populates every header attribute of a sample. Case id attributes
// and the derived column are copied, KEEP_ALL attributes keep their raw
// value and every other attribute is resolved through the rule table.
type Normalizer struct {
	header   Header
	table    *rules.Table
	resolver *Resolver
	logger   loglib.Logger
}

type Option func(*Normalizer)

// sampleIDAttribute identifies samples in logs.
const sampleIDAttribute = "SAMPLE_ID"

// New returns a normalizer for the header. With a nil table, values are
// projected on the header without any mapping.
func New(header Header, table *rules.Table, opts ...Option) *Normalizer {
	n := &Normalizer{
		header: header,
		table:  table,
		logger: loglib.NewNoopLogger(),
	}
	if table != nil {
		n.resolver = NewResolver(table)
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func WithLogger(l loglib.Logger) Option {
	return func(n *Normalizer) {
		n.logger = loglib.ForModule(l, "record_normalizer")
	}
}

// Header returns the header the records are aligned with.
func (n *Normalizer) Header() Header {
	return n.header
}

// Normalize resolves every header attribute for the sample. The input map is
// not modified, resolved values are written to a working copy so that later
// attributes can read them.
func (n *Normalizer) Normalize(ctx context.Context, sample map[string]string) (*Record, error) {
	working := make(map[string]string, len(sample)+len(n.header.Attributes))
	for k, v := range sample {
		working[k] = v
	}

	record := &Record{Values: make([]string, 0, len(n.header.Attributes))}
	for _, attr := range n.header.Attributes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if n.table != nil && !n.isCopied(attr) {
			if err := n.resolve(attr, working, record); err != nil {
				return nil, err
			}
		}
		record.Values = append(record.Values, sampleValue(working, attr))
	}
	return record, nil
}

func (n *Normalizer) isCopied(attr string) bool {
	return n.header.IsCaseID(attr) || attr == n.header.DerivedColumn || n.table.IsKeepAll(attr)
}

func (n *Normalizer) resolve(attr string, working map[string]string, record *Record) error {
	ptype, err := n.table.Classify(attr)
	if err != nil {
		n.logger.Error(err, "attribute in header has not been normalized", loglib.Fields{
			loglib.AttributeField: attr,
			loglib.SampleField:    working[sampleIDAttribute],
		})
		return &DanglingAttributeError{Attribute: attr, Err: err}
	}

	switch ptype {
	case rules.Ignore:
		return &DanglingAttributeError{Attribute: attr, ProcessingType: ptype}
	case rules.AddGenomicAlterations:
		// populated outside of the rule engine, copied as is
		return nil
	}

	res, err := n.resolver.Resolve(ptype, attr, working)
	if err != nil {
		var ambiguousErr *AmbiguousSourceError
		if errors.As(err, &ambiguousErr) {
			n.logger.Error(err, "more than one original value retrieved from matched original attributes", loglib.Fields{
				loglib.ProcessingTypeField: string(ptype),
				loglib.AttributeField:      attr,
				loglib.SampleField:         working[sampleIDAttribute],
				"original_attributes":      ambiguousErr.Contributors,
				"original_values":          ambiguousErr.Values,
			})
		}
		return err
	}

	if res.Unmapped {
		n.logger.Warn(nil, "no mapping rule for original value", loglib.Fields{
			loglib.ProcessingTypeField: string(ptype),
			loglib.AttributeField:      attr,
			loglib.SampleField:         working[sampleIDAttribute],
			"original_value":           res.Original,
			"normalized_value":         res.Value,
		})
		record.Unmapped = append(record.Unmapped, UnmappedValue{
			Attribute:      attr,
			ProcessingType: ptype,
			Original:       res.Original,
		})
	}
	working[attr] = res.Value
	return nil
}
