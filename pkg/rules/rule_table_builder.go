// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fmt"

	loglib "github.com/xataio/clinnorm/pkg/log"
)

// Builder builds rule tables from mapping rules.
type Builder struct {
	logger loglib.Logger
}

type Option func(*Builder)

// DefaultGenomicAlterationsAttribute is the derived column name used by
// ADD_GENOMIC_ALTERATIONS rules that do not name one.
const DefaultGenomicAlterationsAttribute = "GENOMIC_ALTERATIONS"

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger: loglib.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func WithLogger(l loglib.Logger) Option {
	return func(b *Builder) {
		b.logger = loglib.ForModule(l, "rule_table_builder")
	}
}

// Build is a shorthand for building a rule table without logging.
func Build(rows []MappingRule) (*Table, error) {
	return NewBuilder().Build(rows)
}

// Build parses the ordered mapping rules into a rule table. It fails on the
// first rule with an invalid processing type or a missing attribute.
// Duplicated (normalized attribute, original attribute, original value)
// triples are not fatal, the last one wins.
func (b *Builder) Build(rows []MappingRule) (*Table, error) {
	t := newTable()
	for i, row := range rows {
		if err := b.addRule(t, i+1, row.Normalize()); err != nil {
			return nil, err
		}
	}

	b.logger.Debug("rule table built", loglib.Fields{
		"rules":                 len(rows),
		"normalized_attributes": t.normalizedAttributes.len(),
		"post_process_filter":   t.postProcessFilter.len(),
	})
	return t, nil
}

func (b *Builder) addRule(t *Table, rowNum int, rule MappingRule) error {
	ptype, err := ParseProcessingType(rule.ProcessingType)
	if err != nil {
		return &InvalidProcessingTypeError{Row: rowNum, Value: rule.ProcessingType}
	}

	switch ptype {
	case KeepAll:
		attr := rule.OriginalAttribute
		if attr == NA {
			attr = rule.NormalizedAttribute
		}
		if attr == NA {
			return missingAttributeError(rowNum, ptype, OriginalAttributeColumn)
		}
		if rule.NormalizedAttribute != NA && rule.NormalizedAttribute != attr {
			b.logger.Warn(nil, "KEEP_ALL rule renames its attribute, keeping the original name", loglib.Fields{
				"row":                      rowNum,
				"original_attribute":       attr,
				loglib.AttributeField:      rule.NormalizedAttribute,
				loglib.ProcessingTypeField: string(ptype),
			})
		}
		t.keepAll.add(attr)
		t.normalizedAttributes.add(attr)

	case Ignore:
		if rule.OriginalAttribute == NA {
			return missingAttributeError(rowNum, ptype, OriginalAttributeColumn)
		}
		t.ignore.add(rule.OriginalAttribute)
		t.postProcessFilter.add(rule.OriginalAttribute)

	case AddAll:
		if rule.NormalizedAttribute == NA {
			return missingAttributeError(rowNum, ptype, NormalizedAttributeColumn)
		}
		t.addAll[rule.NormalizedAttribute] = rule.NormalizedValue
		t.normalizedAttributes.add(rule.NormalizedAttribute)

	case AddGenomicAlterations:
		attr := rule.NormalizedAttribute
		if attr == NA {
			attr = DefaultGenomicAlterationsAttribute
		}
		t.derived.add(attr)

	default:
		if rule.NormalizedAttribute == NA {
			return missingAttributeError(rowNum, ptype, NormalizedAttributeColumn)
		}
		if rule.OriginalAttribute == NA {
			return missingAttributeError(rowNum, ptype, OriginalAttributeColumn)
		}
		b.addMapping(t, rowNum, ptype, rule)
		t.normalizedAttributes.add(rule.NormalizedAttribute)
		if (ptype == Merge || ptype == FixAll) && rule.OriginalAttribute != rule.NormalizedAttribute {
			t.postProcessFilter.add(rule.OriginalAttribute)
		}
	}

	return nil
}

func (b *Builder) addMapping(t *Table, rowNum int, ptype ProcessingType, rule MappingRule) {
	tm := t.mappings[ptype]
	am, found := tm.byAttr[rule.NormalizedAttribute]
	if !found {
		am = &attributeMapping{
			contributors: newOrderedSet(),
			values:       map[string]map[string]string{},
		}
		tm.byAttr[rule.NormalizedAttribute] = am
		tm.attributes.add(rule.NormalizedAttribute)
	}

	if am.contributors.add(rule.OriginalAttribute) {
		am.values[rule.OriginalAttribute] = map[string]string{}
	}

	values := am.values[rule.OriginalAttribute]
	if previous, found := values[rule.OriginalValue]; found && previous != rule.NormalizedValue {
		b.logger.Warn(nil, "duplicated mapping rule, last value wins", loglib.Fields{
			"row":                      rowNum,
			loglib.ProcessingTypeField: string(ptype),
			loglib.AttributeField:      rule.NormalizedAttribute,
			"original_attribute":       rule.OriginalAttribute,
			"original_value":           rule.OriginalValue,
			"previous_value":           previous,
			"normalized_value":         rule.NormalizedValue,
		})
	}
	values[rule.OriginalValue] = rule.NormalizedValue
}

func missingAttributeError(rowNum int, ptype ProcessingType, column string) error {
	return fmt.Errorf("row %d: %s rule without %s: %w", rowNum, ptype, column, ErrMissingAttribute)
}
