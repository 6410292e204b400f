// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// mapping file columns
const (
	ProcessingTypeColumn      = "PROCESSING_TYPE"
	OriginalAttributeColumn   = "ORIGINAL_ATTRIBUTE"
	OriginalValueColumn       = "ORIGINAL_VALUE"
	NormalizedAttributeColumn = "NORMALIZED_ATTRIBUTE"
	NormalizedValueColumn     = "NORMALIZED_VALUE"
)

// MappingRule is one row of the mapping specification. All fields are free
// form, the processing type is validated when the rule table is built.
type MappingRule struct {
	ProcessingType      string `mapstructure:"processing_type" yaml:"processing_type"`
	OriginalAttribute   string `mapstructure:"original_attribute" yaml:"original_attribute"`
	OriginalValue       string `mapstructure:"original_value" yaml:"original_value"`
	NormalizedAttribute string `mapstructure:"normalized_attribute" yaml:"normalized_attribute"`
	NormalizedValue     string `mapstructure:"normalized_value" yaml:"normalized_value"`
}

// Normalize returns a copy of the rule with every field trimmed, composed into
// NFC form and blank fields replaced by NA. Raw datums go through the same
// composition so lookups compare like with like.
func (r MappingRule) Normalize() MappingRule {
	return MappingRule{
		ProcessingType:      field(r.ProcessingType),
		OriginalAttribute:   field(r.OriginalAttribute),
		OriginalValue:       field(r.OriginalValue),
		NormalizedAttribute: field(r.NormalizedAttribute),
		NormalizedValue:     field(r.NormalizedValue),
	}
}

func field(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" {
		return NA
	}
	return s
}

func ruleFromRecord(record map[string]string) MappingRule {
	get := func(column string) string {
		v, found := record[column]
		if !found {
			return NA
		}
		return v
	}
	return MappingRule{
		ProcessingType:      get(ProcessingTypeColumn),
		OriginalAttribute:   get(OriginalAttributeColumn),
		OriginalValue:       get(OriginalValueColumn),
		NormalizedAttribute: get(NormalizedAttributeColumn),
		NormalizedValue:     get(NormalizedValueColumn),
	}.Normalize()
}
