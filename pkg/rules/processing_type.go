// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fmt"
	"strings"
)

// ProcessingType is the policy governing how one normalized attribute's value
// is derived from the raw clinical data.
type ProcessingType string

const (
	KeepAll               ProcessingType = "KEEP_ALL"
	Ignore                ProcessingType = "IGNORE"
	Merge                 ProcessingType = "MERGE"
	Derive                ProcessingType = "DERIVE"
	FixAll                ProcessingType = "FIX_ALL"
	FixValue              ProcessingType = "FIX_VALUE"
	FixAttribute          ProcessingType = "FIX_ATTRIBUTE"
	AddAll                ProcessingType = "ADD_ALL"
	AddGenomicAlterations ProcessingType = "ADD_GENOMIC_ALTERATIONS"
)

// NA is the sentinel for absent or not applicable values and fields.
const NA = "NA"

type processingTypeInfo struct {
	ptype       ProcessingType
	description string
}

// declaration order is the order used when documenting the types
var processingTypes = []processingTypeInfo{
	{KeepAll, "keep original data and clinical attribute name"},
	{Ignore, "skip attribute/data"},
	{Merge, "append data from multiple columns to normalized clinical attribute"},
	{Derive, "derive data for normalized clinical attribute from original clinical attribute"},
	{FixAll, "map clinical attribute and data to normalized clinical attribute and normalized data value"},
	{FixValue, "map data to normalized data value (clinical attribute stays the same)"},
	{FixAttribute, "map clinical attribute to normalized clinical attribute (data stays the same)"},
	{AddAll, "add clinical attribute and value (data did not exist in raw clinical data)"},
	{AddGenomicAlterations, "calculate the number of genomic alterations from the MAF"},
}

// mappingTypes hold a normalized attribute -> original attribute -> original
// value -> normalized value structure in the rule table.
var mappingTypes = []ProcessingType{Merge, Derive, FixAll, FixValue, FixAttribute}

// ParseProcessingType returns the processing type matching the trimmed input,
// or an error listing the recognized types.
func ParseProcessingType(s string) (ProcessingType, error) {
	s = strings.TrimSpace(s)
	for _, info := range processingTypes {
		if string(info.ptype) == s {
			return info.ptype, nil
		}
	}
	return "", &InvalidProcessingTypeError{Value: s}
}

func (p ProcessingType) String() string {
	return string(p)
}

// Description returns the human readable semantics of the processing type.
func (p ProcessingType) Description() string {
	for _, info := range processingTypes {
		if info.ptype == p {
			return info.description
		}
	}
	return ""
}

// IsMapping reports whether the processing type resolves values through a
// per contributor value map.
func (p ProcessingType) IsMapping() bool {
	for _, t := range mappingTypes {
		if t == p {
			return true
		}
	}
	return false
}

// IsValid reports whether the processing type is part of the closed
// enumeration.
func (p ProcessingType) IsValid() bool {
	return p.Description() != ""
}

// ProcessingTypes returns every recognized processing type, in documentation
// order.
func ProcessingTypes() []ProcessingType {
	types := make([]ProcessingType, 0, len(processingTypes))
	for _, info := range processingTypes {
		types = append(types, info.ptype)
	}
	return types
}

// ProcessingTypeRules renders the recognized processing types and their
// semantics as a tab separated table.
func ProcessingTypeRules() string {
	var b strings.Builder
	b.WriteString("\tPROCESSING_TYPE\tRULE\n")
	b.WriteString("\t----------------------\n")
	for _, info := range processingTypes {
		fmt.Fprintf(&b, "\t%s\t%s\n", info.ptype, info.description)
	}
	return b.String()
}
