// SPDX-License-Identifier: Apache-2.0

package cleanup

import (
	"errors"
	"fmt"
	"strings"

	loglib "github.com/xataio/clinnorm/pkg/log"
	"github.com/xataio/clinnorm/pkg/rules"
)

// RulesStatus reports whether a mapping file builds a valid rule table.
type RulesStatus struct {
	MapFile              string         `json:"map_file"`
	Valid                bool           `json:"valid"`
	Rules                int            `json:"rules"`
	Attributes           map[string]int `json:"attributes,omitempty"`
	NormalizedAttributes []string       `json:"normalized_attributes,omitempty"`
	DerivedAttributes    []string       `json:"derived_attributes,omitempty"`
	Errors               []string       `json:"errors,omitempty"`
}

// ValidateRules reads the mapping file and builds its rule table, collecting
// every configuration error instead of stopping at the first one.
func ValidateRules(logger loglib.Logger, mapFile string) *RulesStatus {
	status := &RulesStatus{MapFile: mapFile}
	if err := checkFile(mapFile, ErrMissingMapFile); err != nil {
		status.Errors = append(status.Errors, err.Error())
		return status
	}

	rows, err := rules.ReadFile(mapFile)
	if err != nil {
		status.Errors = append(status.Errors, err.Error())
		return status
	}
	status.Rules = len(rows)

	table, err := rules.NewBuilder(rules.WithLogger(logger)).Build(rows)
	if err != nil {
		status.Errors = append(status.Errors, err.Error())
		return status
	}

	status.Attributes = make(map[string]int)
	for ptype, n := range table.Summary() {
		status.Attributes[ptype.String()] = n
	}
	status.NormalizedAttributes = table.NormalizedAttributes()
	status.DerivedAttributes = table.DerivedAttributes()

	if err := table.Validate(); err != nil {
		status.Errors = append(status.Errors, splitJoined(err)...)
		return status
	}

	status.Valid = true
	return status
}

func splitJoined(err error) []string {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return []string{err.Error()}
	}
	msgs := []string{}
	for _, e := range joined.Unwrap() {
		msgs = append(msgs, e.Error())
	}
	return msgs
}

func (rs *RulesStatus) PrettyPrint() string {
	if rs == nil {
		return ""
	}

	var prettyPrint strings.Builder
	prettyPrint.WriteString("Mapping rules status:\n")
	prettyPrint.WriteString(fmt.Sprintf(" - Map file: %s\n", rs.MapFile))
	prettyPrint.WriteString(fmt.Sprintf(" - Valid: %t\n", rs.Valid))
	prettyPrint.WriteString(fmt.Sprintf(" - Rules: %d\n", rs.Rules))
	for _, ptype := range rules.ProcessingTypes() {
		if n, found := rs.Attributes[ptype.String()]; found {
			prettyPrint.WriteString(fmt.Sprintf(" - %s attributes: %d\n", ptype, n))
		}
	}
	if len(rs.NormalizedAttributes) > 0 {
		prettyPrint.WriteString(fmt.Sprintf(" - Normalized attributes: %s\n", strings.Join(rs.NormalizedAttributes, ", ")))
	}
	if len(rs.DerivedAttributes) > 0 {
		prettyPrint.WriteString(fmt.Sprintf(" - Derived attributes: %s\n", strings.Join(rs.DerivedAttributes, ", ")))
	}
	if len(rs.Errors) > 0 {
		prettyPrint.WriteString(fmt.Sprintf(" - Errors: %s\n", rs.Errors))
	}

	// trim the last newline character
	return prettyPrint.String()[:len(prettyPrint.String())-1]
}
