// SPDX-License-Identifier: Apache-2.0

package normalizer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xataio/clinnorm/pkg/rules"
)

func testRule(ptype rules.ProcessingType, origAttr, origValue, normAttr, normValue string) rules.MappingRule {
	return rules.MappingRule{
		ProcessingType:      string(ptype),
		OriginalAttribute:   origAttr,
		OriginalValue:       origValue,
		NormalizedAttribute: normAttr,
		NormalizedValue:     normValue,
	}
}

func testTable(t *testing.T, rows ...rules.MappingRule) *rules.Table {
	t.Helper()
	table, err := rules.Build(rows)
	require.NoError(t, err)
	return table
}

// ethnicityRules merges the RACE and ETHNIC_GROUP columns into ETHNICITY.
var ethnicityRules = []rules.MappingRule{
	testRule(rules.Merge, "RACE", "White", "ETHNICITY", "Caucasian"),
	testRule(rules.Merge, "RACE", "Asian", "ETHNICITY", "Asian"),
	testRule(rules.Merge, "RACE", "Unknown", "ETHNICITY", "None"),
	testRule(rules.Merge, "RACE", "Mixed", "ETHNICITY", "Asian/Caucasian"),
	testRule(rules.Merge, "ETHNIC_GROUP", "Hispanic", "ETHNICITY", "Hispanic"),
	testRule(rules.Merge, "ETHNIC_GROUP", "Not Hispanic", "ETHNICITY", "None"),
	testRule(rules.Merge, "ETHNIC_GROUP", "White", "ETHNICITY", "Caucasian"),
}
