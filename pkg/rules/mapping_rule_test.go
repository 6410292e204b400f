// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMappingRule_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule MappingRule

		wantRule MappingRule
	}{
		{
			name:     "fields trimmed",
			rule:     testRule(FixValue, " SEX ", "M\t", "SEX", " Male"),
			wantRule: testRule(FixValue, "SEX", "M", "SEX", "Male"),
		},
		{
			name:     "blank fields become NA",
			rule:     testRule(AddAll, "", "  ", "CENTER", "MSK"),
			wantRule: testRule(AddAll, NA, NA, "CENTER", "MSK"),
		},
		{
			name:     "decomposed values composed into NFC",
			rule:     testRule(FixValue, "SITE", "Cafe\u0301", "SITE", "Re\u0301sume\u0301"),
			wantRule: testRule(FixValue, "SITE", "Caf\u00e9", "SITE", "R\u00e9sum\u00e9"),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.wantRule, tc.rule.Normalize())
		})
	}
}
