// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testRule(ptype ProcessingType, origAttr, origValue, normAttr, normValue string) MappingRule {
	return MappingRule{
		ProcessingType:      string(ptype),
		OriginalAttribute:   origAttr,
		OriginalValue:       origValue,
		NormalizedAttribute: normAttr,
		NormalizedValue:     normValue,
	}
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	rows := []MappingRule{
		testRule(KeepAll, "AGE", NA, "AGE", NA),
		testRule(FixValue, "SEX", "M", "SEX", "Male"),
		testRule(FixValue, "SEX", "F", "SEX", "Female"),
		testRule(Merge, "RACE", "White", "ETHNICITY", "Caucasian"),
		testRule(Merge, "ETHNIC_GROUP", "Hispanic", "ETHNICITY", "Hispanic"),
		testRule(Merge, "RACE", "Asian", "ETHNICITY", "Asian"),
		testRule(FixAll, "TUMOR_SITE", "lung", "PRIMARY_SITE", "Lung"),
		testRule(FixAll, "PRIMARY_SITE", "lung", "PRIMARY_SITE", "Lung"),
		testRule(Derive, "AGE", "5", "AGE_GROUP", "0-10"),
		testRule(FixAttribute, "DX", NA, "DIAGNOSIS", NA),
		testRule(AddAll, NA, NA, "CENTER", "MSK"),
		testRule(Ignore, "INTERNAL_ID", NA, NA, NA),
		testRule(AddGenomicAlterations, NA, NA, NA, NA),
		testRule(KeepAll, "AGE", NA, "AGE", NA),
	}

	table, err := NewBuilder().Build(rows)
	require.NoError(t, err)

	require.Equal(t, []string{"AGE", "SEX", "ETHNICITY", "PRIMARY_SITE", "AGE_GROUP", "DIAGNOSIS", "CENTER"}, table.NormalizedAttributes())
	require.Equal(t, []string{"RACE", "ETHNIC_GROUP", "TUMOR_SITE", "INTERNAL_ID"}, table.PostProcessAttributeFilter())
	require.Equal(t, []string{"AGE"}, table.KeepAllAttributes())
	require.Equal(t, []string{"INTERNAL_ID"}, table.IgnoredAttributes())
	require.Equal(t, []string{DefaultGenomicAlterationsAttribute}, table.DerivedAttributes())
	require.Equal(t, []string{"RACE", "ETHNIC_GROUP"}, table.Contributors(Merge, "ETHNICITY"))
	require.Equal(t, []string{"TUMOR_SITE", "PRIMARY_SITE"}, table.Contributors(FixAll, "PRIMARY_SITE"))
	require.Nil(t, table.Contributors(FixValue, "ETHNICITY"))

	v, found := table.Lookup(FixValue, "SEX", "SEX", "M")
	require.True(t, found)
	require.Equal(t, "Male", v)
	_, found = table.Lookup(FixValue, "SEX", "SEX", "U")
	require.False(t, found)
	require.True(t, table.IsNormalizedValue(FixValue, "SEX", "SEX", "Female"))
	require.False(t, table.IsNormalizedValue(FixValue, "SEX", "SEX", "F"))

	constant, found := table.Constant("CENTER")
	require.True(t, found)
	require.Equal(t, "MSK", constant)

	require.Equal(t, map[ProcessingType]int{
		KeepAll:               1,
		Ignore:                1,
		Merge:                 1,
		Derive:                1,
		FixAll:                1,
		FixValue:              1,
		FixAttribute:          1,
		AddAll:                1,
		AddGenomicAlterations: 1,
	}, table.Summary())
	require.NoError(t, table.Validate())
}

func TestBuilder_Build_lastDuplicateWins(t *testing.T) {
	t.Parallel()

	table, err := Build([]MappingRule{
		testRule(FixValue, "SEX", "M", "SEX", "Male"),
		testRule(FixValue, "SEX", "M", "SEX", "MALE"),
		testRule(AddAll, NA, NA, "CENTER", "MSK"),
		testRule(AddAll, NA, NA, "CENTER", "DFCI"),
	})
	require.NoError(t, err)

	v, found := table.Lookup(FixValue, "SEX", "SEX", "M")
	require.True(t, found)
	require.Equal(t, "MALE", v)
	constant, _ := table.Constant("CENTER")
	require.Equal(t, "DFCI", constant)
	require.Equal(t, []string{"SEX", "CENTER"}, table.NormalizedAttributes())
}

func TestBuilder_Build_keepAllRename(t *testing.T) {
	t.Parallel()

	table, err := Build([]MappingRule{
		testRule(KeepAll, "AGE", NA, "AGE_AT_DX", NA),
		testRule(KeepAll, NA, NA, "STAGE", NA),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"AGE", "STAGE"}, table.NormalizedAttributes())
	require.Equal(t, []string{"AGE", "STAGE"}, table.KeepAllAttributes())
}

func TestBuilder_Build_genomicAlterationsColumn(t *testing.T) {
	t.Parallel()

	table, err := Build([]MappingRule{
		testRule(AddGenomicAlterations, NA, NA, "MUTATION_COUNT", NA),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"MUTATION_COUNT"}, table.DerivedAttributes())
	require.Empty(t, table.NormalizedAttributes())

	ptype, err := table.Classify("MUTATION_COUNT")
	require.NoError(t, err)
	require.Equal(t, AddGenomicAlterations, ptype)
}

func TestBuilder_Build_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows []MappingRule

		wantErr error
	}{
		{
			name: "invalid processing type",
			rows: []MappingRule{
				testRule(FixValue, "SEX", "M", "SEX", "Male"),
				testRule("SPLIT", "SEX", "M", "SEX", "Male"),
			},
			wantErr: ErrInvalidProcessingType,
		},
		{
			name:    "blank processing type",
			rows:    []MappingRule{testRule(" ", "SEX", "M", "SEX", "Male")},
			wantErr: ErrInvalidProcessingType,
		},
		{
			name:    "mapping rule without normalized attribute",
			rows:    []MappingRule{testRule(FixValue, "SEX", "M", NA, "Male")},
			wantErr: ErrMissingAttribute,
		},
		{
			name:    "mapping rule without original attribute",
			rows:    []MappingRule{testRule(Merge, "", "M", "SEX", "Male")},
			wantErr: ErrMissingAttribute,
		},
		{
			name:    "add all without normalized attribute",
			rows:    []MappingRule{testRule(AddAll, NA, NA, NA, "MSK")},
			wantErr: ErrMissingAttribute,
		},
		{
			name:    "ignore without original attribute",
			rows:    []MappingRule{testRule(Ignore, NA, NA, "AGE", NA)},
			wantErr: ErrMissingAttribute,
		},
		{
			name:    "keep all without attribute",
			rows:    []MappingRule{testRule(KeepAll, NA, NA, NA, NA)},
			wantErr: ErrMissingAttribute,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			table, err := Build(tc.rows)
			require.ErrorIs(t, err, tc.wantErr)
			require.Nil(t, table)
		})
	}
}

func TestBuilder_Build_invalidProcessingTypeRow(t *testing.T) {
	t.Parallel()

	_, err := Build([]MappingRule{
		testRule(FixValue, "SEX", "M", "SEX", "Male"),
		testRule("FIX", "SEX", "M", "SEX", "Male"),
	})

	var ptypeErr *InvalidProcessingTypeError
	require.ErrorAs(t, err, &ptypeErr)
	require.Equal(t, 2, ptypeErr.Row)
	require.Equal(t, "FIX", ptypeErr.Value)
}
