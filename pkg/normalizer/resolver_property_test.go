// SPDX-License-Identifier: Apache-2.0

package normalizer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xataio/clinnorm/pkg/rules"
	"golang.org/x/exp/slices"
	"pgregory.net/rapid"
)

var mergeContributors = []string{"RACE", "ETHNIC_GROUP"}

// genMergeTable registers the same value map for every contributor, so that
// sub-values can move between contributor columns without changing their
// meaning.
func genMergeTable(t *rapid.T) (*rules.Table, []string) {
	tokens := rapid.SampledFrom([]string{"Asian", "Caucasian", "Hispanic", "None", "Asian/Caucasian"})
	vocabulary := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{1,6}`), 1, 8, rapid.ID[string]).Draw(t, "vocabulary")

	rows := []rules.MappingRule{}
	for i, original := range vocabulary {
		normalized := tokens.Draw(t, fmt.Sprintf("normalized_%d", i))
		for _, c := range mergeContributors {
			rows = append(rows, testRule(rules.Merge, c, original, "ETHNICITY", normalized))
		}
	}
	table, err := rules.Build(rows)
	if err != nil {
		t.Fatalf("building table: %v", err)
	}
	// upper case values are never mapped
	originals := append(vocabulary, "UNMAPPED")
	return table, originals
}

func sampleFromSubValues(subValues []string, split int) map[string]string {
	join := func(values []string) string {
		if len(values) == 0 {
			return rules.NA
		}
		return strings.Join(values, "/")
	}
	return map[string]string{
		mergeContributors[0]: join(subValues[:split]),
		mergeContributors[1]: join(subValues[split:]),
	}
}

func TestResolver_Merge_permutationInvariant(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		table, originals := genMergeTable(t)
		resolver := NewResolver(table)

		subValues := rapid.SliceOfN(rapid.SampledFrom(originals), 1, 10).Draw(t, "sub_values")
		split := rapid.IntRange(0, len(subValues)).Draw(t, "split")
		want, err := resolver.Resolve(rules.Merge, "ETHNICITY", sampleFromSubValues(subValues, split))
		require.NoError(t, err)

		permuted := rapid.Permutation(subValues).Draw(t, "permuted")
		permutedSplit := rapid.IntRange(0, len(permuted)).Draw(t, "permuted_split")
		got, err := resolver.Resolve(rules.Merge, "ETHNICITY", sampleFromSubValues(permuted, permutedSplit))
		require.NoError(t, err)

		require.Equal(t, want.Value, got.Value)
		require.Equal(t, want.Unmapped, got.Unmapped)
	})
}

func TestResolver_Merge_canonicalValue(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		table, originals := genMergeTable(t)
		resolver := NewResolver(table)

		subValues := rapid.SliceOfN(rapid.SampledFrom(originals), 0, 10).Draw(t, "sub_values")
		split := rapid.IntRange(0, len(subValues)).Draw(t, "split")
		res, err := resolver.Resolve(rules.Merge, "ETHNICITY", sampleFromSubValues(subValues, split))
		require.NoError(t, err)

		if res.Value == rules.NA {
			return
		}
		tokens := strings.Split(res.Value, "/")
		require.True(t, slices.IsSorted(tokens), res.Value)
		require.Equal(t, len(tokens), len(slices.Compact(slices.Clone(tokens))), res.Value)
		if len(tokens) > 1 {
			require.NotContains(t, tokens, "None")
		}
	})
}
