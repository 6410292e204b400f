// SPDX-License-Identifier: Apache-2.0

package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeFields(t *testing.T) {
	t.Parallel()

	merged := MergeFields(
		Fields{ModuleField: "normalizer", SampleField: "S1"},
		Fields{SampleField: "S2", AttributeField: "SEX"},
	)
	require.Equal(t, Fields{
		ModuleField:    "normalizer",
		SampleField:    "S2",
		AttributeField: "SEX",
	}, merged)

	require.Empty(t, MergeFields(nil, nil))
}

func TestForModule(t *testing.T) {
	t.Parallel()

	// a nil logger falls back to the noop logger
	l := ForModule(nil, "rules")
	require.IsType(t, &NoopLogger{}, l)
	l.Info("noop")
}
