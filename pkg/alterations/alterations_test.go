// SPDX-License-Identifier: Apache-2.0

package alterations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xataio/clinnorm/internal/tsv"
)

func TestCounter_CountFile(t *testing.T) {
	t.Parallel()

	counts, err := NewCounter().CountFile("testdata/data_mutations_extended.txt")
	require.NoError(t, err)
	require.Equal(t, Counts{"S1": 2, "S2": 1}, counts)

	require.Equal(t, "2", counts.Value("S1"))
	require.Equal(t, "1", counts.Value("S2"))
	require.Equal(t, "0", counts.Value("S3"))
}

func TestCounter_Count_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string

		wantErr error
	}{
		{
			name:    "missing sample column",
			input:   "Hugo_Symbol\tSAMPLE_ID\nTP53\tS1\n",
			wantErr: ErrMissingSampleColumn,
		},
		{
			name:    "empty file",
			input:   "#version 2.4\n",
			wantErr: tsv.ErrEmptyFile,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			counts, err := NewCounter().Count(strings.NewReader(tc.input))
			require.ErrorIs(t, err, tc.wantErr)
			require.Nil(t, counts)
		})
	}
}
