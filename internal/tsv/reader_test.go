// SPDX-License-Identifier: Apache-2.0

package tsv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	t.Parallel()

	input := "#version 2.4\n" +
		" SAMPLE_ID \tSEX\tAGE\tSEX\n" +
		"S1\tM\t5\tF\n" +
		"#S2\tF\t6\n" +
		"S3\tF\n" +
		"S4\tunk\"nown\t7\n"

	table, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, []string{"SAMPLE_ID", "SEX", "AGE", "SEX"}, table.Header)
	require.Len(t, table.Rows, 3)
	require.True(t, table.HasColumn("AGE"))
	require.False(t, table.HasColumn("WEIGHT"))

	v, found := table.Value(table.Rows[0], "SEX")
	require.True(t, found)
	require.Equal(t, "M", v)

	_, found = table.Value(table.Rows[1], "AGE")
	require.False(t, found)

	require.Equal(t, []map[string]string{
		{"SAMPLE_ID": "S1", "SEX": "M", "AGE": "5"},
		{"SAMPLE_ID": "S3", "SEX": "F"},
		{"SAMPLE_ID": "S4", "SEX": "unk\"nown", "AGE": "7"},
	}, table.Records())
}

func TestRead_empty(t *testing.T) {
	t.Parallel()

	_, err := Read(strings.NewReader("#only comments\n"))
	require.ErrorIs(t, err, ErrEmptyFile)
}
