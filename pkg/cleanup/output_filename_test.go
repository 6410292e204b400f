// SPDX-License-Identifier: Apache-2.0

package cleanup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRenderOutputFilename(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		tmpl string

		wantName   string
		wantErr    error
		wantAnyErr bool
	}{
		{name: "default", tmpl: DefaultOutputFilenameTemplate, wantName: "processed-data_clinical.txt"},
		{name: "date and stem", tmpl: "{{ .Stem }}-{{ .Date }}{{ .Ext }}", wantName: "data_clinical-2026-03-04.txt"},
		{name: "run id", tmpl: "{{ .RunID }}.tsv", wantName: "run1.tsv"},
		{name: "sprig functions", tmpl: `{{ .Filename | replace "data_" "" }}`, wantName: "clinical.txt"},
		{name: "path separator", tmpl: "out/{{ .Filename }}", wantErr: errInvalidOutputFilename},
		{name: "unknown field", tmpl: "{{ .Missing }}", wantAnyErr: true},
		{name: "blank", tmpl: " ", wantErr: errInvalidOutputFilename},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			name, err := renderOutputFilename(tc.tmpl, "/study/data_clinical.txt", "run1", now)
			if tc.wantAnyErr {
				require.Error(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, tc.wantName, name)
		})
	}
}
