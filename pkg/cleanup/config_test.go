// SPDX-License-Identifier: Apache-2.0

package cleanup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config Config

		wantErr error
	}{
		{name: "ok", config: Config{ClinicalFile: "data_clinical.txt"}},
		{name: "missing clinical file", config: Config{}, wantErr: ErrMissingClinicalFile},
		{name: "mapping without map file", config: Config{ClinicalFile: "data_clinical.txt", Mapping: &MappingConfig{}}, wantErr: ErrMissingMapFile},
		{name: "negative workers", config: Config{ClinicalFile: "data_clinical.txt", Workers: -1}, wantErr: errInvalidWorkers},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, tc.config.IsValid(), tc.wantErr)
		})
	}
}

func TestConfig_defaults(t *testing.T) {
	t.Parallel()

	cfg := Config{ClinicalFile: "/study/data_clinical.txt"}
	require.Equal(t, "/study", cfg.outputDirectory())
	require.Equal(t, DefaultOutputFilenameTemplate, cfg.outputFilenameTemplate())
	require.Equal(t, 1, cfg.workers())
	require.Equal(t, "/study/data_mutations_extended.txt", cfg.mutationsFile())

	cfg = Config{
		ClinicalFile:       "/study/data_clinical.txt",
		OutputDirectory:    "/out",
		Workers:            4,
		GenomicAlterations: &GenomicAlterationsConfig{MutationsFile: "/maf/data.maf"},
	}
	require.Equal(t, "/out", cfg.outputDirectory())
	require.Equal(t, 4, cfg.workers())
	require.Equal(t, "/maf/data.maf", cfg.mutationsFile())
}
