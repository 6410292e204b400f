// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xataio/clinnorm/pkg/cleanup"
	"github.com/xataio/clinnorm/pkg/otel"
)

// this function validates the cleanup configuration produced from the test
// configuration in the test directory.
func validateTestCleanupConfig(t *testing.T, cleanupConfig *cleanup.Config) {
	t.Helper()

	wantConfig := &cleanup.Config{
		ClinicalFile:           "/data/study/data_clinical.txt",
		OutputDirectory:        "/data/output",
		OutputFilenameTemplate: "{{ .Stem }}-normalized{{ .Ext }}",
		Mapping: &cleanup.MappingConfig{
			MapFile: "/data/mappings/mapping.txt",
		},
		GenomicAlterations: &cleanup.GenomicAlterationsConfig{
			MutationsFile: "/data/study/data_mutations_extended.txt",
			Column:        "GENOMIC_ALTERATIONS",
		},
		CaseIDAttributes:      []string{"PATIENT_ID", "SAMPLE_ID"},
		FilterEmptyAttributes: false,
		Workers:               4,
	}

	if diff := cmp.Diff(wantConfig, cleanupConfig); diff != "" {
		t.Errorf("unexpected cleanup config (-want +got):\n%s", diff)
	}
}

// this function validates the otel configuration produced from the test
// configuration in the test directory.
func validateTestOtelConfig(t *testing.T, otelConfig *otel.Config) {
	t.Helper()

	wantConfig := &otel.Config{
		Metrics: &otel.MetricsConfig{
			Endpoint:           "http://localhost:4317",
			CollectionInterval: 60 * time.Second,
		},
		Traces: &otel.TracesConfig{
			Endpoint:    "http://localhost:4317",
			SampleRatio: 0.5,
		},
	}

	if diff := cmp.Diff(wantConfig, otelConfig); diff != "" {
		t.Errorf("unexpected otel config (-want +got):\n%s", diff)
	}
}
