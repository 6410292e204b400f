// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"github.com/xataio/clinnorm/pkg/cleanup"
	"github.com/xataio/clinnorm/pkg/otel"
)

func TestYAMLConfig_toCleanupConfig(t *testing.T) {
	require.NoError(t, LoadFile("test/test_config.yaml"))

	var config YAMLConfig
	err := viper.Unmarshal(&config)
	require.NoError(t, err)

	cleanupConfig, err := config.toCleanupConfig()
	require.NoError(t, err)

	validateTestCleanupConfig(t, cleanupConfig)

	otelConfig, err := config.toOtelConfig()
	require.NoError(t, err)

	validateTestOtelConfig(t, otelConfig)
}

func TestYAMLConfig_toCleanupConfig_Defaults(t *testing.T) {
	t.Parallel()

	filter := false

	tests := []struct {
		name   string
		config YAMLConfig

		wantConfig *cleanup.Config
		wantErr    error
	}{
		{
			name: "ok - filtering enabled by default",
			config: YAMLConfig{
				Input: InputConfig{ClinicalFile: "data_clinical.txt"},
			},
			wantConfig: &cleanup.Config{
				ClinicalFile:          "data_clinical.txt",
				FilterEmptyAttributes: true,
			},
		},
		{
			name: "ok - filtering disabled",
			config: YAMLConfig{
				Input: InputConfig{
					ClinicalFile:          "data_clinical.txt",
					FilterEmptyAttributes: &filter,
				},
			},
			wantConfig: &cleanup.Config{
				ClinicalFile: "data_clinical.txt",
			},
		},
		{
			name: "ok - genomic alterations disabled",
			config: YAMLConfig{
				Input: InputConfig{ClinicalFile: "data_clinical.txt"},
				GenomicAlterations: &GenomicAlterationsConfig{
					Enabled:       false,
					MutationsFile: "data_mutations_extended.txt",
				},
			},
			wantConfig: &cleanup.Config{
				ClinicalFile:          "data_clinical.txt",
				FilterEmptyAttributes: true,
			},
		},
		{
			name: "err - negative workers",
			config: YAMLConfig{
				Workers: -1,
			},
			wantErr: errInvalidWorkers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := tt.config.toCleanupConfig()
			require.ErrorIs(t, err, tt.wantErr)
			require.Equal(t, tt.wantConfig, cfg)
		})
	}
}

func TestInstrumentationConfig_toOtelConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config InstrumentationConfig

		wantConfig *otel.Config
		wantErr    error
	}{
		{
			name: "valid config",
			config: InstrumentationConfig{
				Metrics: &MetricsConfig{
					Endpoint:           "http://localhost:8080/metrics",
					CollectionInterval: 10,
				},
				Traces: &TracesConfig{
					Endpoint:    "http://localhost:8080/traces",
					SampleRatio: 0.5,
				},
			},
			wantConfig: &otel.Config{
				Metrics: &otel.MetricsConfig{
					Endpoint:           "http://localhost:8080/metrics",
					CollectionInterval: time.Second * 10,
				},
				Traces: &otel.TracesConfig{
					Endpoint:    "http://localhost:8080/traces",
					SampleRatio: 0.5,
				},
			},
			wantErr: nil,
		},
		{
			name:       "no instrumentation",
			config:     InstrumentationConfig{},
			wantConfig: &otel.Config{},
			wantErr:    nil,
		},
		{
			name: "err - invalid trace sample ratio",
			config: InstrumentationConfig{
				Traces: &TracesConfig{
					Endpoint:    "http://localhost:8080/traces",
					SampleRatio: 1.5,
				},
			},
			wantConfig: nil,
			wantErr:    otel.ErrInvalidSampleRatio,
		},
		{
			name: "err - missing metrics endpoint",
			config: InstrumentationConfig{
				Metrics: &MetricsConfig{
					CollectionInterval: 10,
				},
			},
			wantConfig: nil,
			wantErr:    otel.ErrMissingEndpoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := tt.config.toOtelConfig()
			require.Equal(t, tt.wantConfig, cfg)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
