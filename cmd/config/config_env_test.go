// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"github.com/xataio/clinnorm/pkg/cleanup"
	"github.com/xataio/clinnorm/pkg/otel"
)

func Test_EnvConfigToCleanupConfig(t *testing.T) {
	require.NoError(t, LoadFile("test/test_config.env"))

	cleanupConfig, err := envConfigToCleanupConfig()
	require.NoError(t, err)
	require.NotNil(t, cleanupConfig)

	validateTestCleanupConfig(t, cleanupConfig)
}

func Test_EnvConfigToOtelConfig(t *testing.T) {
	require.NoError(t, LoadFile("test/test_config.env"))

	otelConfig, err := envToOtelConfig()
	require.NoError(t, err)
	require.NotNil(t, otelConfig)

	validateTestOtelConfig(t, otelConfig)
}

func Test_EnvVarsToCleanupConfig(t *testing.T) {
	viper.Reset()
	viper.AutomaticEnv()
	t.Cleanup(viper.Reset)

	t.Setenv("CLINNORM_CLINICAL_FILE", "/data/study/data_clinical.txt")
	t.Setenv("CLINNORM_MAP_FILE", "/data/mappings/mapping.txt")
	t.Setenv("CLINNORM_WORKERS", "2")

	cleanupConfig, err := envConfigToCleanupConfig()
	require.NoError(t, err)
	require.Equal(t, "/data/study/data_clinical.txt", cleanupConfig.ClinicalFile)
	require.Equal(t, &cleanup.MappingConfig{MapFile: "/data/mappings/mapping.txt"}, cleanupConfig.Mapping)
	require.Nil(t, cleanupConfig.GenomicAlterations)
	require.Empty(t, cleanupConfig.CaseIDAttributes)
	require.True(t, cleanupConfig.FilterEmptyAttributes)
	require.Equal(t, 2, cleanupConfig.Workers)
}

func Test_EnvVarsToOtelConfig(t *testing.T) {
	viper.Reset()
	viper.AutomaticEnv()
	t.Cleanup(viper.Reset)

	t.Run("instrumentation disabled", func(t *testing.T) {
		otelConfig, err := envToOtelConfig()
		require.NoError(t, err)
		require.Nil(t, otelConfig.Metrics)
		require.Nil(t, otelConfig.Traces)
	})

	t.Run("err - invalid sample ratio", func(t *testing.T) {
		t.Setenv("CLINNORM_TRACES_ENDPOINT", "localhost:4317")
		t.Setenv("CLINNORM_TRACES_SAMPLE_RATIO", "2")

		_, err := envToOtelConfig()
		require.ErrorIs(t, err, otel.ErrInvalidSampleRatio)
	})
}
