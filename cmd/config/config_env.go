// SPDX-License-Identifier: Apache-2.0

package config

import (
	"github.com/spf13/viper"
	"github.com/xataio/clinnorm/pkg/cleanup"
	"github.com/xataio/clinnorm/pkg/otel"
)

func envConfigToCleanupConfig() (*cleanup.Config, error) {
	cfg := &cleanup.Config{
		ClinicalFile:           viper.GetString("CLINNORM_CLINICAL_FILE"),
		OutputDirectory:        viper.GetString("CLINNORM_OUTPUT_DIRECTORY"),
		OutputFilenameTemplate: viper.GetString("CLINNORM_OUTPUT_FILENAME_TEMPLATE"),
		CaseIDAttributes:       viper.GetStringSlice("CLINNORM_CASE_ID_ATTRIBUTES"),
		FilterEmptyAttributes:  true,
		Workers:                viper.GetInt("CLINNORM_WORKERS"),
	}

	if viper.IsSet("CLINNORM_FILTER_EMPTY_ATTRIBUTES") {
		cfg.FilterEmptyAttributes = viper.GetBool("CLINNORM_FILTER_EMPTY_ATTRIBUTES")
	}

	if mapFile := viper.GetString("CLINNORM_MAP_FILE"); mapFile != "" {
		cfg.Mapping = &cleanup.MappingConfig{
			MapFile: mapFile,
		}
	}

	if viper.GetBool("CLINNORM_GENOMIC_ALTERATIONS_ENABLED") {
		cfg.GenomicAlterations = &cleanup.GenomicAlterationsConfig{
			MutationsFile: viper.GetString("CLINNORM_MUTATIONS_FILE"),
			Column:        viper.GetString("CLINNORM_GENOMIC_ALTERATIONS_COLUMN"),
		}
	}

	return cfg, nil
}

func envToOtelConfig() (*otel.Config, error) {
	cfg := &otel.Config{}

	if endpoint := viper.GetString("CLINNORM_METRICS_ENDPOINT"); endpoint != "" {
		cfg.Metrics = &otel.MetricsConfig{
			Endpoint:           endpoint,
			CollectionInterval: viper.GetDuration("CLINNORM_METRICS_COLLECTION_INTERVAL"),
		}
	}

	if endpoint := viper.GetString("CLINNORM_TRACES_ENDPOINT"); endpoint != "" {
		cfg.Traces = &otel.TracesConfig{
			Endpoint:    endpoint,
			SampleRatio: viper.GetFloat64("CLINNORM_TRACES_SAMPLE_RATIO"),
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
