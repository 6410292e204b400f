// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"time"

	"github.com/xataio/clinnorm/pkg/cleanup"
	"github.com/xataio/clinnorm/pkg/otel"
)

type YAMLConfig struct {
	Input              InputConfig               `mapstructure:"input" yaml:"input"`
	Mapping            *MappingConfig            `mapstructure:"mapping" yaml:"mapping"`
	GenomicAlterations *GenomicAlterationsConfig `mapstructure:"genomic_alterations" yaml:"genomic_alterations"`
	Output             OutputConfig              `mapstructure:"output" yaml:"output"`
	Workers            int                       `mapstructure:"workers" yaml:"workers"`
	Instrumentation    InstrumentationConfig     `mapstructure:"instrumentation" yaml:"instrumentation"`
}

type InputConfig struct {
	ClinicalFile     string   `mapstructure:"clinical_file" yaml:"clinical_file"`
	CaseIDAttributes []string `mapstructure:"case_id_attributes" yaml:"case_id_attributes"`
	// FilterEmptyAttributes defaults to true when not set.
	FilterEmptyAttributes *bool `mapstructure:"filter_empty_attributes" yaml:"filter_empty_attributes"`
}

type MappingConfig struct {
	MapFile string `mapstructure:"map_file" yaml:"map_file"`
}

type GenomicAlterationsConfig struct {
	Enabled       bool   `mapstructure:"enabled" yaml:"enabled"`
	MutationsFile string `mapstructure:"mutations_file" yaml:"mutations_file"`
	Column        string `mapstructure:"column" yaml:"column"`
}

type OutputConfig struct {
	Directory        string `mapstructure:"directory" yaml:"directory"`
	FilenameTemplate string `mapstructure:"filename_template" yaml:"filename_template"`
}

type InstrumentationConfig struct {
	Metrics *MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Traces  *TracesConfig  `mapstructure:"traces" yaml:"traces"`
}

type MetricsConfig struct {
	Endpoint           string `mapstructure:"endpoint" yaml:"endpoint"`
	CollectionInterval int    `mapstructure:"collection_interval" yaml:"collection_interval"`
}

type TracesConfig struct {
	Endpoint    string  `mapstructure:"endpoint" yaml:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio" yaml:"sample_ratio"`
}

var errInvalidWorkers = errors.New("workers must be a positive number")

func (c *YAMLConfig) toCleanupConfig() (*cleanup.Config, error) {
	if c.Workers < 0 {
		return nil, errInvalidWorkers
	}

	cfg := &cleanup.Config{
		ClinicalFile:           c.Input.ClinicalFile,
		OutputDirectory:        c.Output.Directory,
		OutputFilenameTemplate: c.Output.FilenameTemplate,
		CaseIDAttributes:       c.Input.CaseIDAttributes,
		FilterEmptyAttributes:  true,
		Workers:                c.Workers,
	}

	if c.Input.FilterEmptyAttributes != nil {
		cfg.FilterEmptyAttributes = *c.Input.FilterEmptyAttributes
	}

	if c.Mapping != nil {
		cfg.Mapping = &cleanup.MappingConfig{
			MapFile: c.Mapping.MapFile,
		}
	}

	if c.GenomicAlterations != nil && c.GenomicAlterations.Enabled {
		cfg.GenomicAlterations = &cleanup.GenomicAlterationsConfig{
			MutationsFile: c.GenomicAlterations.MutationsFile,
			Column:        c.GenomicAlterations.Column,
		}
	}

	return cfg, nil
}

func (c *YAMLConfig) toOtelConfig() (*otel.Config, error) {
	return c.Instrumentation.toOtelConfig()
}

func (c InstrumentationConfig) toOtelConfig() (*otel.Config, error) {
	cfg := &otel.Config{}
	if c.Metrics != nil {
		cfg.Metrics = &otel.MetricsConfig{
			Endpoint:           c.Metrics.Endpoint,
			CollectionInterval: time.Duration(c.Metrics.CollectionInterval) * time.Second,
		}
	}
	if c.Traces != nil {
		cfg.Traces = &otel.TracesConfig{
			Endpoint:    c.Traces.Endpoint,
			SampleRatio: c.Traces.SampleRatio,
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
