// SPDX-License-Identifier: Apache-2.0

package cleanup

import (
	"errors"
	"path/filepath"
)

type Config struct {
	ClinicalFile string
	// OutputDirectory defaults to the directory of the clinical file.
	OutputDirectory string
	// OutputFilenameTemplate is a text/template with sprig functions,
	// rendered with the clinical file name. Defaults to
	// DefaultOutputFilenameTemplate.
	OutputFilenameTemplate string
	// Mapping enables the normalization of the clinical attributes. Without
	// it the cleaned data is written with the raw header.
	Mapping *MappingConfig
	// GenomicAlterations enables the genomic alterations column. It is also
	// enabled when the mapping declares an ADD_GENOMIC_ALTERATIONS column.
	GenomicAlterations *GenomicAlterationsConfig
	// CaseIDAttributes defaults to PATIENT_ID, SAMPLE_ID, OTHER_PATIENT_ID
	// and OTHER_SAMPLE_ID.
	CaseIDAttributes      []string
	FilterEmptyAttributes bool
	// Workers is the number of samples normalized concurrently, defaults to
	// 1.
	Workers int
}

type MappingConfig struct {
	MapFile string
}

type GenomicAlterationsConfig struct {
	// MutationsFile defaults to the MAF next to the clinical file.
	MutationsFile string
	// Column defaults to the ADD_GENOMIC_ALTERATIONS column of the mapping,
	// or GENOMIC_ALTERATIONS.
	Column string
}

const (
	DefaultOutputFilenameTemplate = "processed-{{ .Filename }}"
	defaultMutationsFilename      = "data_mutations_extended.txt"
	defaultWorkers                = 1
)

var (
	ErrMissingClinicalFile  = errors.New("clinical file not found")
	ErrMissingMapFile       = errors.New("mapping file not found")
	ErrMissingMutationsFile = errors.New("mutation file not found")
	ErrMissingOutputDir     = errors.New("output directory not found")
	errInvalidWorkers       = errors.New("workers must be a positive number")
)

func (c *Config) IsValid() error {
	if c.ClinicalFile == "" {
		return ErrMissingClinicalFile
	}
	if c.Mapping != nil && c.Mapping.MapFile == "" {
		return ErrMissingMapFile
	}
	if c.Workers < 0 {
		return errInvalidWorkers
	}
	return nil
}

func (c *Config) outputDirectory() string {
	if c.OutputDirectory != "" {
		return c.OutputDirectory
	}
	return filepath.Dir(c.ClinicalFile)
}

func (c *Config) outputFilenameTemplate() string {
	if c.OutputFilenameTemplate != "" {
		return c.OutputFilenameTemplate
	}
	return DefaultOutputFilenameTemplate
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return defaultWorkers
}

func (c *Config) mutationsFile() string {
	if c.GenomicAlterations != nil && c.GenomicAlterations.MutationsFile != "" {
		return c.GenomicAlterations.MutationsFile
	}
	return filepath.Join(filepath.Dir(c.ClinicalFile), defaultMutationsFilename)
}
