// SPDX-License-Identifier: Apache-2.0

package study

import (
	"errors"

	loglib "github.com/xataio/clinnorm/pkg/log"
)

// study file names and their case id columns
const (
	ClinicalFile        = "data_clinical.txt"
	ClinicalPatientFile = "data_clinical_patient.txt"
	ClinicalSampleFile  = "data_clinical_sample.txt"
	MutationsFile       = "data_mutations_extended.txt"

	PatientIDColumn = "PATIENT_ID"
	SegmentIDColumn = "ID"

	segmentFileSuffix = ".seg"
	metaFilePattern   = "meta_"
)

var (
	ErrMissingColumn    = errors.New("file is missing the case id column")
	ErrEmptySubset      = errors.New("sample subset list is empty")
	ErrNoClinicalFile   = errors.New("no clinical data file found")
	ErrNothingToKeep    = errors.New("data could not be filtered using the sample subset list")
	ErrMissingDirectory = errors.New("no such directory")
)

// Processor runs the study level file operations.
type Processor struct {
	logger loglib.Logger
}

type Option func(*Processor)

func New(opts ...Option) *Processor {
	p := &Processor{
		logger: loglib.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func WithLogger(l loglib.Logger) Option {
	return func(p *Processor) {
		p.logger = loglib.ForModule(l, "study_processor")
	}
}
