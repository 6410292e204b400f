// SPDX-License-Identifier: Apache-2.0

package study

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xataio/clinnorm/internal/tsv"
	"github.com/xataio/clinnorm/pkg/alterations"
	"github.com/xataio/clinnorm/pkg/clinical"
	loglib "github.com/xataio/clinnorm/pkg/log"
	"golang.org/x/exp/slices"
)

// DefaultSubsetID is the suffix of the filtered files when none is given.
const DefaultSubsetID = "filtered"

// profile files hold one column per sample
var profileFiles = []string{
	"data_CNA.txt",
	"data_expression_median.txt",
	"data_expression_miRNA.txt",
	"data_methylation_hm27.txt",
	"data_RNA_Seq_expression_median.txt",
}

// profileNonCaseIDColumns are the gene columns kept in filtered profile files.
var profileNonCaseIDColumns = []string{"Hugo_Symbol", "Entrez_Gene_Id"}

// row oriented files and the column holding their case id
var caseIDColumns = map[string]string{
	ClinicalFile:        clinical.SampleIDAttribute,
	ClinicalPatientFile: PatientIDColumn,
	ClinicalSampleFile:  clinical.SampleIDAttribute,
	MutationsFile:       alterations.SampleColumn,
}

type SubsetConfig struct {
	SubsetFile     string
	InputDirectory string
	// SubsetID defaults to DefaultSubsetID.
	SubsetID string
}

func (c *SubsetConfig) subsetID() string {
	if c.SubsetID != "" {
		return c.SubsetID
	}
	return DefaultSubsetID
}

// SubsetResult holds the outcome of every study file.
type SubsetResult struct {
	Samples  []string      `json:"samples"`
	Patients []string      `json:"patients"`
	Files    []*FileStatus `json:"files"`
}

type FileStatus struct {
	Filename   string   `json:"filename"`
	Column     string   `json:"column,omitempty"`
	OutputFile string   `json:"output_file,omitempty"`
	Rows       int      `json:"rows"`
	Skipped    bool     `json:"skipped"`
	Errors     []string `json:"errors,omitempty"`
}

// FilterBySubset writes, next to every known study file, a copy holding only
// the samples of the subset list (and their patients). Files that would end up
// without data are skipped with an error status, unknown files are ignored.
func (p *Processor) FilterBySubset(ctx context.Context, cfg *SubsetConfig) (*SubsetResult, error) {
	if info, err := os.Stat(cfg.InputDirectory); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrMissingDirectory, cfg.InputDirectory)
	}

	samples, err := readSubsetList(cfg.SubsetFile)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(cfg.InputDirectory)
	if err != nil {
		return nil, err
	}

	patients, err := p.subsetPatients(cfg.InputDirectory, entries, samples)
	if err != nil {
		return nil, err
	}

	result := &SubsetResult{Samples: samples, Patients: patients}
	keep := make(map[string]struct{}, len(samples)+len(patients))
	for _, id := range append(slices.Clone(samples), patients...) {
		keep[id] = struct{}{}
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := entry.Name()
		if entry.IsDir() || strings.Contains(name, metaFilePattern) {
			p.logger.Debug("skipping sub-directory or meta file", loglib.Fields{loglib.FileField: name})
			continue
		}

		path := filepath.Join(cfg.InputDirectory, name)
		var status *FileStatus
		switch {
		case slices.Contains(profileFiles, name):
			status = p.filterProfileFile(path, samples, cfg.subsetID())
		case strings.HasSuffix(name, segmentFileSuffix):
			status = p.filterCaseFile(path, SegmentIDColumn, keep, cfg.subsetID())
		default:
			column, found := caseIDColumns[name]
			if !found {
				p.logger.Debug("skipping unknown filename pattern", loglib.Fields{loglib.FileField: name})
				continue
			}
			status = p.filterCaseFile(path, column, keep, cfg.subsetID())
		}
		result.Files = append(result.Files, status)
	}

	return result, nil
}

func readSubsetList(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sample subset list: %w", err)
	}

	samples := []string{}
	for _, line := range strings.Split(string(content), "\n") {
		id := strings.TrimSpace(line)
		if id == "" || slices.Contains(samples, id) {
			continue
		}
		samples = append(samples, id)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySubset, path)
	}
	return samples, nil
}

// subsetPatients returns the patients of the subset samples, read from the
// clinical file (or the clinical sample file when there is no combined one).
func (p *Processor) subsetPatients(dir string, entries []os.DirEntry, samples []string) ([]string, error) {
	hasClinicalData := slices.ContainsFunc(entries, func(e os.DirEntry) bool {
		return strings.Contains(e.Name(), "data_clinical")
	})
	if !hasClinicalData {
		return nil, fmt.Errorf("%w: %s", ErrNoClinicalFile, dir)
	}

	clinicalFile := ClinicalSampleFile
	if slices.ContainsFunc(entries, func(e os.DirEntry) bool { return e.Name() == ClinicalFile }) {
		clinicalFile = ClinicalFile
	}

	table, err := tsv.ReadFile(filepath.Join(dir, clinicalFile))
	if err != nil {
		return nil, err
	}
	if !table.HasColumn(clinical.SampleIDAttribute) {
		return nil, fmt.Errorf("%s: %w: %s", clinicalFile, ErrMissingColumn, clinical.SampleIDAttribute)
	}
	if !table.HasColumn(PatientIDColumn) {
		p.logger.Warn(nil, "clinical file has no patient column, filtering by samples only", loglib.Fields{
			loglib.FileField: clinicalFile,
		})
		return []string{}, nil
	}

	patients := []string{}
	for _, row := range table.Rows {
		sampleID, _ := table.Value(row, clinical.SampleIDAttribute)
		patientID, _ := table.Value(row, PatientIDColumn)
		sampleID, patientID = strings.TrimSpace(sampleID), strings.TrimSpace(patientID)
		if slices.Contains(samples, sampleID) && patientID != "" && !slices.Contains(patients, patientID) {
			patients = append(patients, patientID)
		}
	}
	return patients, nil
}

// filterCaseFile keeps the rows whose case id column holds a subset sample or
// one of their patients.
func (p *Processor) filterCaseFile(path, column string, keep map[string]struct{}, subsetID string) *FileStatus {
	status := &FileStatus{Filename: filepath.Base(path), Column: column}
	table, err := tsv.ReadFile(path)
	if err != nil {
		return status.fail(err)
	}
	if !table.HasColumn(column) {
		return status.fail(fmt.Errorf("%w: %s", ErrMissingColumn, column))
	}

	rows := [][]string{}
	for _, row := range table.Rows {
		id, _ := table.Value(row, column)
		if _, found := keep[strings.TrimSpace(id)]; found {
			rows = append(rows, projectRow(table, row, table.Header))
		}
	}
	if len(rows) == 0 {
		return p.skip(status, ErrNothingToKeep)
	}
	return p.write(status, path, subsetID, table.Header, rows)
}

// filterProfileFile keeps the gene columns and one column per subset sample.
// A row without any sample value means the subset does not match the file.
func (p *Processor) filterProfileFile(path string, samples []string, subsetID string) *FileStatus {
	status := &FileStatus{Filename: filepath.Base(path)}
	table, err := tsv.ReadFile(path)
	if err != nil {
		return status.fail(err)
	}

	header := []string{}
	for _, column := range table.Header {
		if slices.Contains(profileNonCaseIDColumns, column) && !slices.Contains(header, column) {
			header = append(header, column)
		}
	}
	nonCaseIDs := len(header)
	header = append(header, samples...)

	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		values := projectRow(table, row, header)
		nonEmpty := 0
		for _, v := range values {
			if v != "" {
				nonEmpty++
			}
		}
		if nonEmpty <= nonCaseIDs {
			return p.skip(status, ErrNothingToKeep)
		}
		rows = append(rows, values)
	}
	return p.write(status, path, subsetID, header, rows)
}

func projectRow(table *tsv.Table, row []string, header []string) []string {
	values := make([]string, 0, len(header))
	for _, column := range header {
		v, _ := table.Value(row, column)
		values = append(values, strings.TrimSpace(v))
	}
	return values
}

func (p *Processor) write(status *FileStatus, path, subsetID string, header []string, rows [][]string) *FileStatus {
	output := path + "." + subsetID
	w, err := tsv.NewFileWriter(output)
	if err != nil {
		return status.fail(err)
	}
	defer w.Abort()

	for _, values := range append([][]string{header}, rows...) {
		if err := w.Write(values); err != nil {
			return status.fail(err)
		}
	}
	if err := w.Commit(); err != nil {
		return status.fail(err)
	}

	status.OutputFile = output
	status.Rows = len(rows)
	p.logger.Info("filtered data written", loglib.Fields{
		loglib.FileField: output,
		"rows":           len(rows),
	})
	return status
}

func (p *Processor) skip(status *FileStatus, err error) *FileStatus {
	p.logger.Warn(err, "skipping file", loglib.Fields{loglib.FileField: status.Filename})
	return status.fail(err)
}

func (s *FileStatus) fail(err error) *FileStatus {
	s.Skipped = true
	s.Errors = append(s.Errors, err.Error())
	return s
}

// GetErrors returns the errors of every skipped file, keyed by file name.
func (r *SubsetResult) GetErrors() map[string][]string {
	if r == nil {
		return nil
	}
	errors := map[string][]string{}
	for _, f := range r.Files {
		if len(f.Errors) > 0 {
			errors[f.Filename] = f.Errors
		}
	}
	return errors
}

func (r *SubsetResult) PrettyPrint() string {
	if r == nil {
		return ""
	}

	var prettyPrint strings.Builder
	prettyPrint.WriteString("Subset status:\n")
	prettyPrint.WriteString(fmt.Sprintf(" - Samples: %d\n", len(r.Samples)))
	prettyPrint.WriteString(fmt.Sprintf(" - Patients: %d\n", len(r.Patients)))
	for _, f := range r.Files {
		if f.Skipped {
			prettyPrint.WriteString(fmt.Sprintf(" - %s: skipped %s\n", f.Filename, f.Errors))
			continue
		}
		prettyPrint.WriteString(fmt.Sprintf(" - %s: %d rows written to %s\n", f.Filename, f.Rows, f.OutputFile))
	}

	// trim the last newline character
	return prettyPrint.String()[:len(prettyPrint.String())-1]
}
