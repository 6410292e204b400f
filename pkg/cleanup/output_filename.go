// SPDX-License-Identifier: Apache-2.0

package cleanup

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

var errInvalidOutputFilename = errors.New("output filename template must render a file name")

type outputFilenameData struct {
	// Filename is the base name of the clinical file.
	Filename string
	// Stem is the base name without extension.
	Stem  string
	Ext   string
	RunID string
	Date  string
}

func renderOutputFilename(tmplStr, clinicalFile, runID string, now time.Time) (string, error) {
	tmpl, err := template.New("output_filename").Funcs(sprig.FuncMap()).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing output filename template: %w", err)
	}

	base := filepath.Base(clinicalFile)
	ext := filepath.Ext(base)
	var b strings.Builder
	if err := tmpl.Execute(&b, outputFilenameData{
		Filename: base,
		Stem:     strings.TrimSuffix(base, ext),
		Ext:      ext,
		RunID:    runID,
		Date:     now.Format(time.DateOnly),
	}); err != nil {
		return "", fmt.Errorf("rendering output filename template: %w", err)
	}

	name := strings.TrimSpace(b.String())
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", errInvalidOutputFilename, name)
	}
	return name, nil
}
