// SPDX-License-Identifier: Apache-2.0

package normalizer

import (
	loglib "github.com/xataio/clinnorm/pkg/log"
	"github.com/xataio/clinnorm/pkg/rules"
	"golang.org/x/exp/slices"
)

// AttributeCounts holds the number of non NA observations per attribute.
type AttributeCounts map[string]int

// DefaultCaseIDAttributes are the identifier columns placed first in the
// output, in this order, when present.
var DefaultCaseIDAttributes = []string{"PATIENT_ID", "SAMPLE_ID", "OTHER_PATIENT_ID", "OTHER_SAMPLE_ID"}

type HeaderConfig struct {
	// CaseIDAttributes defaults to DefaultCaseIDAttributes when empty.
	CaseIDAttributes []string
	// FilterEmptyAttributes drops raw attributes without any observation.
	FilterEmptyAttributes bool
	// DerivedColumn is appended to the header when not empty.
	DerivedColumn string
}

// Header is the ordered output header.
type Header struct {
	Attributes []string
	// CaseIDs are the case id attributes present in the header.
	CaseIDs       []string
	DerivedColumn string
}

func (h *Header) IsCaseID(attribute string) bool {
	return slices.Contains(h.CaseIDs, attribute)
}

// HeaderComposer computes the output header from the raw header, the
// attribute counts and, when mapping is enabled, the rule table.
type HeaderComposer struct {
	config HeaderConfig
	table  *rules.Table
	logger loglib.Logger
}

type HeaderOption func(*HeaderComposer)

func WithHeaderLogger(l loglib.Logger) HeaderOption {
	return func(c *HeaderComposer) {
		c.logger = loglib.ForModule(l, "header_composer")
	}
}

// NewHeaderComposer returns a composer for the given configuration. A nil
// table disables mapping, the raw header is kept.
func NewHeaderComposer(table *rules.Table, cfg HeaderConfig, opts ...HeaderOption) *HeaderComposer {
	if len(cfg.CaseIDAttributes) == 0 {
		cfg.CaseIDAttributes = DefaultCaseIDAttributes
	}
	c := &HeaderComposer{
		config: cfg,
		table:  table,
		logger: loglib.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HeaderComposer) Compose(rawHeader []string, counts AttributeCounts) Header {
	header := c.caseIDsFirst(rawHeader)
	if c.config.FilterEmptyAttributes {
		header = c.filterEmpty(header, counts)
	}

	caseIDs := make([]string, 0, len(c.config.CaseIDAttributes))
	for _, id := range c.config.CaseIDAttributes {
		if slices.Contains(header, id) {
			caseIDs = append(caseIDs, id)
		}
	}

	if c.table != nil {
		header = c.normalize(header, caseIDs)
	}

	if c.config.DerivedColumn != "" && !slices.Contains(header, c.config.DerivedColumn) {
		header = append(header, c.config.DerivedColumn)
		c.logger.Info("added derived attribute to header", loglib.Fields{
			loglib.AttributeField: c.config.DerivedColumn,
		})
	}

	return Header{
		Attributes:    header,
		CaseIDs:       caseIDs,
		DerivedColumn: c.config.DerivedColumn,
	}
}

func (c *HeaderComposer) caseIDsFirst(rawHeader []string) []string {
	header := make([]string, 0, len(rawHeader))
	for _, id := range c.config.CaseIDAttributes {
		if slices.Contains(rawHeader, id) {
			header = append(header, id)
		}
	}
	for _, attr := range rawHeader {
		if !slices.Contains(header, attr) {
			header = append(header, attr)
		}
	}
	return header
}

func (c *HeaderComposer) filterEmpty(header []string, counts AttributeCounts) []string {
	filtered := make([]string, 0, len(header))
	for _, attr := range header {
		if counts[attr] > 0 {
			filtered = append(filtered, attr)
		}
	}

	if dropped := len(header) - len(filtered); dropped > 0 {
		c.logger.Info("filtering out attributes with zero counts", loglib.Fields{
			"dropped": dropped,
			"total":   len(header),
		})
	} else {
		c.logger.Debug("no attributes found with zero counts")
	}
	return filtered
}

// normalize replaces the raw attributes with the normalized attribute list,
// keeping the case id attributes first.
func (c *HeaderComposer) normalize(header, caseIDs []string) []string {
	normalized := slices.Clone(caseIDs)
	for _, attr := range c.table.NormalizedAttributes() {
		if !slices.Contains(normalized, attr) {
			normalized = append(normalized, attr)
		}
	}

	for _, id := range caseIDs {
		if c.table.IsIgnored(id) {
			c.logger.Warn(nil, "ignored attribute kept as case id", loglib.Fields{
				loglib.AttributeField: id,
			})
		}
	}

	filtered, unreferenced := c.removedAttributes(header, normalized)
	if len(unreferenced) > 0 {
		c.logger.Debug("dropping attributes without mapping rules", loglib.Fields{
			"attributes": unreferenced,
		})
	}

	added := 0
	for _, attr := range normalized {
		if !slices.Contains(header, attr) {
			added++
		}
	}
	c.logger.Info("normalized header", loglib.Fields{
		"filtered":     len(filtered),
		"unreferenced": len(unreferenced),
		"added":        added,
	})
	return normalized
}

// removedAttributes splits the raw attributes missing from the normalized
// header into those consumed or ignored by the rule table and those no rule
// references.
func (c *HeaderComposer) removedAttributes(header, normalized []string) (filtered, unreferenced []string) {
	for _, attr := range header {
		if slices.Contains(normalized, attr) {
			continue
		}
		if c.table.IsPostProcessFiltered(attr) {
			filtered = append(filtered, attr)
			continue
		}
		unreferenced = append(unreferenced, attr)
	}
	return filtered, unreferenced
}
