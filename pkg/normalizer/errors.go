// SPDX-License-Identifier: Apache-2.0

package normalizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xataio/clinnorm/pkg/rules"
)

var (
	ErrAmbiguousSource            = errors.New("contributing attributes disagree on the original value")
	ErrDanglingAttribute          = errors.New("attribute in header has not been normalized")
	ErrUnresolvableProcessingType = errors.New("processing type is not resolved from sample values")
)

// AmbiguousSourceError is returned when the contributors of a non MERGE
// normalized attribute hold different raw values for the same sample.
type AmbiguousSourceError struct {
	ProcessingType rules.ProcessingType
	Attribute      string
	Contributors   []string
	// Values holds the raw value of each contributor, aligned with
	// Contributors.
	Values []string
}

func (e *AmbiguousSourceError) Error() string {
	return fmt.Sprintf("%v: %s attribute %s, original attributes [%s], original values [%s]",
		ErrAmbiguousSource, e.ProcessingType, e.Attribute,
		strings.Join(e.Contributors, ", "), strings.Join(e.Values, ", "))
}

func (e *AmbiguousSourceError) Unwrap() error {
	return ErrAmbiguousSource
}

// DanglingAttributeError is returned when an attribute of the output header
// cannot be populated, either because it is IGNOREd or because it does not
// classify to a single processing type.
type DanglingAttributeError struct {
	Attribute      string
	ProcessingType rules.ProcessingType
	Err            error
}

func (e *DanglingAttributeError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%v: %s: %v", ErrDanglingAttribute, e.Attribute, e.Err)
	case e.ProcessingType != "":
		return fmt.Sprintf("%v: %s (%s)", ErrDanglingAttribute, e.Attribute, e.ProcessingType)
	default:
		return fmt.Sprintf("%v: %s", ErrDanglingAttribute, e.Attribute)
	}
}

func (e *DanglingAttributeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDanglingAttribute}
	}
	return []error{ErrDanglingAttribute, e.Err}
}
