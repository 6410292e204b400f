// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidProcessingType     = errors.New("invalid processing type")
	ErrAttributeNotDeclared      = errors.New("normalized attribute is not declared by any rule")
	ErrAttributeMultiplyDeclared = errors.New("normalized attribute is declared under more than one processing type")
	ErrMissingAttribute          = errors.New("rule is missing a required attribute")
	ErrMissingColumn             = errors.New("mapping file is missing a required column")
	ErrUnsupportedFileFormat     = errors.New("unsupported mapping file format")
)

// InvalidProcessingTypeError is returned when a mapping row uses a processing
// type outside of the closed enumeration. Its message documents the
// recognized types.
type InvalidProcessingTypeError struct {
	// Row is the 1-based mapping row, 0 when unknown.
	Row   int
	Value string
}

func (e *InvalidProcessingTypeError) Error() string {
	var b strings.Builder
	if e.Row > 0 {
		fmt.Fprintf(&b, "row %d: ", e.Row)
	}
	fmt.Fprintf(&b, "%v: %q\nrecognized processing types:\n%s", ErrInvalidProcessingType, e.Value, ProcessingTypeRules())
	return b.String()
}

func (e *InvalidProcessingTypeError) Unwrap() error {
	return ErrInvalidProcessingType
}

// ClassificationError is returned when a normalized attribute does not map to
// exactly one processing type.
type ClassificationError struct {
	Attribute string
	Matches   []ProcessingType
}

func (e *ClassificationError) Error() string {
	if len(e.Matches) == 0 {
		return fmt.Sprintf("%v: %s", ErrAttributeNotDeclared, e.Attribute)
	}
	matches := make([]string, 0, len(e.Matches))
	for _, m := range e.Matches {
		matches = append(matches, string(m))
	}
	return fmt.Sprintf("%v: %s (%s)", ErrAttributeMultiplyDeclared, e.Attribute, strings.Join(matches, ", "))
}

func (e *ClassificationError) Unwrap() error {
	if len(e.Matches) == 0 {
		return ErrAttributeNotDeclared
	}
	return ErrAttributeMultiplyDeclared
}
