// SPDX-License-Identifier: Apache-2.0

package rules

// Classify returns the processing type governing the normalized attribute.
// KEEP_ALL and IGNORE are matched against original attribute names, since
// those attributes keep their name. The attribute must be registered under
// exactly one processing type, a *ClassificationError is returned otherwise.
func (t *Table) Classify(attribute string) (ProcessingType, error) {
	matches := t.matches(attribute)
	if len(matches) != 1 {
		return "", &ClassificationError{
			Attribute: attribute,
			Matches:   matches,
		}
	}
	return matches[0], nil
}
