// SPDX-License-Identifier: Apache-2.0

package rules

import "errors"

// Table is the immutable rule table built from a mapping specification. It is
// safe for concurrent use once built.
type Table struct {
	keepAll  *orderedSet
	ignore   *orderedSet
	derived  *orderedSet
	addAll   map[string]string
	mappings map[ProcessingType]*typeMappings

	normalizedAttributes *orderedSet
	postProcessFilter    *orderedSet
}

// typeMappings holds the normalized attribute mappings of one mapping
// processing type, keyed by normalized attribute.
type typeMappings struct {
	attributes *orderedSet
	byAttr     map[string]*attributeMapping
}

// attributeMapping holds the contributors of one normalized attribute, in
// declaration order, and their original -> normalized value maps.
type attributeMapping struct {
	contributors *orderedSet
	values       map[string]map[string]string
}

func newTable() *Table {
	t := &Table{
		keepAll:              newOrderedSet(),
		ignore:               newOrderedSet(),
		derived:              newOrderedSet(),
		addAll:               map[string]string{},
		mappings:             make(map[ProcessingType]*typeMappings, len(mappingTypes)),
		normalizedAttributes: newOrderedSet(),
		postProcessFilter:    newOrderedSet(),
	}
	for _, ptype := range mappingTypes {
		t.mappings[ptype] = &typeMappings{
			attributes: newOrderedSet(),
			byAttr:     map[string]*attributeMapping{},
		}
	}
	return t
}

// NormalizedAttributes returns the normalized attributes in the order they
// were first declared.
func (t *Table) NormalizedAttributes() []string {
	return t.normalizedAttributes.values()
}

// PostProcessAttributeFilter returns the original attributes that must not be
// passed through unmodified, either because they were consumed under a
// different name by a MERGE/FIX_ALL rule or because they are ignored.
func (t *Table) PostProcessAttributeFilter() []string {
	return t.postProcessFilter.values()
}

func (t *Table) IsPostProcessFiltered(attribute string) bool {
	return t.postProcessFilter.contains(attribute)
}

func (t *Table) KeepAllAttributes() []string {
	return t.keepAll.values()
}

func (t *Table) IsKeepAll(attribute string) bool {
	return t.keepAll.contains(attribute)
}

func (t *Table) IgnoredAttributes() []string {
	return t.ignore.values()
}

func (t *Table) IsIgnored(attribute string) bool {
	return t.ignore.contains(attribute)
}

// DerivedAttributes returns the columns declared as ADD_GENOMIC_ALTERATIONS,
// which are populated outside of the rule engine.
func (t *Table) DerivedAttributes() []string {
	return t.derived.values()
}

func (t *Table) IsDerived(attribute string) bool {
	return t.derived.contains(attribute)
}

// Constant returns the ADD_ALL value registered for the normalized attribute.
func (t *Table) Constant(attribute string) (string, bool) {
	v, found := t.addAll[attribute]
	return v, found
}

// Contributors returns the original attributes registered as value sources
// for the normalized attribute under the given mapping type, in declaration
// order.
func (t *Table) Contributors(ptype ProcessingType, attribute string) []string {
	m := t.attributeMapping(ptype, attribute)
	if m == nil {
		return nil
	}
	return m.contributors.values()
}

// Lookup returns the normalized value mapped from the original value of the
// contributor, if any.
func (t *Table) Lookup(ptype ProcessingType, attribute, contributor, originalValue string) (string, bool) {
	m := t.attributeMapping(ptype, attribute)
	if m == nil {
		return "", false
	}
	v, found := m.values[contributor][originalValue]
	return v, found
}

// IsNormalizedValue reports whether the value is one of the normalized values
// the contributor maps to.
func (t *Table) IsNormalizedValue(ptype ProcessingType, attribute, contributor, value string) bool {
	m := t.attributeMapping(ptype, attribute)
	if m == nil {
		return false
	}
	for _, normalized := range m.values[contributor] {
		if normalized == value {
			return true
		}
	}
	return false
}

// Attributes returns the attributes registered under the processing type. For
// KEEP_ALL and IGNORE these are original attributes, for every other type
// they are normalized attributes.
func (t *Table) Attributes(ptype ProcessingType) []string {
	switch ptype {
	case KeepAll:
		return t.keepAll.values()
	case Ignore:
		return t.ignore.values()
	case AddGenomicAlterations:
		return t.derived.values()
	case AddAll:
		attrs := make([]string, 0, len(t.addAll))
		for _, attr := range t.normalizedAttributes.items {
			if _, found := t.addAll[attr]; found {
				attrs = append(attrs, attr)
			}
		}
		return attrs
	default:
		if tm, found := t.mappings[ptype]; found {
			return tm.attributes.values()
		}
		return nil
	}
}

// Summary returns the number of attributes registered per processing type.
func (t *Table) Summary() map[ProcessingType]int {
	summary := make(map[ProcessingType]int, len(processingTypes))
	for _, ptype := range ProcessingTypes() {
		if n := len(t.Attributes(ptype)); n > 0 {
			summary[ptype] = n
		}
	}
	return summary
}

// Validate checks that every normalized and derived attribute classifies to
// exactly one processing type. All classification errors are returned joined.
func (t *Table) Validate() error {
	attributes := append(t.normalizedAttributes.values(), t.derived.values()...)
	var errs []error
	seen := make(map[string]struct{}, len(attributes))
	for _, attr := range attributes {
		if _, found := seen[attr]; found {
			continue
		}
		seen[attr] = struct{}{}
		if _, err := t.Classify(attr); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *Table) attributeMapping(ptype ProcessingType, attribute string) *attributeMapping {
	tm, found := t.mappings[ptype]
	if !found {
		return nil
	}
	return tm.byAttr[attribute]
}

func (t *Table) hasMapping(ptype ProcessingType, attribute string) bool {
	return t.attributeMapping(ptype, attribute) != nil
}

// matches returns every processing type the attribute is registered under.
func (t *Table) matches(attribute string) []ProcessingType {
	matches := []ProcessingType{}
	if t.keepAll.contains(attribute) {
		matches = append(matches, KeepAll)
	}
	if t.ignore.contains(attribute) {
		matches = append(matches, Ignore)
	}
	for _, ptype := range mappingTypes {
		if t.hasMapping(ptype, attribute) {
			matches = append(matches, ptype)
		}
	}
	if _, found := t.addAll[attribute]; found {
		matches = append(matches, AddAll)
	}
	if t.derived.contains(attribute) {
		matches = append(matches, AddGenomicAlterations)
	}
	return matches
}
