// SPDX-License-Identifier: Apache-2.0

package rules

// orderedSet is a set of strings that remembers insertion order, since the
// order in which attributes are discovered drives the output column order.
type orderedSet struct {
	items []string
	index map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: map[string]struct{}{}}
}

// add inserts the item if not present yet, and returns whether it was added.
func (s *orderedSet) add(item string) bool {
	if s.contains(item) {
		return false
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

func (s *orderedSet) contains(item string) bool {
	_, found := s.index[item]
	return found
}

func (s *orderedSet) len() int {
	return len(s.items)
}

func (s *orderedSet) values() []string {
	values := make([]string, len(s.items))
	copy(values, s.items)
	return values
}
