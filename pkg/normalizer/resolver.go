// SPDX-License-Identifier: Apache-2.0

package normalizer

import (
	"fmt"
	"strings"

	"github.com/xataio/clinnorm/pkg/rules"
	"golang.org/x/exp/slices"
)

// Resolution is the normalized value of one attribute for one sample.
type Resolution struct {
	Value string
	// Unmapped is set when an original value had no mapping rule. For non
	// MERGE types the value is NA, for MERGE the unmapped sub-values are
	// dropped from the merged value.
	Unmapped bool
	// Original holds the unmapped original value(s), slash separated.
	Original string
}

const mergeSeparator = "/"

// noneToken is dropped from merged values whenever another token remains.
const noneToken = "None"

// Resolver resolves normalized values from sample values using a rule table.
// It holds no state besides the table and is safe for concurrent use.
type Resolver struct {
	table *rules.Table
}

func NewResolver(table *rules.Table) *Resolver {
	return &Resolver{table: table}
}

// Resolve computes the normalized value of the attribute under the given
// processing type. The sample maps original attributes to their cleaned raw
// values, missing attributes are read as NA.
func (r *Resolver) Resolve(ptype rules.ProcessingType, attribute string, sample map[string]string) (Resolution, error) {
	switch ptype {
	case rules.AddAll:
		v, _ := r.table.Constant(attribute)
		return Resolution{Value: v}, nil
	case rules.Merge:
		return r.resolveMerge(attribute, sample), nil
	case rules.Derive, rules.FixAll, rules.FixValue, rules.FixAttribute:
		return r.resolveSingle(ptype, attribute, sample)
	default:
		return Resolution{}, fmt.Errorf("%w: %s", ErrUnresolvableProcessingType, ptype)
	}
}

func (r *Resolver) resolveSingle(ptype rules.ProcessingType, attribute string, sample map[string]string) (Resolution, error) {
	contributors := r.table.Contributors(ptype, attribute)
	if len(contributors) == 0 {
		return Resolution{Value: rules.NA}, nil
	}

	values := make([]string, 0, len(contributors))
	for _, c := range contributors {
		values = append(values, sampleValue(sample, c))
	}
	raw := values[0]
	for _, v := range values[1:] {
		if v != raw {
			return Resolution{}, &AmbiguousSourceError{
				ProcessingType: ptype,
				Attribute:      attribute,
				Contributors:   contributors,
				Values:         values,
			}
		}
	}

	if raw == rules.NA {
		return Resolution{Value: rules.NA}, nil
	}

	for _, c := range contributors {
		if v, found := r.table.Lookup(ptype, attribute, c, raw); found {
			return Resolution{Value: v}, nil
		}
	}

	// values that are already normalized pass through
	for _, c := range contributors {
		if r.table.IsNormalizedValue(ptype, attribute, c, raw) {
			return Resolution{Value: raw}, nil
		}
	}

	return Resolution{Value: rules.NA, Unmapped: true, Original: raw}, nil
}

// resolveMerge looks up every slash separated sub-value in the map of the
// contributor it was read from, and returns the sorted set of normalized
// tokens joined by slashes.
func (r *Resolver) resolveMerge(attribute string, sample map[string]string) Resolution {
	tokens := map[string]struct{}{}
	unmapped := []string{}
	for _, c := range r.table.Contributors(rules.Merge, attribute) {
		for _, sub := range strings.Split(sampleValue(sample, c), mergeSeparator) {
			normalized, found := r.table.Lookup(rules.Merge, attribute, c, sub)
			if !found {
				if sub != rules.NA {
					unmapped = append(unmapped, sub)
				}
				continue
			}
			for _, token := range strings.Split(normalized, mergeSeparator) {
				tokens[token] = struct{}{}
			}
		}
	}

	if len(tokens) > 1 {
		delete(tokens, noneToken)
	}

	res := Resolution{Value: rules.NA}
	if len(unmapped) > 0 {
		res.Unmapped = true
		res.Original = strings.Join(unmapped, mergeSeparator)
	}
	if len(tokens) == 0 {
		return res
	}

	merged := make([]string, 0, len(tokens))
	for token := range tokens {
		merged = append(merged, token)
	}
	slices.Sort(merged)
	res.Value = strings.Join(merged, mergeSeparator)
	return res
}

func sampleValue(sample map[string]string, attribute string) string {
	v, found := sample[attribute]
	if !found {
		return rules.NA
	}
	return v
}
