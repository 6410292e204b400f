// SPDX-License-Identifier: Apache-2.0

package clinical

import (
	"strings"

	"github.com/xataio/clinnorm/pkg/rules"
	"golang.org/x/text/unicode/norm"
)

// notAvailableValues are the raw spellings of a missing value.
var notAvailableValues = []string{"", "N/A"}

// CleanDatum trims the raw value, composes it into NFC form and replaces the
// spellings of a missing value by NA.
func CleanDatum(raw string) string {
	v := norm.NFC.String(strings.TrimSpace(raw))
	for _, na := range notAvailableValues {
		if v == na {
			return rules.NA
		}
	}
	return v
}
