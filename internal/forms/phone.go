package forms

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// defaultRegion resolves numbers typed without a country code.
const defaultRegion = "US"

// NormalizePhone reduces a formatted number such as "+1 (555) 123-4567" to
// its national significant digits. Input that does not parse is returned
// trimmed so the digit rules can reject it.
func NormalizePhone(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	num, err := phonenumbers.Parse(s, defaultRegion)
	if err != nil {
		return s
	}
	return phonenumbers.GetNationalSignificantNumber(num)
}
