package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var defaultRegions = []string{
	"IL",
	"US",
}

// NormalizePhone parses a customer-entered phone number and returns it in
// E.164 form, or the empty string when no candidate region yields a
// possible number. Possibility (length and prefix shape) is the gate, not
// carrier-level validity; number assignment is the backend's concern. A
// merchant-specific region (derived from the merchant time zone) is tried
// first so that local numbers without a country prefix resolve correctly.
func NormalizePhone(phone string, regions ...string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	candidates := regions
	if len(candidates) == 0 {
		candidates = defaultRegions
	} else {
		candidates = append(candidates, defaultRegions...)
	}

	for _, region := range candidates {
		parsed, err := phonenumbers.Parse(phone, region)
		if err != nil {
			continue
		}
		if !phonenumbers.IsPossibleNumber(parsed) {
			continue
		}
		return phonenumbers.Format(parsed, phonenumbers.E164)
	}
	return ""
}
