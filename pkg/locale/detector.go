package locale

import "strings"

// DetectRegion maps a merchant's IANA time zone to a phone-number region,
// so customer-entered local numbers without a country prefix parse against
// the merchant's country rather than a global default.
func DetectRegion(tz string) string {
	for region, zones := range TimeZoneTags {
		for _, z := range zones {
			if strings.EqualFold(tz, z) {
				return region
			}
		}
	}
	return DefaultRegion
}

// InferCountryFromPhone resolves a country from an international phone
// prefix, or nil when the prefix is not recognized.
func InferCountryFromPhone(phone string) *Country {
	normalized := strings.TrimSpace(phone)

	for _, country := range Countries {
		for _, prefix := range country.PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return &country
			}
		}
	}

	return nil
}
