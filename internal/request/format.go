package request

import "strings"

const (
	businessUnitWidth = 5
	agencyCodeWidth   = 3
)

// padRight zero-pads values on the right to the legacy fixed widths used by
// the statewide systems. Over-length values pass through untouched.
func padRight(value string, width int) string {
	if value == "" || len(value) >= width {
		return value
	}
	return value + strings.Repeat("0", width-len(value))
}

// PadBusinessUnit pads a business-unit code to its 5-character form.
func PadBusinessUnit(code string) string {
	return padRight(strings.TrimSpace(code), businessUnitWidth)
}

// PadAgencyCode pads an agency code to its 3-character form.
func PadAgencyCode(code string) string {
	return padRight(strings.TrimSpace(code), agencyCodeWidth)
}

// NormalizeEmail turns a bare username into a full address using the
// configured corporate domain. Addresses already carrying a domain pass
// through unchanged.
func NormalizeEmail(value, domain string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.Contains(value, "@") {
		return value
	}
	return value + "@" + domain
}

// EmailFromName derives an address from a display name, the convention the
// approval rows use when only a name was captured on the form.
func EmailFromName(name, domain string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return ""
	}
	return strings.Join(strings.Fields(name), ".") + "@" + domain
}

// NormalizePhone strips every non-digit so phones store uniformly.
func NormalizePhone(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
