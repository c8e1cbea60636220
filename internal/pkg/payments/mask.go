package payments

import (
	"regexp"
	"strings"
)

// MaskPrefix is rendered in front of the last four digits of a card or account.
const MaskPrefix = "****"

var longDigitRun = regexp.MustCompile(`\d{5,}`)

// MaskLastFour renders the last four digits of v behind MaskPrefix. Non-digit
// characters are ignored, so a full card number sent by mistake is reduced
// to its last four digits.
func MaskLastFour(v string) string {
	var digits strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if d == "" {
		return ""
	}
	if len(d) > 4 {
		d = d[len(d)-4:]
	}
	return MaskPrefix + d
}

// MaskLabel masks every run of five or more digits inside a free-text label.
func MaskLabel(label string) string {
	return longDigitRun.ReplaceAllStringFunc(label, MaskLastFour)
}

// MethodLabel builds a human readable payment-method label such as
// "VISA ****1234" from a brand and the last digits of the instrument.
func MethodLabel(brand, lastFour string) string {
	parts := make([]string, 0, 2)
	if brand != "" {
		parts = append(parts, brand)
	}
	if masked := MaskLastFour(lastFour); masked != "" {
		parts = append(parts, masked)
	}
	return MaskLabel(strings.Join(parts, " "))
}
