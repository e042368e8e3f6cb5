package auth

import (
	"regexp"
	"strings"

	"github.com/metalldk/storefront/pkg/enums"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+7 \(\d{3}\) \d{3}-\d{2}-\d{2}$`)
)

// MaskPhone formats raw input as +7 (XXX) XXX-XX-XX. Non-digits are dropped
// and a leading 7 or 8 is taken as the country prefix. It is meant to be
// applied after every keystroke, so masking a masked value is a no-op.
func MaskPhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	value := digits.String()
	if strings.HasPrefix(value, "7") || strings.HasPrefix(value, "8") {
		value = value[1:]
	}
	if value == "" {
		return ""
	}

	value = "+7 (" + value
	if len(value) > 7 {
		value = value[:7] + ") " + value[7:]
	}
	if len(value) > 12 {
		value = value[:12] + "-" + value[12:]
	}
	if len(value) > 15 {
		value = value[:15] + "-" + value[15:]
	}
	return value
}

// IsValidEmail reports whether value looks like name@domain.tld.
func IsValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// IsValidPhone reports whether value is a fully masked phone number.
func IsValidPhone(value string) bool {
	return phonePattern.MatchString(value)
}

// ClassifyIdentifier decides whether a login identifier is a phone or an
// email. Input starting with a digit goes through the phone mask first; the
// returned value is what gets submitted.
func ClassifyIdentifier(raw string) (enums.IdentifierKind, string) {
	value := strings.TrimSpace(raw)
	if value != "" && value[0] >= '0' && value[0] <= '9' {
		value = MaskPhone(value)
	}
	if IsValidPhone(value) {
		return enums.IdentifierKindPhone, value
	}
	return enums.IdentifierKindEmail, value
}
