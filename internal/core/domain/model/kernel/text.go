package kernel

import (
	"strings"
	"unicode/utf8"

	"encomendas/internal/pkg/errs"
)

// Field length limits shared by the catalog, order and delivery models.
const (
	MaxCodeLength        = 50
	MaxNameLength        = 200
	MaxShortTextLength   = 100
	MaxPhoneLength       = 20
	MaxReferenceLength   = 200
	MaxContactLength     = 200
	MaxResponsibleLength = 100
)

// RequiredText trims value and checks it is non-empty and at most maxLen runes long.
func RequiredText(paramName, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errs.NewValueIsRequiredError(paramName)
	}
	return OptionalText(paramName, value, maxLen)
}

// OptionalText trims value and checks it is at most maxLen runes long.
// A maxLen of zero disables the length check.
func OptionalText(paramName, value string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if n := utf8.RuneCountInString(value); maxLen > 0 && n > maxLen {
		return "", errs.NewValueIsOutOfRangeError(paramName, n, 0, maxLen)
	}
	return value, nil
}
