package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D+`)

func StringContains(s string, substrings ...string) bool {
	s = strings.ToLower(s)
	for _, substr := range substrings {
		if strings.Contains(s, strings.ToLower(substr)) {
			return true
		}
	}
	return false
}

// NormalizePhoneNumber strips everything but digits. Cloud API wa_id values
// arrive without a leading plus; anything shorter than 10 digits is rejected.
func NormalizePhoneNumber(phoneNumber string) (string, error) {
	onlyDigits := nonDigits.ReplaceAllString(phoneNumber, "")
	if len(onlyDigits) < 10 {
		return "", fmt.Errorf("invalid phone number %q", phoneNumber)
	}
	return onlyDigits, nil
}
