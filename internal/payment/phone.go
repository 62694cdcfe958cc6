package payment

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^254[17]\d{8}$`)

// NormalizePhone converts a Kenyan phone number to the international form
// the gateway requires (2547XXXXXXXX / 2541XXXXXXXX). A leading 0 is
// replaced with the country code and a leading + is stripped.
func NormalizePhone(phone string) (string, error) {
	p := strings.TrimSpace(phone)
	p = strings.ReplaceAll(p, " ", "")
	p = strings.TrimPrefix(p, "+")

	if strings.HasPrefix(p, "0") {
		p = "254" + p[1:]
	}

	if !phonePattern.MatchString(p) {
		return "", &ValidationError{Reason: "phone number must be a valid Kenyan mobile number"}
	}

	return p, nil
}
