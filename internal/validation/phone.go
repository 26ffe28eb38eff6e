package validation

import (
	"strings"
	"time"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
)

// Phone normalizes a Brazilian phone number to bare digits: two-digit area
// code (DDD) plus an 8-digit landline or 9-digit mobile number starting
// with 9. A leading +55 country code is stripped.
func Phone(in string) (string, error) {
	p := digitsOnly(in)
	if strings.HasPrefix(p, "55") && len(p) > 11 {
		p = p[2:]
	}

	switch len(p) {
	case 10: // landline: DDD + 8 digits
	case 11: // mobile: DDD + 9 digits, first subscriber digit is 9
		if p[2] != '9' {
			return "", domain.ErrInvalidInput
		}
	default:
		return "", domain.ErrInvalidInput
	}

	if p[0] == '0' { // DDDs run 11..99
		return "", domain.ErrInvalidInput
	}
	return p, nil
}

// MobilePhone is Phone restricted to the 11-digit mobile form
func MobilePhone(in string) (string, error) {
	p, err := Phone(in)
	if err != nil {
		return "", err
	}
	if len(p) != 11 {
		return "", domain.ErrInvalidInput
	}
	return p, nil
}

// SplitPhone breaks a normalized phone into the (area code, number) pieces
// the payment gateway wants
func SplitPhone(normalized string) (area, number string) {
	if len(normalized) < 2 {
		return "", normalized
	}
	return normalized[:2], normalized[2:]
}

// CEP normalizes a postal code to 8 bare digits
func CEP(in string) (string, error) {
	cep := digitsOnly(in)
	if len(cep) != 8 {
		return "", domain.ErrInvalidInput
	}
	return cep, nil
}

// Adult reports an error unless the birthdate is at least 18 years before
// now
func Adult(birthdate, now time.Time) error {
	cutoff := now.AddDate(-18, 0, 0)
	if birthdate.After(cutoff) {
		return domain.ErrInvalidInput
	}
	return nil
}

// GatewayBirthdate renders a birthdate the way the gateway expects it
func GatewayBirthdate(birthdate time.Time) string {
	return birthdate.Format("02/01/2006")
}
