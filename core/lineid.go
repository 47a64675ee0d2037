package core

import "strings"

// Shared line-identifier validation. IMEI may be blank (eSIM-first flows) but
// a non-blank IMEI must be a 15 or 16 digit string, with the 15-digit form
// passing the Luhn check. An ICCID is always required: 19 or 20 digits.

func ValidateIMEI(imei string) error {
	trimmed := strings.TrimSpace(imei)
	if trimmed == "" {
		return nil
	}
	if !allDigits(trimmed) {
		return validationError("Invalid IMEI: " + imei)
	}
	switch len(trimmed) {
	case 15:
		if !luhnValid(trimmed) {
			return validationError("Invalid IMEI: " + imei)
		}
	case 16:
		// software-version form, no check digit
	default:
		return validationError("Invalid IMEI: " + imei)
	}
	return nil
}

func ValidateICCID(iccid string) error {
	trimmed := strings.TrimSpace(iccid)
	if trimmed == "" {
		return validationError("ICCID is required")
	}
	if !allDigits(trimmed) || len(trimmed) < 19 || len(trimmed) > 20 {
		return validationError("Invalid ICCID: " + iccid)
	}
	return nil
}

func allDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
