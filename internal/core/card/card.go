// Package card validates payment card numbers. The Luhn checksum catches
// accidental transcription errors; it is not a security control.
package card

import "strings"

type Brand string

const (
	BrandVisa       Brand = "visa"
	BrandMastercard Brand = "mastercard"
	BrandAmex       Brand = "amex"
	BrandDiscover   Brand = "discover"
	BrandUnknown    Brand = "unknown"
)

// Valid reports whether number is a plausible card number: 13 to 19 digits
// after stripping spaces, passing the Luhn mod-10 checksum.
func Valid(number string) bool {
	cleaned := strip(number)

	if len(cleaned) < 13 || len(cleaned) > 19 {
		return false
	}
	for _, c := range cleaned {
		if c < '0' || c > '9' {
			return false
		}
	}

	sum := 0
	double := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		digit := int(cleaned[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}

	return sum%10 == 0
}

// BrandOf classifies a card number by its issuer prefix. Total; never fails.
func BrandOf(number string) Brand {
	cleaned := strip(number)

	switch {
	case strings.HasPrefix(cleaned, "4"):
		return BrandVisa
	case len(cleaned) >= 2 && cleaned[0] == '5' && cleaned[1] >= '1' && cleaned[1] <= '5':
		return BrandMastercard
	case strings.HasPrefix(cleaned, "34"), strings.HasPrefix(cleaned, "37"):
		return BrandAmex
	case strings.HasPrefix(cleaned, "6011"), strings.HasPrefix(cleaned, "65"):
		return BrandDiscover
	}
	return BrandUnknown
}

// LastFour returns the trailing four digits, or the whole cleaned input when
// shorter.
func LastFour(number string) string {
	cleaned := strip(number)
	if len(cleaned) <= 4 {
		return cleaned
	}
	return cleaned[len(cleaned)-4:]
}

func strip(number string) string {
	return strings.ReplaceAll(number, " ", "")
}
