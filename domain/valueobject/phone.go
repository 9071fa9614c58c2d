package valueobject

import (
	"errors"
	"strings"
)

var ErrInvalidPhone = errors.New("invalid phone format, use +5511999999999 or 11999999999")

// BRPhone is a Brazilian phone number: area code plus 8-9 digit number,
// optionally prefixed with the 55 country code.
type BRPhone struct {
	raw string
}

func NewBRPhone(raw string) (*BRPhone, error) {
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return nil, ErrInvalidPhone
	}

	if strings.HasPrefix(digits, "55") {
		if len(digits) < 12 || len(digits) > 13 {
			return nil, ErrInvalidPhone
		}
	} else if len(digits) < 10 || len(digits) > 11 {
		return nil, ErrInvalidPhone
	}

	return &BRPhone{raw: raw}, nil
}

// String returns the number as supplied; normalization is left to display
// layers so the value round-trips through the profile store unchanged.
func (p *BRPhone) String() string {
	return p.raw
}
