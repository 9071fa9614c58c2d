package valueobject

import (
	"errors"
	"regexp"
)

var (
	ErrInvalidCPF = errors.New("invalid CPF format or check digits")

	nonDigits = regexp.MustCompile(`\D`)
)

// CPF is a validated Brazilian taxpayer number, held in its 11-digit form.
type CPF struct {
	digits string
}

func NewCPF(raw string) (*CPF, error) {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) != 11 {
		return nil, ErrInvalidCPF
	}

	// All-same-digit sequences pass the checksum but are known invalid.
	same := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			same = false
			break
		}
	}
	if same {
		return nil, ErrInvalidCPF
	}

	if checkDigit(digits, 9) != int(digits[9]-'0') {
		return nil, ErrInvalidCPF
	}
	if checkDigit(digits, 10) != int(digits[10]-'0') {
		return nil, ErrInvalidCPF
	}

	return &CPF{digits: digits}, nil
}

func (c *CPF) String() string {
	return c.digits
}

// checkDigit computes the verification digit over the first n digits using
// the standard descending-weight modulo-11 scheme.
func checkDigit(digits string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * (n + 1 - i)
	}
	d := 11 - (sum % 11)
	if d >= 10 {
		return 0
	}
	return d
}
