package valueobject

import (
	"errors"
	"regexp"
	"time"
)

var (
	ErrInvalidBirthdate = errors.New("invalid date format, use YYYY-MM-DD")
	ErrAgeOutOfRange    = errors.New("patient must be between 18 and 120 years old")

	birthdateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

const (
	minPatientAge = 18
	maxPatientAge = 120
)

// Birthdate is a calendar date string whose implied age falls within the
// accepted patient range.
type Birthdate struct {
	value string
	date  time.Time
}

func NewBirthdate(raw string) (*Birthdate, error) {
	return newBirthdateAt(raw, time.Now())
}

func newBirthdateAt(raw string, now time.Time) (*Birthdate, error) {
	if !birthdateFormat.MatchString(raw) {
		return nil, ErrInvalidBirthdate
	}

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, ErrInvalidBirthdate
	}

	// Age by calendar-year difference, matching the registration form's
	// eligibility rule.
	age := now.Year() - date.Year()
	if age < minPatientAge || age > maxPatientAge {
		return nil, ErrAgeOutOfRange
	}

	return &Birthdate{value: raw, date: date}, nil
}

func (b *Birthdate) String() string {
	return b.value
}

func (b *Birthdate) Date() time.Time {
	return b.date
}
