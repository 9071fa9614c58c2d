package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBirthdate(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "adult", input: "1990-01-01", wantErr: nil},
		{name: "exactly 18 by year", input: "2008-01-01", wantErr: nil},
		{name: "exactly 120 by year", input: "1906-01-01", wantErr: nil},
		{name: "minor", input: "2015-01-01", wantErr: ErrAgeOutOfRange},
		{name: "older than 120", input: "1900-01-01", wantErr: ErrAgeOutOfRange},
		{name: "wrong format", input: "01/01/1990", wantErr: ErrInvalidBirthdate},
		{name: "not a date", input: "1990-13-45", wantErr: ErrInvalidBirthdate},
		{name: "empty", input: "", wantErr: ErrInvalidBirthdate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := newBirthdateAt(tt.input, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.input, b.String())
			}
		})
	}
}
