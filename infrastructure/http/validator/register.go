package validator

import (
	"regexp"
	"strings"

	"github.com/verdemed/verdemed/application/port/inbound"
	"github.com/verdemed/verdemed/domain/valueobject"
	"github.com/verdemed/verdemed/pkg/apperror"
)

var fullNameRegex = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s'-]+$`)

const (
	minFullNameLength = 2
	maxFullNameLength = 255
)

// ValidateRegister checks the registration payload field by field and
// collects every failure, so the caller gets the full list in one response.
func ValidateRegister(req *inbound.RegisterPatientRequest) []apperror.FieldError {
	var fieldErrors []apperror.FieldError

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	if err := valueobject.ValidateEmail(req.Email); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "email",
			Message: "Invalid email format",
		})
	}

	switch valueobject.ValidatePassword(req.Password) {
	case valueobject.ErrPasswordTooShort:
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "password",
			Message: "Password must be at least 8 characters",
		})
	case valueobject.ErrPasswordTooLong:
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "password",
			Message: "Password must be at most 100 characters",
		})
	}

	nameLen := len([]rune(req.FullName))
	if nameLen < minFullNameLength || nameLen > maxFullNameLength || !fullNameRegex.MatchString(req.FullName) {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "fullName",
			Message: "Full name must be 2-255 characters",
		})
	}

	if _, err := valueobject.NewBRPhone(req.Phone); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "phone",
			Message: "Invalid Brazilian phone number",
		})
	}

	if _, err := valueobject.NewBirthdate(req.Birthdate); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "birthdate",
			Message: birthdateMessage(err),
		})
	}

	if _, err := valueobject.NewCPF(req.CPF); err != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "nationalId",
			Message: "Invalid CPF",
		})
	}

	return fieldErrors
}

func birthdateMessage(err error) string {
	if err == valueobject.ErrAgeOutOfRange {
		return "Age must be between 18 and 120"
	}
	return "Birthdate must be in YYYY-MM-DD format"
}

// ValidateLogin keeps the sign-in checks intentionally loose: the password
// rules only apply at registration time, existing accounts may predate them.
func ValidateLogin(email, password string) []apperror.FieldError {
	var fieldErrors []apperror.FieldError

	if valueobject.ValidateEmail(strings.TrimSpace(strings.ToLower(email))) != nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "email",
			Message: "Invalid email format",
		})
	}

	if password == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "password",
			Message: "Password is required",
		})
	}

	return fieldErrors
}
