package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verdemed/verdemed/application/port/inbound"
)

func validPayload() inbound.RegisterPatientRequest {
	return inbound.RegisterPatientRequest{
		Email:     "p@example.com",
		Password:  "SecurePass123!",
		FullName:  "Ana Silva",
		Phone:     "+5511999999999",
		Birthdate: "1990-01-01",
		CPF:       "52998224725",
	}
}

func TestValidateRegister_ValidPayload(t *testing.T) {
	req := validPayload()

	errs := ValidateRegister(&req)

	assert.Empty(t, errs)
}

func TestValidateRegister_AcceptsBoundaryValues(t *testing.T) {
	req := validPayload()
	req.FullName = "Li"
	req.Password = strings.Repeat("a", 80)

	errs := ValidateRegister(&req)

	assert.Empty(t, errs)
}

func TestValidateRegister_NormalizesEmailAndName(t *testing.T) {
	req := validPayload()
	req.Email = "  P@Example.COM "
	req.FullName = " Ana Silva "

	errs := ValidateRegister(&req)

	assert.Empty(t, errs)
	assert.Equal(t, "p@example.com", req.Email)
	assert.Equal(t, "Ana Silva", req.FullName)
}

func TestValidateRegister_FieldFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*inbound.RegisterPatientRequest)
		field   string
		message string
	}{
		{
			name:   "invalid email",
			mutate: func(r *inbound.RegisterPatientRequest) { r.Email = "not-an-email" },
			field:  "email",
		},
		{
			name:    "short password",
			mutate:  func(r *inbound.RegisterPatientRequest) { r.Password = "short1!" },
			field:   "password",
			message: "Password must be at least 8 characters",
		},
		{
			name:    "password over limit",
			mutate:  func(r *inbound.RegisterPatientRequest) { r.Password = strings.Repeat("a", 101) },
			field:   "password",
			message: "Password must be at most 100 characters",
		},
		{
			name:   "name too short",
			mutate: func(r *inbound.RegisterPatientRequest) { r.FullName = "A" },
			field:  "fullName",
		},
		{
			name:   "name too long",
			mutate: func(r *inbound.RegisterPatientRequest) { r.FullName = strings.Repeat("a", 256) },
			field:  "fullName",
		},
		{
			name:   "name with digits",
			mutate: func(r *inbound.RegisterPatientRequest) { r.FullName = "Ana Silva 3" },
			field:  "fullName",
		},
		{
			name:   "malformed phone",
			mutate: func(r *inbound.RegisterPatientRequest) { r.Phone = "12345" },
			field:  "phone",
		},
		{
			name:    "underage birthdate",
			mutate:  func(r *inbound.RegisterPatientRequest) { r.Birthdate = "2015-01-01" },
			field:   "birthdate",
			message: "Age must be between 18 and 120",
		},
		{
			name:    "malformed birthdate",
			mutate:  func(r *inbound.RegisterPatientRequest) { r.Birthdate = "01/01/1990" },
			field:   "birthdate",
			message: "Birthdate must be in YYYY-MM-DD format",
		},
		{
			name:   "bad cpf checksum",
			mutate: func(r *inbound.RegisterPatientRequest) { r.CPF = "52998224726" },
			field:  "nationalId",
		},
		{
			name:   "cpf with repeated digits",
			mutate: func(r *inbound.RegisterPatientRequest) { r.CPF = "11111111111" },
			field:  "nationalId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validPayload()
			tt.mutate(&req)

			errs := ValidateRegister(&req)

			assert.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
			if tt.message != "" {
				assert.Equal(t, tt.message, errs[0].Message)
			}
		})
	}
}

func TestValidateRegister_CollectsAllFailures(t *testing.T) {
	req := validPayload()
	req.Email = "bad"
	req.Password = "short"
	req.CPF = "123"

	errs := ValidateRegister(&req)

	assert.Len(t, errs, 3)
}

func TestValidateLogin(t *testing.T) {
	assert.Empty(t, ValidateLogin("p@example.com", "anything"))
	assert.Len(t, ValidateLogin("bad", "anything"), 1)
	assert.Len(t, ValidateLogin("p@example.com", ""), 1)
	assert.Len(t, ValidateLogin("bad", ""), 2)
}
