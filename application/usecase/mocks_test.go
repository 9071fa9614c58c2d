package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/verdemed/verdemed/application/port/inbound"
	"github.com/verdemed/verdemed/domain/entity"
	"github.com/verdemed/verdemed/domain/valueobject"
	"github.com/verdemed/verdemed/infrastructure/service/logger"
)

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CreateUser(ctx context.Context, email, password string) (*entity.Identity, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Identity), args.Error(1)
}

func (m *MockIdentityProvider) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIdentityProvider) GetUserByID(ctx context.Context, id string) (*entity.Identity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Identity), args.Error(1)
}

func (m *MockIdentityProvider) SignInWithPassword(ctx context.Context, email, password string) (*valueobject.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*valueobject.Session), args.Error(1)
}

func (m *MockIdentityProvider) VerifyToken(ctx context.Context, accessToken string) (*entity.Identity, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Identity), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindRoleByID(ctx context.Context, id string) (entity.Role, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entity.Role), args.Error(1)
}

func (m *MockProfileRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) FindByID(ctx context.Context, id string) (*entity.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Patient), args.Error(1)
}

func (m *MockPatientRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) FindByID(ctx context.Context, id string) (*entity.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Doctor), args.Error(1)
}

type MockAuditUseCase struct {
	mock.Mock
}

func (m *MockAuditUseCase) Record(ctx context.Context, req inbound.RecordAuditRequest) (*entity.AuditLog, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuditLog), args.Error(1)
}

func (m *MockAuditUseCase) List(ctx context.Context, offset, limit int) ([]*entity.AuditLog, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entity.AuditLog), args.Int(1), args.Error(2)
}

type noopLogger struct{}

func (noopLogger) Info(ctx context.Context, message string, fields map[string]interface{})             {}
func (noopLogger) Warn(ctx context.Context, message string, fields map[string]interface{})             {}
func (noopLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {}
func (noopLogger) Debug(ctx context.Context, message string, fields map[string]interface{})            {}
func (l noopLogger) WithFields(fields map[string]interface{}) logger.Logger                            { return l }
