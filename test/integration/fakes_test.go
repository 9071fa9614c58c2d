package integration

import (
	"context"
	"sync"

	"github.com/verdemed/verdemed/application/port/outbound"
	"github.com/verdemed/verdemed/domain/entity"
	"github.com/verdemed/verdemed/infrastructure/service/logger"
)

// In-memory stand-ins for the postgres repositories, mutex-guarded so the
// concurrent registration test can hammer them.

type fakeIdentityRepo struct {
	mu       sync.Mutex
	byID     map[string]*entity.Identity
	byEmail  map[string]*entity.Identity
	password map[string]string
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{
		byID:     make(map[string]*entity.Identity),
		byEmail:  make(map[string]*entity.Identity),
		password: make(map[string]string),
	}
}

func (f *fakeIdentityRepo) Create(ctx context.Context, identity *entity.Identity, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byEmail[identity.Email]; exists {
		return outbound.ErrEmailAlreadyRegistered
	}
	copied := *identity
	f.byID[identity.ID] = &copied
	f.byEmail[identity.Email] = &copied
	f.password[identity.ID] = passwordHash
	return nil
}

func (f *fakeIdentityRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	identity, ok := f.byID[id]
	if !ok {
		return outbound.ErrIdentityNotFound
	}
	delete(f.byEmail, identity.Email)
	delete(f.byID, id)
	delete(f.password, id)
	return nil
}

func (f *fakeIdentityRepo) FindByID(ctx context.Context, id string) (*entity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	identity, ok := f.byID[id]
	if !ok {
		return nil, outbound.ErrIdentityNotFound
	}
	copied := *identity
	return &copied, nil
}

func (f *fakeIdentityRepo) FindByEmail(ctx context.Context, email string) (*entity.Identity, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	identity, ok := f.byEmail[email]
	if !ok {
		return nil, "", outbound.ErrIdentityNotFound
	}
	copied := *identity
	return &copied, f.password[identity.ID], nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	byHash map[string]*entity.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{byHash: make(map[string]*entity.RefreshToken)}
}

func (f *fakeRefreshTokenRepo) Create(ctx context.Context, token *entity.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *token
	f.byHash[token.TokenHash] = &copied
	return nil
}

func (f *fakeRefreshTokenRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token, ok := f.byHash[tokenHash]
	if !ok {
		return nil, outbound.ErrRefreshTokenNotFound
	}
	copied := *token
	return &copied, nil
}

func (f *fakeRefreshTokenRepo) Revoke(ctx context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byHash[tokenHash]; !ok {
		return outbound.ErrRefreshTokenNotFound
	}
	delete(f.byHash, tokenHash)
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeByIdentityID(ctx context.Context, identityID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for hash, token := range f.byHash {
		if token.IdentityID == identityID {
			delete(f.byHash, hash)
		}
	}
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile

	failCreate bool
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*entity.Profile)}
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *entity.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errTestInjected
	}
	copied := *profile
	f.profiles[profile.ID] = &copied
	return nil
}

func (f *fakeProfileRepo) FindByID(ctx context.Context, id string) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[id]
	if !ok {
		return nil, outbound.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeProfileRepo) FindRoleByID(ctx context.Context, id string) (entity.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[id]
	if !ok {
		return "", outbound.ErrProfileNotFound
	}
	return profile.Role, nil
}

func (f *fakeProfileRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[id]; !ok {
		return outbound.ErrProfileNotFound
	}
	delete(f.profiles, id)
	return nil
}

func (f *fakeProfileRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.profiles)
}

type fakePatientRepo struct {
	mu       sync.Mutex
	patients map[string]*entity.Patient

	failCreate bool
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[string]*entity.Patient)}
}

func (f *fakePatientRepo) Create(ctx context.Context, patient *entity.Patient) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errTestInjected
	}
	copied := *patient
	f.patients[patient.ID] = &copied
	return nil
}

func (f *fakePatientRepo) FindByID(ctx context.Context, id string) (*entity.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	patient, ok := f.patients[id]
	if !ok {
		return nil, outbound.ErrPatientNotFound
	}
	copied := *patient
	return &copied, nil
}

func (f *fakePatientRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.patients[id]; !ok {
		return outbound.ErrPatientNotFound
	}
	delete(f.patients, id)
	return nil
}

type fakeDoctorRepo struct{}

func (fakeDoctorRepo) FindByID(ctx context.Context, id string) (*entity.Doctor, error) {
	return nil, outbound.ErrDoctorNotFound
}

type fakeAuditLogRepo struct {
	mu   sync.Mutex
	logs []*entity.AuditLog
}

func (f *fakeAuditLogRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *log
	f.logs = append(f.logs, &copied)
	return nil
}

func (f *fakeAuditLogRepo) FindAll(ctx context.Context, offset, limit int) ([]*entity.AuditLog, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := len(f.logs)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := make([]*entity.AuditLog, 0, end-offset)
	for _, log := range f.logs[offset:end] {
		copied := *log
		page = append(page, &copied)
	}
	return page, total, nil
}

func (f *fakeAuditLogRepo) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var actions []string
	for _, log := range f.logs {
		actions = append(actions, log.Action)
	}
	return actions
}

type quietLogger struct{}

func (quietLogger) Info(ctx context.Context, message string, fields map[string]interface{})             {}
func (quietLogger) Warn(ctx context.Context, message string, fields map[string]interface{})             {}
func (quietLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {}
func (quietLogger) Debug(ctx context.Context, message string, fields map[string]interface{})            {}
func (l quietLogger) WithFields(fields map[string]interface{}) logger.Logger                            { return l }
