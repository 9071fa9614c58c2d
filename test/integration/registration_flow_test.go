package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdemed/verdemed/application/usecase"
	verdemedhttp "github.com/verdemed/verdemed/infrastructure/http"
	"github.com/verdemed/verdemed/infrastructure/service/identity"
	"github.com/verdemed/verdemed/infrastructure/service/jwt"
	"github.com/verdemed/verdemed/infrastructure/service/password"
)

var errTestInjected = errors.New("injected store failure")

type testEnv struct {
	handler    http.Handler
	identities *fakeIdentityRepo
	profiles   *fakeProfileRepo
	patients   *fakePatientRepo
	audits     *fakeAuditLogRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	identities := newFakeIdentityRepo()
	refreshTokens := newFakeRefreshTokenRepo()
	profiles := newFakeProfileRepo()
	patients := newFakePatientRepo()
	audits := &fakeAuditLogRepo{}
	log := quietLogger{}

	tokenService, err := jwt.NewJWTService("integration-test-secret", time.Hour)
	require.NoError(t, err)
	passwordService := password.NewBcryptPasswordService(4)

	provider := identity.NewProvider(
		identities,
		refreshTokens,
		tokenService,
		passwordService,
		log,
		"integration-test-salt",
		time.Hour,
		30*24*time.Hour,
	)

	auditUC := usecase.NewAuditRecorder(audits, log)
	userUC := usecase.NewUserUseCase(provider, profiles, patients, fakeDoctorRepo{}, auditUC, log)
	authUC := usecase.NewAuthUseCase(provider, auditUC, log)

	handler := verdemedhttp.NewRouter(verdemedhttp.RouterDeps{
		UserUseCase:      userUC,
		AuthUseCase:      authUC,
		AuditUseCase:     auditUC,
		IdentityProvider: provider,
		Profiles:         profiles,
		Logger:           log,
	})

	return &testEnv{
		handler:    handler,
		identities: identities,
		profiles:   profiles,
		patients:   patients,
		audits:     audits,
	}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func registerPayload() map[string]string {
	return map[string]string{
		"email":      "p@example.com",
		"password":   "SecurePass123!",
		"fullName":   "Ana Silva",
		"phone":      "+5511999999999",
		"birthdate":  "1990-01-01",
		"nationalId": "52998224725",
	}
}

func TestRegisterThenMeRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", registerPayload())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var registered struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Session struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
			ExpiresIn    int    `json:"expires_in"`
		} `json:"session"`
		Profile struct {
			Role    string                 `json:"role"`
			Patient map[string]interface{} `json:"patient"`
		} `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	assert.Equal(t, "p@example.com", registered.User.Email)
	assert.NotEmpty(t, registered.Session.AccessToken)
	assert.Equal(t, "PATIENT", registered.Profile.Role)
	require.NotNil(t, registered.Profile.Patient)
	assert.Nil(t, registered.Profile.Patient["address"])

	assert.Contains(t, env.audits.actions(), "REGISTER")

	meRec := env.do(t, http.MethodGet, "/api/me", registered.Session.AccessToken, nil)
	require.Equal(t, http.StatusOK, meRec.Code, meRec.Body.String())

	var me map[string]interface{}
	require.NoError(t, json.Unmarshal(meRec.Body.Bytes(), &me))
	assert.Equal(t, registered.User.ID, me["id"])
	assert.Equal(t, "p@example.com", me["email"])
	assert.Equal(t, "Ana Silva", me["fullName"])
	assert.Equal(t, "+5511999999999", me["phone"])
	assert.Equal(t, "1990-01-01", me["birthdate"])
	assert.Equal(t, "52998224725", me["cpf"])

	// Reads are pure: a second call sees the same state.
	meAgain := env.do(t, http.MethodGet, "/api/me", registered.Session.AccessToken, nil)
	assert.Equal(t, meRec.Body.String(), meAgain.Body.String())
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	env := newTestEnv(t)

	first := env.do(t, http.MethodPost, "/api/auth/register", "", registerPayload())
	require.Equal(t, http.StatusOK, first.Code)

	second := env.do(t, http.MethodPost, "/api/auth/register", "", registerPayload())
	assert.Equal(t, http.StatusConflict, second.Code)

	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.Equal(t, "CONFLICT", body["error"]["code"])

	assert.Equal(t, 1, env.profiles.count())
}

func TestValidationFailureHasNoSideEffects(t *testing.T) {
	env := newTestEnv(t)

	payload := registerPayload()
	payload["nationalId"] = "11111111111"

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, env.profiles.count())
	assert.Empty(t, env.audits.actions())
}

func TestPatientInsertFailureRollsBackRegistration(t *testing.T) {
	env := newTestEnv(t)
	env.patients.failCreate = true

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", registerPayload())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// Compensation removed both the profile and the identity, so the email
	// is immediately reusable.
	assert.Equal(t, 0, env.profiles.count())
	env.patients.failCreate = false

	retry := env.do(t, http.MethodPost, "/api/auth/register", "", registerPayload())
	assert.Equal(t, http.StatusOK, retry.Code, retry.Body.String())
}

func TestLoginAfterRegistration(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/auth/register", "", registerPayload()).Code)

	rec := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "p@example.com",
		"password": "SecurePass123!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var session map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.NotEmpty(t, session["access_token"])

	wrong := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "p@example.com",
		"password": "WrongPass999",
	})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
}

func TestMeWithoutTokenIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuditLogsRequireAdminRole(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", registerPayload())
	require.Equal(t, http.StatusOK, rec.Code)

	var registered struct {
		Session struct {
			AccessToken string `json:"access_token"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	denied := env.do(t, http.MethodGet, "/api/admin/audit-logs", registered.Session.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, denied.Code)
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
