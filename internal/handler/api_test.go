package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notes-service/internal/handler"
	"notes-service/internal/repository"
	"notes-service/internal/router"
	oauth2svc "notes-service/internal/service/oauth2"
	"notes-service/internal/usecase"
	"notes-service/pkg/jwtutil"
	"notes-service/pkg/middleware"
	"notes-service/pkg/xerrors"
)

type fakeMailer struct {
	sent int
	err  error
}

func (m *fakeMailer) Send(_, _, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent++
	return nil
}

type fakeGoogleVerifier struct {
	user *oauth2svc.GoogleUser
	err  error
}

func (v *fakeGoogleVerifier) Verify(_ context.Context, _ string) (*oauth2svc.GoogleUser, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.user, nil
}

type apiFixture struct {
	handler http.Handler
	users   *repository.UserMemoryRepository
	mailer  *fakeMailer
	google  *fakeGoogleVerifier
	tokens  *jwtutil.Manager
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	users := repository.NewUserMemoryRepository()
	notes := repository.NewNoteMemoryRepository()
	mailer := &fakeMailer{}
	google := &fakeGoogleVerifier{}
	tokens := jwtutil.NewManager("test-secret")

	authUC := usecase.NewAuthUsecase(users, mailer, tokens, google)
	noteUC := usecase.NewNoteUsecase(notes)

	r := chi.NewRouter()
	router.SetupRoutes(r,
		handler.NewAuthHandler(authUC),
		handler.NewNoteHandler(noteUC),
		middleware.NewAuthMiddleware(tokens),
	)

	return &apiFixture{handler: r, users: users, mailer: mailer, google: google, tokens: tokens}
}

// do sends a JSON request through the router and decodes the JSON response.
func (f *apiFixture) do(t *testing.T, method, path, bearer string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func (f *apiFixture) signupVerified(t *testing.T, email, name, password string) {
	t.Helper()

	code, _ := f.do(t, http.MethodPost, "/api/users/signup", "", map[string]string{
		"email": email, "name": name, "password": password,
	})
	require.Equal(t, http.StatusOK, code)

	code, _ = f.do(t, http.MethodPost, "/api/users/request-otp", "", map[string]string{"email": email})
	require.Equal(t, http.StatusOK, code)

	code, _ = f.do(t, http.MethodPost, "/api/users/verify-otp", "", map[string]string{
		"email": email, "otp": f.verificationCode(t, email),
	})
	require.Equal(t, http.StatusOK, code)
}

func (f *apiFixture) verificationCode(t *testing.T, email string) string {
	t.Helper()
	u, err := f.users.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, u.VerificationOTP)
	return u.VerificationOTP.Code
}

func (f *apiFixture) resetCode(t *testing.T, email string) string {
	t.Helper()
	u, err := f.users.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, u.ResetOTP)
	return u.ResetOTP.Code
}

func (f *apiFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	code, body := f.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, code)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestSignupVerifyLoginFlow(t *testing.T) {
	f := newAPIFixture(t)

	code, body := f.do(t, http.MethodPost, "/api/users/signup", "", map[string]string{
		"email": "a@x.com", "name": "A", "password": "pw1",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Signup successful, please request OTP", body["message"])
	assert.NotEmpty(t, body["userId"])

	// Login before verification is rejected.
	code, _ = f.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "a@x.com", "password": "pw1",
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = f.do(t, http.MethodPost, "/api/users/request-otp", "", map[string]string{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, f.mailer.sent)

	code, body = f.do(t, http.MethodPost, "/api/users/verify-otp", "", map[string]string{
		"email": "a@x.com", "otp": f.verificationCode(t, "a@x.com"),
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "User verified successfully", body["message"])
	assert.NotEmpty(t, body["token"])

	token := f.login(t, "a@x.com", "pw1")

	code, body = f.do(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", user["email"])
}

func TestSignup_Validation(t *testing.T) {
	f := newAPIFixture(t)

	code, body := f.do(t, http.MethodPost, "/api/users/signup", "", map[string]string{
		"email": "a@x.com", "name": "A",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "All fields required", body["error"])

	code, _ = f.do(t, http.MethodPost, "/api/users/signup", "", map[string]string{
		"email": "a@x.com", "name": "A", "password": "pw1",
	})
	require.Equal(t, http.StatusOK, code)

	code, _ = f.do(t, http.MethodPost, "/api/users/signup", "", map[string]string{
		"email": "A@X.COM", "name": "B", "password": "pw2",
	})
	assert.Equal(t, http.StatusConflict, code)
}

func TestLogin_ErrorMapping(t *testing.T) {
	f := newAPIFixture(t)

	code, _ := f.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "nobody@x.com", "password": "pw",
	})
	assert.Equal(t, http.StatusNotFound, code)

	f.signupVerified(t, "a@x.com", "A", "pw1")

	code, _ = f.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "a@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestGoogleLoginEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	f.google.err = xerrors.ErrInvalidGoogleToken
	code, _ := f.do(t, http.MethodPost, "/api/users/google-login", "", map[string]string{"idToken": "bad"})
	assert.Equal(t, http.StatusUnauthorized, code)

	f.google.err = nil
	f.google.user = &oauth2svc.GoogleUser{Sub: "g-1", Email: "g@x.com", Name: "G"}
	code, body := f.do(t, http.MethodPost, "/api/users/google-login", "", map[string]string{"idToken": "good"})
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "g@x.com", user["email"])
}

func TestValidateTokenEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	f.signupVerified(t, "a@x.com", "A", "pw1")
	token := f.login(t, "a@x.com", "pw1")

	code, body := f.do(t, http.MethodGet, "/api/users/validate-token", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["valid"])

	code, _ = f.do(t, http.MethodGet, "/api/users/validate-token", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = f.do(t, http.MethodGet, "/api/users/validate-token", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "No token provided", body["error"])
}

func TestResetPasswordAuthorization(t *testing.T) {
	f := newAPIFixture(t)
	f.signupVerified(t, "a@x.com", "A", "pw1")

	code, _ := f.do(t, http.MethodPost, "/api/users/forgot-password", "", map[string]string{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, code)

	// No token at all.
	code, body := f.do(t, http.MethodPost, "/api/users/reset-password", "", map[string]string{"newPassword": "pw2"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "No token provided", body["error"])

	// A session token is not a reset authorization.
	session := f.login(t, "a@x.com", "pw1")
	code, body = f.do(t, http.MethodPost, "/api/users/reset-password", session, map[string]string{"newPassword": "pw2"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid or expired token", body["error"])

	code, body = f.do(t, http.MethodPost, "/api/users/verify-reset-otp", "", map[string]string{
		"email": "a@x.com", "resetOtp": f.resetCode(t, "a@x.com"),
	})
	require.Equal(t, http.StatusOK, code)
	resetToken, _ := body["token"].(string)
	require.NotEmpty(t, resetToken)

	// The body's email is ignored; the token decides whose password changes.
	code, _ = f.do(t, http.MethodPost, "/api/users/reset-password", resetToken, map[string]string{
		"email": "someone-else@x.com", "newPassword": "pw2",
	})
	require.Equal(t, http.StatusOK, code)

	code, _ = f.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "a@x.com", "password": "pw1",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	f.login(t, "a@x.com", "pw2")
}

func TestChangePasswordEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	f.signupVerified(t, "a@x.com", "A", "pw1")
	token := f.login(t, "a@x.com", "pw1")

	code, _ := f.do(t, http.MethodPost, "/api/users/change-password", token, map[string]string{
		"currentPassword": "wrong", "newPassword": "pw2",
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := f.do(t, http.MethodPost, "/api/users/change-password", token, map[string]string{
		"currentPassword": "pw1", "newPassword": "pw2",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Password changed successfully", body["message"])

	f.login(t, "a@x.com", "pw2")
}

func TestNotesEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	code, _ := f.do(t, http.MethodGet, "/api/notes/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	f.signupVerified(t, "a@x.com", "A", "pw1")
	token := f.login(t, "a@x.com", "pw1")

	code, body := f.do(t, http.MethodPost, "/api/notes/", token, map[string]string{
		"title": "first", "content": "hello",
	})
	require.Equal(t, http.StatusOK, code)
	note, ok := body["note"].(map[string]any)
	require.True(t, ok)
	noteID, _ := note["id"].(string)
	require.NotEmpty(t, noteID)

	code, body = f.do(t, http.MethodGet, "/api/notes/", token, nil)
	require.Equal(t, http.StatusOK, code)
	notes, ok := body["notes"].([]any)
	require.True(t, ok)
	assert.Len(t, notes, 1)

	code, _ = f.do(t, http.MethodPut, "/api/notes/"+noteID, token, map[string]string{
		"title": "first", "content": "edited",
	})
	require.Equal(t, http.StatusOK, code)

	code, body = f.do(t, http.MethodGet, "/api/notes/"+noteID, token, nil)
	require.Equal(t, http.StatusOK, code)
	note, ok = body["note"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "edited", note["content"])

	// A second user cannot see the first user's note.
	f.signupVerified(t, "b@x.com", "B", "pw1")
	other := f.login(t, "b@x.com", "pw1")
	code, _ = f.do(t, http.MethodGet, "/api/notes/"+noteID, other, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = f.do(t, http.MethodDelete, "/api/notes/"+noteID, token, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = f.do(t, http.MethodGet, "/api/notes/"+noteID, token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRequestOTP_ErrorMapping(t *testing.T) {
	f := newAPIFixture(t)

	code, _ := f.do(t, http.MethodPost, "/api/users/request-otp", "", map[string]string{"email": "nobody@x.com"})
	assert.Equal(t, http.StatusNotFound, code)

	f.signupVerified(t, "a@x.com", "A", "pw1")
	code, _ = f.do(t, http.MethodPost, "/api/users/request-otp", "", map[string]string{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, code)
}
