package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/atinyakov/mesto/internal/apperror"
	"github.com/atinyakov/mesto/internal/models"
	"github.com/atinyakov/mesto/internal/service"
	"github.com/atinyakov/mesto/internal/validation"
)

// fakeAuthService implements AuthService for testing.
type fakeAuthService struct {
	signupIn  service.SignupInput
	signupErr error
	loginErr  error
	token     string
}

func (f *fakeAuthService) Signup(ctx context.Context, in service.SignupInput) (*models.User, error) {
	f.signupIn = in
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	return &models.User{
		ID:           "3f1c1b9e-3c6a-4a4e-9d0e-8c1d8f7c2a11",
		Name:         models.DefaultName,
		About:        models.DefaultAbout,
		Avatar:       models.DefaultAvatar,
		Email:        in.Email,
		PasswordHash: "must-not-leak",
	}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return f.token, f.loginErr
}

func serveAuth(h HandlerFunc, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	Adapt(apperror.NewResponder(nil), h)(rec, req)
	return rec
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakeAuthService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid JSON",
			body:           `not a json`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: apperror.MsgInvalidJSON,
		},
		{
			name:           "unknown field",
			body:           `{"email":"a@b.com","password":"secret1","role":"admin"}`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: apperror.MsgInvalidJSON,
		},
		{
			name:           "missing email",
			body:           `{"password":"secret1"}`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: `"field":"email"`,
		},
		{
			name:           "short name",
			body:           `{"name":"J","email":"a@b.com","password":"secret1"}`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: `"rule":"min"`,
		},
		{
			name:           "bad avatar",
			body:           `{"avatar":"ftp://nope","email":"a@b.com","password":"secret1"}`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: `"rule":"avatar"`,
		},
		{
			name:           "email taken",
			body:           `{"email":"a@b.com","password":"secret1"}`,
			service:        &fakeAuthService{signupErr: apperror.Conflict("User with this email already exists")},
			expectedCode:   http.StatusConflict,
			expectedSubstr: "User with this email already exists",
		},
		{
			name:           "store failure",
			body:           `{"email":"a@b.com","password":"secret1"}`,
			service:        &fakeAuthService{signupErr: errors.New("connection reset")},
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: apperror.MsgServerError,
		},
		{
			name:           "defaults applied",
			body:           `{"email":"a@b.com","password":"secret1"}`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusCreated,
			expectedSubstr: `"name":"Жак-Ив Кусто"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &AuthHandler{AuthService: tt.service, Validator: validation.New()}
			rec := serveAuth(h.Signup, "/signup", tt.body)

			if rec.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
			if strings.Contains(rec.Body.String(), "must-not-leak") || strings.Contains(rec.Body.String(), "password") {
				t.Errorf("password leaked: %s", rec.Body.String())
			}
		})
	}
}

func TestAuthHandler_SignupPassesFields(t *testing.T) {
	svc := &fakeAuthService{}
	h := &AuthHandler{AuthService: svc, Validator: validation.New()}

	rec := serveAuth(h.Signup, "/signup", `{"name":"Марта","about":"Капитан","email":"m@b.com","password":"pw"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	want := service.SignupInput{Name: "Марта", About: "Капитан", Email: "m@b.com", Password: "pw"}
	if svc.signupIn != want {
		t.Errorf("service got %+v, want %+v", svc.signupIn, want)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"_id", "name", "about", "avatar", "email"} {
		if _, ok := body[key]; !ok {
			t.Errorf("missing %q in %v", key, body)
		}
	}
}

func TestAuthHandler_Signin(t *testing.T) {
	svc := &fakeAuthService{token: "header.payload.sig"}
	h := &AuthHandler{
		AuthService:  svc,
		Validator:    validation.New(),
		CookieTTL:    7 * 24 * time.Hour,
		CookieSecure: true,
	}

	rec := serveAuth(h.Signin, "/signin", `{"email":"a@b.com","password":"secret1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"message":"Login successful"}` {
		t.Errorf("unexpected body %q", rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != AuthCookie || c.Value != "header.payload.sig" {
		t.Errorf("unexpected cookie %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteStrictMode || c.Path != "/" {
		t.Errorf("unexpected cookie attributes: %+v", c)
	}
	if c.MaxAge != 604800 {
		t.Errorf("MaxAge = %d; want 604800", c.MaxAge)
	}
}

func TestAuthHandler_SigninFailures(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		loginErr     error
		expectedCode int
	}{
		{"missing password", `{"email":"a@b.com"}`, nil, http.StatusBadRequest},
		{"bad email", `{"email":"nope","password":"x"}`, nil, http.StatusBadRequest},
		{"bad credentials", `{"email":"a@b.com","password":"x"}`, apperror.Unauthenticated(apperror.MsgBadCredentials), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &AuthHandler{AuthService: &fakeAuthService{loginErr: tt.loginErr}, Validator: validation.New()}
			rec := serveAuth(h.Signin, "/signin", tt.body)

			if rec.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if len(rec.Result().Cookies()) != 0 {
				t.Error("no cookie expected on failure")
			}
		})
	}
}
