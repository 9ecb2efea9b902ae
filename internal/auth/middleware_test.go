package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sgacceso/service-acceso-go/internal/terminal"
	"github.com/sgacceso/service-acceso-go/internal/terminal/entity"
)

type fakeTerminalStore struct {
	terminals map[string]*entity.Terminal
}

func (f *fakeTerminalStore) GetByID(_ context.Context, id string) (*entity.Terminal, error) {
	if t, ok := f.terminals[id]; ok {
		return t, nil
	}
	return nil, nil
}

func (f *fakeTerminalStore) Upsert(_ context.Context, t *entity.Terminal) error {
	f.terminals[t.ID] = t
	return nil
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequireTerminal(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cr3t"), bcrypt.MinCost)
	require.NoError(t, err)
	store := &fakeTerminalStore{terminals: map[string]*entity.Terminal{
		"garita-01": {ID: "garita-01", SecretHash: string(hash), Activo: true},
	}}
	mw := RequireTerminal(terminal.NewService(store), zap.NewNop().Sugar())

	cases := []struct {
		name   string
		id     string
		secret string
		want   int
	}{
		{"valid credentials", "garita-01", "s3cr3t", http.StatusOK},
		{"wrong secret", "garita-01", "nope", http.StatusUnauthorized},
		{"unknown terminal", "garita-02", "s3cr3t", http.StatusUnauthorized},
		{"missing headers", "", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, called := okHandler()
			req := httptest.NewRequest(http.MethodPost, "/acceso-api/scans", nil)
			if tc.id != "" {
				req.Header.Set(HeaderTerminalID, tc.id)
			}
			if tc.secret != "" {
				req.Header.Set(HeaderTerminalSecret, tc.secret)
			}
			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, tc.want == http.StatusOK, *called)
		})
	}
}

func signToken(t *testing.T, secret []byte, method jwt.SigningMethod, exp time.Time) string {
	t.Helper()
	tkn := jwt.NewWithClaims(method, jwt.MapClaims{
		"sub": "admin",
		"exp": exp.Unix(),
	})
	signed, err := tkn.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func TestRequireBearer(t *testing.T) {
	secret := []byte("token-secret")
	mw := RequireBearer(secret, zap.NewNop().Sugar())

	valid := signToken(t, secret, jwt.SigningMethodHS256, time.Now().Add(time.Hour))
	expired := signToken(t, secret, jwt.SigningMethodHS256, time.Now().Add(-time.Hour))
	foreign := signToken(t, []byte("other-secret"), jwt.SigningMethodHS256, time.Now().Add(time.Hour))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong signing key", "Bearer " + foreign, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, called := okHandler()
			req := httptest.NewRequest(http.MethodGet, "/acceso-api/access-logs", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, tc.want == http.StatusOK, *called)
		})
	}
}
