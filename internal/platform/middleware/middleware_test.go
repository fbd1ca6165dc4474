// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/netinv/internal/platform/constants"
	"github.com/taibuivan/netinv/internal/platform/ctxutil"
	"github.com/taibuivan/netinv/internal/platform/middleware"
	"github.com/taibuivan/netinv/internal/platform/sec"
)

type stubVerifier struct {
	claims *sec.AuthClaims
}

func (v stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return v.claims, nil
}

type stubConfig struct{ dev bool }

func (c stubConfig) IsDevelopment() bool  { return c.dev }
func (c stubConfig) OriginSuffix() string { return "netinv.local" }

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func serve(handler http.Handler, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "upstream-1")
	serve(handler, request)
	assert.Equal(t, "upstream-1", seen)
}

func TestAuthenticateAndRequireRole(t *testing.T) {
	verifier := stubVerifier{claims: &sec.AuthClaims{Operator: "alice", Role: string(sec.RoleEditor)}}
	chain := func(role sec.UserRole) http.Handler {
		return middleware.Authenticate(verifier)(middleware.RequireRole(role)(okHandler))
	}

	tests := []struct {
		name   string
		header string
		role   sec.UserRole
		status int
	}{
		{"anonymous", "", sec.RoleViewer, http.StatusUnauthorized},
		{"malformed", "Token good", sec.RoleViewer, http.StatusUnauthorized},
		{"invalid", "Bearer bad", sec.RoleViewer, http.StatusUnauthorized},
		{"sufficient", "Bearer good", sec.RoleEditor, http.StatusOK},
		{"lower_role_required", "bearer good", sec.RoleViewer, http.StatusOK},
		{"insufficient", "Bearer good", sec.RoleAdmin, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.status, serve(chain(tt.role), request).Code)
		})
	}
}

func TestCORS(t *testing.T) {
	handler := middleware.CORS(stubConfig{})(okHandler)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderOrigin, "https://ui.netinv.local")
	assert.Equal(t, "https://ui.netinv.local", serve(handler, request).Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderOrigin, "https://evil.example")
	assert.Empty(t, serve(handler, request).Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodOptions, "/", nil)
	request.Header.Set(constants.HeaderOrigin, "https://evil.example")
	assert.Equal(t, http.StatusNoContent, serve(middleware.CORS(stubConfig{dev: true})(okHandler), request).Code)
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.NewRateLimiter(ctx, 1, 2).Handler(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "10.0.0.1:5000"
		codes = append(codes, serve(handler, request).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.2:5000"
	assert.Equal(t, http.StatusOK, serve(handler, request).Code)
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}
