// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dcim_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/taibuivan/netinv/internal/dcim"
	"github.com/taibuivan/netinv/internal/platform/ctxutil"
	"github.com/taibuivan/netinv/internal/platform/sec"
)

func newRouter(f *fixture, role sec.UserRole) http.Handler {
	router := chi.NewRouter()
	if role != "" {
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				claims := &sec.AuthClaims{Operator: "alice", Role: string(role)}
				next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
			})
		})
	}
	dcim.NewHandler(f.service).RegisterRoutes(router)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))
	return recorder
}

func TestHandler_SiteLifecycle(t *testing.T) {
	f := newFixture()
	editor := newRouter(f, sec.RoleEditor)

	recorder := do(editor, http.MethodPost, "/sites/",
		`{"name":"DC East","asns":[65001],"tags":["core"],"custom_fields":{"power_feed":"A"}}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	body := gjson.Parse(recorder.Body.String())
	assert.Equal(t, "DC East", body.Get("data.display").String())
	assert.Equal(t, "dc-east", body.Get("data.slug").String())
	assert.Equal(t, int64(65001), body.Get("data.asns.0").Int())
	assert.Equal(t, "core", body.Get("data.tags.0").String())
	assert.Equal(t, "A", body.Get("data.custom_fields.power_feed").String())

	recorder = do(editor, http.MethodPatch, "/sites/1", `{"description":"Primary"}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Equal(t, "Primary", gjson.Get(recorder.Body.String(), "data.description").String())

	recorder = do(editor, http.MethodGet, "/sites/", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, int64(1), gjson.Get(recorder.Body.String(), "meta.total").Int())
	assert.Equal(t, "DC East", gjson.Get(recorder.Body.String(), "data.0.display").String())

	recorder = do(editor, http.MethodDelete, "/sites/1", "")
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = do(newRouter(f, sec.RoleAdmin), http.MethodDelete, "/sites/1", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestHandler_DeviceValidation(t *testing.T) {
	f := newFixture()
	editor := newRouter(f, sec.RoleEditor)

	recorder := do(editor, http.MethodPost, "/sites/", `{"name":"DC East"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = do(editor, http.MethodPost, "/devices/", `{"site_id":1,"position":60}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	body := gjson.Parse(recorder.Body.String())
	assert.Equal(t, "VALIDATION_ERROR", body.Get("code").String())
	assert.Equal(t, "position", body.Get("details.0.field").String())
	assert.Equal(t, "Must be between 1 and 48", body.Get("details.0.message").String())

	recorder = do(editor, http.MethodPost, "/devices/", `{"site_id":1,"position":4}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Equal(t, "Unnamed device (2)", gjson.Get(recorder.Body.String(), "data.display").String())

	recorder = do(editor, http.MethodGet, "/devices/?site_id=1,3&status=active", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, int64(1), gjson.Get(recorder.Body.String(), "meta.total").Int())
}

func TestHandler_Authorization(t *testing.T) {
	f := newFixture()

	recorder := do(newRouter(f, ""), http.MethodPost, "/sites/", `{"name":"DC East"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = do(newRouter(f, sec.RoleViewer), http.MethodPost, "/sites/", `{"name":"DC East"}`)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = do(newRouter(f, ""), http.MethodGet, "/sites/", "")
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = do(newRouter(f, ""), http.MethodGet, "/devices/abc", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = do(newRouter(f, ""), http.MethodGet, "/devices/5", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
