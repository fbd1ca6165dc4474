// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/netinv/internal/platform/metrics"
	"github.com/taibuivan/netinv/internal/platform/validate"
)

/*
TestObserveValidation classifies outcomes by error type.
*/
func TestObserveValidation(t *testing.T) {
	m := metrics.New()

	m.ObserveValidation("dcim.site", nil)
	m.ObserveValidation("dcim.site", validate.FieldError("name", "This field is required"))
	m.ObserveValidation("dcim.site", errors.New("connection reset"))
	m.ObserveLookup("dcim.device", metrics.LookupMissing)

	expected := `
# HELP netinv_serializer_validations_total Validated serializer passes by model and outcome.
# TYPE netinv_serializer_validations_total counter
netinv_serializer_validations_total{model="dcim.site",outcome="error"} 1
netinv_serializer_validations_total{model="dcim.site",outcome="invalid"} 1
netinv_serializer_validations_total{model="dcim.site",outcome="ok"} 1
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "netinv_serializer_validations_total")
	require.NoError(t, err)
}

/*
TestHandler_ServesExposition checks the /metrics handler output.
*/
func TestHandler_ServesExposition(t *testing.T) {
	m := metrics.New()
	m.ObserveLookup("dcim.site", metrics.LookupFound)

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `netinv_object_lookups_total{content_type="dcim.site",outcome="found"} 1`)
}
