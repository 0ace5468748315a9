package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentHandler_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/v1/apps/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/v1/apps/{id}", "404"))
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/apps/"+string(rune('a'+i)), nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/v1/apps/{id}", "404"))
	assert.Equal(t, before+3, after)
}

func TestRecordAction(t *testing.T) {
	before := testutil.ToFloat64(actionsTotal.WithLabelValues("create_app", "rolled_back"))
	RecordAction("create_app", time.Millisecond, errors.New("boom"))
	assert.Equal(t, before+1, testutil.ToFloat64(actionsTotal.WithLabelValues("create_app", "rolled_back")))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	RecordSignIn(true)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app_challenge_auth_sign_ins_total")
}
