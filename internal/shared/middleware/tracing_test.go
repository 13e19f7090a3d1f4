package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTracing_PassesStatusThrough(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/budgets/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "7" {
			t.Errorf("PathValue(id) = %q, want 7", r.PathValue("id"))
		}
		w.WriteHeader(http.StatusAccepted)
	})

	handler := Telemetry("finbook-test")(Tracing(mux))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/budgets/7", nil))

	if rr.Code != http.StatusAccepted {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusAccepted)
	}
}

func TestTracing_Unmatched(t *testing.T) {
	handler := Tracing(http.NewServeMux())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
