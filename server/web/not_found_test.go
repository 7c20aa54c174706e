package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/topi314/csat-counter/server"
)

func TestNotFound(t *testing.T) {
	routeErrs := []error{
		nil,
		&server.RouteError{Method: http.MethodGet, Path: "/missing"},
		errors.New("anything at all"),
	}

	for _, routeErr := range routeErrs {
		renderer := &recordingRenderer{}
		h := &handler{Server: newTestServer(renderer)}

		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		before := snapshot(req)

		rec := httptest.NewRecorder()
		if err := h.NotFound(rec, req, routeErr); err != nil {
			t.Fatalf("NotFound(%v) = %v", routeErr, err)
		}

		call := renderer.lastCall()
		if call.name != "counter/404.html" {
			t.Errorf("NotFound(%v) rendered %q, want counter/404.html", routeErr, call.name)
		}
		if call.options.Status != http.StatusNotFound || rec.Code != http.StatusNotFound {
			t.Errorf("NotFound(%v) status = %d/%d, want 404", routeErr, call.options.Status, rec.Code)
		}
		if after := snapshot(req); !reflect.DeepEqual(before, after) {
			t.Errorf("NotFound(%v) mutated the request", routeErr)
		}
	}
}

func TestNotFoundFallbackPassesRouteError(t *testing.T) {
	var got error
	h := &handler{Server: newTestServer(&recordingRenderer{})}

	fallback := h.handleNotFound(func(w http.ResponseWriter, r *http.Request, err error) error {
		got = err
		w.WriteHeader(http.StatusNotFound)
		return nil
	})
	fallback.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/nope", nil))

	var routeErr *server.RouteError
	if !errors.As(got, &routeErr) {
		t.Fatalf("fallback passed %v, want a *server.RouteError", got)
	}
	if routeErr.Method != http.MethodDelete || routeErr.Path != "/nope" {
		t.Errorf("route error = %+v", routeErr)
	}
}

func TestNotFoundRenderErrorPropagates(t *testing.T) {
	h := &handler{Server: newTestServer(&recordingRenderer{err: errors.New("no templates")})}

	rec := httptest.NewRecorder()
	h.handleNotFound(h.NotFound).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
