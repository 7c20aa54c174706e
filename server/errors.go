package server

import (
	"fmt"
	"net/http"
)

// NotFoundFunc is called for requests no route matched. err describes why.
// A returned error means no response was written.
type NotFoundFunc func(w http.ResponseWriter, r *http.Request, err error) error

type RouteError struct {
	Method string
	Path   string
}

func (e *RouteError) Error() string {
	return fmt.Sprintf("no route for %s %s", e.Method, e.Path)
}
