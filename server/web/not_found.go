package web

import (
	"net/http"

	"github.com/topi314/csat-counter/server"
	"github.com/topi314/csat-counter/server/countdown"
)

const notFoundTemplate = "counter/404.html"

// NotFound renders the 404 page. The routing error is part of the
// server.NotFoundFunc signature and does not change the page.
func (h *handler) NotFound(w http.ResponseWriter, r *http.Request, _ error) error {
	return h.Renderer.Render(w, r, notFoundTemplate,
		server.WithStatus(http.StatusNotFound),
		server.WithData(NotFoundVars{
			Dev:   h.Cfg.Dev,
			Path:  r.URL.Path,
			Quote: countdown.RandomQuote(),
		}),
	)
}
