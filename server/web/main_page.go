package web

import (
	"fmt"
	"net/http"

	"github.com/topi314/csat-counter/server"
	"github.com/topi314/csat-counter/server/countdown"
)

const mainPageTemplate = "counter/main_page.html"

func (h *handler) MainPage(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	now := h.Now()

	counters, err := h.Schedule.Counters(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to build counters: %w", err)
	}
	csat, mock := splitCounters(counters)

	return h.Renderer.Render(w, r, mainPageTemplate, server.WithData(MainPageVars{
		Dev:      h.Cfg.Dev,
		Now:      now,
		Quote:    countdown.RandomQuote(),
		CSAT:     csat,
		Mock:     mock,
		Subjects: countdown.Subjects(),
		ShareURL: h.Cfg.Server.PublicURL,
	}))
}
