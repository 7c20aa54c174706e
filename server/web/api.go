package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/cors"

	"github.com/topi314/csat-counter/internal/middlewares"
	"github.com/topi314/csat-counter/internal/xquery"
	"github.com/topi314/csat-counter/server/countdown"
)

func (h *handler) api() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /countdowns", h.handle(h.APICountdowns))
	mux.HandleFunc("GET /csat/{year}", h.handle(h.APICSAT))
	mux.HandleFunc("GET /mock-exams", h.handle(h.APIMockExams))
	mux.HandleFunc("GET /subjects", h.handle(h.APISubjects))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, r, http.StatusNotFound, "no such endpoint")
	})

	var handler http.Handler = http.StripPrefix("/api", mux)
	handler = middlewares.RateLimit(h.Cfg.API.Every.Std(), h.Cfg.API.Burst)(handler)
	handler = cors.Handler(cors.Options{
		AllowedOrigins: h.Cfg.API.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		MaxAge:         300,
	})(handler)

	return handler
}

// APICountdowns returns every counter of the main page. The optional "now"
// query parameter (RFC 3339) previews the counters at another time and
// "finished=off" leaves out exams that already started.
func (h *handler) APICountdowns(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	now := xquery.ParseTime(query, "now", time.RFC3339, h.Now()).In(countdown.KST)
	withFinished := xquery.ParseBool(query, "finished", true)

	counters, err := h.Schedule.Counters(r.Context(), now)
	if errors.Is(err, countdown.ErrInvalidYear) {
		writeJSONError(w, r, http.StatusBadRequest, err.Error())
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to build counters: %w", err)
	}
	if !withFinished {
		counters = slices.DeleteFunc(counters, func(counter countdown.Counter) bool {
			return counter.Remaining.Finished
		})
	}

	return writeJSON(w, http.StatusOK, CountdownsResponse{
		Now:      now,
		Quote:    countdown.RandomQuote(),
		Counters: counters,
	})
}

func (h *handler) APICSAT(w http.ResponseWriter, r *http.Request) error {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeJSONError(w, r, http.StatusBadRequest, "year must be a number")
		return nil
	}

	startsAt, overridden, err := h.Schedule.Date(r.Context(), countdown.KindCSAT, year, int(time.November))
	if errors.Is(err, countdown.ErrInvalidYear) {
		writeJSONError(w, r, http.StatusBadRequest, err.Error())
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get csat date: %w", err)
	}

	return writeJSON(w, http.StatusOK, CSATResponse{
		Year:         year,
		AcademicYear: countdown.AcademicYear(year),
		StartsAt:     startsAt,
		Overridden:   overridden,
	})
}

// APIMockExams lists the mock exam dates of "year" (default this year) for the
// comma separated "months" (default the configured months).
func (h *handler) APIMockExams(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	year, err := xquery.ParseInt(query, "year", h.Now().In(countdown.KST).Year())
	if err != nil {
		writeJSONError(w, r, http.StatusBadRequest, err.Error())
		return nil
	}
	months, err := xquery.ParseIntSlice(query, "months", h.Cfg.Counter.MockMonths)
	if err != nil {
		writeJSONError(w, r, http.StatusBadRequest, err.Error())
		return nil
	}

	exams := make([]MockExamResponse, 0, len(months))
	for _, month := range months {
		startsAt, overridden, err := h.Schedule.Date(r.Context(), countdown.KindMock, year, month)
		if errors.Is(err, countdown.ErrInvalidYear) || errors.Is(err, countdown.ErrInvalidMonth) {
			writeJSONError(w, r, http.StatusBadRequest, err.Error())
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get mock exam date: %w", err)
		}

		exams = append(exams, MockExamResponse{
			Year:       year,
			Month:      month,
			Title:      countdown.Title(countdown.KindMock, year, month),
			StartsAt:   startsAt,
			Overridden: overridden,
		})
	}

	return writeJSON(w, http.StatusOK, exams)
}

func (h *handler) APISubjects(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusOK, countdown.Subjects())
}

// writeJSON encodes v before touching w, so an encoding error can still be
// answered with a 500.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
	return nil
}

func writeJSONError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if err := writeJSON(w, status, ErrorResponse{
		Status:  status,
		Message: message,
	}); err != nil {
		slog.ErrorContext(r.Context(), "Failed to write error response", slog.Any("err", err))
	}
}
