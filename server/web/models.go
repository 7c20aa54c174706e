package web

import (
	"time"

	"github.com/topi314/csat-counter/server/countdown"
)

type MainPageVars struct {
	Dev      bool
	Now      time.Time
	Quote    string
	CSAT     []countdown.Counter
	Mock     []countdown.Counter
	Subjects []countdown.Subject
	ShareURL string
}

type NotFoundVars struct {
	Dev   bool
	Path  string
	Quote string
}

type CountdownsResponse struct {
	Now      time.Time           `json:"now"`
	Quote    string              `json:"quote"`
	Counters []countdown.Counter `json:"counters"`
}

type CSATResponse struct {
	Year         int       `json:"year"`
	AcademicYear int       `json:"academic_year"`
	StartsAt     time.Time `json:"starts_at"`
	Overridden   bool      `json:"overridden"`
}

type MockExamResponse struct {
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	Title      string    `json:"title"`
	StartsAt   time.Time `json:"starts_at"`
	Overridden bool      `json:"overridden"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func splitCounters(counters []countdown.Counter) ([]countdown.Counter, []countdown.Counter) {
	var csat, mock []countdown.Counter
	for _, counter := range counters {
		switch counter.Kind {
		case countdown.KindCSAT:
			csat = append(csat, counter)
		case countdown.KindMock:
			mock = append(mock, counter)
		}
	}
	return csat, mock
}
