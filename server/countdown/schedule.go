package countdown

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
)

// OverrideStore holds exam dates that were announced and differ from the
// calendar rules. ok is false when no override exists.
type OverrideStore interface {
	ExamDate(ctx context.Context, kind Kind, year int, month int) (startsAt time.Time, ok bool, err error)
}

type Counter struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	Title      string    `json:"title"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	StartsAt   time.Time `json:"starts_at"`
	Remaining  Remaining `json:"remaining"`
	Display    string    `json:"display"`
	Overridden bool      `json:"overridden"`
}

type examDate struct {
	startsAt   time.Time
	overridden bool
}

func NewSchedule(cfg Config, store OverrideStore) *Schedule {
	ttl := cfg.CacheTTL.Std()
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	return &Schedule{
		cfg:   cfg,
		store: store,
		cache: cache.New(ttl, 2*ttl),
	}
}

type Schedule struct {
	cfg   Config
	store OverrideStore
	cache *cache.Cache
}

// Date resolves the start of an exam. Overrides from the store win over the
// calendar rules. A failing store is logged and the rule is used instead.
func (s *Schedule) Date(ctx context.Context, kind Kind, year int, month int) (time.Time, bool, error) {
	if err := ValidateYear(year); err != nil {
		return time.Time{}, false, err
	}
	if kind == KindCSAT {
		month = int(time.November)
	}
	if month < 1 || month > 12 {
		return time.Time{}, false, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}

	key := fmt.Sprintf("%s:%d:%d", kind, year, month)
	if cached, ok := s.cache.Get(key); ok {
		date := cached.(examDate)
		return date.startsAt, date.overridden, nil
	}

	date := examDate{startsAt: ruleDate(kind, year, month)}
	if s.store != nil {
		startsAt, ok, err := s.store.ExamDate(ctx, kind, year, month)
		if err != nil {
			slog.WarnContext(ctx, "Failed to look up exam date override, using calendar rule",
				slog.String("kind", string(kind)),
				slog.Int("year", year),
				slog.Int("month", month),
				slog.Any("err", err),
			)
			return date.startsAt, false, nil
		}
		if ok {
			date = examDate{startsAt: startsAt.In(KST), overridden: true}
		}
	}

	s.cache.Set(key, date, cache.DefaultExpiration)
	return date.startsAt, date.overridden, nil
}

// Counters returns the CSAT counters followed by the mock exam counters of the
// year now falls in.
func (s *Schedule) Counters(ctx context.Context, now time.Time) ([]Counter, error) {
	now = now.In(KST)
	year := now.Year()

	counters := make([]Counter, 0, len(s.cfg.CSATOffsets)+len(s.cfg.MockMonths))
	for _, offset := range s.cfg.CSATOffsets {
		counter, err := s.counter(ctx, now, KindCSAT, year+offset, int(time.November))
		if err != nil {
			return nil, err
		}
		counter.ID = fmt.Sprintf("csat-%d", offset)
		counters = append(counters, counter)
	}

	for _, month := range s.cfg.MockMonths {
		counter, err := s.counter(ctx, now, KindMock, year, month)
		if err != nil {
			return nil, err
		}
		counter.ID = fmt.Sprintf("mock-exam-%d", month)
		counters = append(counters, counter)
	}

	return counters, nil
}

// NextCSAT returns the counter of the first CSAT that has not started yet.
func (s *Schedule) NextCSAT(ctx context.Context, now time.Time) (Counter, error) {
	now = now.In(KST)

	counter, err := s.counter(ctx, now, KindCSAT, now.Year(), int(time.November))
	if err != nil {
		return Counter{}, err
	}
	if !counter.Remaining.Finished {
		counter.ID = "csat-0"
		return counter, nil
	}

	counter, err = s.counter(ctx, now, KindCSAT, now.Year()+1, int(time.November))
	if err != nil {
		return Counter{}, err
	}
	counter.ID = "csat-1"
	return counter, nil
}

func (s *Schedule) counter(ctx context.Context, now time.Time, kind Kind, year int, month int) (Counter, error) {
	startsAt, overridden, err := s.Date(ctx, kind, year, month)
	if err != nil {
		return Counter{}, fmt.Errorf("failed to resolve %s date for %d-%02d: %w", kind, year, month, err)
	}

	remaining := Until(now, startsAt)
	display := remaining.Format()
	if remaining.Finished {
		display = RandomFinishedQuote()
	}

	return Counter{
		Kind:       kind,
		Title:      Title(kind, year, month),
		Year:       year,
		Month:      month,
		StartsAt:   startsAt,
		Remaining:  remaining,
		Display:    display,
		Overridden: overridden,
	}, nil
}

// Title returns the heading shown above a counter.
func Title(kind Kind, year int, month int) string {
	if kind == KindCSAT {
		return fmt.Sprintf("%d학년도 대학수학능력시험까지", AcademicYear(year))
	}
	return fmt.Sprintf("%d년 %d월 모의고사까지", year, month)
}

func ruleDate(kind Kind, year int, month int) time.Time {
	if kind == KindCSAT {
		return CSATDate(year)
	}
	return MockExamDate(year, time.Month(month))
}
