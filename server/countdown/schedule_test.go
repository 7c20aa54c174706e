package countdown

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"
)

type fakeStore struct {
	dates map[string]time.Time
	err   error
	calls int
}

func (f *fakeStore) ExamDate(_ context.Context, kind Kind, year int, month int) (time.Time, bool, error) {
	f.calls++
	if f.err != nil {
		return time.Time{}, false, f.err
	}
	date, ok := f.dates[fmt.Sprintf("%s:%d:%d", kind, year, month)]
	return date, ok, nil
}

func TestScheduleCounters(t *testing.T) {
	schedule := NewSchedule(DefaultConfig(), nil)
	now := time.Date(2025, time.July, 1, 12, 0, 0, 0, KST)

	counters, err := schedule.Counters(context.Background(), now)
	if err != nil {
		t.Fatal(err)
	}

	var ids []string
	for _, counter := range counters {
		ids = append(ids, counter.ID)
	}
	if want := []string{"csat-0", "csat-1", "mock-exam-3", "mock-exam-6", "mock-exam-9"}; !slices.Equal(ids, want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}

	csat := counters[0]
	if csat.Title != "2026학년도 대학수학능력시험까지" {
		t.Errorf("csat title = %q", csat.Title)
	}
	if !csat.StartsAt.Equal(CSATDate(2025)) {
		t.Errorf("csat starts at %s", csat.StartsAt)
	}
	if csat.Remaining.Finished || csat.Display != csat.Remaining.Format() {
		t.Errorf("csat counter = %+v", csat)
	}

	if counters[1].Title != "2027학년도 대학수학능력시험까지" {
		t.Errorf("next csat title = %q", counters[1].Title)
	}

	march := counters[2]
	if march.Title != "2025년 3월 모의고사까지" {
		t.Errorf("march title = %q", march.Title)
	}
	if !march.Remaining.Finished || !slices.Contains(FinishedQuotes(), march.Display) {
		t.Errorf("march counter should be finished with a quote, got %+v", march)
	}

	if sept := counters[4]; sept.Remaining.Finished {
		t.Errorf("september counter should still run, got %+v", sept)
	}
}

func TestScheduleOverride(t *testing.T) {
	announced := time.Date(2025, time.November, 13, 8, 40, 0, 0, KST)
	store := &fakeStore{dates: map[string]time.Time{
		"csat:2025:11": announced.UTC(),
	}}
	schedule := NewSchedule(DefaultConfig(), store)

	for range 3 {
		startsAt, overridden, err := schedule.Date(context.Background(), KindCSAT, 2025, 0)
		if err != nil {
			t.Fatal(err)
		}
		if !overridden || !startsAt.Equal(announced) || startsAt.Location() != KST {
			t.Errorf("Date() = %s overridden=%t, want %s", startsAt, overridden, announced)
		}
	}
	if store.calls != 1 {
		t.Errorf("store called %d times, want 1 because of the cache", store.calls)
	}

	startsAt, overridden, err := schedule.Date(context.Background(), KindCSAT, 2026, 11)
	if err != nil {
		t.Fatal(err)
	}
	if overridden || !startsAt.Equal(CSATDate(2026)) {
		t.Errorf("Date(2026) = %s overridden=%t, want calendar rule", startsAt, overridden)
	}
}

func TestScheduleStoreFailureFallsBack(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	schedule := NewSchedule(DefaultConfig(), store)

	startsAt, overridden, err := schedule.Date(context.Background(), KindMock, 2025, 6)
	if err != nil {
		t.Fatal(err)
	}
	if overridden || !startsAt.Equal(MockExamDate(2025, time.June)) {
		t.Errorf("Date() = %s overridden=%t, want calendar rule", startsAt, overridden)
	}

	_, _, _ = schedule.Date(context.Background(), KindMock, 2025, 6)
	if store.calls != 2 {
		t.Errorf("failed lookups must not be cached, store called %d times", store.calls)
	}
}

func TestScheduleDateInvalid(t *testing.T) {
	schedule := NewSchedule(DefaultConfig(), nil)

	if _, _, err := schedule.Date(context.Background(), KindCSAT, 1900, 11); !errors.Is(err, ErrInvalidYear) {
		t.Errorf("Date(1900) error = %v, want ErrInvalidYear", err)
	}
	if _, _, err := schedule.Date(context.Background(), KindMock, 2025, 13); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("Date(month 13) error = %v, want ErrInvalidMonth", err)
	}
}

func TestScheduleNextCSAT(t *testing.T) {
	schedule := NewSchedule(DefaultConfig(), nil)

	before := time.Date(2025, time.November, 1, 0, 0, 0, 0, KST)
	counter, err := schedule.NextCSAT(context.Background(), before)
	if err != nil {
		t.Fatal(err)
	}
	if counter.Year != 2025 {
		t.Errorf("NextCSAT before the exam = %d, want 2025", counter.Year)
	}

	after := time.Date(2025, time.December, 1, 0, 0, 0, 0, KST)
	if counter, err = schedule.NextCSAT(context.Background(), after); err != nil {
		t.Fatal(err)
	}
	if counter.Year != 2026 || counter.Remaining.Finished {
		t.Errorf("NextCSAT after the exam = %+v, want a running 2026 counter", counter)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	cfg := DefaultConfig()
	cfg.MockMonths = []int{0}
	if err := cfg.Validate(); err == nil {
		t.Error("month 0 should be rejected")
	}

	cfg = DefaultConfig()
	cfg.CSATOffsets = []int{-1}
	if err := cfg.Validate(); err == nil {
		t.Error("negative offset should be rejected")
	}
}
