package server

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/topi314/csat-counter/server/countdown"
)

func TestNotifierSend(t *testing.T) {
	var (
		mu   sync.Mutex
		sent []string
	)
	record := func(_ context.Context, content string) error {
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, content)
		return nil
	}

	n := newNotifier(countdown.NewSchedule(countdown.DefaultConfig(), nil), []sendFunc{record, record})
	n.now = func() time.Time {
		return countdown.CSATDate(2025).Add(-10 * 24 * time.Hour)
	}

	if err := n.Send(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sent))
	}
	for _, content := range sent {
		if !strings.Contains(content, "2026학년도 대학수학능력시험까지") {
			t.Errorf("missing title in %q", content)
		}
		if !strings.Contains(content, "`D-10`") {
			t.Errorf("missing day count in %q", content)
		}
		if !strings.Contains(content, "<t:") {
			t.Errorf("missing discord timestamp in %q", content)
		}
	}
}

func TestNotifierSendJoinsErrors(t *testing.T) {
	errDown := errors.New("discord is down")
	calls := 0
	var mu sync.Mutex

	n := newNotifier(countdown.NewSchedule(countdown.DefaultConfig(), nil), []sendFunc{
		func(context.Context, string) error { return errDown },
		func(context.Context, string) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			return nil
		},
	})

	err := n.Send(context.Background())
	if !errors.Is(err, errDown) {
		t.Errorf("Send() = %v, want %v", err, errDown)
	}
	if calls != 1 {
		t.Errorf("working webhook called %d times, want 1", calls)
	}
}

func TestNotificationContentDDay(t *testing.T) {
	counter := countdown.Counter{
		Title:     "2026학년도 대학수학능력시험까지",
		StartsAt:  countdown.CSATDate(2025),
		Remaining: countdown.Remaining{Hours: 3},
	}
	if content := notificationContent(counter); !strings.Contains(content, "`D-DAY`") {
		t.Errorf("notificationContent() = %q, want D-DAY", content)
	}
}

func TestNewNotifierRejectsBadSchedule(t *testing.T) {
	_, err := NewNotifier(NotificationsConfig{Schedule: "every day"}, countdown.NewSchedule(countdown.DefaultConfig(), nil))
	if err == nil {
		t.Error("expected an invalid cron spec to fail")
	}
}
