package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/disgo/webhook"
	"github.com/robfig/cron/v3"

	"github.com/topi314/csat-counter/internal/tsync"
	"github.com/topi314/csat-counter/server/countdown"
)

type sendFunc func(ctx context.Context, content string) error

// NewNotifier creates a Notifier posting to every webhook in cfg.WebhookURLs
// on cfg.Schedule, read as a cron spec in KST.
func NewNotifier(cfg NotificationsConfig, schedule *countdown.Schedule) (*Notifier, error) {
	senders := make([]sendFunc, 0, len(cfg.WebhookURLs))
	closers := make([]func(ctx context.Context), 0, len(cfg.WebhookURLs))
	for i, webhookURL := range cfg.WebhookURLs {
		client, err := webhook.NewWithURL(webhookURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create webhook client %d: %w", i, err)
		}
		senders = append(senders, func(ctx context.Context, content string) error {
			_, err := client.CreateContent(content, rest.WithCtx(ctx))
			return err
		})
		closers = append(closers, client.Close)
	}

	n := newNotifier(schedule, senders)
	n.closers = closers

	if _, err := n.cron.AddFunc(cfg.Schedule, n.notify); err != nil {
		return nil, fmt.Errorf("failed to parse notification schedule %q: %w", cfg.Schedule, err)
	}

	return n, nil
}

func newNotifier(schedule *countdown.Schedule, senders []sendFunc) *Notifier {
	return &Notifier{
		cron:     cron.New(cron.WithLocation(countdown.KST)),
		schedule: schedule,
		senders:  senders,
		now:      time.Now,
	}
}

// Notifier posts the daily CSAT D-day message to Discord webhooks.
type Notifier struct {
	cron     *cron.Cron
	schedule *countdown.Schedule
	senders  []sendFunc
	closers  []func(ctx context.Context)
	now      func() time.Time
}

func (n *Notifier) Start() {
	n.cron.Start()
}

// Stop stops the schedule and waits for a running notification to finish.
func (n *Notifier) Stop(ctx context.Context) {
	select {
	case <-n.cron.Stop().Done():
	case <-ctx.Done():
		slog.Warn("Timed out waiting for a running notification")
	}

	for _, closeClient := range n.closers {
		closeClient(ctx)
	}
}

func (n *Notifier) notify() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := n.Send(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to send D-day notification", slog.Any("err", err))
	}
}

// Send posts the current message to every webhook at once. All failures are
// joined into the returned error.
func (n *Notifier) Send(ctx context.Context) error {
	counter, err := n.schedule.NextCSAT(ctx, n.now())
	if err != nil {
		return fmt.Errorf("failed to get next csat: %w", err)
	}
	content := notificationContent(counter)

	eg, egCtx := tsync.ErrorGroupWithContext(ctx)
	for i, send := range n.senders {
		eg.Go(func() error {
			if err := send(egCtx, content); err != nil {
				return fmt.Errorf("webhook %d: %w", i, err)
			}
			return nil
		})
	}

	return eg.Wait()
}

func notificationContent(counter countdown.Counter) string {
	day := fmt.Sprintf("D-%d", counter.Remaining.Days)
	if counter.Remaining.Days == 0 {
		day = "D-DAY"
	}

	return fmt.Sprintf("**%s** `%s`\n%s\n%s",
		counter.Title,
		day,
		discord.NewTimestamp(discord.TimestampStyleShortDateTime, counter.StartsAt).String(),
		countdown.RandomQuote(),
	)
}
