package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ContentPipeline/internal/domain"
	"ContentPipeline/internal/ports"
)

// ErrNoDraft reports that the poll bound ran out before a new draft appeared.
var ErrNoDraft = errors.New("no new draft appeared within the poll bound")

// Watcher polls the open-draft list after a generation trigger. It is a
// coarse presence check on the ticket store, not a completion signal from
// the generation run itself.
type Watcher struct {
	tickets  ports.TicketStore
	interval time.Duration
	attempts int
	logger   *slog.Logger
}

// NewWatcher bounds the poll by interval and attempt count.
func NewWatcher(tickets ports.TicketStore, interval time.Duration, attempts int, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{tickets: tickets, interval: interval, attempts: attempts, logger: logger}
}

// WaitForNew polls until an open draft ticket appears that was not present
// at the start, then returns it. Exhausting the bound yields ErrNoDraft.
func (w *Watcher) WaitForNew(ctx context.Context) (domain.Ticket, error) {
	baseline := map[int]bool{}
	if existing, err := w.tickets.ListOpenDrafts(ctx); err == nil {
		for _, t := range existing {
			baseline[t.Number] = true
		}
	} else {
		w.logger.Warn("cannot read baseline drafts", "error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for attempt := 1; attempt <= w.attempts; attempt++ {
		select {
		case <-ctx.Done():
			return domain.Ticket{}, ctx.Err()
		case <-ticker.C:
		}

		drafts, err := w.tickets.ListOpenDrafts(ctx)
		if err != nil {
			w.logger.Warn("poll failed", "attempt", attempt, "error", err)
			continue
		}
		for _, t := range drafts {
			if !baseline[t.Number] {
				return t, nil
			}
		}
		w.logger.Debug("no new draft yet", "attempt", attempt)
	}

	w.logger.Warn("giving up waiting for a draft", "attempts", w.attempts)
	return domain.Ticket{}, ErrNoDraft
}

// WaitForTicket polls until the given ticket number shows up in the
// open-draft list. Unlike WaitForNew it carries no baseline, so it confirms
// a ticket that already exists when the poll starts.
func (w *Watcher) WaitForTicket(ctx context.Context, number int) (domain.Ticket, error) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for attempt := 1; attempt <= w.attempts; attempt++ {
		drafts, err := w.tickets.ListOpenDrafts(ctx)
		if err != nil {
			w.logger.Warn("poll failed", "attempt", attempt, "error", err)
		}
		for _, t := range drafts {
			if t.Number == number {
				return t, nil
			}
		}

		select {
		case <-ctx.Done():
			return domain.Ticket{}, ctx.Err()
		case <-ticker.C:
		}
	}

	w.logger.Warn("giving up waiting for ticket", "ticket", number, "attempts", w.attempts)
	return domain.Ticket{}, ErrNoDraft
}
