package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"ContentPipeline/internal/compose"
	"ContentPipeline/internal/domain"
)

func TestWatcherSeesNewDraft(t *testing.T) {
	t.Parallel()

	tickets := newFakeTickets()
	ctx := context.Background()
	if _, err := tickets.Create(ctx, domain.TitlePrefix+"Old", compose.Build("Old", "a", "b"), []string{domain.LabelDraft}); err != nil {
		t.Fatalf("create baseline: %v", err)
	}

	watcher := NewWatcher(tickets, 5*time.Millisecond, 20, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		time.Sleep(15 * time.Millisecond)
		_, _ = tickets.Create(ctx, domain.TitlePrefix+"New", compose.Build("New", "a", "b"), []string{domain.LabelDraft})
	}()

	ticket, err := watcher.WaitForNew(ctx)
	if err != nil {
		t.Fatalf("WaitForNew returned error: %v", err)
	}
	if ticket.Title != domain.TitlePrefix+"New" {
		t.Fatalf("watcher returned wrong ticket: %q", ticket.Title)
	}
	<-done
}

func TestWatcherGivesUpAfterBound(t *testing.T) {
	t.Parallel()

	watcher := NewWatcher(newFakeTickets(), time.Millisecond, 3, nil)

	_, err := watcher.WaitForNew(context.Background())
	if !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
}

func TestWaitForTicketFindsExistingDraft(t *testing.T) {
	t.Parallel()

	tickets := newFakeTickets()
	ctx := context.Background()
	created, err := tickets.Create(ctx, domain.TitlePrefix+"Fresh", compose.Build("Fresh", "a", "b"), []string{domain.LabelDraft})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The ticket predates the poll; confirmation must still find it.
	watcher := NewWatcher(tickets, time.Millisecond, 5, nil)
	ticket, err := watcher.WaitForTicket(ctx, created.Number)
	if err != nil {
		t.Fatalf("WaitForTicket returned error: %v", err)
	}
	if ticket.Number != created.Number {
		t.Fatalf("confirmed wrong ticket: %d", ticket.Number)
	}
}

func TestWaitForTicketGivesUpOnUnknownNumber(t *testing.T) {
	t.Parallel()

	watcher := NewWatcher(newFakeTickets(), time.Millisecond, 3, nil)
	_, err := watcher.WaitForTicket(context.Background(), 42)
	if !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
}

func TestWatcherHonorsContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	watcher := NewWatcher(newFakeTickets(), time.Hour, 5, nil)
	_, err := watcher.WaitForNew(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
