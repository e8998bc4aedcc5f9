package usecase

import (
	"context"
	"fmt"
	"strings"

	"ContentPipeline/internal/compose"
	"ContentPipeline/internal/domain"
	"ContentPipeline/internal/ports"
)

// Review exposes the edit/approve/discard operations the review surface
// drives against a ticket in flight.
type Review struct {
	tickets ports.TicketStore
}

// NewReview wraps a ticket store.
func NewReview(tickets ports.TicketStore) *Review {
	return &Review{tickets: tickets}
}

// ReadForEdit fetches the ticket and splits its body back into the two
// artifacts. Pre-marker bodies parse as a lone social text.
func (r *Review) ReadForEdit(ctx context.Context, number int) (domain.Draft, error) {
	ticket, err := r.tickets.Get(ctx, number)
	if err != nil {
		return domain.Draft{}, err
	}

	article, social := compose.ParseLenient(ticket.Body)
	return domain.Draft{
		Topic:   strings.TrimPrefix(ticket.Title, domain.TitlePrefix),
		Article: article,
		Social:  social,
	}, nil
}

// SaveEdits reassembles the composite body from the edited artifacts and
// overwrites the ticket body. Last write wins.
func (r *Review) SaveEdits(ctx context.Context, number int, draft domain.Draft) error {
	body := compose.Build(draft.Topic, draft.Article, draft.Social)
	if err := r.tickets.UpdateBody(ctx, number, body); err != nil {
		return fmt.Errorf("save edits: %w", err)
	}
	return nil
}

// Approve writes back any last-second edits and adds the publish label. The
// label is the trigger the publisher acts on; the ticket stays open.
func (r *Review) Approve(ctx context.Context, number int, draft domain.Draft) error {
	if err := r.SaveEdits(ctx, number, draft); err != nil {
		return err
	}
	if err := r.tickets.AddLabel(ctx, number, domain.LabelPublish); err != nil {
		return fmt.Errorf("approve ticket %d: %w", number, err)
	}
	return nil
}

// Discard closes the ticket without publishing. It stays in the tracker, inert.
func (r *Review) Discard(ctx context.Context, number int) error {
	if err := r.tickets.Close(ctx, number); err != nil {
		return fmt.Errorf("discard ticket %d: %w", number, err)
	}
	return nil
}
