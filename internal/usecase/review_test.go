package usecase

import (
	"context"
	"testing"

	"ContentPipeline/internal/compose"
	"ContentPipeline/internal/domain"
)

func TestReadForEditSplitsBody(t *testing.T) {
	t.Parallel()

	tickets := newFakeTickets()
	ctx := context.Background()
	body := compose.Build("Topic X", "# A\nrest", "short text")
	ticket, err := tickets.Create(ctx, domain.TitlePrefix+"Topic X", body, []string{domain.LabelDraft})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	review := NewReview(tickets)
	draft, err := review.ReadForEdit(ctx, ticket.Number)
	if err != nil {
		t.Fatalf("ReadForEdit returned error: %v", err)
	}
	if draft.Topic != "Topic X" {
		t.Fatalf("topic = %q", draft.Topic)
	}
	if draft.Article != "# A\nrest" || draft.Social != "short text" {
		t.Fatalf("unexpected split: %+v", draft)
	}
}

func TestReadForEditLegacyBody(t *testing.T) {
	t.Parallel()

	tickets := newFakeTickets()
	ctx := context.Background()
	ticket, err := tickets.Create(ctx, domain.TitlePrefix+"Old", "### Draft: Old\n\nonly a social text", []string{domain.LabelDraft})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	draft, err := NewReview(tickets).ReadForEdit(ctx, ticket.Number)
	if err != nil {
		t.Fatalf("ReadForEdit returned error: %v", err)
	}
	if draft.Article != "" {
		t.Fatalf("legacy body must yield empty article, got %q", draft.Article)
	}
	if draft.Social != "only a social text" {
		t.Fatalf("unexpected social text: %q", draft.Social)
	}
}

func TestApproveWritesBodyThenLabel(t *testing.T) {
	t.Parallel()

	tickets := newFakeTickets()
	ctx := context.Background()
	ticket, err := tickets.Create(ctx, domain.TitlePrefix+"T", compose.Build("T", "a", "b"), []string{domain.LabelDraft})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	review := NewReview(tickets)
	edited := domain.Draft{Topic: "T", Article: "a v2", Social: "b v2"}
	if err := review.Approve(ctx, ticket.Number, edited); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}

	got, _ := tickets.Get(ctx, ticket.Number)
	article, social, err := compose.Parse(got.Body)
	if err != nil {
		t.Fatalf("approved body unparseable: %v", err)
	}
	if article != "a v2" || social != "b v2" {
		t.Fatalf("edits lost on approve: %q / %q", article, social)
	}
	if !got.HasLabel(domain.LabelPublish) {
		t.Fatal("approve must add the publish label")
	}
	if got.State != "open" {
		t.Fatalf("approve must leave the ticket open, state = %q", got.State)
	}
}

func TestDiscardClosesWithoutLabelChange(t *testing.T) {
	t.Parallel()

	tickets := newFakeTickets()
	ctx := context.Background()
	ticket, err := tickets.Create(ctx, domain.TitlePrefix+"T", compose.Build("T", "a", "b"), []string{domain.LabelDraft})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := NewReview(tickets).Discard(ctx, ticket.Number); err != nil {
		t.Fatalf("Discard returned error: %v", err)
	}

	got, _ := tickets.Get(ctx, ticket.Number)
	if got.State != "closed" {
		t.Fatalf("state = %q, want closed", got.State)
	}
	if got.HasLabel(domain.LabelPublish) {
		t.Fatal("discard must not add the publish label")
	}
}
