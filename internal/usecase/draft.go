package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ContentPipeline/internal/compose"
	"ContentPipeline/internal/domain"
	"ContentPipeline/internal/ports"
	"ContentPipeline/internal/prompt"
)

// DraftDeps wires the adapters the draft workflow needs.
type DraftDeps struct {
	Model     ports.ModelClient
	Tickets   ports.TicketStore
	Notifier  ports.Notifier
	History   ports.HistoryStore
	Templates *prompt.Templates
	Logger    *slog.Logger
}

// DraftPipeline selects a topic, generates both artifacts, files the review
// ticket, and notifies the reviewer.
type DraftPipeline struct {
	model     ports.ModelClient
	tickets   ports.TicketStore
	notifier  ports.Notifier
	history   ports.HistoryStore
	templates *prompt.Templates
	logger    *slog.Logger
}

// NewDraftPipeline constructs the draft workflow.
func NewDraftPipeline(deps DraftDeps) *DraftPipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DraftPipeline{
		model:     deps.Model,
		tickets:   deps.Tickets,
		notifier:  deps.Notifier,
		history:   deps.History,
		templates: deps.Templates,
		logger:    logger,
	}
}

// Run executes one draft cycle. A non-empty override skips topic selection
// entirely and is used verbatim.
func (p *DraftPipeline) Run(ctx context.Context, override string) (domain.Ticket, error) {
	topic, err := p.selectTopic(ctx, override)
	if err != nil {
		return domain.Ticket{}, err
	}
	p.logger.Info("topic selected", "topic", topic)

	raw, err := p.model.Complete(ctx, p.templates.Social(topic))
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("generate social text: %w", err)
	}
	social := prompt.Sanitize(raw)
	if social == "" {
		return domain.Ticket{}, fmt.Errorf("model returned an empty social text")
	}

	raw, err = p.model.Complete(ctx, p.templates.Article(topic, social))
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("generate article: %w", err)
	}
	article := prompt.Sanitize(raw)
	if article == "" {
		return domain.Ticket{}, fmt.Errorf("model returned an empty article")
	}

	for _, finding := range compose.LintArticle(article) {
		p.logger.Warn("article structure", "finding", finding)
	}

	body := compose.Build(topic, article, social)
	ticket, err := p.tickets.Create(ctx, domain.TitlePrefix+topic, body, []string{domain.LabelDraft})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("create review ticket: %w", err)
	}
	p.logger.Info("review ticket created", "ticket", ticket.Number, "url", ticket.URL)

	if err := p.notifier.NotifyDraft(ctx, topic, ticket.URL); err != nil {
		return domain.Ticket{}, fmt.Errorf("notify reviewer: %w", err)
	}
	return ticket, nil
}

// selectTopic honors the caller override, otherwise asks the model for a
// topic that avoids the published archive. Novelty is requested, not checked.
func (p *DraftPipeline) selectTopic(ctx context.Context, override string) (string, error) {
	if topic := strings.TrimSpace(override); topic != "" {
		return topic, nil
	}

	records, err := p.history.Load()
	if err != nil {
		return "", fmt.Errorf("load topic history: %w", err)
	}
	past := make([]string, 0, len(records))
	for _, r := range records {
		past = append(past, r.Topic)
	}

	raw, err := p.model.Complete(ctx, p.templates.Topic(past))
	if err != nil {
		return "", fmt.Errorf("select topic: %w", err)
	}
	topic := prompt.Sanitize(raw)
	if topic == "" {
		return "", fmt.Errorf("model returned an empty topic")
	}
	return topic, nil
}
