package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ContentPipeline/internal/compose"
	"ContentPipeline/internal/domain"
	"ContentPipeline/internal/ports"
)

// PublishDeps wires the adapters the publish workflow needs.
type PublishDeps struct {
	Tickets ports.TicketStore
	Blog    ports.BlogPublisher
	Social  ports.SocialPublisher
	History ports.HistoryStore
	Ledger  ports.PublishLedger
	Logger  *slog.Logger
	Now     func() time.Time
}

// PublishPipeline drives an approved ticket through the external publishes.
type PublishPipeline struct {
	tickets ports.TicketStore
	blog    ports.BlogPublisher
	social  ports.SocialPublisher
	history ports.HistoryStore
	ledger  ports.PublishLedger
	logger  *slog.Logger
	now     func() time.Time
}

// NewPublishPipeline constructs the publish workflow.
func NewPublishPipeline(deps PublishDeps) *PublishPipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &PublishPipeline{
		tickets: deps.Tickets,
		blog:    deps.Blog,
		social:  deps.Social,
		history: deps.History,
		ledger:  deps.Ledger,
		logger:  logger,
		now:     now,
	}
}

// Run publishes one approved ticket. The body is always re-fetched here, never
// trusted from an earlier read, since label and body writes are unordered. The
// ledger claim must succeed before either external API is touched, so a
// duplicate trigger aborts without publishing anything.
func (p *PublishPipeline) Run(ctx context.Context, number int, retry bool) error {
	ticket, err := p.tickets.Get(ctx, number)
	if err != nil {
		return fmt.Errorf("fetch ticket %d: %w", number, err)
	}
	if !ticket.HasLabel(domain.LabelPublish) {
		return fmt.Errorf("ticket %d is not approved for publishing", number)
	}
	topic := strings.TrimPrefix(ticket.Title, domain.TitlePrefix)

	token, err := p.ledger.Claim(ctx, number, retry)
	if err != nil {
		return fmt.Errorf("claim ticket %d: %w", number, err)
	}

	article, social, err := compose.Parse(ticket.Body)
	if err != nil {
		return p.fail(ctx, number, token, fmt.Errorf("parse ticket body: %w", err))
	}

	title, articleBody := compose.DeriveTitle(article)
	articleURL, err := p.blog.PublishArticle(ctx, title, articleBody)
	if err != nil {
		return p.fail(ctx, number, token, fmt.Errorf("publish article: %w", err))
	}
	p.logger.Info("article published", "ticket", number, "url", articleURL)

	postText := social + "\n\nRead the full article: " + articleURL
	postID, err := p.social.PublishPost(ctx, postText)
	if err != nil {
		return p.fail(ctx, number, token, fmt.Errorf("publish post: %w", err))
	}
	p.logger.Info("post published", "ticket", number, "id", postID)

	result := domain.PublishResult{ArticleURL: articleURL, PostID: postID}
	if err := p.ledger.MarkPublished(ctx, number, token, result); err != nil {
		return fmt.Errorf("record publish of ticket %d: %w", number, err)
	}

	// History is written strictly after both publishes succeeded; a topic is
	// never recorded as used when nothing actually went out.
	record := domain.HistoryRecord{Date: p.now().Format("2006-01-02"), Topic: topic}
	if err := p.history.Append(record); err != nil {
		return fmt.Errorf("append history for ticket %d: %w", number, err)
	}

	comment := fmt.Sprintf("Published.\n\nArticle: %s\nPost ID: %s", articleURL, postID)
	if err := p.tickets.Comment(ctx, number, comment); err != nil {
		return fmt.Errorf("comment on ticket %d: %w", number, err)
	}
	if err := p.tickets.Close(ctx, number); err != nil {
		return fmt.Errorf("close ticket %d: %w", number, err)
	}
	return nil
}

// fail records the failure in the ledger, surfaces it on the ticket, and
// leaves the ticket open so a human can inspect and retry.
func (p *PublishPipeline) fail(ctx context.Context, number int, token string, cause error) error {
	p.logger.Error("publish failed", "ticket", number, "error", cause)

	if err := p.ledger.MarkFailed(ctx, number, token, cause.Error()); err != nil {
		p.logger.Error("cannot record failure", "ticket", number, "error", err)
	}
	if err := p.tickets.Comment(ctx, number, fmt.Sprintf("Publish failed: %v", cause)); err != nil {
		p.logger.Error("cannot comment failure", "ticket", number, "error", err)
	}
	return cause
}
