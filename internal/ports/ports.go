package ports

import (
	"context"

	"ContentPipeline/internal/domain"
)

// ModelClient submits a single user-role prompt to a generative model and
// returns the completion text.
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// TicketStore persists review tickets in the issue tracker.
type TicketStore interface {
	Create(ctx context.Context, title, body string, labels []string) (domain.Ticket, error)
	Get(ctx context.Context, number int) (domain.Ticket, error)
	ListOpenDrafts(ctx context.Context) ([]domain.Ticket, error)
	UpdateBody(ctx context.Context, number int, body string) error
	AddLabel(ctx context.Context, number int, label string) error
	Comment(ctx context.Context, number int, text string) error
	Close(ctx context.Context, number int) error
}

// BlogPublisher pushes a finished article to the blogging platform.
type BlogPublisher interface {
	PublishArticle(ctx context.Context, title, markdown string) (url string, err error)
}

// SocialPublisher pushes the short-form text to the network API.
type SocialPublisher interface {
	PublishPost(ctx context.Context, text string) (id string, err error)
}

// Notifier tells the reviewer a draft is waiting.
type Notifier interface {
	NotifyDraft(ctx context.Context, topic, reviewURL string) error
}

// HistoryStore persists the published-topic archive.
type HistoryStore interface {
	Load() ([]domain.HistoryRecord, error)
	Append(record domain.HistoryRecord) error
	Wipe() error
}

// PublishLedger guards publish transitions so a ticket is published at most once.
type PublishLedger interface {
	Claim(ctx context.Context, ticket int, retry bool) (token string, err error)
	MarkPublished(ctx context.Context, ticket int, token string, result domain.PublishResult) error
	MarkFailed(ctx context.Context, ticket int, token string, reason string) error
	State(ctx context.Context, ticket int) (domain.PublishState, error)
}
