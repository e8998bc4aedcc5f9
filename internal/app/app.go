package app

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"ContentPipeline/internal/config"
	"ContentPipeline/internal/domain"
	"ContentPipeline/internal/infrastructure/blog"
	"ContentPipeline/internal/infrastructure/history"
	"ContentPipeline/internal/infrastructure/ledger"
	"ContentPipeline/internal/infrastructure/llm"
	"ContentPipeline/internal/infrastructure/mail"
	"ContentPipeline/internal/infrastructure/social"
	"ContentPipeline/internal/infrastructure/tracker"
	"ContentPipeline/internal/logging"
	"ContentPipeline/internal/prompt"
	"ContentPipeline/internal/usecase"
)

// Application wires configuration to adapters and workflow use cases.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	tickets *tracker.GitHubStore
	archive *history.JSONStore
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	return &Application{
		cfg:     cfg,
		logger:  baseLogger,
		tickets: tracker.NewGitHubStore(cfg.Tracker),
		archive: history.NewJSONStore(cfg.History.Path),
	}
}

// Draft runs one generation cycle and returns the created review ticket.
func (a *Application) Draft(ctx context.Context, override string) (domain.Ticket, error) {
	model, err := llm.NewClient(a.cfg.Model)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("build model client: %w", err)
	}

	pipeline := usecase.NewDraftPipeline(usecase.DraftDeps{
		Model:     model,
		Tickets:   a.tickets,
		Notifier:  mail.NewSMTPNotifier(a.cfg.Mail),
		History:   a.archive,
		Templates: prompt.New(a.cfg.Prompts),
		Logger:    a.logger.With("component", "draft"),
	})
	return pipeline.Run(ctx, override)
}

// Publish pushes an approved ticket to both platforms.
func (a *Application) Publish(ctx context.Context, number int, retry bool) error {
	guard, err := ledger.Open(a.cfg.Ledger.Path)
	if err != nil {
		return fmt.Errorf("open publish ledger: %w", err)
	}
	defer guard.Close()

	pipeline := usecase.NewPublishPipeline(usecase.PublishDeps{
		Tickets: a.tickets,
		Blog:    blog.NewHashnodeClient(a.cfg.Blog),
		Social:  social.NewLinkedInClient(a.cfg.Social),
		History: a.archive,
		Ledger:  guard,
		Logger:  a.logger.With("component", "publish"),
	})
	return pipeline.Run(ctx, number, retry)
}

// Watch polls the tracker until a new open draft appears.
func (a *Application) Watch(ctx context.Context) (domain.Ticket, error) {
	watcher := usecase.NewWatcher(a.tickets, a.cfg.Watch.Interval(), a.cfg.Watch.Attempts,
		a.logger.With("component", "watch"))
	return watcher.WaitForNew(ctx)
}

// Confirm polls the tracker until the given ticket is visible in the
// open-draft list.
func (a *Application) Confirm(ctx context.Context, number int) (domain.Ticket, error) {
	watcher := usecase.NewWatcher(a.tickets, a.cfg.Watch.Interval(), a.cfg.Watch.Attempts,
		a.logger.With("component", "watch"))
	return watcher.WaitForTicket(ctx, number)
}

// Approve marks an open draft for publishing. The body is written back
// unchanged; editing happens on the tracker itself.
func (a *Application) Approve(ctx context.Context, number int) error {
	review := usecase.NewReview(a.tickets)
	draft, err := review.ReadForEdit(ctx, number)
	if err != nil {
		return err
	}
	return review.Approve(ctx, number, draft)
}

// Discard closes a draft ticket without publishing it.
func (a *Application) Discard(ctx context.Context, number int) error {
	return usecase.NewReview(a.tickets).Discard(ctx, number)
}

// History returns the archive, date-sorted for display.
func (a *Application) History() ([]domain.HistoryRecord, error) {
	records, err := a.archive.Load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})
	return records, nil
}

// WipeHistory deletes the whole archive document.
func (a *Application) WipeHistory() error {
	return a.archive.Wipe()
}
