// Package ledger records publish-state transitions per ticket so the
// publish step runs at most once, even under concurrent triggers.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"ContentPipeline/internal/domain"
	"ContentPipeline/internal/ports"
)

// ErrAlreadyClaimed reports that another run holds or finished this ticket.
var ErrAlreadyClaimed = errors.New("ticket already claimed")

// ErrAlreadyPublished reports a ticket that went out once and never may again.
var ErrAlreadyPublished = errors.New("ticket already published")

// SQLiteLedger implements ports.PublishLedger on a local SQLite database.
type SQLiteLedger struct {
	db *sql.DB
}

var _ ports.PublishLedger = (*SQLiteLedger)(nil)

// Open opens or creates the ledger database.
func Open(path string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	ledger := &SQLiteLedger{db: db}
	if err := ledger.initSchema(); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return ledger, nil
}

// Close closes the database.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}

func (l *SQLiteLedger) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS publish_ledger (
		ticket INTEGER PRIMARY KEY,
		state TEXT NOT NULL,
		claim_token TEXT NOT NULL,
		article_url TEXT,
		post_id TEXT,
		failure TEXT,
		updated_at TIMESTAMP NOT NULL
	);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Claim takes exclusive ownership of the publish transition for one ticket.
// A fresh ticket is claimed by row insertion; the primary key turns a
// concurrent second claim into a constraint violation. Failed tickets may be
// re-claimed only when retry is set. Published tickets never re-claim.
func (l *SQLiteLedger) Claim(ctx context.Context, ticket int, retry bool) (string, error) {
	token := uuid.NewString()

	state, err := l.State(ctx, ticket)
	if err != nil {
		return "", err
	}

	switch state {
	case domain.StateDrafted:
		query, args, err := sq.Insert("publish_ledger").
			Columns("ticket", "state", "claim_token", "updated_at").
			Values(ticket, domain.StateClaimed, token, time.Now().UTC()).
			ToSql()
		if err != nil {
			return "", fmt.Errorf("build claim insert: %w", err)
		}
		if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
			// Constraint violation: somebody inserted between our read and write.
			return "", fmt.Errorf("%w: %v", ErrAlreadyClaimed, err)
		}
		return token, nil

	case domain.StateFailed:
		if !retry {
			return "", fmt.Errorf("%w: previous attempt failed, pass retry to re-run", ErrAlreadyClaimed)
		}
		query, args, err := sq.Update("publish_ledger").
			Set("state", domain.StateClaimed).
			Set("claim_token", token).
			Set("failure", nil).
			Set("updated_at", time.Now().UTC()).
			Where(sq.Eq{"ticket": ticket, "state": domain.StateFailed}).
			ToSql()
		if err != nil {
			return "", fmt.Errorf("build claim update: %w", err)
		}
		res, err := l.db.ExecContext(ctx, query, args...)
		if err != nil {
			return "", fmt.Errorf("re-claim ticket %d: %w", ticket, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return "", fmt.Errorf("re-claim ticket %d: %w", ticket, err)
		}
		if affected != 1 {
			return "", ErrAlreadyClaimed
		}
		return token, nil

	case domain.StatePublished:
		return "", ErrAlreadyPublished

	default:
		return "", ErrAlreadyClaimed
	}
}

// MarkPublished completes a claimed transition with the platform identifiers.
func (l *SQLiteLedger) MarkPublished(ctx context.Context, ticket int, token string, result domain.PublishResult) error {
	return l.finish(ctx, ticket, token, domain.StatePublished, map[string]any{
		"article_url": result.ArticleURL,
		"post_id":     result.PostID,
	})
}

// MarkFailed records a failed attempt; the ticket stays eligible for retry.
func (l *SQLiteLedger) MarkFailed(ctx context.Context, ticket int, token string, reason string) error {
	return l.finish(ctx, ticket, token, domain.StateFailed, map[string]any{
		"failure": reason,
	})
}

// State reports the ledger state for a ticket; unknown tickets are drafted.
func (l *SQLiteLedger) State(ctx context.Context, ticket int) (domain.PublishState, error) {
	query, args, err := sq.Select("state").
		From("publish_ledger").
		Where(sq.Eq{"ticket": ticket}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build state query: %w", err)
	}

	var state string
	err = l.db.QueryRowContext(ctx, query, args...).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StateDrafted, nil
	}
	if err != nil {
		return "", fmt.Errorf("query state of ticket %d: %w", ticket, err)
	}
	return domain.PublishState(state), nil
}

func (l *SQLiteLedger) finish(ctx context.Context, ticket int, token string, state domain.PublishState, extra map[string]any) error {
	update := sq.Update("publish_ledger").
		Set("state", state).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"ticket": ticket, "claim_token": token, "state": domain.StateClaimed})
	for column, value := range extra {
		update = update.Set(column, value)
	}

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build %s update: %w", state, err)
	}
	res, err := l.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark ticket %d %s: %w", ticket, state, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark ticket %d %s: %w", ticket, state, err)
	}
	if affected != 1 {
		return fmt.Errorf("mark ticket %d %s: claim token no longer owns the row", ticket, state)
	}
	return nil
}
