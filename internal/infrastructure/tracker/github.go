// Package tracker stores review tickets as GitHub issues.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ContentPipeline/internal/config"
	"ContentPipeline/internal/domain"
	"ContentPipeline/internal/ports"
)

// GitHubStore implements ports.TicketStore against the GitHub issues API.
type GitHubStore struct {
	baseURL    string
	repository string // owner/name
	token      string
	httpClient *http.Client
}

var _ ports.TicketStore = (*GitHubStore)(nil)

// NewGitHubStore wires repository identity and access token.
func NewGitHubStore(cfg config.TrackerConfig) *GitHubStore {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = "https://api.github.com"
	}
	return &GitHubStore{
		baseURL:    base,
		repository: cfg.Repository,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type issuePayload struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	State   string `json:"state"`
	HTMLURL string `json:"html_url"`
	Labels  []struct {
		Name string `json:"name"`
	} `json:"labels"`
}

func (p issuePayload) ticket() domain.Ticket {
	t := domain.Ticket{
		Number: p.Number,
		Title:  p.Title,
		Body:   p.Body,
		State:  p.State,
		URL:    p.HTMLURL,
	}
	for _, l := range p.Labels {
		t.Labels = append(t.Labels, l.Name)
	}
	return t
}

// Create opens a new issue with the given title, body, and labels.
func (s *GitHubStore) Create(ctx context.Context, title, body string, labels []string) (domain.Ticket, error) {
	payload := map[string]any{
		"title":  title,
		"body":   body,
		"labels": labels,
	}

	var issue issuePayload
	err := s.do(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/issues", s.repository), payload, &issue)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("create issue: %w", err)
	}
	return issue.ticket(), nil
}

// Get fetches a single issue by number.
func (s *GitHubStore) Get(ctx context.Context, number int) (domain.Ticket, error) {
	var issue issuePayload
	err := s.do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/issues/%d", s.repository, number), nil, &issue)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("get issue %d: %w", number, err)
	}
	return issue.ticket(), nil
}

// ListOpenDrafts returns all open issues still labeled draft.
func (s *GitHubStore) ListOpenDrafts(ctx context.Context) ([]domain.Ticket, error) {
	query := url.Values{}
	query.Set("labels", domain.LabelDraft)
	query.Set("state", "open")

	var issues []issuePayload
	err := s.do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/issues?%s", s.repository, query.Encode()), nil, &issues)
	if err != nil {
		return nil, fmt.Errorf("list open drafts: %w", err)
	}

	tickets := make([]domain.Ticket, 0, len(issues))
	for _, issue := range issues {
		tickets = append(tickets, issue.ticket())
	}
	return tickets, nil
}

// UpdateBody overwrites the issue body. Full overwrite: the last writer wins.
func (s *GitHubStore) UpdateBody(ctx context.Context, number int, body string) error {
	payload := map[string]any{"body": body}
	if err := s.do(ctx, http.MethodPatch, fmt.Sprintf("/repos/%s/issues/%d", s.repository, number), payload, nil); err != nil {
		return fmt.Errorf("update issue %d body: %w", number, err)
	}
	return nil
}

// AddLabel attaches one label to the issue, keeping existing labels.
func (s *GitHubStore) AddLabel(ctx context.Context, number int, label string) error {
	payload := map[string]any{"labels": []string{label}}
	if err := s.do(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/issues/%d/labels", s.repository, number), payload, nil); err != nil {
		return fmt.Errorf("add label %q to issue %d: %w", label, number, err)
	}
	return nil
}

// Comment appends a comment to the issue.
func (s *GitHubStore) Comment(ctx context.Context, number int, text string) error {
	payload := map[string]any{"body": text}
	if err := s.do(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/issues/%d/comments", s.repository, number), payload, nil); err != nil {
		return fmt.Errorf("comment on issue %d: %w", number, err)
	}
	return nil
}

// Close sets the issue state to closed. The issue stays in the tracker.
func (s *GitHubStore) Close(ctx context.Context, number int) error {
	payload := map[string]any{"state": "closed"}
	if err := s.do(ctx, http.MethodPatch, fmt.Sprintf("/repos/%s/issues/%d", s.repository, number), payload, nil); err != nil {
		return fmt.Errorf("close issue %d: %w", number, err)
	}
	return nil
}

func (s *GitHubStore) do(ctx context.Context, method, path string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("tracker error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
