package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ContentPipeline/internal/domain"
)

var errTransport = errors.New("upstream transport failure")

// fakeModel replays queued responses and records every prompt it saw.
type fakeModel struct {
	responses []string
	prompts   []string
	err       error
}

func (m *fakeModel) Complete(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", errors.New("fake model: no responses queued")
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

// fakeTickets is an in-memory ticket store.
type fakeTickets struct {
	mu       sync.Mutex
	next     int
	tickets  map[int]domain.Ticket
	comments map[int][]string
}

func newFakeTickets() *fakeTickets {
	return &fakeTickets{next: 1, tickets: map[int]domain.Ticket{}, comments: map[int][]string{}}
}

func (f *fakeTickets) Create(_ context.Context, title, body string, labels []string) (domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := domain.Ticket{
		Number: f.next,
		Title:  title,
		Body:   body,
		Labels: append([]string(nil), labels...),
		State:  "open",
		URL:    fmt.Sprintf("https://tracker.example/issues/%d", f.next),
	}
	f.tickets[f.next] = t
	f.next++
	return t, nil
}

func (f *fakeTickets) Get(_ context.Context, number int) (domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[number]
	if !ok {
		return domain.Ticket{}, fmt.Errorf("ticket %d not found", number)
	}
	return t, nil
}

func (f *fakeTickets) ListOpenDrafts(_ context.Context) ([]domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var open []domain.Ticket
	for _, t := range f.tickets {
		if t.State == "open" && t.HasLabel(domain.LabelDraft) {
			open = append(open, t)
		}
	}
	return open, nil
}

func (f *fakeTickets) UpdateBody(_ context.Context, number int, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.tickets[number]
	t.Body = body
	f.tickets[number] = t
	return nil
}

func (f *fakeTickets) AddLabel(_ context.Context, number int, label string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.tickets[number]
	if !t.HasLabel(label) {
		t.Labels = append(t.Labels, label)
	}
	f.tickets[number] = t
	return nil
}

func (f *fakeTickets) Comment(_ context.Context, number int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments[number] = append(f.comments[number], text)
	return nil
}

func (f *fakeTickets) Close(_ context.Context, number int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.tickets[number]
	t.State = "closed"
	f.tickets[number] = t
	return nil
}

// fakeBlog records the submitted article.
type fakeBlog struct {
	url      string
	err      error
	calls    int
	gotTitle string
	gotBody  string
}

func (b *fakeBlog) PublishArticle(_ context.Context, title, markdown string) (string, error) {
	b.calls++
	b.gotTitle = title
	b.gotBody = markdown
	if b.err != nil {
		return "", b.err
	}
	return b.url, nil
}

// fakeSocial records the submitted post text.
type fakeSocial struct {
	id      string
	err     error
	calls   int
	gotText string
}

func (s *fakeSocial) PublishPost(_ context.Context, text string) (string, error) {
	s.calls++
	s.gotText = text
	if s.err != nil {
		return "", s.err
	}
	return s.id, nil
}

// memHistory is an in-memory history store.
type memHistory struct {
	records []domain.HistoryRecord
	loadErr error
}

func (h *memHistory) Load() ([]domain.HistoryRecord, error) {
	if h.loadErr != nil {
		return nil, h.loadErr
	}
	return append([]domain.HistoryRecord(nil), h.records...), nil
}

func (h *memHistory) Append(record domain.HistoryRecord) error {
	h.records = append(h.records, record)
	return nil
}

func (h *memHistory) Wipe() error {
	h.records = nil
	return nil
}

// memLedger mimics the claim guard in memory.
type memLedger struct {
	states map[int]domain.PublishState
	tokens map[int]string
	seq    int
}

func newMemLedger() *memLedger {
	return &memLedger{states: map[int]domain.PublishState{}, tokens: map[int]string{}}
}

func (l *memLedger) Claim(_ context.Context, ticket int, retry bool) (string, error) {
	state := l.states[ticket]
	switch state {
	case "", domain.StateDrafted:
	case domain.StateFailed:
		if !retry {
			return "", errors.New("ticket already claimed")
		}
	case domain.StatePublished:
		return "", errors.New("ticket already published")
	default:
		return "", errors.New("ticket already claimed")
	}
	l.seq++
	token := fmt.Sprintf("token-%d", l.seq)
	l.states[ticket] = domain.StateClaimed
	l.tokens[ticket] = token
	return token, nil
}

func (l *memLedger) MarkPublished(_ context.Context, ticket int, token string, _ domain.PublishResult) error {
	if l.tokens[ticket] != token {
		return errors.New("stale claim token")
	}
	l.states[ticket] = domain.StatePublished
	return nil
}

func (l *memLedger) MarkFailed(_ context.Context, ticket int, token string, _ string) error {
	if l.tokens[ticket] != token {
		return errors.New("stale claim token")
	}
	l.states[ticket] = domain.StateFailed
	return nil
}

func (l *memLedger) State(_ context.Context, ticket int) (domain.PublishState, error) {
	if s, ok := l.states[ticket]; ok {
		return s, nil
	}
	return domain.StateDrafted, nil
}

// fakeNotifier records the last notification.
type fakeNotifier struct {
	topic string
	url   string
	calls int
	err   error
}

func (n *fakeNotifier) NotifyDraft(_ context.Context, topic, reviewURL string) error {
	n.calls++
	n.topic = topic
	n.url = reviewURL
	return n.err
}
