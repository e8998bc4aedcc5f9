package domain

// Draft is the pair of artifacts generated for a single topic.
type Draft struct {
	Topic   string
	Article string // long-form Markdown document
	Social  string // short-form post text
}

// Ticket mirrors the review issue as the pipeline sees it.
type Ticket struct {
	Number int
	Title  string
	Body   string
	Labels []string
	State  string
	URL    string
}

// Ticket label values with pipeline meaning.
const (
	LabelDraft   = "draft"
	LabelPublish = "publish"
)

// TitlePrefix prefixes every review-ticket title.
const TitlePrefix = "Draft: "

// HasLabel reports whether the ticket carries the given label.
func (t Ticket) HasLabel(label string) bool {
	for _, l := range t.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// HistoryRecord marks one published topic.
type HistoryRecord struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Topic string `json:"topic"`
}

// PublishState enumerates ledger milestones for one ticket.
type PublishState string

const (
	StateDrafted   PublishState = "drafted"
	StateClaimed   PublishState = "claimed"
	StatePublished PublishState = "published"
	StateFailed    PublishState = "failed"
)

// PublishResult carries the identifiers returned by the external platforms.
type PublishResult struct {
	ArticleURL string
	PostID     string
}
