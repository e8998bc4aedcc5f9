package prompt

import (
	"strings"
	"testing"

	"ContentPipeline/internal/config"
)

func testTemplates() *Templates {
	return New(config.PromptConfig{
		Audience:       "Senior Software Engineers",
		Focus:          "Backend Engineering",
		SocialMaxChars: 1200,
		MaxEmoji:       3,
		BannedTerms:    []string{"game changer"},
	})
}

func TestTopicEmbedsExclusions(t *testing.T) {
	t.Parallel()

	p := testTemplates().Topic([]string{"Database Sharding", "Backpressure"})
	if !strings.Contains(p, "Database Sharding; Backpressure") {
		t.Fatalf("past topics missing from prompt: %q", p)
	}
	if !strings.Contains(p, "Output ONLY the topic title") {
		t.Fatalf("output instruction missing: %q", p)
	}
}

func TestTopicWithEmptyHistory(t *testing.T) {
	t.Parallel()

	p := testTemplates().Topic(nil)
	if strings.Contains(p, "past topics") {
		t.Fatalf("empty history must not add an exclusion line: %q", p)
	}
}

func TestSocialCarriesConstraints(t *testing.T) {
	t.Parallel()

	p := testTemplates().Social("Sliding Window Pattern")
	for _, want := range []string{
		`"Sliding Window Pattern"`,
		"under 1200 characters",
		"At most 3 emojis",
		`"game changer"`,
		"Senior Software Engineers",
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p)
		}
	}
}

func TestArticleUsesSocialDraftAsContext(t *testing.T) {
	t.Parallel()

	p := testTemplates().Article("Backpressure", "the short post text")
	if !strings.Contains(p, "the short post text") {
		t.Fatalf("social draft missing from article prompt: %q", p)
	}
	if !strings.Contains(p, "decision framework") {
		t.Fatalf("section skeleton missing: %q", p)
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  topic  \n", "topic"},
		{"fenced", "```markdown\n# Title\nbody\n```", "# Title\nbody"},
		{"fence no info string", "```\ntext\n```", "text"},
		{"inner fences kept", "# T\n```go\ncode\n```\ntail", "# T\n```go\ncode\n```\ntail"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Sanitize(tc.in); got != tc.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
