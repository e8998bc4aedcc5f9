package compose

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildParseRoundTrip(t *testing.T) {
	t.Parallel()

	article := "# Sliding Windows\n\nA fixed-size view over a stream."
	social := "Sliding windows beat full rescans.\n\nWhat do you reach for?"

	body := Build("Sliding Window Pattern", article, social)

	gotArticle, gotSocial, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if gotArticle != article {
		t.Fatalf("article round-trip mismatch:\n%q\nwant\n%q", gotArticle, article)
	}
	if gotSocial != social {
		t.Fatalf("social round-trip mismatch:\n%q\nwant\n%q", gotSocial, social)
	}
}

func TestBuildNamesTopic(t *testing.T) {
	t.Parallel()

	body := Build("Backpressure", "a", "b")
	if !strings.HasPrefix(body, IntroPrefix+"Backpressure\n") {
		t.Fatalf("body does not open with intro line: %q", body)
	}
	for _, marker := range []string{ArticleMarker, SocialMarker, EndMarker} {
		if !strings.Contains(body, marker+"\n") {
			t.Fatalf("marker %s missing from body", marker)
		}
	}
}

func TestParseKnownBody(t *testing.T) {
	t.Parallel()

	body := "intro\n---HASHNODE_ARTICLE---\n# Foo\nbody\n---LINKEDIN_POST---\nhi\n---END---\n"

	article, social, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if article != "# Foo\nbody" {
		t.Fatalf("unexpected article: %q", article)
	}
	if social != "hi" {
		t.Fatalf("unexpected social: %q", social)
	}
}

func TestParseMissingMarker(t *testing.T) {
	t.Parallel()

	body := "---HASHNODE_ARTICLE---\n# Foo\nbody\n---END---\n"

	if _, _, err := Parse(body); !errors.Is(err, ErrUnparseable) {
		t.Fatalf("expected ErrUnparseable, got %v", err)
	}
}

func TestParseEmptySegment(t *testing.T) {
	t.Parallel()

	body := "---HASHNODE_ARTICLE---\n# Foo\n---LINKEDIN_POST---\n\n---END---\n"

	if _, _, err := Parse(body); !errors.Is(err, ErrUnparseable) {
		t.Fatalf("expected ErrUnparseable for empty social segment, got %v", err)
	}
}

func TestParseLenientFallback(t *testing.T) {
	t.Parallel()

	body := "### Draft: Old Topic\n\nJust one artifact here."

	article, social := ParseLenient(body)
	if article != "" {
		t.Fatalf("expected empty article, got %q", article)
	}
	if social != "Just one artifact here." {
		t.Fatalf("unexpected social text: %q", social)
	}
}

func TestParseLenientPrefersMarkers(t *testing.T) {
	t.Parallel()

	body := Build("T", "article text", "social text")

	article, social := ParseLenient(body)
	if article != "article text" || social != "social text" {
		t.Fatalf("lenient parse ignored markers: %q / %q", article, social)
	}
}

func TestDeriveTitle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		markdown  string
		wantTitle string
		wantBody  string
	}{
		{"heading", "# Foo\nbody", "Foo", "body"},
		{"deep heading", "##  Spaced Out \nrest", "Spaced Out", "rest"},
		{"no heading", "plain text\nmore", FallbackTitle, "plain text\nmore"},
		{"bare hashes", "#\nbody", FallbackTitle, "#\nbody"},
		{"heading only", "# Solo", "Solo", ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			title, body := DeriveTitle(tc.markdown)
			if title != tc.wantTitle {
				t.Fatalf("title = %q, want %q", title, tc.wantTitle)
			}
			if body != tc.wantBody {
				t.Fatalf("body = %q, want %q", body, tc.wantBody)
			}
		})
	}
}
