// Package compose implements the delimited composite-body protocol that
// multiplexes the article and the social post inside one ticket body.
package compose

import (
	"errors"
	"fmt"
	"strings"
)

// Literal markers, each on its own line inside a ticket body.
const (
	ArticleMarker = "---HASHNODE_ARTICLE---"
	SocialMarker  = "---LINKEDIN_POST---"
	EndMarker     = "---END---"
)

// IntroPrefix opens every composite body; the lenient parser strips it when
// falling back to the single-artifact format.
const IntroPrefix = "### Draft: "

// FallbackTitle is used when the article has no leading heading line.
const FallbackTitle = "New Article"

// ErrUnparseable reports a body that violates the marker protocol.
var ErrUnparseable = errors.New("ticket body does not follow the draft marker protocol")

// Build assembles the composite ticket body in fixed order: intro line,
// article marker, article, social marker, social text, end marker.
func Build(topic, article, social string) string {
	var sb strings.Builder
	sb.WriteString(IntroPrefix)
	sb.WriteString(topic)
	sb.WriteString("\n\n")
	sb.WriteString(ArticleMarker)
	sb.WriteString("\n")
	sb.WriteString(strings.TrimSpace(article))
	sb.WriteString("\n")
	sb.WriteString(SocialMarker)
	sb.WriteString("\n")
	sb.WriteString(strings.TrimSpace(social))
	sb.WriteString("\n")
	sb.WriteString(EndMarker)
	sb.WriteString("\n")
	return sb.String()
}

// Parse splits a composite body on the three markers. Both segments must be
// non-empty after trimming; anything else fails so the publisher never
// attempts a partial publish.
func Parse(body string) (article, social string, err error) {
	start := strings.Index(body, ArticleMarker)
	if start < 0 {
		return "", "", fmt.Errorf("%w: missing %s", ErrUnparseable, ArticleMarker)
	}
	rest := body[start+len(ArticleMarker):]

	mid := strings.Index(rest, SocialMarker)
	if mid < 0 {
		return "", "", fmt.Errorf("%w: missing %s", ErrUnparseable, SocialMarker)
	}

	tail := rest[mid+len(SocialMarker):]
	end := strings.Index(tail, EndMarker)
	if end < 0 {
		return "", "", fmt.Errorf("%w: missing %s", ErrUnparseable, EndMarker)
	}

	article = strings.TrimSpace(rest[:mid])
	social = strings.TrimSpace(tail[:end])
	if article == "" {
		return "", "", fmt.Errorf("%w: empty article segment", ErrUnparseable)
	}
	if social == "" {
		return "", "", fmt.Errorf("%w: empty social segment", ErrUnparseable)
	}
	return article, social, nil
}

// ParseLenient reads a body for editing. Bodies written before the two-
// artifact format carry no markers; those parse as a lone social text with
// an empty article.
func ParseLenient(body string) (article, social string) {
	article, social, err := Parse(body)
	if err == nil {
		return article, social
	}

	text := strings.TrimSpace(body)
	if strings.HasPrefix(text, IntroPrefix) {
		if i := strings.Index(text, "\n"); i >= 0 {
			text = text[i+1:]
		} else {
			text = ""
		}
	}
	return "", strings.TrimSpace(text)
}

// DeriveTitle splits an article into a publish title and the remaining body.
// The title comes from the first line when it is a heading; otherwise the
// fallback title is used and the document is submitted untouched.
func DeriveTitle(markdown string) (title, body string) {
	doc := strings.TrimSpace(markdown)
	first := doc
	rest := ""
	if i := strings.Index(doc, "\n"); i >= 0 {
		first = doc[:i]
		rest = doc[i+1:]
	}

	if strings.HasPrefix(first, "#") {
		title = strings.TrimSpace(strings.TrimLeft(first, "#"))
		if title != "" {
			return title, strings.TrimSpace(rest)
		}
	}
	return FallbackTitle, doc
}
