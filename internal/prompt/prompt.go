// Package prompt holds the generation instruction templates. The structure
// and formatting constraints sent to the model live here as configurable
// data, not as hard output contracts: nothing downstream assumes the model
// honored them.
package prompt

import (
	"fmt"
	"strings"

	"ContentPipeline/internal/config"
)

// Templates renders the three pipeline prompts from named parameters.
type Templates struct {
	audience       string
	focus          string
	socialMaxChars int
	maxEmoji       int
	bannedTerms    []string
}

// New builds prompt templates from configuration.
func New(cfg config.PromptConfig) *Templates {
	return &Templates{
		audience:       cfg.Audience,
		focus:          cfg.Focus,
		socialMaxChars: cfg.SocialMaxChars,
		maxEmoji:       cfg.MaxEmoji,
		bannedTerms:    cfg.BannedTerms,
	}
}

// Topic asks the model for one fresh topic, excluding everything already
// published. The exclusion is advisory only.
func (t *Templates) Topic(past []string) string {
	var sb strings.Builder
	sb.WriteString("Act as a Developer Advocate. Suggest a specialized topic for a technical post.\n")
	sb.WriteString(fmt.Sprintf("Focus: %s.\n\n", t.focus))
	sb.WriteString("Constraints:\n")
	sb.WriteString("1. NO generic advice (e.g. \"Keep learning\").\n")
	sb.WriteString("2. MUST be technical (e.g. \"Database Sharding vs Partitioning\").\n")
	if len(past) > 0 {
		sb.WriteString(fmt.Sprintf("3. DO NOT use these past topics: %s.\n", strings.Join(past, "; ")))
	}
	sb.WriteString("\nOutput ONLY the topic title.")
	return sb.String()
}

// Social asks for the short-form post: hook, concept, takeaway, a question
// for the comments, then a hashtag block.
func (t *Templates) Social(topic string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Write a LinkedIn post about: %q.\n", topic))
	sb.WriteString(fmt.Sprintf("Target Audience: %s.\n\n", t.audience))
	sb.WriteString("Structure:\n")
	sb.WriteString("- Hook: a technical challenge or common mistake.\n")
	sb.WriteString("- Concept: the core idea, explained plainly.\n")
	sb.WriteString("- Takeaway: the practical \"how-to\".\n")
	sb.WriteString("- Engagement: one question for the comments.\n")
	sb.WriteString("- End with a block of relevant hashtags.\n\n")
	sb.WriteString("Format rules:\n")
	if t.socialMaxChars > 0 {
		sb.WriteString(fmt.Sprintf("- Length: under %d characters.\n", t.socialMaxChars))
	}
	if t.maxEmoji > 0 {
		sb.WriteString(fmt.Sprintf("- At most %d emojis.\n", t.maxEmoji))
	}
	sb.WriteString("- Plain text only: no markdown bullet characters (*, -) in the output.\n")
	for _, term := range t.bannedTerms {
		sb.WriteString(fmt.Sprintf("- Never use the phrase %q.\n", term))
	}
	sb.WriteString("\nOutput ONLY the post text.")
	return sb.String()
}

// Article asks for the long-form companion piece, using the social draft as
// context so the two artifacts agree.
func (t *Templates) Article(topic, socialDraft string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Write a long-form technical article about: %q.\n", topic))
	sb.WriteString(fmt.Sprintf("Target Audience: %s.\n\n", t.audience))
	sb.WriteString("It accompanies this short post, so keep the framing consistent:\n")
	sb.WriteString(socialDraft)
	sb.WriteString("\n\nRequirements:\n")
	sb.WriteString("- Markdown document starting with a single top-level heading (# Title).\n")
	sb.WriteString("- Sections, in order: the hook, the mental model, real use cases, ")
	sb.WriteString("code examples, failure modes, common mistakes, a decision framework.\n")
	for _, term := range t.bannedTerms {
		sb.WriteString(fmt.Sprintf("- Never use the phrase %q.\n", term))
	}
	sb.WriteString("\nOutput ONLY the markdown document.")
	return sb.String()
}

// Sanitize normalizes a model response: trims whitespace and unwraps a
// response the model fenced whole in a code block.
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
		if i := strings.Index(s, "\n"); i >= 0 {
			// Drop the info string on the opening fence.
			s = s[i+1:]
		}
		s = strings.TrimSpace(s)
	}
	return s
}
