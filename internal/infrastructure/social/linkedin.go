// Package social posts short-form text to the LinkedIn ugcPosts API.
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"ContentPipeline/internal/config"
	"ContentPipeline/internal/ports"
)

// LinkedInClient implements ports.SocialPublisher.
type LinkedInClient struct {
	endpoint  string
	token     string
	authorURN string
	client    *http.Client
}

var _ ports.SocialPublisher = (*LinkedInClient)(nil)

// NewLinkedInClient registers bearer token and author identity.
func NewLinkedInClient(cfg config.SocialConfig) *LinkedInClient {
	return &LinkedInClient{
		endpoint:  cfg.Endpoint,
		token:     cfg.Token,
		authorURN: cfg.AuthorURN,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// PublishPost creates a public plain-text share and returns its post ID.
// Anything but HTTP 201 is a hard failure.
func (c *LinkedInClient) PublishPost(ctx context.Context, text string) (string, error) {
	if c.token == "" || c.authorURN == "" {
		return "", errors.New("linkedin client misconfigured")
	}

	payload := map[string]any{
		"author":         c.authorURN,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary":    map[string]any{"text": text},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]any{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal share: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("linkedin error %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	id := gjson.GetBytes(raw, "id").String()
	if id == "" {
		return "", errors.New("linkedin response carried no post id")
	}
	return id, nil
}
