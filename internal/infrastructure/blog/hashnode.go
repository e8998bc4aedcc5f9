// Package blog publishes articles through the Hashnode GraphQL API.
package blog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ContentPipeline/internal/config"
	"ContentPipeline/internal/ports"
)

// HashnodeClient implements ports.BlogPublisher.
type HashnodeClient struct {
	endpoint      string
	token         string
	publicationID string
	httpClient    *http.Client
}

var _ ports.BlogPublisher = (*HashnodeClient)(nil)

// NewHashnodeClient wires the GraphQL endpoint, token, and publication.
func NewHashnodeClient(cfg config.BlogConfig) *HashnodeClient {
	return &HashnodeClient{
		endpoint:      cfg.Endpoint,
		token:         cfg.Token,
		publicationID: cfg.PublicationID,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

const publishMutation = `
mutation PublishPost($input: PublishPostInput!) {
	publishPost(input: $input) {
		post {
			url
		}
	}
}
`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// PublishArticle submits the article and returns its public URL. A non-2xx
// response or any entry in the GraphQL error list is a hard failure.
func (c *HashnodeClient) PublishArticle(ctx context.Context, title, markdown string) (string, error) {
	variables := map[string]any{
		"input": map[string]any{
			"title":           title,
			"contentMarkdown": markdown,
			"publicationId":   c.publicationID,
		},
	}

	var result struct {
		PublishPost struct {
			Post struct {
				URL string `json:"url"`
			} `json:"post"`
		} `json:"publishPost"`
	}

	if err := c.doGraphQL(ctx, publishMutation, variables, &result); err != nil {
		return "", fmt.Errorf("publish article: %w", err)
	}
	if result.PublishPost.Post.URL == "" {
		return "", errors.New("publish article: response carried no post url")
	}
	return result.PublishPost.Post.URL, nil
}

func (c *HashnodeClient) doGraphQL(ctx context.Context, query string, variables map[string]any, result any) error {
	jsonData, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unexpected status %s: %s", resp.Status, body)
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if len(gqlResp.Errors) > 0 {
		return fmt.Errorf("graphql error: %s", gqlResp.Errors[0].Message)
	}

	if result != nil {
		if err := json.Unmarshal(gqlResp.Data, result); err != nil {
			return fmt.Errorf("unmarshal data: %w", err)
		}
	}
	return nil
}
