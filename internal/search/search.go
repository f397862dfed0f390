package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tanq16/xdcc/internal/utils"
)

// Result is one pack offered by a bot, as reported by the index.
type Result struct {
	BotID  int    `json:"botId"`
	Number int    `json:"number"`
	Name   string `json:"name"`
	Size   string `json:"size"`
}

type bot struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Content []T    `json:"content"`
}

// Client queries the pack index over HTTP.
type Client struct {
	api    string
	client utils.HTTPDoer
}

func NewClient(api string, client utils.HTTPDoer) *Client {
	return &Client{api: api, client: client}
}

func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	endpoint := fmt.Sprintf("%s/search?query=%s", c.api, url.QueryEscape(query))
	results, err := get[Result](ctx, c.client, endpoint)
	if err != nil {
		return nil, fmt.Errorf("error searching for %q: %w", query, err)
	}
	logger := utils.GetLogger("search")
	logger.Debug().Str("query", query).Int("results", len(results)).Msg("search complete")
	return results, nil
}

// Bots returns the index's bot id to name table.
func (c *Client) Bots(ctx context.Context) (map[int]string, error) {
	bots, err := get[bot](ctx, c.client, c.api+"/bots")
	if err != nil {
		return nil, fmt.Errorf("error listing bots: %w", err)
	}
	names := make(map[int]string, len(bots))
	for _, b := range bots {
		names[b.ID] = b.Name
	}
	return names, nil
}

func get[T any](ctx context.Context, client utils.HTTPDoer, endpoint string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating API request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrConnection, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status code: %d", resp.StatusCode)
	}
	var body envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("error decoding API response: %v", err)
	}
	if body.Status != "" && body.Status != "OK" {
		return nil, fmt.Errorf("API returned status %s: %s", body.Status, body.Message)
	}
	return body.Content, nil
}
