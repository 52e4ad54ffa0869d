package client

import (
	"context"
	"net/url"
	"strings"

	"finaily/outcome"
	"finaily/types"
)

// SearchTickers looks up ticker suggestions for free text
func (c *Client) SearchTickers(ctx context.Context, query string) outcome.Outcome[types.SearchResponse] {
	query = strings.TrimSpace(query)
	if query == "" {
		return outcome.Invalid[types.SearchResponse]("search query is empty")
	}
	return Do[types.SearchResponse](ctx, c, Request{
		Path:  "/tickers/search",
		Query: url.Values{"q": {query}},
	})
}
