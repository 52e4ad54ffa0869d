package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"finaily/outcome"
	"finaily/types"
)

// NewsOptions are the query parameters of a symbol news request
type NewsOptions struct {
	Lang  types.Language
	Limit int
}

func (o NewsOptions) withDefaults() NewsOptions {
	if o.Lang == "" {
		o.Lang = types.DefaultLanguage
	}
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	return o
}

// NormalizeSymbol trims and upper-cases a ticker symbol
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// News fetches the digest and articles for a symbol
func (c *Client) News(ctx context.Context, symbol string, opts NewsOptions) outcome.Outcome[types.NewsResponse] {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return outcome.Invalid[types.NewsResponse]("symbol is empty")
	}
	opts = opts.withDefaults()
	if !opts.Lang.Valid() {
		return outcome.Invalid[types.NewsResponse]("unsupported language %q", opts.Lang)
	}
	if opts.Limit < 1 || opts.Limit > MaxLimit {
		return outcome.Invalid[types.NewsResponse]("limit must be between 1 and %d", MaxLimit)
	}

	return Do[types.NewsResponse](ctx, c, Request{
		Path: "/news/" + url.PathEscape(symbol),
		Query: url.Values{
			"lang":  {string(opts.Lang)},
			"limit": {strconv.Itoa(opts.Limit)},
		},
	})
}

// MarketPulse fetches the market-wide digest
func (c *Client) MarketPulse(ctx context.Context, lang types.Language) outcome.Outcome[types.NewsResponse] {
	if lang != "" && !lang.Valid() {
		return outcome.Invalid[types.NewsResponse]("unsupported language %q", lang)
	}
	var q url.Values
	if lang != "" && lang != types.DefaultLanguage {
		q = url.Values{"lang": {string(lang)}}
	}
	return Do[types.NewsResponse](ctx, c, Request{Path: "/news/market-pulse", Query: q})
}
