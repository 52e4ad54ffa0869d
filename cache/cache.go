// Package cache puts an optional response cache in front of the backend
// client. Identical in-flight requests are collapsed into one call and
// successful GET responses are kept for a TTL. Errors are never cached.
//
// The cache sits below the controllers, so their epoch-discard rules are
// unchanged: a cached response for a superseded key is dropped the same way
// a network response would be.
package cache

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"finaily/client"
	"finaily/outcome"
	"finaily/types"

	"golang.org/x/sync/singleflight"
)

// Client wraps a client.API with request dedup and a TTL cache
type Client struct {
	next   client.API
	store  Store
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

var _ client.API = (*Client)(nil)

// New wraps next. A nil store or a non-positive ttl keeps only the dedup.
func New(next client.API, store Store, ttl time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if ttl <= 0 {
		store = nil
	}
	return &Client{next: next, store: store, ttl: ttl, logger: logger}
}

func (c *Client) SearchTickers(ctx context.Context, query string) outcome.Outcome[types.SearchResponse] {
	query = strings.TrimSpace(query)
	return cached(ctx, c, "search:"+query, func(ctx context.Context) outcome.Outcome[types.SearchResponse] {
		return c.next.SearchTickers(ctx, query)
	})
}

func (c *Client) News(ctx context.Context, symbol string, opts client.NewsOptions) outcome.Outcome[types.NewsResponse] {
	lang, limit := opts.Lang, opts.Limit
	if lang == "" {
		lang = types.DefaultLanguage
	}
	if limit == 0 {
		limit = client.DefaultLimit
	}
	key := "news:" + client.NormalizeSymbol(symbol) + ":" + string(lang) + ":" + strconv.Itoa(limit)
	return cached(ctx, c, key, func(ctx context.Context) outcome.Outcome[types.NewsResponse] {
		return c.next.News(ctx, symbol, opts)
	})
}

func (c *Client) MarketPulse(ctx context.Context, lang types.Language) outcome.Outcome[types.NewsResponse] {
	if lang == "" {
		lang = types.DefaultLanguage
	}
	key := "news:" + types.MarketKey + ":" + string(lang)
	return cached(ctx, c, key, func(ctx context.Context) outcome.Outcome[types.NewsResponse] {
		return c.next.MarketPulse(ctx, lang)
	})
}

// Me is never cached: the profile is per credential and changes on PATCH.
func (c *Client) Me(ctx context.Context, credential string) outcome.Outcome[types.UserProfile] {
	return c.next.Me(ctx, credential)
}

func (c *Client) UpdateMe(ctx context.Context, credential string, update types.ProfileUpdate) outcome.Outcome[types.UserProfile] {
	return c.next.UpdateMe(ctx, credential, update)
}

// Close releases the underlying store
func (c *Client) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

func cached[T any](ctx context.Context, c *Client, key string, fetch func(context.Context) outcome.Outcome[T]) outcome.Outcome[T] {
	if v, ok := c.lookup(ctx, key); ok {
		var out T
		if err := json.Unmarshal(v, &out); err == nil {
			c.logger.Debug("cache hit", "key", key)
			return outcome.OK(out)
		}
	}

	// The shared fetch must not die with whichever caller happened to start it;
	// each caller still stops waiting when its own context ends.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		o := fetch(shared)
		if o.IsOK() {
			c.save(shared, key, o.Value)
		}
		return o, nil
	})

	select {
	case <-ctx.Done():
		return outcome.FromTransportError[T](ctx.Err())
	case r := <-ch:
		if r.Shared {
			c.logger.Debug("request deduplicated", "key", key)
		}
		return r.Val.(outcome.Outcome[T])
	}
}

func (c *Client) lookup(ctx context.Context, key string) ([]byte, bool) {
	if c.store == nil {
		return nil, false
	}
	v, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	return v, ok
}

func (c *Client) save(ctx context.Context, key string, v any) {
	if c.store == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, b, c.ttl); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}
