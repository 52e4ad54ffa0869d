package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"finaily/outcome"
	"finaily/types"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/v1/"}), srv
}

func TestSearchTickersRequest(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s; want GET", r.Method)
		}
		if r.URL.Path != "/v1/tickers/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "apple inc&co" {
			t.Errorf("q = %q", got)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header on anonymous call")
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("missing X-Request-ID")
		}
		_, _ = io.WriteString(w, `{"results":[{"symbol":"AAPL","name":"Apple Inc.","exchange":"NASDAQ"}]}`)
	})

	o := c.SearchTickers(context.Background(), "  apple inc&co ")
	res, err := o.Get()
	if err != nil {
		t.Fatalf("SearchTickers error: %v", err)
	}
	if len(res.Results) != 1 || res.Results[0].Symbol != "AAPL" || res.Results[0].Exchange != "NASDAQ" {
		t.Fatalf("results = %+v", res.Results)
	}
}

func TestNewsRequest(t *testing.T) {
	cases := []struct {
		name      string
		symbol    string
		opts      NewsOptions
		wantPath  string
		wantLang  string
		wantLimit string
	}{
		{"defaults", "aapl", NewsOptions{}, "/v1/news/AAPL", "ko", "10"},
		{"explicit", " tsla ", NewsOptions{Lang: types.LanguageEnglish, Limit: 5}, "/v1/news/TSLA", "en", "5"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != c.wantPath {
					t.Errorf("path = %s; want %s", r.URL.Path, c.wantPath)
				}
				q := r.URL.Query()
				if q.Get("lang") != c.wantLang || q.Get("limit") != c.wantLimit {
					t.Errorf("query = %s", r.URL.RawQuery)
				}
				_, _ = io.WriteString(w, `{"symbol":"X","digest":{"summary":[],"sentiment":{"score":0,"label":"Neutral"},"based_on_articles":0},"articles":[]}`)
			})
			if o := cl.News(context.Background(), c.symbol, c.opts); !o.IsOK() {
				t.Fatalf("News error: %v", o.Err)
			}
		})
	}
}

func TestMarketPulseRequest(t *testing.T) {
	var lastQuery atomic.Value
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/news/market-pulse" {
			t.Errorf("path = %s", r.URL.Path)
		}
		lastQuery.Store(r.URL.RawQuery)
		_, _ = io.WriteString(w, `{"symbol":"MARKET","articles":[{"id":0,"title":"t","source":"MarketWatch","published_at":""}]}`)
	})

	o := c.MarketPulse(context.Background(), types.DefaultLanguage)
	v, err := o.Get()
	if err != nil {
		t.Fatalf("MarketPulse error: %v", err)
	}
	if !v.IsMarket() || v.Articles[0].Linkable() {
		t.Fatalf("unexpected market response %+v", v)
	}
	if q := lastQuery.Load().(string); q != "" {
		t.Fatalf("default language should not be sent, got %q", q)
	}

	c.MarketPulse(context.Background(), types.LanguageEnglish)
	if q := lastQuery.Load().(string); q != "lang=en" {
		t.Fatalf("query = %q; want lang=en", q)
	}
}

func TestUpdateMeSendsCredentialAndBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s; want PATCH", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if _, ok := body["display_name"]; ok {
			t.Errorf("nil display_name should be omitted: %v", body)
		}
		if body["preferred_language"] != "en" {
			t.Errorf("preferred_language = %v", body["preferred_language"])
		}
		_, _ = io.WriteString(w, `{"id":"u1","email":"a@b.c","display_name":null,"preferred_language":"en","created_at":"2026-01-01T00:00:00Z"}`)
	})

	lang := types.LanguageEnglish
	o := c.UpdateMe(context.Background(), "tok-123", types.ProfileUpdate{PreferredLanguage: &lang})
	p, err := o.Get()
	if err != nil {
		t.Fatalf("UpdateMe error: %v", err)
	}
	if p.PreferredLanguage != types.LanguageEnglish || p.Name() != "a@b.c" {
		t.Fatalf("profile = %+v", p)
	}
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		body       string
		wantClass  outcome.Class
		wantCode   string
		wantMsg    string
		wantStatus int
	}{
		{"detail 404", 404, `{"detail":{"code":"NOT_FOUND","message":"no such symbol"}}`, outcome.HTTPError, "NOT_FOUND", "no such symbol", 404},
		{"error 503", 503, `{"error":{"code":"SUMMARIZATION_FAILED","message":"later"}}`, outcome.HTTPError, "SUMMARIZATION_FAILED", "later", 503},
		{"broken 500", 500, `not json`, outcome.HTTPError, outcome.CodeUnknown, "HTTP 500", 500},
		{"bad success body", 200, `{"symbol":`, outcome.ParseError, outcome.CodeParse, "", 200},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				_, _ = io.WriteString(w, c.body)
			})
			o := cl.News(context.Background(), "AAPL", NewsOptions{})
			_, err := o.Get()
			if err == nil {
				t.Fatalf("expected error outcome")
			}
			if err.Class != c.wantClass || err.Code != c.wantCode || err.Status != c.wantStatus {
				t.Fatalf("got %+v", err)
			}
			if c.wantMsg != "" && err.Message != c.wantMsg {
				t.Fatalf("Message = %q; want %q", err.Message, c.wantMsg)
			}
		})
	}
}

func TestNetworkErrors(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL
		srv.Close()

		o := New(Config{BaseURL: base}).SearchTickers(context.Background(), "AAPL")
		if o.IsOK() || o.Err.Code != outcome.CodeNetwork || o.Err.Status != 0 {
			t.Fatalf("got %+v; want NETWORK_ERROR status 0", o.Err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		o := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}).SearchTickers(context.Background(), "AAPL")
		if o.IsOK() || o.Err.Class != outcome.NetworkError || o.Err.Status != 0 {
			t.Fatalf("got %+v; want NETWORK_ERROR", o.Err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("request should not reach the server")
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		o := c.SearchTickers(ctx, "AAPL")
		if o.IsOK() || o.Err.Code != outcome.CodeNetwork {
			t.Fatalf("got %+v; want NETWORK_ERROR", o.Err)
		}
	})
}

func TestValidationSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	bad := types.Language("jp")
	checks := []struct {
		name string
		err  *outcome.Error
	}{
		{"empty query", c.SearchTickers(context.Background(), "   ").Err},
		{"empty symbol", c.News(context.Background(), " ", NewsOptions{}).Err},
		{"bad lang", c.News(context.Background(), "AAPL", NewsOptions{Lang: bad}).Err},
		{"limit too big", c.News(context.Background(), "AAPL", NewsOptions{Limit: 50}).Err},
		{"market bad lang", c.MarketPulse(context.Background(), bad).Err},
		{"me without credential", c.Me(context.Background(), "").Err},
		{"update bad lang", c.UpdateMe(context.Background(), "tok", types.ProfileUpdate{PreferredLanguage: &bad}).Err},
	}
	for _, ch := range checks {
		if ch.err == nil || ch.err.Class != outcome.ValidationError || ch.err.Code != outcome.CodeValidation {
			t.Errorf("%s: got %+v; want VALIDATION_ERROR", ch.name, ch.err)
		}
	}
	if n := hits.Load(); n != 0 {
		t.Fatalf("validation failures reached the server %d times", n)
	}
}

func TestUnbuildableRequest(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	bad := New(Config{BaseURL: "http://[::1"})
	checks := []struct {
		name string
		err  *outcome.Error
	}{
		{"malformed base url", bad.News(context.Background(), "AAPL", NewsOptions{}).Err},
		{"unencodable body", Do[types.UserProfile](context.Background(), c, Request{
			Method: http.MethodPatch,
			Path:   "/users/me",
			Body:   make(chan int),
		}).Err},
	}
	for _, ch := range checks {
		if ch.err == nil || ch.err.Code != outcome.CodeRequest || ch.err.Status != 0 {
			t.Errorf("%s: got %+v; want REQUEST_ERROR", ch.name, ch.err)
		}
	}
	if n := hits.Load(); n != 0 {
		t.Fatalf("unbuildable requests reached the server %d times", n)
	}
}

func TestNewDefaults(t *testing.T) {
	c := New(Config{})
	if c.BaseURL() != DefaultBaseURL {
		t.Fatalf("BaseURL = %q; want %q", c.BaseURL(), DefaultBaseURL)
	}
	if c.timeout != DefaultTimeout {
		t.Fatalf("timeout = %v; want %v", c.timeout, DefaultTimeout)
	}
}
