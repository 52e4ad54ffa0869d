package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finaily/client"
	"finaily/outcome"
	"finaily/types"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() (*gin.Engine, *Fixtures) {
	f := NewFixtures("token-1")
	f.Now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return NewRouter(Options{Fixtures: f}), f
}

func serve(r http.Handler, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	r, _ := newTestRouter()
	bearer := http.Header{"Authorization": {"Bearer token-1"}}

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		header     http.Header
		wantStatus int
		wantBody   string
	}{
		{"health", http.MethodGet, "/v1/health", "", nil, http.StatusOK, `"healthy"`},
		{"search by symbol", http.MethodGet, "/v1/tickers/search?q=aa", "", nil, http.StatusOK, `"AAPL"`},
		{"search by name", http.MethodGet, "/v1/tickers/search?q=tesla", "", nil, http.StatusOK, `"TSLA"`},
		{"search without q", http.MethodGet, "/v1/tickers/search", "", nil, http.StatusUnprocessableEntity, `"detail":"q is required"`},
		{"news", http.MethodGet, "/v1/news/aapl?lang=en&limit=2", "", nil, http.StatusOK, `"company_name":"Apple Inc."`},
		{"news unknown symbol", http.MethodGet, "/v1/news/ZZZZ", "", nil, http.StatusNotFound, `"code":"NO_NEWS"`},
		{"news limit too large", http.MethodGet, "/v1/news/AAPL?limit=21", "", nil, http.StatusUnprocessableEntity, `limit must be between 1 and 20`},
		{"news bad lang", http.MethodGet, "/v1/news/AAPL?lang=jp", "", nil, http.StatusUnprocessableEntity, `lang must be ko or en`},
		{"market pulse", http.MethodGet, "/v1/news/market-pulse", "", nil, http.StatusOK, `"symbol":"MARKET"`},
		{"me without token", http.MethodGet, "/v1/users/me", "", nil, http.StatusUnauthorized, `"code":"UNAUTHORIZED"`},
		{"me with unknown token", http.MethodGet, "/v1/users/me", "", http.Header{"Authorization": {"Bearer nope"}}, http.StatusUnauthorized, `"code":"INVALID_TOKEN"`},
		{"me", http.MethodGet, "/v1/users/me", "", bearer, http.StatusOK, `"email":"user1@example.com"`},
		{"patch bad language", http.MethodPatch, "/v1/users/me", `{"preferred_language":"jp"}`, bearer, http.StatusUnprocessableEntity, `"code":"INVALID_LANGUAGE"`},
		{"unknown route", http.MethodGet, "/v1/nothing", "", nil, http.StatusNotFound, `"error":{"code":"NOT_FOUND"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.method, tt.target, tt.body, tt.header)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d; want %d (body %s)", w.Code, tt.wantStatus, w.Body)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body %s does not contain %s", w.Body, tt.wantBody)
			}
		})
	}
}

func TestNewsFixture(t *testing.T) {
	r, _ := newTestRouter()
	w := serve(r, http.MethodGet, "/v1/news/TSLA?limit=2&lang=en", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp types.NewsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Articles) != 2 || resp.Digest.BasedOnArticles != 2 {
		t.Fatalf("articles=%d based_on=%d", len(resp.Articles), resp.Digest.BasedOnArticles)
	}
	if resp.Digest.Sentiment.Label != types.SentimentNegative {
		t.Errorf("label = %q", resp.Digest.Sentiment.Label)
	}
	if !strings.HasPrefix(resp.Digest.Summary[0].Point, "Tesla, Inc.: ") {
		t.Errorf("english summary = %q", resp.Digest.Summary[0].Point)
	}
	first, _ := resp.Articles[0].PublishedTime()
	second, _ := resp.Articles[1].PublishedTime()
	if !first.After(second) {
		t.Errorf("articles not newest first")
	}
}

func TestPatchUpdatesProfile(t *testing.T) {
	r, f := newTestRouter()
	bearer := http.Header{"Authorization": {"Bearer token-1"}}

	w := serve(r, http.MethodPatch, "/v1/users/me", `{"preferred_language":"en","display_name":"Kim"}`, bearer)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body)
	}
	p, _ := f.Profile("token-1")
	if p.PreferredLanguage != types.LanguageEnglish || p.Name() != "Kim" {
		t.Fatalf("profile = %+v", p)
	}

	// a nil field leaves the value alone
	serve(r, http.MethodPatch, "/v1/users/me", `{"display_name":"Lee"}`, bearer)
	p, _ = f.Profile("token-1")
	if p.PreferredLanguage != types.LanguageEnglish || p.Name() != "Lee" {
		t.Fatalf("profile = %+v", p)
	}
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter()
	w := serve(r, http.MethodOptions, "/v1/users/me", "", http.Header{
		"Origin":                        {"http://localhost:3000"},
		"Access-Control-Request-Method": {"PATCH"},
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("allow origin = %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

// The transport client and the stub agree on both error envelopes.
func TestClientAgainstStub(t *testing.T) {
	r, _ := newTestRouter()
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := client.New(client.Config{BaseURL: srv.URL + "/v1"})
	ctx := context.Background()

	news := c.News(ctx, "nvda", client.NewsOptions{})
	if v, err := news.Get(); err != nil || v.Symbol != "NVDA" {
		t.Fatalf("News = %+v, %v", v, err)
	}

	missing := c.News(ctx, "ZZZZ", client.NewsOptions{})
	if _, err := missing.Get(); err == nil || err.Code != "NO_NEWS" || err.Status != 404 || err.Class != outcome.HTTPError {
		t.Fatalf("missing news error = %+v", err)
	}

	me := c.Me(ctx, "nope")
	if _, err := me.Get(); err == nil || err.Code != "INVALID_TOKEN" {
		t.Fatalf("Me error = %+v", err)
	}

	lang := types.LanguageEnglish
	updated := c.UpdateMe(ctx, "token-1", types.ProfileUpdate{PreferredLanguage: &lang})
	if p, err := updated.Get(); err != nil || p.PreferredLanguage != types.LanguageEnglish {
		t.Fatalf("UpdateMe = %+v, %v", p, err)
	}

	search := c.SearchTickers(ctx, "nv")
	if v, err := search.Get(); err != nil || len(v.Results) != 1 || v.Results[0].Symbol != "NVDA" {
		t.Fatalf("SearchTickers = %+v, %v", v, err)
	}
}

func TestLatencyAbortsOnClientCancel(t *testing.T) {
	r := NewRouter(Options{Fixtures: NewFixtures(), Latency: time.Minute})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := client.New(client.Config{BaseURL: srv.URL + "/v1", Timeout: 50 * time.Millisecond})
	start := time.Now()
	_, err := c.SearchTickers(context.Background(), "AAPL").Get()
	if err == nil || err.Class != outcome.NetworkError {
		t.Fatalf("err = %+v; want network error", err)
	}
	if time.Since(start) > 10*time.Second {
		t.Fatalf("request was not bounded by the client timeout")
	}
}
