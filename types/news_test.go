package types

import (
	"encoding/json"
	"testing"
	"time"
)

const newsPayload = `{
  "symbol": "AAPL",
  "company_name": "Apple Inc.",
  "last_updated": "2026-10-16T09:30:00+00:00",
  "digest": {
    "summary": [
      {"point": "first", "quote": "q1"},
      {"point": "second", "quote": ""},
      {"point": "third", "quote": "q3"}
    ],
    "sentiment": {"score": 0.42, "label": "Positive"},
    "based_on_articles": 7
  },
  "articles": [
    {"id": 0, "title": "A", "source": "Reuters", "url": "https://example.com/a", "published_at": "2026-10-16T08:00:00"},
    {"id": 1, "title": "B", "source": "CNBC", "url": "https://example.com/b", "published_at": "2026-10-15T08:00:00+09:00"},
    {"id": 2, "title": "C", "source": "MarketWatch", "published_at": ""}
  ]
}`

func TestNewsResponseDecodePreservesOrder(t *testing.T) {
	var n NewsResponse
	if err := json.Unmarshal([]byte(newsPayload), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(n.Articles) != 3 {
		t.Fatalf("len(Articles) = %d; want 3", len(n.Articles))
	}
	for i, want := range []string{"A", "B", "C"} {
		if n.Articles[i].Title != want {
			t.Fatalf("Articles[%d].Title = %q; want %q", i, n.Articles[i].Title, want)
		}
	}
	for i, want := range []string{"first", "second", "third"} {
		if n.Digest.Summary[i].Point != want {
			t.Fatalf("Summary[%d].Point = %q; want %q", i, n.Digest.Summary[i].Point, want)
		}
	}
	if n.Digest.BasedOnArticles != 7 {
		t.Fatalf("BasedOnArticles = %d; want 7", n.Digest.BasedOnArticles)
	}
	if n.Digest.Sentiment.Label != SentimentPositive {
		t.Fatalf("Sentiment.Label = %q", n.Digest.Sentiment.Label)
	}
	if n.Articles[2].Linkable() {
		t.Fatalf("article without url reported linkable")
	}
	if n.IsMarket() {
		t.Fatalf("AAPL reported as market digest")
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		want   time.Time
		wantOK bool
	}{
		{"offset", "2026-10-16T09:30:00+09:00", time.Date(2026, 10, 16, 0, 30, 0, 0, time.UTC), true},
		{"zulu fraction", "2026-10-16T09:30:00.123456Z", time.Date(2026, 10, 16, 9, 30, 0, 123456000, time.UTC), true},
		{"naive", "2026-10-16T09:30:00", time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC), true},
		{"naive fraction", "2026-10-16T09:30:00.5", time.Date(2026, 10, 16, 9, 30, 0, 500000000, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "yesterday", time.Time{}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ParseTimestamp(c.in)
			if ok != c.wantOK {
				t.Fatalf("ParseTimestamp(%q) ok = %v; want %v", c.in, ok, c.wantOK)
			}
			if ok && !got.Equal(c.want) {
				t.Fatalf("ParseTimestamp(%q) = %v; want %v", c.in, got, c.want)
			}
		})
	}
}

func TestLanguage(t *testing.T) {
	if !LanguageKorean.Valid() || !LanguageEnglish.Valid() {
		t.Fatalf("supported languages reported invalid")
	}
	if Language("jp").Valid() {
		t.Fatalf("jp reported valid")
	}
	if LanguageKorean.Toggle() != LanguageEnglish || LanguageEnglish.Toggle() != LanguageKorean {
		t.Fatalf("Toggle does not alternate")
	}
}
