package api

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"finaily/types"
)

type company struct {
	symbol   string
	name     string
	exchange string
	score    float64
	headline []string
}

var companies = []company{
	{"AAPL", "Apple Inc.", "NASDAQ", 0.42, []string{
		"Apple beats quarterly estimates on services growth",
		"iPhone shipments in China slip for a second quarter",
		"Apple expands on-device AI features",
	}},
	{"AMZN", "Amazon.com, Inc.", "NASDAQ", 0.18, []string{
		"AWS revenue growth accelerates",
		"Amazon widens same-day delivery network",
	}},
	{"GOOGL", "Alphabet Inc.", "NASDAQ", 0.05, []string{
		"Alphabet ad sales steady as search share holds",
		"Regulators weigh remedies in search case",
	}},
	{"MSFT", "Microsoft Corporation", "NASDAQ", 0.31, []string{
		"Azure growth tops expectations",
		"Microsoft raises capital spending guidance",
	}},
	{"NVDA", "NVIDIA Corporation", "NASDAQ", 0.67, []string{
		"NVIDIA data center revenue sets another record",
		"New GPU platform ships to cloud providers",
		"Supply constraints ease for advanced packaging",
	}},
	{"TSLA", "Tesla, Inc.", "NASDAQ", -0.32, []string{
		"Tesla deliveries miss consensus",
		"Price cuts pressure automotive margins",
		"Energy storage deployments climb",
	}},
	{"TSM", "Taiwan Semiconductor Manufacturing", "NYSE", 0.22, []string{
		"TSMC monthly revenue rises on AI demand",
	}},
}

var sources = []string{"Reuters", "Bloomberg", "CNBC", "MarketWatch", "Yahoo Finance"}

// Fixtures is the in-memory backing data of the stub server. Profiles are
// mutable through PATCH /users/me; everything else is generated.
type Fixtures struct {
	Now func() time.Time

	mu       sync.Mutex
	profiles map[string]types.UserProfile
}

// NewFixtures creates fixtures with one user per token
func NewFixtures(tokens ...string) *Fixtures {
	f := &Fixtures{Now: time.Now, profiles: make(map[string]types.UserProfile)}
	for i, tok := range tokens {
		f.profiles[tok] = types.UserProfile{
			ID:                fmt.Sprintf("user-%d", i+1),
			Email:             fmt.Sprintf("user%d@example.com", i+1),
			PreferredLanguage: types.LanguageKorean,
			CreatedAt:         "2025-01-02T03:04:05Z",
		}
	}
	return f
}

func (f *Fixtures) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// Search matches a symbol prefix or a name substring, case-insensitively
func (f *Fixtures) Search(q string) []types.TickerResult {
	q = strings.ToLower(strings.TrimSpace(q))
	results := make([]types.TickerResult, 0)
	for _, c := range companies {
		if strings.HasPrefix(strings.ToLower(c.symbol), q) || strings.Contains(strings.ToLower(c.name), q) {
			results = append(results, types.TickerResult{Symbol: c.symbol, Name: c.name, Exchange: c.exchange})
		}
	}
	return results
}

// News builds the digest and newest-first articles for symbol; ok is false
// when the symbol has no coverage.
func (f *Fixtures) News(symbol string, lang types.Language, limit int) (types.NewsResponse, bool) {
	for _, c := range companies {
		if c.symbol == symbol {
			return f.build(c.symbol, c.name, c.score, c.headline, lang, limit), true
		}
	}
	return types.NewsResponse{}, false
}

// MarketPulse builds the market-wide digest
func (f *Fixtures) MarketPulse(lang types.Language) types.NewsResponse {
	var headlines []string
	for _, c := range companies {
		headlines = append(headlines, c.headline[0])
	}
	return f.build(types.MarketKey, "MarketWatch", 0.12, headlines, lang, 10)
}

func (f *Fixtures) build(symbol, name string, score float64, headlines []string, lang types.Language, limit int) types.NewsResponse {
	now := f.now().UTC()
	if len(headlines) > limit {
		headlines = headlines[:limit]
	}

	articles := make([]types.Article, 0, len(headlines))
	for i, h := range headlines {
		a := types.Article{
			ID:          i,
			Title:       h,
			Source:      sources[i%len(sources)],
			PublishedAt: now.Add(-time.Duration(i+1) * 47 * time.Minute).Format(time.RFC3339),
		}
		// every third article comes without a link
		if i%3 != 2 {
			a.URL = fmt.Sprintf("https://news.example.com/%s/%d", strings.ToLower(symbol), i)
		}
		articles = append(articles, a)
	}

	return types.NewsResponse{
		Symbol:      symbol,
		CompanyName: name,
		LastUpdated: now.Format(time.RFC3339Nano),
		Digest: types.Digest{
			Summary:         summarize(name, headlines, lang),
			Sentiment:       types.SentimentInfo{Score: score, Label: label(score)},
			BasedOnArticles: len(articles),
		},
		Articles: articles,
	}
}

func summarize(name string, headlines []string, lang types.Language) []types.SummaryPoint {
	points := make([]types.SummaryPoint, 0, len(headlines))
	for i, h := range headlines {
		p := types.SummaryPoint{Point: fmt.Sprintf("%s 관련: %s", name, h)}
		if lang == types.LanguageEnglish {
			p.Point = fmt.Sprintf("%s: %s", name, h)
		}
		if i == 0 {
			p.Quote = h
		}
		points = append(points, p)
	}
	return points
}

func label(score float64) types.SentimentLabel {
	switch {
	case score >= 0.15:
		return types.SentimentPositive
	case score <= -0.15:
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}

// Profile returns the profile owned by token
func (f *Fixtures) Profile(token string) (types.UserProfile, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[token]
	return p, ok
}

// UpdateProfile applies the non-nil fields of u
func (f *Fixtures) UpdateProfile(token string, u types.ProfileUpdate) (types.UserProfile, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[token]
	if !ok {
		return p, false
	}
	if u.DisplayName != nil {
		name := *u.DisplayName
		p.DisplayName = &name
	}
	if u.PreferredLanguage != nil {
		p.PreferredLanguage = *u.PreferredLanguage
	}
	f.profiles[token] = p
	return p, true
}
