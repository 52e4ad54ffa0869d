package types

// MarketKey is the page key of the market-wide digest.
const MarketKey = "MARKET"

// SentimentLabel classifies the overall tone of a digest
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNegative SentimentLabel = "Negative"
)

// SentimentInfo carries the score (roughly -1..1, not enforced) and its label
type SentimentInfo struct {
	Score float64        `json:"score"`
	Label SentimentLabel `json:"label"`
}

// SummaryPoint is one bullet of the digest. Quote may be empty.
type SummaryPoint struct {
	Point string `json:"point"`
	Quote string `json:"quote"`
}

// Digest is the AI summary of a window of articles.
// BasedOnArticles need not match the number of articles returned alongside it.
type Digest struct {
	Summary         []SummaryPoint `json:"summary"`
	Sentiment       SentimentInfo  `json:"sentiment"`
	BasedOnArticles int            `json:"based_on_articles"`
}

// NewsResponse is the snapshot committed to a page: digest plus articles in server order
type NewsResponse struct {
	Symbol      string    `json:"symbol"`
	CompanyName string    `json:"company_name"`
	LastUpdated string    `json:"last_updated"`
	Digest      Digest    `json:"digest"`
	Articles    []Article `json:"articles"`
}

// IsMarket reports whether the response is the market-wide digest
func (n NewsResponse) IsMarket() bool {
	return n.Symbol == MarketKey
}

// TickerResult is a single autocomplete suggestion
type TickerResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange,omitempty"`
}

// SearchResponse wraps ticker search results
type SearchResponse struct {
	Results []TickerResult `json:"results"`
}
