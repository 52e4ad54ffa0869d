// Package format turns backend values into display strings.
package format

import (
	"fmt"
	"strings"
	"time"

	"finaily/types"

	"github.com/charmbracelet/lipgloss"
)

// TimeAgo renders an ISO timestamp relative to now: "방금 전", "N분 전",
// "N시간 전", and past a day the absolute "M월 D일 HH:mm" in now's location.
// Unparseable or empty input renders as "".
func TimeAgo(iso string, now time.Time) string {
	t, ok := types.ParseTimestamp(iso)
	if !ok {
		return ""
	}
	diff := now.Sub(t)
	minutes := int(diff / time.Minute)
	switch {
	case minutes < 1:
		return "방금 전"
	case minutes < 60:
		return fmt.Sprintf("%d분 전", minutes)
	case minutes/60 < 24:
		return fmt.Sprintf("%d시간 전", minutes/60)
	}
	t = t.In(now.Location())
	return fmt.Sprintf("%d월 %d일 %s", int(t.Month()), t.Day(), t.Format("15:04"))
}

// FormatDate renders an ISO timestamp as "YYYY-MM-DD HH:mm" in loc
func FormatDate(iso string, loc *time.Location) string {
	t, ok := types.ParseTimestamp(iso)
	if !ok {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("2006-01-02 15:04")
}

// SentimentEmoji maps a label to its emoji; anything unknown is neutral
func SentimentEmoji(label types.SentimentLabel) string {
	switch label {
	case types.SentimentPositive:
		return "😊"
	case types.SentimentNegative:
		return "😟"
	default:
		return "😐"
	}
}

// SentimentColor is the foreground colour for a label
func SentimentColor(label types.SentimentLabel) lipgloss.Color {
	switch label {
	case types.SentimentPositive:
		return lipgloss.Color("#059669")
	case types.SentimentNegative:
		return lipgloss.Color("#EF4444")
	default:
		return lipgloss.Color("#64748B")
	}
}

// FormatScore renders a score with an explicit sign and two decimals.
// A nil score renders as an en dash.
func FormatScore(score *float64) string {
	if score == nil {
		return "–"
	}
	if *score >= 0 {
		return fmt.Sprintf("+%.2f", *score)
	}
	return fmt.Sprintf("%.2f", *score)
}

// TrendLabel labels a sentiment trend ("improving", "worsening", "stable")
func TrendLabel(trend string) string {
	switch strings.ToLower(trend) {
	case "improving":
		return "↑ 개선"
	case "worsening":
		return "↓ 악화"
	case "stable":
		return "→ 보합"
	default:
		return ""
	}
}

// ArticleCount renders the "(N건)" suffix of the article list header
func ArticleCount(n int) string {
	return fmt.Sprintf("(%d건)", n)
}

// BasedOn renders the digest's article window
func BasedOn(n int) string {
	return fmt.Sprintf("최근 %d개 기사 기반", n)
}
