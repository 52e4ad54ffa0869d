package tui

import "finaily/types"

// UI Text Constants
const (
	TextTitle             = "📈 fin-aily"
	TextSearchPlaceholder = "티커 검색 (예: AAPL, TSLA)"

	TextTabBrief = "Ticker Brief"
	TextTabPulse = "Market Pulse"

	TextBriefIntro = "종목을 검색하면 최신 뉴스와 AI 요약을 보여드립니다."
	TextPulseTitle = "🌐 시장 전체 요약"

	TextDigestTitle   = "📝 AI 종합 요약"
	TextArticlesTitle = "📰 관련 기사"
	TextNoArticles    = "표시할 기사가 없습니다."
	TextLastUpdated   = "마지막 업데이트: "
	TextLoading       = "불러오는 중…"

	TextProfileTitle = "👤 내 정보"
	TextSignedOut    = "로그인이 필요합니다. 로그인 후 다시 시도해 주세요."
	TextUpdating     = "언어 설정을 저장하는 중…"

	// Footer
	TextFooterSearch  = "enter 선택 · ↑/↓ 이동 · tab 탭 전환 · esc 검색 닫기 · ctrl+c 종료"
	TextFooterHome    = "/ 검색 · tab 탭 전환 · p 내 정보 · r 다시 시도 · q 종료"
	TextFooterStock   = "/ 검색 · ↑/↓ 스크롤 · r 다시 시도 · esc 홈 · p 내 정보 · q 종료"
	TextFooterProfile = "l 언어 변경 · r 다시 시도 · esc 홈 · q 종료"
)

var languageNames = map[types.Language]string{
	types.LanguageKorean:  "한국어",
	types.LanguageEnglish: "English",
}

func languageName(lang types.Language) string {
	if name, ok := languageNames[lang]; ok {
		return name
	}
	return string(lang)
}

func languageNotice(lang types.Language) string {
	return "요약 언어가 " + languageName(lang) + "(으)로 변경되었습니다."
}
