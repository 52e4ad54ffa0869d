package types

// Language is the digest language requested from the backend
type Language string

const (
	LanguageKorean  Language = "ko"
	LanguageEnglish Language = "en"

	DefaultLanguage = LanguageKorean
)

// Valid reports whether the backend accepts the language
func (l Language) Valid() bool {
	return l == LanguageKorean || l == LanguageEnglish
}

// Toggle switches between the two supported languages
func (l Language) Toggle() Language {
	if l == LanguageEnglish {
		return LanguageKorean
	}
	return LanguageEnglish
}

// UserProfile is the signed-in user's profile
type UserProfile struct {
	ID                string   `json:"id"`
	Email             string   `json:"email"`
	DisplayName       *string  `json:"display_name"`
	PreferredLanguage Language `json:"preferred_language"`
	CreatedAt         string   `json:"created_at"`
}

// Name returns the display name, falling back to the email address
func (u UserProfile) Name() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.Email
}

// ProfileUpdate is the PATCH /users/me payload. Nil fields are left unchanged.
type ProfileUpdate struct {
	DisplayName       *string   `json:"display_name,omitempty"`
	PreferredLanguage *Language `json:"preferred_language,omitempty"`
}
