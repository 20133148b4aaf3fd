package models

// Language is a supported UI language code.
type Language string

const (
	LanguageDE Language = "de"
	LanguageEN Language = "en"
)

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == LanguageDE || l == LanguageEN
}

// Toggle flips between German and English.
func (l Language) Toggle() Language {
	if l == LanguageDE {
		return LanguageEN
	}
	return LanguageDE
}

// ParseLanguage returns the language for s, or fallback when s is not supported.
func ParseLanguage(s string, fallback Language) Language {
	if l := Language(s); l.Valid() {
		return l
	}
	return fallback
}
