package golingo

import "strings"

// LocaleCode is a locale identifier such as "en", "es-MX" or "zh-Hans".
// The engine treats it as opaque and passes it to the API unchanged.
type LocaleCode string

// Base returns the lower-cased language part, e.g. "pt" for "pt-BR".
func (l LocaleCode) Base() string {
	s := NormalizeLocale(string(l))
	base, _, _ := strings.Cut(s, "_")
	return strings.ToLower(base)
}

// Name returns a human-readable name for the locale, falling back to the
// code itself.
func (l LocaleCode) Name() string {
	return GetLanguageName(string(l))
}

// LanguageNames maps locale codes to human-readable names for prompts.
var LanguageNames = map[string]string{
	"en":      "English",
	"en_US":   "English (United States)",
	"en_GB":   "English (United Kingdom)",
	"de":      "German",
	"es":      "Spanish",
	"es_ES":   "Spanish (Spain)",
	"es_MX":   "Spanish (Mexico)",
	"fr":      "French",
	"fr_CA":   "French (Canada)",
	"it":      "Italian",
	"ja":      "Japanese",
	"ko":      "Korean",
	"nl":      "Dutch",
	"pl":      "Polish",
	"pt":      "Portuguese",
	"pt_BR":   "Portuguese (Brazil)",
	"pt_PT":   "Portuguese (Portugal)",
	"ru":      "Russian",
	"tr":      "Turkish",
	"uk":      "Ukrainian",
	"zh":      "Chinese",
	"zh_Hans": "Chinese (Simplified)",
	"zh_Hant": "Chinese (Traditional)",
	"ar":      "Arabic",
	"he":      "Hebrew",
	"hi":      "Hindi",
	"sv":      "Swedish",
	"cs":      "Czech",
	"da":      "Danish",
	"fi":      "Finnish",
	"nb":      "Norwegian Bokmål",
	"id":      "Indonesian",
	"vi":      "Vietnamese",
	"th":      "Thai",
}

// GetLanguageName returns the human-readable name for a locale code.
// Region-specific codes fall back to their base language.
func GetLanguageName(code string) string {
	normalized := NormalizeLocale(code)
	if name, ok := LanguageNames[normalized]; ok {
		return name
	}
	if name, ok := LanguageNames[LocaleCode(code).Base()]; ok {
		return name
	}
	return code
}

// NormalizeLocale converts a locale code to underscore form ("es-ES" → "es_ES").
func NormalizeLocale(code string) string {
	return strings.ReplaceAll(code, "-", "_")
}
