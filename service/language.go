package service

import "unicode"

// DetectLanguage classifies text as "hi" when it contains any Devanagari
// rune and "en" otherwise. The other display languages the app supports are
// chosen explicitly by the user, never detected.
func DetectLanguage(text string) string {
	for _, r := range text {
		if unicode.Is(unicode.Devanagari, r) {
			return "hi"
		}
	}
	return "en"
}
