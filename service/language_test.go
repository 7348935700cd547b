package service

import "testing"

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", "en"},
		{"plain ascii", "Hello, how are you?", "en"},
		{"punctuation only", "?!...", "en"},
		{"pure hindi", "नमस्ते", "hi"},
		{"mixed script", "hello नमस्ते", "hi"},
		{"single devanagari rune", "a क b", "hi"},
		{"other non-latin", "こんにちは", "en"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectLanguage(tc.text); got != tc.want {
				t.Fatalf("DetectLanguage(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}
