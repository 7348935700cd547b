package service

import "testing"

func TestFallbackPolicyKnownLanguages(t *testing.T) {
	policy, err := NewFallbackPolicy()
	if err != nil {
		t.Fatalf("NewFallbackPolicy error: %v", err)
	}

	for _, lang := range []string{"en", "hi"} {
		set := map[string]bool{}
		for _, s := range fallbackReplies[lang] {
			set[s] = true
		}
		for i := 0; i < 20; i++ {
			reply := policy.Reply(lang)
			if reply == "" {
				t.Fatalf("empty fallback reply for %s", lang)
			}
			if !set[reply] {
				t.Fatalf("reply for %s not drawn from its canned set: %q", lang, reply)
			}
		}
	}
}

func TestFallbackPolicyUnknownLanguageUsesEnglish(t *testing.T) {
	policy, err := NewFallbackPolicy()
	if err != nil {
		t.Fatalf("NewFallbackPolicy error: %v", err)
	}

	enSet := map[string]bool{}
	for _, s := range fallbackReplies["en"] {
		enSet[s] = true
	}

	for _, lang := range []string{"ta", "bn", "te", "xx", ""} {
		for i := 0; i < 10; i++ {
			reply := policy.Reply(lang)
			if !enSet[reply] {
				t.Fatalf("reply for unknown language %q not from en set: %q", lang, reply)
			}
		}
	}
}
