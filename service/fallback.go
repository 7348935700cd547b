package service

import (
	"errors"
	"math/rand"
)

var fallbackReplies = map[string][]string{
	"en": {
		"I'm here with you. Even when I can't find the right words, your feelings matter. Would you like to tell me a little more about what's on your mind?",
		"Thank you for sharing that with me. I'm having a little trouble responding right now, but I'm still listening. Take a slow breath — you're not alone in this.",
		"I hear you. Sometimes it helps just to put things into words. Whenever you're ready, tell me more, and we'll take it one step at a time.",
		"I'm with you. If things feel heavy right now, try a gentle breath in and out. I'm here whenever you want to continue.",
	},
	"hi": {
		"मैं आपके साथ हूँ। आपकी भावनाएँ मायने रखती हैं। क्या आप मुझे थोड़ा और बताना चाहेंगे कि आपके मन में क्या चल रहा है?",
		"मुझसे साझा करने के लिए धन्यवाद। अभी मुझे जवाब देने में थोड़ी दिक्कत हो रही है, लेकिन मैं सुन रहा हूँ। एक गहरी साँस लीजिए — आप अकेले नहीं हैं।",
		"मैं समझ रहा हूँ। कभी-कभी बस अपनी बात कह देना ही मदद करता है। जब भी आप तैयार हों, मुझे और बताइए।",
	},
}

// FallbackPolicy hands out a canned supportive reply when the generator
// cannot. It is pure and total: construction fails if the default English
// set is empty, so Reply can never return an empty string.
type FallbackPolicy struct {
	replies map[string][]string
}

func NewFallbackPolicy() (*FallbackPolicy, error) {
	if len(fallbackReplies["en"]) == 0 {
		return nil, errors.New("fallback policy requires a non-empty en reply set")
	}
	return &FallbackPolicy{replies: fallbackReplies}, nil
}

// Reply picks one canned response for the language, falling back to the
// English set for languages without one.
func (p *FallbackPolicy) Reply(language string) string {
	set, ok := p.replies[language]
	if !ok || len(set) == 0 {
		set = p.replies["en"]
	}
	return set[rand.Intn(len(set))]
}
