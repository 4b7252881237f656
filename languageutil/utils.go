package languageutil

import (
	"golang.org/x/text/language"
)

// The advisor persona speaks Chinese; English is recognized for onboarding
// copy only (greetings, command help).
var supported = []language.Tag{
	language.Chinese,
	language.English,
}

var matcher = language.NewMatcher(supported)

// Normalize maps a raw client language code (BCP 47, possibly garbage) to the
// closest supported tag. Unknown codes fall back to Chinese.
func Normalize(code string) language.Tag {
	tag, err := language.Parse(code)
	if err != nil {
		return language.Chinese
	}
	_, index, _ := matcher.Match(tag)
	return supported[index]
}

func IsEnglish(tag language.Tag) bool {
	return tag == language.English
}
