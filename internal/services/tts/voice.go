// File: internal/services/tts/voice.go
package tts

import "strings"

// femaleSuffixes follows the Neural2 naming convention: the trailing speaker
// letter distinguishes gender within each language code.
var femaleSuffixes = map[string]bool{"A": true, "C": true, "F": true}

// ResolveVoice turns a stored voice identifier into full synthesis
// parameters, falling back to fallback when name is empty. The language
// code is the leading two segments of the identifier (e.g. "en-GB" from
// "en-GB-Neural2-A"); gender is inferred from the trailing letter.
func ResolveVoice(name, fallback string) Voice {
	if name == "" {
		name = fallback
	}

	languageCode := "en-GB"
	parts := strings.Split(name, "-")
	if len(parts) >= 2 {
		languageCode = parts[0] + "-" + parts[1]
	}

	gender := "MALE"
	if len(parts) > 0 && femaleSuffixes[parts[len(parts)-1]] {
		gender = "FEMALE"
	}

	return Voice{Name: name, LanguageCode: languageCode, Gender: gender}
}
