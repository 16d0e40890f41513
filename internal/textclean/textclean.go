// Package textclean implements the configurable text cleaning pipeline
// applied before analysis.
package textclean

import (
	"regexp"
	"strings"

	"github.com/forPelevin/gomoji"
	"golang.org/x/text/unicode/norm"
)

// HashtagMode controls what happens to hashtags during cleaning.
type HashtagMode string

const (
	HashtagSymbol   HashtagMode = "symbol"   // drop the #, keep the word
	HashtagComplete HashtagMode = "complete" // drop the whole tag
	HashtagNone     HashtagMode = "none"
)

// Config toggles the pipeline steps. The zero value disables everything;
// use one of the presets as a starting point.
type Config struct {
	RemoveURLs       bool        `toml:"remove_urls"`
	RemoveMentions   bool        `toml:"remove_mentions"`
	Hashtags         HashtagMode `toml:"hashtags"`
	RemoveEmojis     bool        `toml:"remove_emojis"`
	RemoveSpecial    bool        `toml:"remove_special_chars"`
	Lowercase        bool        `toml:"lowercase"`
	RemoveNumbers    bool        `toml:"remove_numbers"`
	NormalizeUnicode bool        `toml:"normalize_unicode"`
	StripRTPrefix    bool        `toml:"strip_rt_prefix"`
}

// Standard removes link noise, mentions and symbols while keeping hashtag
// words.
func Standard() Config {
	return Config{
		RemoveURLs:       true,
		RemoveMentions:   true,
		Hashtags:         HashtagSymbol,
		RemoveEmojis:     true,
		RemoveSpecial:    true,
		Lowercase:        true,
		NormalizeUnicode: true,
		StripRTPrefix:    true,
	}
}

// Minimal only strips URLs and the retweet prefix.
func Minimal() Config {
	return Config{
		RemoveURLs:       true,
		Hashtags:         HashtagNone,
		NormalizeUnicode: true,
		StripRTPrefix:    true,
	}
}

// Aggressive strips everything Standard does plus hashtag words and digits.
func Aggressive() Config {
	c := Standard()
	c.Hashtags = HashtagComplete
	c.RemoveNumbers = true
	return c
}

// ParsePreset resolves a preset name. Unknown names report false and fall
// back to Standard.
func ParsePreset(name string) (Config, bool) {
	switch strings.ToLower(name) {
	case "standard":
		return Standard(), true
	case "minimal":
		return Minimal(), true
	case "aggressive":
		return Aggressive(), true
	}
	return Standard(), false
}

var (
	urlPattern             = regexp.MustCompile(`https?://\S+|www\.\S+`)
	mentionPattern         = regexp.MustCompile(`@\w+`)
	hashtagSymbolPattern   = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	hashtagCompletePattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	specialPattern         = regexp.MustCompile(`[^a-zA-Z0-9\s.,!?'"-]`)
	numberPattern          = regexp.MustCompile(`\d+`)
	spacePattern           = regexp.MustCompile(`\s+`)
	rtPrefixPattern        = regexp.MustCompile(`(?i)^RT\s*:?\s*`)
)

// Clean runs the configured steps in a fixed order. Whitespace is always
// collapsed at the end, so cleaned text never carries leading or trailing
// space.
func Clean(text string, cfg Config) string {
	if text == "" {
		return ""
	}

	text = strings.NewReplacer("\n", " ", "\r", " ").Replace(text)

	if cfg.StripRTPrefix {
		text = rtPrefixPattern.ReplaceAllString(text, "")
	}
	if cfg.RemoveURLs {
		text = urlPattern.ReplaceAllString(text, "")
	}
	if cfg.RemoveMentions {
		text = mentionPattern.ReplaceAllString(text, "")
	}
	switch cfg.Hashtags {
	case HashtagSymbol:
		text = hashtagSymbolPattern.ReplaceAllString(text, "$1")
	case HashtagComplete:
		text = hashtagCompletePattern.ReplaceAllString(text, "")
	}
	if cfg.RemoveEmojis {
		text = gomoji.RemoveEmojis(text)
	}
	if cfg.NormalizeUnicode {
		text = norm.NFKD.String(text)
	}
	if cfg.RemoveSpecial {
		text = specialPattern.ReplaceAllString(text, "")
	}
	if cfg.RemoveNumbers {
		text = numberPattern.ReplaceAllString(text, "")
	}
	if cfg.Lowercase {
		text = strings.ToLower(text)
	}

	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}
